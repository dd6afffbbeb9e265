package model

// ArbiterVerdict is the arbiter's answer to one escalated cluster. A missing
// or malformed response is treated as SameEntity=false by the caller.
type ArbiterVerdict struct {
	SameEntity       bool           `json:"same_entity"`
	CanonicalName    string         `json:"canonical_name"`
	MergedAttributes map[string]any `json:"merged_attributes"`
}

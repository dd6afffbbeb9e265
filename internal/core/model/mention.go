package model

// Category identifies which kind of real-world entity a mention refers to.
// Resolution is always scoped to a single category: a band and a place that
// share a name never collide.
type Category string

const (
	CategoryBand      Category = "band"
	CategoryPerson    Category = "person"
	CategoryAlbum     Category = "album"
	CategorySong      Category = "song"
	CategorySubgenre  Category = "subgenre"
	CategoryLocation  Category = "location"
	CategoryEvent     Category = "event"
	CategoryEquipment Category = "equipment"
	CategoryStudio    Category = "studio"
	CategoryLabel     Category = "label"
)

// Categories lists every known category in the fixed order used for
// materialized output. The order is not semantically meaningful but must be
// stable so result snapshots are reproducible.
var Categories = []Category{
	CategoryBand,
	CategoryPerson,
	CategoryAlbum,
	CategorySong,
	CategorySubgenre,
	CategoryLocation,
	CategoryEvent,
	CategoryEquipment,
	CategoryStudio,
	CategoryLabel,
}

var categorySet = func() map[Category]struct{} {
	s := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		s[c] = struct{}{}
	}
	return s
}()

// Known reports whether c is one of the enumerated categories. The category
// set is closed: a group opened under an unlisted category would never be
// escalated or materialized, so ingestion rejects such mentions up front.
func (c Category) Known() bool {
	_, ok := categorySet[c]
	return ok
}

// Mention is one occurrence of an entity as reported by the extractor for one
// source chunk. Mentions are immutable once produced; the resolver only reads
// them.
type Mention struct {
	Category     Category       `json:"category"`
	Name         string         `json:"name"`
	Attributes   map[string]any `json:"attributes,omitempty"`
	SourceUnitID string         `json:"source_unit_id"`
	Confidence   float64        `json:"confidence,omitempty"`
}

// Chunk is one pre-segmented unit of source text. Chunking itself happens
// upstream; the pipeline only consumes the result.
type Chunk struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON unmarshals the JSON object embedded in an LLM response into T.
// Models wrap their output in markdown fences or prose more often than not,
// so everything outside the outermost object braces is discarded before
// decoding.
func ParseJSON[T any](response string) (T, error) {
	var out T

	start := strings.Index(response, "{")
	if start < 0 {
		return out, fmt.Errorf("no JSON object in response")
	}
	end := strings.LastIndex(response, "}")
	if end < start {
		return out, fmt.Errorf("unterminated JSON object in response")
	}

	payload := response[start : end+1]
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, payload)
	}
	return out, nil
}

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON[payload](`{"name": "doom", "count": 3}`)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "doom", Count: 3}, got)
}

func TestParseJSONStripsFencesAndProse(t *testing.T) {
	response := "Sure, here you go:\n```json\n{\"name\": \"doom\", \"count\": 3}\n```\nLet me know if you need more."
	got, err := ParseJSON[payload](response)
	require.NoError(t, err)
	assert.Equal(t, "doom", got.Name)
}

func TestParseJSONErrors(t *testing.T) {
	_, err := ParseJSON[payload]("no braces here")
	assert.Error(t, err)

	_, err = ParseJSON[payload]("{ truncated")
	assert.Error(t, err)

	_, err = ParseJSON[payload](`{"count": "not a number"}`)
	assert.Error(t, err)
}

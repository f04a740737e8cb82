package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSON(`{"a": 1}{"b": 2}`, &v)
	assert.Error(t, err)
}

func TestParseJSONAllowsWhitespaceAfterValue(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSON("{\"a\": 1}\n  ", &v)
	assert.NoError(t, err)
}

func TestParseJSONStrictRejectsUnknownFields(t *testing.T) {
	type target struct {
		A int `json:"a"`
	}

	var v target
	require.NoError(t, ParseJSON(`{"a": 1, "b": 2}`, &v))
	assert.Error(t, ParseJSONStrict(`{"a": 1, "b": 2}`, &v))
}

func TestToJSONRoundTrip(t *testing.T) {
	out, err := ToJSON(map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, out)
}

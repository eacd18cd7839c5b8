package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiEntriesParse(t *testing.T) {
	entries := SQLiEntries()
	require.NotEmpty(t, entries)
	names := make(map[string]bool)
	for _, e := range entries {
		names[e.Name] = true
		assert.NotEmpty(t, e.Input)
		assert.NotEqual(t, e.ID.String(), "00000000-0000-0000-0000-000000000000")
	}
	assert.True(t, names["tautology"])
	assert.True(t, names["benign_select"])
}

func TestXSSEntriesParse(t *testing.T) {
	entries := XSSEntries()
	require.NotEmpty(t, entries)
	names := make(map[string]bool)
	for _, e := range entries {
		names[e.Name] = true
	}
	assert.True(t, names["script_tag"])
	assert.True(t, names["benign_text"])
}

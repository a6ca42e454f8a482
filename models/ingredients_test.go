package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredients(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want IngredientList
	}{
		{"newline separated", "Salt\nPepper\n", IngredientList{"Salt", "Pepper"}},
		{"json array", `["Salt","Pepper"]`, IngredientList{"Salt", "Pepper"}},
		{"json array with surrounding space", `  ["Salt","Pepper"]  `, IngredientList{"Salt", "Pepper"}},
		{"malformed json falls back to lines", "[invalid", IngredientList{"[invalid"}},
		{"json with non-strings falls back to lines", `[1,2,3]`, IngredientList{"[1,2,3]"}},
		{"blank lines discarded", "Salt\n\n  \nPepper", IngredientList{"Salt", "Pepper"}},
		{"lines trimmed", "  Salt \r\n Pepper \n", IngredientList{"Salt", "Pepper"}},
		{"duplicates and order preserved", `["Egg","Egg","Flour"]`, IngredientList{"Egg", "Egg", "Flour"}},
		{"empty input", "", nil},
		{"empty json array", "[]", IngredientList{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIngredients(tt.raw))
		})
	}
}

func TestIngredientListString(t *testing.T) {
	assert.Equal(t, `["Salt","Pepper"]`, IngredientList{"Salt", "Pepper"}.String())
	assert.Equal(t, "[]", IngredientList{}.String())
	assert.Equal(t, "[]", IngredientList(nil).String())
}

func TestIngredientListLines(t *testing.T) {
	assert.Equal(t, "Salt\nPepper", IngredientList{"Salt", "Pepper"}.Lines())
	assert.Equal(t, "", IngredientList(nil).Lines())
}

func TestIngredientRoundTrip(t *testing.T) {
	lists := []IngredientList{
		{"Salt", "Pepper"},
		{"Egg", "Egg", "Flour"},
		{},
	}
	for _, list := range lists {
		rendered := list.String()
		again := ParseIngredients(rendered).String()
		assert.Equal(t, rendered, again)
	}
}

func TestIngredientListScanValue(t *testing.T) {
	list := IngredientList{"Salt", "Pepper"}

	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Salt","Pepper"]`, value)

	var scanned IngredientList
	require.NoError(t, scanned.Scan(`["Salt","Pepper"]`))
	assert.Equal(t, list, scanned)

	require.NoError(t, scanned.Scan([]byte(`["Flour"]`)))
	assert.Equal(t, IngredientList{"Flour"}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	require.Error(t, scanned.Scan(42))
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// IngredientList is an ordered list of ingredient lines. It is stored as a
// JSON array in a text column; order and duplicates are preserved.
type IngredientList []string

// ParseIngredients accepts either a JSON array of strings or newline-separated
// text. Input that looks like JSON (leading "[") but fails to parse degrades
// to the line-split path instead of failing the operation.
func ParseIngredients(raw string) IngredientList {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
			return IngredientList(list)
		}
	}

	var list IngredientList
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			list = append(list, line)
		}
	}
	return list
}

// String renders the stored JSON-array form. An empty list renders as "[]",
// never "null".
func (l IngredientList) String() string {
	if l == nil {
		l = IngredientList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Lines renders one ingredient per line, for display and edit prefill.
func (l IngredientList) Lines() string {
	return strings.Join(l, "\n")
}

func (l IngredientList) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l *IngredientList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported ingredients column type %T", value)
	}
}

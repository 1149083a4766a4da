// Package jsontree decodes stored JSON payloads into their generic
// tree-structured representation for verbatim passthrough. Handlers hold an
// explicitly constructed Converter; there is no package-level shared state.
package jsontree

import (
	"encoding/json"
	"fmt"
)

// Converter decodes stored payloads into generic JSON trees.
type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

// ParseObject decodes a string-encoded JSON object into a tree map.
func (c *Converter) ParseObject(s string) (map[string]any, error) {
	var tree map[string]any
	if err := json.Unmarshal([]byte(s), &tree); err != nil {
		return nil, fmt.Errorf("jsontree: failed to parse object: %w", err)
	}
	return tree, nil
}

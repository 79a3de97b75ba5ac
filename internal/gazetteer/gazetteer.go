// Package gazetteer provides a static place-name to coordinate lookup table,
// used as a resolver fallback when no geocoding provider is reachable.
package gazetteer

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/localrank/internal/model"
)

// Table is an immutable name -> coordinate lookup. Keys are stored
// lower-cased; lookup order for substring matches is deterministic
// (sorted keys).
type Table struct {
	entries map[string]model.Coordinate
	keys    []string
}

// New builds a Table from the built-in entries.
func New() *Table {
	return build(builtin)
}

// NewWithFile builds a Table from the built-in entries merged with extra
// entries loaded from a YAML file of `name: {latitude, longitude}` pairs.
// File entries override built-ins with the same name.
func NewWithFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "gazetteer: read %s", path)
	}

	var extra map[string]model.Coordinate
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, eris.Wrapf(err, "gazetteer: parse %s", path)
	}

	merged := make(map[string]model.Coordinate, len(builtin)+len(extra))
	for k, v := range builtin {
		merged[k] = v
	}
	for k, v := range extra {
		if !v.Valid() {
			return nil, eris.Errorf("gazetteer: entry %q has out-of-range coordinates", k)
		}
		merged[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return build(merged), nil
}

func build(entries map[string]model.Coordinate) *Table {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Table{entries: entries, keys: keys}
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }

// Lookup resolves a place name. Exact case-insensitive match wins; otherwise
// the first key (in sorted order) where the input contains the key or the key
// contains the input. Returns false when nothing matches.
func (t *Table) Lookup(name string) (model.Coordinate, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return model.Coordinate{}, false
	}

	if c, ok := t.entries[needle]; ok {
		return c, true
	}

	for _, key := range t.keys {
		if strings.Contains(needle, key) || strings.Contains(key, needle) {
			return t.entries[key], true
		}
	}
	return model.Coordinate{}, false
}

// Package normalize maps a platform's column vocabulary onto canonical
// field paths, producing one nested object per source row.
//
// Two guarantees hold for every row:
//
//  1. Mapped columns land on their canonical path. Dotted paths create
//     nested objects ("variant.price" → {"variant": {"price": ...}}).
//  2. Unmapped columns are never discarded. A column named like
//     "<entity>.metafields.<namespace>.<key>" becomes a structured
//     metafield; any other unmapped, non-empty column becomes a custom
//     metafield under the default namespace with a sanitized key.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"catbridge/internal/catalog"
	"catbridge/internal/rowio"
	"catbridge/internal/schema"
)

// DefaultNamespace is the metafield namespace for ad-hoc columns that
// match no mapping and no metafield pattern.
const DefaultNamespace = "custom"

// metafieldColumn matches column names that spell out a metafield path,
// e.g. "product.metafields.custom.material".
var metafieldColumn = regexp.MustCompile(`^[A-Za-z0-9_-]+\.metafields\.([^.]+)\.(.+)$`)

// Row is the normalized form of one source row: a nested canonical
// object plus the metafields recovered from unmapped columns.
type Row struct {
	fields     map[string]any
	Metafields []catalog.Metafield
}

// Mapper applies one platform's Mapping to rows. The case-insensitive
// column index is built once at construction, not per field access.
type Mapper struct {
	mapping schema.Mapping
	folded  map[string]string // lowercased column name → canonical path
}

// NewMapper builds a Mapper for the given platform mapping.
func NewMapper(m schema.Mapping) *Mapper {
	folded := make(map[string]string, len(m))
	for col, path := range m {
		folded[strings.ToLower(rowio.CleanHeader(col))] = path
	}
	return &Mapper{mapping: m, folded: folded}
}

// Apply normalizes one record. Cell values are cleaned exactly once
// here; downstream consumers see artifact-free strings. Columns are
// visited in name order so the metafield slice is deterministic.
func (m *Mapper) Apply(rec rowio.Record) *Row {
	row := &Row{fields: make(map[string]any)}

	cols := make([]string, 0, len(rec))
	for col := range rec {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for _, col := range cols {
		value := rowio.CleanCell(rec[col])

		path, mapped := m.lookup(col)
		if mapped {
			row.set(path, value)
			continue
		}

		if ns, key, ok := metafieldPath(col); ok {
			if value != "" {
				row.Metafields = append(row.Metafields, catalog.Metafield{
					Namespace: ns,
					Key:       key,
					Value:     value,
					Type:      catalog.MetafieldTypeSingleLineText,
				})
			}
			continue
		}

		if value != "" {
			row.Metafields = append(row.Metafields, catalog.Metafield{
				Namespace: DefaultNamespace,
				Key:       SanitizeKey(col),
				Value:     value,
				Type:      catalog.MetafieldTypeSingleLineText,
			})
		}
	}

	return row
}

// lookup resolves a source column to its canonical path: exact match
// first, folded match second.
func (m *Mapper) lookup(col string) (string, bool) {
	if path, ok := m.mapping[col]; ok {
		return path, true
	}
	path, ok := m.folded[strings.ToLower(rowio.CleanHeader(col))]
	return path, ok
}

// set places a value at a dotted path, creating intermediate objects
// and merging into ones earlier columns created.
func (r *Row) set(path, value string) {
	parts := strings.Split(path, ".")
	node := r.fields
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[p] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
}

// Str returns the string value at a dotted canonical path, or "" when
// the path is absent or holds a nested object.
func (r *Row) Str(path string) string {
	parts := strings.Split(path, ".")
	var node any = r.fields
	for _, p := range parts {
		m, ok := node.(map[string]any)
		if !ok {
			return ""
		}
		node = m[p]
	}
	s, _ := node.(string)
	return s
}

// Fields exposes the nested canonical object, e.g. for JSON diagnostics.
func (r *Row) Fields() map[string]any {
	return r.fields
}

// metafieldPath extracts namespace and key from a metafield-patterned
// column name.
func metafieldPath(col string) (namespace, key string, ok bool) {
	m := metafieldColumn.FindStringSubmatch(rowio.CleanHeader(col))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// SanitizeKey converts an arbitrary column name into a metafield key:
// lowercased, with every character outside [a-z0-9] replaced by an
// underscore. "Gift Wrap?" becomes "gift_wrap_".
func SanitizeKey(col string) string {
	col = strings.ToLower(rowio.CleanHeader(col))
	var b strings.Builder
	b.Grow(len(col))
	for _, r := range col {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

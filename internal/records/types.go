package records

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/five82/tally/internal/grid"
)

// Record is one JSON object from the data source. Values are string,
// json.Number, bool, nil, or nested maps and slices. Numbers keep their
// source text so large integer IDs stay distinct.
type Record map[string]any

// Get returns the value of field, or nil when absent.
func (r Record) Get(field string) any {
	v, ok := r[field]
	if !ok {
		return nil
	}
	switch v.(type) {
	case map[string]any, []any:
		return nestedText(v)
	}
	return v
}

// FieldNames returns the record's field names in sorted order.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns every value of the record in field-name order. Nested
// objects and arrays are rendered as compact JSON so search can see them.
func (r Record) Fields() []any {
	names := r.FieldNames()
	out := make([]any, 0, len(names))
	for _, name := range names {
		out = append(out, r.Get(name))
	}
	return out
}

// ContentKey hashes the record's canonical JSON encoding. Records with equal
// content share a key.
func (r Record) ContentKey() uint64 {
	// encoding/json writes map keys in sorted order.
	data, err := json.Marshal(map[string]any(r))
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}

// KeyFunc returns the selection identity for records. With a key field the
// identity is that field's text; records missing it, or every record when
// keyField is empty, fall back to a content hash.
func KeyFunc(keyField string) func(Record) string {
	return func(r Record) string {
		if keyField != "" {
			if text, ok := grid.Text(r.Get(keyField)); ok {
				return "k:" + text
			}
		}
		return "h:" + strconv.FormatUint(r.ContentKey(), 16)
	}
}

// InferFields returns the sorted union of field names across records.
func InferFields(recs []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range recs {
		for name := range r {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func nestedText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

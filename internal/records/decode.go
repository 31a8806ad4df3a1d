package records

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultPath selects the whole document.
const DefaultPath = "@this"

// Decode extracts the array at path from a JSON document and returns its
// object elements. Elements that are not objects are skipped.
func Decode(data []byte, path string) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode records: invalid json")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, fmt.Errorf("decode records: path %q not found", path)
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("decode records: path %q is %s, want array", path, result.Type)
	}

	var out []Record
	var decodeErr error
	result.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		var rec Record
		dec := json.NewDecoder(strings.NewReader(value.Raw))
		dec.UseNumber()
		if err := dec.Decode(&rec); err != nil {
			decodeErr = fmt.Errorf("decode records: %w", err)
			return false
		}
		out = append(out, rec)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return out, nil
}

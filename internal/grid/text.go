package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Text renders a field value to the form used by search and text ordering.
// The second result is false for absent values.
func Text(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}

// Matches reports whether any field, rendered to text and lower-cased,
// contains the lower-cased query. An empty query matches everything.
func Matches(fields []any, query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	for _, f := range fields {
		text, ok := Text(f)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

package grid

import (
	"cmp"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the order applied to the active sort field.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

func (d Direction) apply(result int) int {
	if d == Descending {
		return -result
	}
	return result
}

// Collator orders text the way a single-locale UI would. It is not safe for
// concurrent use; each Engine owns one.
type Collator struct {
	c *collate.Collator
}

// NewCollator returns a collator for English text.
func NewCollator() *Collator {
	return &Collator{c: collate.New(language.English)}
}

// CompareText returns -1, 0 or 1.
func (c *Collator) CompareText(a, b string) int {
	if c == nil || c.c == nil {
		return strings.Compare(a, b)
	}
	return c.c.CompareString(a, b)
}

// Compare orders two field values. Equal values compare as 0, absent values
// sort after present ones regardless of direction, and everything else is
// ordered by its text form, so "10" sorts before "2".
func Compare(a, b any, dir Direction, coll *Collator) int {
	return compareValues(a, b, dir, coll, nil)
}

func compareValues(a, b any, dir Direction, coll *Collator, override func(a, b any) int) int {
	if equalValues(a, b) {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}
	if override != nil {
		return dir.apply(override(a, b))
	}
	at, _ := Text(a)
	bt, _ := Text(b)
	return dir.apply(coll.CompareText(at, bt))
}

func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// NumericCompare orders values by magnitude. Numbers and numeric strings are
// comparable; anything else sorts after them, by text.
func NumericCompare(a, b any) int {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	switch {
	case okA && okB:
		if c := cmp.Compare(fa, fb); c != 0 {
			return c
		}
		// Integers beyond float64 precision can collide above.
		ia, errA := strconv.ParseInt(numberText(a), 10, 64)
		ib, errB := strconv.ParseInt(numberText(b), 10, 64)
		if errA == nil && errB == nil {
			return cmp.Compare(ia, ib)
		}
		return 0
	case okA:
		return -1
	case okB:
		return 1
	}
	at, _ := Text(a)
	bt, _ := Text(b)
	return strings.Compare(at, bt)
}

// TimeCompare orders time.Time values and RFC 3339 or YYYY-MM-DD strings
// chronologically. Unparseable values sort after parseable ones, by text.
func TimeCompare(a, b any) int {
	ta, okA := toTime(a)
	tb, okB := toTime(b)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	}
	at, _ := Text(a)
	bt, _ := Text(b)
	return strings.Compare(at, bt)
}

func numberText(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	text, _ := Text(v)
	return text
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint32:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly}

func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

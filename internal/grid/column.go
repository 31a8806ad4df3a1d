package grid

// Column describes one displayed field of a record type R.
type Column[R any] struct {
	// Field is the column identity used for sorting.
	Field      string
	Label      string
	Sortable   bool
	Filterable bool

	// Value extracts the field. A nil result means the field is absent.
	Value func(R) any

	// Render overrides the text shown in a cell.
	Render func(R) string

	// Compare overrides text ordering for present, unequal values. The
	// result is negated for descending sorts.
	Compare func(a, b any) int
}

// Title returns the label, falling back to the field name.
func (c Column[R]) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Field
}

// Cell returns the display text for r.
func (c Column[R]) Cell(r R) string {
	if c.Render != nil {
		return c.Render(r)
	}
	if c.Value == nil {
		return ""
	}
	text, _ := Text(c.Value(r))
	return text
}

func (c Column[R]) value(r R) any {
	if c.Value == nil {
		return nil
	}
	return c.Value(r)
}

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 10

// Options selects which pipeline stages run. Every stage is opt-in.
type Options[R any] struct {
	Sortable   bool
	Filterable bool
	Pagination bool
	Search     bool
	PageSize   int

	// Fields returns every value of a record that search should scan. When
	// nil, the values of all columns are scanned.
	Fields func(R) []any
}

func (o Options[R]) pageSize() int {
	if o.PageSize <= 0 {
		return DefaultPageSize
	}
	return o.PageSize
}

func findColumn[R any](columns []Column[R], field string) (Column[R], bool) {
	for _, col := range columns {
		if col.Field == field {
			return col, true
		}
	}
	return Column[R]{}, false
}

func columnFields[R any](columns []Column[R]) func(R) []any {
	return func(r R) []any {
		out := make([]any, 0, len(columns))
		for _, col := range columns {
			out = append(out, col.value(r))
		}
		return out
	}
}

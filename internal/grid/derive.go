package grid

import (
	"slices"
	"sort"
)

// Params are the inputs of one derivation.
type Params struct {
	Query      string
	Field      string
	Direction  Direction
	Page       int
	PageSize   int
	Sortable   bool
	Searchable bool
	Paginate   bool
}

// View is the derived state of the grid.
type View[R any] struct {
	// Rows is the current page window.
	Rows []R
	// TotalPages is ceil(Matched/PageSize), or 1 when pagination is off.
	TotalPages int
	// Matched counts records that passed the search stage.
	Matched int
	// Total counts the source records.
	Total int
}

// Derive filters, sorts and paginates source. It never modifies source and
// returns the same view for the same inputs. A nil fields function scans the
// values of every column.
func Derive[R any](source []R, columns []Column[R], fields func(R) []any, p Params, coll *Collator) View[R] {
	if fields == nil {
		fields = columnFields(columns)
	}
	filtered := filterRows(source, fields, p.Query, p.Searchable)
	sorted := sortRows(filtered, columns, p.Field, p.Direction, p.Sortable, coll)
	rows, pages := Paginate(sorted, p.Page, p.PageSize, p.Paginate)
	return View[R]{
		Rows:       rows,
		TotalPages: pages,
		Matched:    len(filtered),
		Total:      len(source),
	}
}

// filterRows may return rows itself when nothing is filtered out.
func filterRows[R any](rows []R, fields func(R) []any, query string, enabled bool) []R {
	if !enabled || query == "" {
		return rows
	}
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if Matches(fields(r), query) {
			out = append(out, r)
		}
	}
	return out
}

// sortRows returns a sorted copy, or rows itself when sorting does not apply.
func sortRows[R any](rows []R, columns []Column[R], field string, dir Direction, enabled bool, coll *Collator) []R {
	if !enabled || field == "" {
		return rows
	}
	col, ok := findColumn(columns, field)
	if !ok {
		return rows
	}
	values := make([]any, len(rows))
	for i, r := range rows {
		values[i] = col.value(r)
	}
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return compareValues(values[order[i]], values[order[j]], dir, coll, col.Compare) < 0
	})
	out := make([]R, len(rows))
	for i, idx := range order {
		out[i] = rows[idx]
	}
	return out
}

// Paginate returns the window [(page-1)*size, page*size) clipped to rows and
// the page count. Pages outside the range yield an empty window. With
// pagination disabled the whole collection is one page.
func Paginate[R any](rows []R, page, size int, enabled bool) ([]R, int) {
	if !enabled {
		return slices.Clone(rows), 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := len(rows) / size
	if len(rows)%size != 0 {
		pages++
	}
	if page < 1 || page > pages {
		return []R{}, pages
	}
	start := (page - 1) * size
	end := min(start+size, len(rows))
	return slices.Clone(rows[start:end]), pages
}

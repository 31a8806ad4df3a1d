package grid

import "slices"

// Engine owns the state of one data grid and recomputes its view after every
// mutation. It is not safe for concurrent use; callers serialize access.
type Engine[R any, K comparable] struct {
	columns []Column[R]
	opts    Options[R]
	key     func(R) K
	fields  func(R) []any
	coll    *Collator

	source    []R
	sourceGen uint64

	query           string
	sortField       string
	direction       Direction
	page            int
	showFilterPanel bool
	selection       *Selection[K]

	filterMemo filterMemo[R]
	sortMemo   sortMemo[R]
	view       View[R]
}

type filterKey struct {
	sourceGen uint64
	query     string
	enabled   bool
}

type filterMemo[R any] struct {
	valid bool
	key   filterKey
	gen   uint64
	rows  []R
}

type sortKey struct {
	filterGen uint64
	field     string
	direction Direction
	enabled   bool
}

type sortMemo[R any] struct {
	valid bool
	key   sortKey
	rows  []R
}

// New creates an engine with an empty query, no active sort, page 1 and an
// empty selection. key maps a record to its stable identity and must not be
// nil.
func New[R any, K comparable](columns []Column[R], key func(R) K, opts Options[R]) *Engine[R, K] {
	if key == nil {
		panic("grid: nil key function")
	}
	fields := opts.Fields
	if fields == nil {
		fields = columnFields(columns)
	}
	e := &Engine[R, K]{
		columns:   slices.Clone(columns),
		opts:      opts,
		key:       key,
		fields:    fields,
		coll:      NewCollator(),
		page:      1,
		selection: NewSelection[K](),
	}
	e.recompute()
	return e
}

// SetSource replaces the record collection. Query, sort, page and selection
// are kept.
func (e *Engine[R, K]) SetSource(records []R) {
	e.source = slices.Clone(records)
	e.sourceGen++
	e.recompute()
}

// Source returns the current record collection.
func (e *Engine[R, K]) Source() []R {
	return slices.Clone(e.source)
}

// Columns returns the column schema.
func (e *Engine[R, K]) Columns() []Column[R] {
	return slices.Clone(e.columns)
}

// Options returns the engine configuration.
func (e *Engine[R, K]) Options() Options[R] {
	return e.opts
}

// Query returns the search text.
func (e *Engine[R, K]) Query() string { return e.query }

// Page returns the current page, starting at 1.
func (e *Engine[R, K]) Page() int { return e.page }

// PageSize returns the pagination window size.
func (e *Engine[R, K]) PageSize() int { return e.opts.pageSize() }

// SortField returns the active sort field, or "" when unsorted.
func (e *Engine[R, K]) SortField() string { return e.sortField }

// Direction returns the sort direction.
func (e *Engine[R, K]) Direction() Direction { return e.direction }

// ShowFilterPanel reports whether the filter panel is open.
func (e *Engine[R, K]) ShowFilterPanel() bool { return e.showFilterPanel }

// View returns the current derived state.
func (e *Engine[R, K]) View() View[R] {
	v := e.view
	v.Rows = slices.Clone(e.view.Rows)
	return v
}

// SetQuery changes the search text and returns to the first page.
func (e *Engine[R, K]) SetQuery(q string) {
	if q == e.query {
		return
	}
	e.query = q
	e.page = 1
	e.recompute()
}

// SetPage moves to page p. Out of range pages are accepted and show an empty
// window.
func (e *Engine[R, K]) SetPage(p int) {
	if p == e.page {
		return
	}
	e.page = p
	e.recompute()
}

// NextPage advances one page unless already on the last page.
func (e *Engine[R, K]) NextPage() bool {
	if e.page >= e.view.TotalPages {
		return false
	}
	e.SetPage(e.page + 1)
	return true
}

// PrevPage goes back one page, or to the last page when the current page is
// past the end.
func (e *Engine[R, K]) PrevPage() bool {
	switch {
	case e.page > e.view.TotalPages && e.view.TotalPages > 0:
		e.SetPage(e.view.TotalPages)
	case e.page > 1:
		e.SetPage(e.page - 1)
	default:
		return false
	}
	return true
}

// ToggleSort activates field in ascending order, or flips the direction if
// field is already active. Either way the page returns to 1. Fields that are
// unknown or not sortable are ignored.
func (e *Engine[R, K]) ToggleSort(field string) bool {
	if !e.opts.Sortable {
		return false
	}
	col, ok := findColumn(e.columns, field)
	if !ok || !col.Sortable {
		return false
	}
	if e.sortField == field {
		e.direction = e.direction.Flip()
	} else {
		e.sortField = field
		e.direction = Ascending
	}
	e.page = 1
	e.recompute()
	return true
}

// ToggleFilterPanel opens or closes the filter panel when filtering is
// enabled. It has no effect on the view.
func (e *Engine[R, K]) ToggleFilterPanel() {
	if !e.opts.Filterable {
		return
	}
	e.showFilterPanel = !e.showFilterPanel
}

// Key returns the identity of r.
func (e *Engine[R, K]) Key(r R) K { return e.key(r) }

// ToggleSelection flips the selection state of r. r does not need to be
// visible.
func (e *Engine[R, K]) ToggleSelection(r R) bool {
	return e.selection.Toggle(e.key(r))
}

// IsSelected reports whether r is selected.
func (e *Engine[R, K]) IsSelected(r R) bool {
	return e.selection.Has(e.key(r))
}

// SelectAllVisible selects every row of the current window.
func (e *Engine[R, K]) SelectAllVisible() {
	keys := make([]K, 0, len(e.view.Rows))
	for _, r := range e.view.Rows {
		keys = append(keys, e.key(r))
	}
	e.selection.SelectAll(keys...)
}

// AllVisibleSelected reports whether the window is non-empty and fully
// selected.
func (e *Engine[R, K]) AllVisibleSelected() bool {
	if len(e.view.Rows) == 0 {
		return false
	}
	for _, r := range e.view.Rows {
		if !e.selection.Has(e.key(r)) {
			return false
		}
	}
	return true
}

// ClearSelection deselects everything.
func (e *Engine[R, K]) ClearSelection() {
	e.selection.Clear()
}

// Selected returns the selected keys in selection order.
func (e *Engine[R, K]) Selected() []K {
	return e.selection.Keys()
}

// SelectedRecords returns the records of the current source whose key is
// selected, in source order.
func (e *Engine[R, K]) SelectedRecords() []R {
	var out []R
	for _, r := range e.source {
		if e.selection.Has(e.key(r)) {
			out = append(out, r)
		}
	}
	return out
}

// Params returns the derivation inputs for the current state.
func (e *Engine[R, K]) Params() Params {
	return Params{
		Query:      e.query,
		Field:      e.sortField,
		Direction:  e.direction,
		Page:       e.page,
		PageSize:   e.opts.pageSize(),
		Sortable:   e.opts.Sortable,
		Searchable: e.opts.Search,
		Paginate:   e.opts.Pagination,
	}
}

// recompute derives the view from scratch, reusing the filtered and sorted
// stages when their inputs have not changed.
func (e *Engine[R, K]) recompute() {
	p := e.Params()
	filtered, filterGen := e.filtered(p)
	sorted := e.sorted(filtered, filterGen, p)
	rows, pages := Paginate(sorted, p.Page, p.PageSize, p.Paginate)
	e.view = View[R]{
		Rows:       rows,
		TotalPages: pages,
		Matched:    len(filtered),
		Total:      len(e.source),
	}
}

func (e *Engine[R, K]) filtered(p Params) ([]R, uint64) {
	key := filterKey{sourceGen: e.sourceGen, query: p.Query, enabled: p.Searchable}
	if e.filterMemo.valid && e.filterMemo.key == key {
		return e.filterMemo.rows, e.filterMemo.gen
	}
	e.filterMemo = filterMemo[R]{
		valid: true,
		key:   key,
		gen:   e.filterMemo.gen + 1,
		rows:  filterRows(e.source, e.fields, p.Query, p.Searchable),
	}
	return e.filterMemo.rows, e.filterMemo.gen
}

func (e *Engine[R, K]) sorted(filtered []R, filterGen uint64, p Params) []R {
	key := sortKey{filterGen: filterGen, field: p.Field, direction: p.Direction, enabled: p.Sortable}
	if e.sortMemo.valid && e.sortMemo.key == key {
		return e.sortMemo.rows
	}
	e.sortMemo = sortMemo[R]{
		valid: true,
		key:   key,
		rows:  sortRows(filtered, e.columns, p.Field, p.Direction, p.Sortable, e.coll),
	}
	return e.sortMemo.rows
}

// Package dashboard binds the dashboard config and record source to a grid
// engine over JSON records.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/grid"
	"github.com/five82/tally/internal/records"
)

// Engine is the grid engine specialised to JSON records keyed by text.
type Engine = grid.Engine[records.Record, string]

// Column is a grid column over JSON records.
type Column = grid.Column[records.Record]

// Columns converts configured column specs into grid columns.
func Columns(specs []config.Column) []Column {
	cols := make([]Column, 0, len(specs))
	for _, spec := range specs {
		field := spec.Field
		col := Column{
			Field:      field,
			Label:      spec.Label,
			Sortable:   spec.Sortable,
			Filterable: spec.Filterable,
			Value:      func(r records.Record) any { return r.Get(field) },
		}
		switch spec.Kind {
		case config.KindNumber:
			col.Compare = grid.NumericCompare
		case config.KindTime:
			col.Compare = grid.TimeCompare
		}
		cols = append(cols, col)
	}
	return cols
}

// Schema returns the configured columns, or columns inferred from recs when
// none are configured.
func Schema(cfg config.Config, recs []records.Record) []config.Column {
	if len(cfg.Columns) > 0 {
		return cfg.Columns
	}
	return config.InferColumns(records.InferFields(recs))
}

// NeedsInference reports whether the column set depends on loaded records.
func NeedsInference(cfg config.Config) bool {
	return len(cfg.Columns) == 0
}

// Options maps the grid section of the config onto engine options. Search
// scans every field of a record, not only the displayed columns.
func Options(g config.Grid) grid.Options[records.Record] {
	return grid.Options[records.Record]{
		Sortable:   g.Sortable,
		Filterable: g.Filterable,
		Pagination: g.Pagination,
		Search:     g.Search,
		PageSize:   g.PageSize,
		Fields:     records.Record.Fields,
	}
}

// NewEngine builds an engine for cfg and loads recs as its source.
func NewEngine(cfg config.Config, recs []records.Record) *Engine {
	e := grid.New(Columns(Schema(cfg, recs)), records.KeyFunc(cfg.KeyField), Options(cfg.Grid))
	e.SetSource(recs)
	return e
}

// Source builds the record fetcher named by the config.
func Source(cfg config.Config) (records.Fetcher, error) {
	switch {
	case cfg.Source.URL != "":
		client, err := records.NewClient(cfg.Source.URL, cfg.Source.RecordsPath)
		if err != nil {
			return nil, fmt.Errorf("init records client: %w", err)
		}
		return client, nil
	case cfg.Source.File != "":
		return &records.FileSource{Path: cfg.Source.File, RecordsPath: cfg.Source.RecordsPath}, nil
	default:
		return nil, fmt.Errorf("no record source configured")
	}
}

// Query is a one-shot set of view inputs, as given on the command line.
type Query struct {
	Search     string
	SortField  string
	Descending bool
	Page       int
}

// Apply drives e to the state described by q.
func (q Query) Apply(e *Engine) error {
	if q.Descending && q.SortField == "" {
		return fmt.Errorf("descending order needs a sort column")
	}
	e.SetQuery(strings.TrimSpace(q.Search))
	if q.SortField != "" {
		if !e.ToggleSort(q.SortField) {
			return fmt.Errorf("column %q is not sortable", q.SortField)
		}
		if q.Descending {
			e.ToggleSort(q.SortField)
		}
	}
	if q.Page > 0 {
		e.SetPage(q.Page)
	}
	return nil
}

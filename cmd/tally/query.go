package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/tally/internal/app"
	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/dashboard"
	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/records"
)

const queryLoadTimeout = 10 * time.Second

var validFormats = []string{"table", "json"}

type queryOptions struct {
	search   string
	sort     string
	desc     bool
	page     int
	pageSize int
	format   string
}

func newQueryCommand(root *rootOptions) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print one page of the record grid and exit",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.format, validFormats)
			}
			if opts.page < 0 || opts.pageSize < 0 {
				return fmt.Errorf("page and page-size must not be negative")
			}
			if opts.desc && opts.sort == "" {
				return fmt.Errorf("--desc requires --sort")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), root.configPath, *opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "case-insensitive search text")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "column field to sort by")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "rows per page (defaults to the config)")
	cmd.Flags().StringVar(&opts.format, "format", "table", "output format (table|json)")

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

func runQuery(ctx context.Context, configPath string, opts queryOptions, w io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.pageSize > 0 {
		cfg.Grid.PageSize = opts.pageSize
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	fetcher, err := dashboard.Source(cfg)
	if err != nil {
		return err
	}
	recs, err := app.LoadRecords(ctx, fetcher, queryLoadTimeout, logger)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	engine := dashboard.NewEngine(cfg, recs)
	q := dashboard.Query{
		Search:     opts.search,
		SortField:  opts.sort,
		Descending: opts.desc,
		Page:       opts.page,
	}
	if err := q.Apply(engine); err != nil {
		return err
	}
	logger.Debug("query applied",
		zap.String("search", engine.Query()),
		zap.String("sort", engine.SortField()),
		zap.Int("page", engine.Page()))

	if opts.format == "json" {
		return writeJSON(w, engine)
	}
	return writeTable(w, engine)
}

type queryResult struct {
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Matched    int              `json:"matched"`
	Total      int              `json:"total"`
	Records    []records.Record `json:"records"`
}

func writeJSON(w io.Writer, engine *dashboard.Engine) error {
	view := engine.View()
	rows := view.Rows
	if rows == nil {
		rows = []records.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(queryResult{
		Page:       engine.Page(),
		TotalPages: view.TotalPages,
		Matched:    view.Matched,
		Total:      view.Total,
		Records:    rows,
	})
}

func writeTable(w io.Writer, engine *dashboard.Engine) error {
	view := engine.View()
	columns := engine.Columns()

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Title()
	}
	rows := make([][]string, 0, len(view.Rows))
	for _, rec := range view.Rows {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = col.Cell(rec)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintf(w, "%s\nPage %d of %d · %d matched / %d total\n",
		t.String(), engine.Page(), view.TotalPages, view.Matched, view.Total)
	return err
}

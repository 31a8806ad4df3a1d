package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config describes one dashboard: where its records come from, which grid
// stages are enabled, and how columns are shown.
type Config struct {
	Title    string
	KeyField string
	Source   Source
	Grid     Grid
	Log      Log
	Columns  []Column
}

// Source locates the record collection. Exactly one of URL and File is set.
type Source struct {
	URL         string
	File        string
	RecordsPath string
}

// Grid toggles the engine's pipeline stages.
type Grid struct {
	Sortable   bool
	Filterable bool
	Pagination bool
	Search     bool
	PageSize   int
}

// Log configures the file logger. An empty File disables logging.
type Log struct {
	File   string
	Level  string
	Format string
}

// Column is one configured grid column.
type Column struct {
	Field      string
	Label      string
	Sortable   bool
	Filterable bool
	Kind       string
}

// Column kinds select the ordering used when sorting.
const (
	KindText   = "text"
	KindNumber = "number"
	KindTime   = "time"
)

const (
	defaultConfigPath = "~/.config/tally/config.toml"
	defaultDataFile   = "~/.local/share/tally/records.json"
	defaultTitle      = "Records"
	defaultPageSize   = 10
	defaultLogLevel   = "info"
	defaultLogFormat  = "json"
)

type rawConfig struct {
	Title    string `toml:"title"`
	KeyField string `toml:"key_field"`
	Source   struct {
		URL         string `toml:"url"`
		File        string `toml:"file"`
		RecordsPath string `toml:"records_path"`
	} `toml:"source"`
	Grid struct {
		Sortable   *bool `toml:"sortable"`
		Filterable *bool `toml:"filterable"`
		Pagination *bool `toml:"pagination"`
		Search     *bool `toml:"search"`
		PageSize   int   `toml:"page_size"`
	} `toml:"grid"`
	Log struct {
		File   string `toml:"file"`
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	Columns []struct {
		Field      string `toml:"field"`
		Label      string `toml:"label"`
		Sortable   *bool  `toml:"sortable"`
		Filterable *bool  `toml:"filterable"`
		Kind       string `toml:"kind"`
	} `toml:"columns"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Title:  defaultTitle,
		Source: Source{File: mustExpand(defaultDataFile)},
		Grid: Grid{
			Sortable:   true,
			Filterable: true,
			Pagination: true,
			Search:     true,
			PageSize:   defaultPageSize,
		},
		Log: Log{Level: defaultLogLevel, Format: defaultLogFormat},
	}
}

// Load locates and parses the dashboard config, falling back to defaults when
// the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(bytes)
}

// Parse decodes TOML config data, applying defaults for missing fields.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if title := strings.TrimSpace(raw.Title); title != "" {
		cfg.Title = title
	}
	cfg.KeyField = strings.TrimSpace(raw.KeyField)

	url := strings.TrimSpace(raw.Source.URL)
	file := strings.TrimSpace(raw.Source.File)
	if url != "" && file != "" {
		return Config{}, fmt.Errorf("parse config: source.url and source.file are mutually exclusive")
	}
	switch {
	case url != "":
		cfg.Source = Source{URL: url}
	case file != "":
		cfg.Source = Source{File: mustExpand(file)}
	}
	cfg.Source.RecordsPath = strings.TrimSpace(raw.Source.RecordsPath)

	cfg.Grid.Sortable = boolOr(raw.Grid.Sortable, true)
	cfg.Grid.Filterable = boolOr(raw.Grid.Filterable, true)
	cfg.Grid.Pagination = boolOr(raw.Grid.Pagination, true)
	cfg.Grid.Search = boolOr(raw.Grid.Search, true)
	switch {
	case raw.Grid.PageSize < 0:
		return Config{}, fmt.Errorf("parse config: grid.page_size must be positive, got %d", raw.Grid.PageSize)
	case raw.Grid.PageSize > 0:
		cfg.Grid.PageSize = raw.Grid.PageSize
	}

	if f := strings.TrimSpace(raw.Log.File); f != "" {
		cfg.Log.File = mustExpand(f)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.Log.Level)); level != "" {
		cfg.Log.Level = level
	}
	if format := strings.ToLower(strings.TrimSpace(raw.Log.Format)); format != "" {
		cfg.Log.Format = format
	}

	seen := make(map[string]struct{}, len(raw.Columns))
	for i, rc := range raw.Columns {
		field := strings.TrimSpace(rc.Field)
		if field == "" {
			return Config{}, fmt.Errorf("parse config: columns[%d]: field is required", i)
		}
		if _, dup := seen[field]; dup {
			return Config{}, fmt.Errorf("parse config: columns[%d]: duplicate field %q", i, field)
		}
		seen[field] = struct{}{}

		kind := strings.ToLower(strings.TrimSpace(rc.Kind))
		if kind == "" {
			kind = KindText
		}
		if kind != KindText && kind != KindNumber && kind != KindTime {
			return Config{}, fmt.Errorf("parse config: columns[%d]: unknown kind %q", i, rc.Kind)
		}

		label := strings.TrimSpace(rc.Label)
		if label == "" {
			label = field
		}
		cfg.Columns = append(cfg.Columns, Column{
			Field:      field,
			Label:      label,
			Sortable:   boolOr(rc.Sortable, true),
			Filterable: boolOr(rc.Filterable, true),
			Kind:       kind,
		})
	}

	return cfg, nil
}

// SourceLabel returns a short description of the record source.
func (c Config) SourceLabel() string {
	if c.Source.URL != "" {
		return c.Source.URL
	}
	return c.Source.File
}

// InferColumns builds text columns for the given field names.
func InferColumns(fields []string) []Column {
	cols := make([]Column, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, Column{Field: f, Label: f, Sortable: true, Filterable: true, Kind: KindText})
	}
	return cols
}

// ExpandPath resolves "~" and relative paths to an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(data, []byte(`{"users":[
		{"id":1,"name":"Carol","role":"admin"},
		{"id":2,"name":"alice","role":"viewer"},
		{"id":3,"name":"Bob","role":"admin"}
	]}`), 0o644))

	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
key_field = "id"

[source]
file = "`+filepath.ToSlash(data)+`"
records_path = "users"

[grid]
page_size = 2

[[columns]]
field = "name"
label = "Name"

[[columns]]
field = "role"
label = "Role"
`), 0o644))
	return cfg
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "tally", cmd.Use)

	sub, _, err := cmd.Find([]string{"query"})
	require.NoError(t, err)
	assert.Equal(t, "query", sub.Name())

	for _, name := range []string{"search", "sort", "desc", "page", "page-size", "format"} {
		assert.NotNil(t, sub.Flags().Lookup(name), "query flag %s", name)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("poll"))
}

func TestQuery_JSON(t *testing.T) {
	cfg := writeFixture(t)

	out, err := execute(t, "query", "--config", cfg, "--sort", "name", "--format", "json")
	require.NoError(t, err)

	assert.Equal(t, int64(1), gjson.Get(out, "page").Int())
	assert.Equal(t, int64(2), gjson.Get(out, "total_pages").Int())
	assert.Equal(t, int64(3), gjson.Get(out, "matched").Int())
	assert.Equal(t, []string{"alice", "Bob"}, stringsOf(gjson.Get(out, "records.#.name")))
}

func TestQuery_SearchDescendingSecondPage(t *testing.T) {
	cfg := writeFixture(t)

	out, err := execute(t, "query", "--config", cfg,
		"--search", "ADMIN", "--sort", "name", "--desc", "--page-size", "1", "--page", "2", "--format", "json")
	require.NoError(t, err)

	assert.Equal(t, int64(2), gjson.Get(out, "matched").Int())
	assert.Equal(t, int64(2), gjson.Get(out, "total_pages").Int())
	assert.Equal(t, []string{"Bob"}, stringsOf(gjson.Get(out, "records.#.name")))
}

func TestQuery_EmptyResultIsEmptyArray(t *testing.T) {
	cfg := writeFixture(t)

	out, err := execute(t, "query", "--config", cfg, "--search", "nobody", "--format", "json")
	require.NoError(t, err)

	assert.True(t, gjson.Get(out, "records").IsArray())
	assert.Equal(t, int64(0), gjson.Get(out, "records.#").Int())
	assert.Equal(t, int64(0), gjson.Get(out, "total_pages").Int())
}

func TestQuery_PageBeyondRangeIsEmpty(t *testing.T) {
	cfg := writeFixture(t)

	out, err := execute(t, "query", "--config", cfg, "--page", "9223372036854775807", "--format", "json")
	require.NoError(t, err)

	assert.Equal(t, int64(0), gjson.Get(out, "records.#").Int())
	assert.Equal(t, int64(2), gjson.Get(out, "total_pages").Int())
	assert.Equal(t, "9223372036854775807", gjson.Get(out, "page").Raw)
}

func TestQuery_Table(t *testing.T) {
	cfg := writeFixture(t)

	out, err := execute(t, "query", "--config", cfg, "--sort", "name")
	require.NoError(t, err)

	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Role")
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "Carol")
	assert.Contains(t, out, "Page 1 of 2")
	assert.Contains(t, out, "3 matched / 3 total")
}

func TestQuery_Errors(t *testing.T) {
	cfg := writeFixture(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad format", []string{"query", "--config", cfg, "--format", "xml"}, "invalid format"},
		{"unknown sort column", []string{"query", "--config", cfg, "--sort", "salary"}, "not sortable"},
		{"negative page", []string{"query", "--config", cfg, "--page", "-1"}, "must not be negative"},
		{"desc without sort", []string{"query", "--config", cfg, "--desc"}, "--desc requires --sort"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func stringsOf(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

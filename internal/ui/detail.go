package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/mattn/go-runewidth"

	"github.com/five82/tally/internal/grid"
)

// resizeViewports sizes the side-pane viewports to the current window.
func (m *Model) resizeViewports() {
	_, sideWidth := m.paneWidths()
	w := max(sideWidth-4, 1)
	h := max(m.height-4, 1)
	if m.detailViewport.Width == 0 {
		m.detailViewport = viewport.New(w, h)
	}
	if m.logs.viewport.Width == 0 {
		m.logs.viewport = viewport.New(w, h)
	}
	m.detailViewport.Width, m.detailViewport.Height = w, h
	m.logs.viewport.Width, m.logs.viewport.Height = w, h
}

// updateDetailViewport shows every field of the record under the cursor,
// including fields that have no column.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(m.detailViewport.Width))
	m.detailViewport.GotoTop()
}

func (m Model) renderDetailContent(width int) string {
	styles := m.theme.Styles()
	r, ok := m.currentRow()
	if !ok {
		return styles.MutedText.Render("Select a record")
	}

	names := r.FieldNames()
	keyWidth := 0
	for _, n := range names {
		keyWidth = max(keyWidth, runewidth.StringWidth(n))
	}
	keyWidth = min(keyWidth, max(width/3, 6))

	var b strings.Builder
	if m.engine.IsSelected(r) {
		b.WriteString(styles.Checked.Render("[x] selected"))
		b.WriteString("\n\n")
	}
	for _, n := range names {
		value := "null"
		if text, ok := grid.Text(r.Get(n)); ok {
			value = text
		}
		b.WriteString(styles.AccentText.Render(padRight(truncate(n, keyWidth), keyWidth)))
		b.WriteString("  ")
		b.WriteString(styles.Text.Render(truncate(oneLine(value), max(width-keyWidth-2, 1))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderFilterPanel summarises the active search, sort, and column
// capabilities.
func (m Model) renderFilterPanel(width int) string {
	e := m.engine
	styles := m.theme.Styles()
	opts := e.Options()

	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(styles.MutedText.Render(padRight(label, 10)))
		b.WriteString(styles.Text.Render(truncate(value, max(width-10, 1))))
		b.WriteString("\n")
	}

	query := e.Query()
	switch {
	case !opts.Search:
		query = "disabled"
	case query == "":
		query = "none (press /)"
	default:
		query = fmt.Sprintf("%q", query)
	}
	line("Search", query)

	sortText := "none (press s or 1-9)"
	if !opts.Sortable {
		sortText = "disabled"
	} else if f := e.SortField(); f != "" {
		sortText = f + " " + e.Direction().String()
	}
	line("Sort", sortText)

	pageText := "off"
	if opts.Pagination {
		pageText = fmt.Sprintf("%d per page", e.PageSize())
	}
	line("Paging", pageText)

	b.WriteString("\n")
	b.WriteString(styles.ColumnHeader.Render("Columns"))
	b.WriteString("\n")
	for i, c := range e.Columns() {
		flags := []string{}
		if c.Sortable {
			flags = append(flags, "sort")
		}
		if c.Filterable {
			flags = append(flags, "filter")
		}
		label := fmt.Sprintf("%d %s", i+1, c.Title())
		b.WriteString(styles.Text.Render(padRight(truncate(label, max(width/2, 4)), max(width/2, 4))))
		b.WriteString(styles.FaintText.Render(strings.Join(flags, ",")))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

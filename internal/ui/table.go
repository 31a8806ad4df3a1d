package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/tally/internal/dashboard"
	"github.com/five82/tally/internal/grid"
	"github.com/five82/tally/internal/records"
)

const (
	checkboxWidth  = 4 // "[x] "
	minColumnWidth = 4
	maxColumnWidth = 32
	columnGap      = 2
)

// renderContent lays out the grid pane beside the detail, filter, or log
// pane.
func (m Model) renderContent() string {
	styles := m.theme.Styles()
	contentHeight := max(m.height-2, 3)

	if m.engine == nil {
		msg := "Waiting for records..."
		if m.snapshot.LastError != nil {
			msg = "Cannot load records: " + m.snapshot.LastError.Error()
		}
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(truncate(msg, m.width-4)))
	}

	tableWidth, sideWidth := m.paneWidths()
	tableFocused := m.focusedPane == paneTable
	tableBg := m.theme.SurfaceAlt
	if tableFocused {
		tableBg = m.theme.FocusBg
	}
	table := m.renderTitledBox(m.gridTitle(), m.renderGrid(tableWidth-2, contentHeight-2, tableBg),
		tableWidth, contentHeight, tableFocused)

	sideFocused := m.focusedPane == paneDetail
	var side string
	switch {
	case m.logs.visible:
		side = m.renderTitledBox("Log", m.logs.viewport.View(), sideWidth, contentHeight, sideFocused)
	case m.engine.ShowFilterPanel():
		side = m.renderTitledBox("Filters", m.renderFilterPanel(sideWidth-4), sideWidth, contentHeight, sideFocused)
	default:
		side = m.renderTitledBox("Details", m.detailViewport.View(), sideWidth, contentHeight, sideFocused)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, table, side)
}

// paneWidths splits the screen between the grid and the side pane.
func (m Model) paneWidths() (int, int) {
	ratio := 60
	if m.width >= 160 {
		ratio = 70
	}
	table := m.width * ratio / 100
	return table, m.width - table
}

func (m Model) gridTitle() string {
	v := m.engine.View()
	if q := m.engine.Query(); q != "" {
		return fmt.Sprintf("%s · %d of %d match %q", m.config.Title, v.Matched, v.Total, truncate(q, 20))
	}
	return fmt.Sprintf("%s · %d", m.config.Title, v.Total)
}

// currentRow returns the record under the cursor.
func (m Model) currentRow() (records.Record, bool) {
	if m.engine == nil {
		return nil, false
	}
	rows := m.engine.View().Rows
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil, false
	}
	return rows[m.cursor], true
}

// renderGrid renders the column header, the visible window, and the pager.
func (m Model) renderGrid(width, height int, bgColor string) string {
	e := m.engine
	view := e.View()
	cols := e.Columns()
	styles := m.theme.Styles()
	bg := NewBgStyle(bgColor)

	widths := layoutColumns(naturalWidths(cols, view.Rows, e.SortField()), width-checkboxWidth, columnGap)

	var lines []string
	lines = append(lines, bg.FillLine(m.renderColumnHeader(cols, widths, bg, styles), width))

	bodyHeight := max(height-3, 1) // header, blank, pager
	start, end := visibleWindow(m.cursor, len(view.Rows), bodyHeight)
	for i := start; i < end; i++ {
		r := view.Rows[i]
		if i == m.cursor && m.focusedPane == paneTable {
			selBg := NewBgStyle(m.theme.SelectionBg)
			lines = append(lines, selBg.FillLine(m.renderRow(r, cols, widths, selBg, styles, true), width))
			continue
		}
		lines = append(lines, bg.FillLine(m.renderRow(r, cols, widths, bg, styles, false), width))
	}
	if len(view.Rows) == 0 {
		msg := "No records"
		if e.Query() != "" {
			msg = "No records match the search"
		}
		lines = append(lines, bg.FillLine(bg.Render(msg, styles.MutedText), width))
	}
	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, bg.FillLine(m.renderPager(bg, styles), width))
	return strings.Join(lines, "\n")
}

func (m Model) renderColumnHeader(cols []dashboard.Column, widths []int, bg BgStyle, styles Styles) string {
	box := "[ ] "
	if m.engine.AllVisibleSelected() {
		box = "[x] "
	}
	parts := []string{bg.Render(box, styles.FaintText)}
	for i, c := range cols {
		if widths[i] == 0 {
			continue
		}
		parts = append(parts, bg.Render(fit(headerLabel(c, i, m.engine.SortField(), m.engine.Direction()), widths[i]), styles.ColumnHeader))
	}
	return strings.Join(parts, bg.Spaces(columnGap))
}

func (m Model) renderRow(r records.Record, cols []dashboard.Column, widths []int, bg BgStyle, styles Styles, cursor bool) string {
	textStyle := styles.Text
	if cursor {
		textStyle = styles.Selected
	}
	box := bg.Render("[ ] ", styles.FaintText)
	if m.engine.IsSelected(r) {
		box = bg.Render("[x] ", styles.Checked)
	}
	parts := []string{box}
	for i, c := range cols {
		if widths[i] == 0 {
			continue
		}
		parts = append(parts, bg.Render(fit(c.Cell(r), widths[i]), textStyle))
	}
	return strings.Join(parts, bg.Spaces(columnGap))
}

// renderPager renders the page position, match counts, and selection size.
func (m Model) renderPager(bg BgStyle, styles Styles) string {
	e := m.engine
	v := e.View()
	var parts []string
	if e.Options().Pagination {
		parts = append(parts, bg.Render(fmt.Sprintf("Page %d of %d", e.Page(), v.TotalPages), styles.AccentText))
	}
	parts = append(parts, bg.Render(fmt.Sprintf("%d matched / %d total", v.Matched, v.Total), styles.MutedText))
	if n := len(e.Selected()); n > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d selected", n), styles.Checked))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.WarningText))
	}
	return bg.Join(parts, " · ")
}

// headerLabel prefixes the column number used by the 1-9 sort keys and
// marks the active sort.
func headerLabel(c dashboard.Column, idx int, sortField string, dir grid.Direction) string {
	label := c.Title()
	if idx < 9 {
		label = fmt.Sprintf("%d:%s", idx+1, label)
	}
	if c.Field == sortField {
		if dir == grid.Descending {
			return label + " ▼"
		}
		return label + " ▲"
	}
	return label
}

// naturalWidths measures each column's widest cell on the visible rows.
func naturalWidths(cols []dashboard.Column, rows []records.Record, sortField string) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		w := runewidth.StringWidth(headerLabel(c, i, sortField, grid.Ascending))
		for _, r := range rows {
			w = max(w, runewidth.StringWidth(oneLine(c.Cell(r))))
		}
		widths[i] = min(max(w, minColumnWidth), maxColumnWidth)
	}
	return widths
}

// layoutColumns fits natural widths into avail cells. Columns shrink in
// proportion to their size; columns that no longer fit at minColumnWidth
// are dropped from the right and get width 0.
func layoutColumns(natural []int, avail, gap int) []int {
	out := make([]int, len(natural))
	if len(natural) == 0 || avail <= 0 {
		return out
	}

	n := len(natural)
	for n > 0 && n*minColumnWidth+(n-1)*gap > avail {
		n--
	}
	if n == 0 {
		return out
	}

	total := 0
	for _, w := range natural[:n] {
		total += w
	}
	room := avail - (n-1)*gap
	if total <= room {
		copy(out, natural[:n])
		return out
	}

	used := 0
	for i := 0; i < n; i++ {
		w := max(natural[i]*room/total, minColumnWidth)
		out[i] = w
		used += w
	}
	for i := n - 1; used > room && i >= 0; i-- {
		cut := min(out[i]-minColumnWidth, used-room)
		out[i] -= cut
		used -= cut
	}
	return out
}

// visibleWindow returns the slice of rows to draw so the cursor stays on
// screen.
func visibleWindow(cursor, total, height int) (int, int) {
	if total <= height {
		return 0, total
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	return start, min(start+height, total)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := runewidth.StringWidth(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌"+strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad)+"┐", borderStyle)
	bottom := bg.Render("└"+strings.Repeat("─", innerWidth)+"┘", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)
	lines := make([]string, 0, boxHeight+2)
	lines = append(lines, top)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+bg.FillLine(line, innerWidth)+bg.Render("│", borderStyle))
	}
	lines = append(lines, bottom)
	return strings.Join(lines, "\n")
}

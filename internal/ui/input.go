package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/tally/internal/prefs"
)

// handleKey maps each key press onto at most one engine mutation.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.ToggleLogs):
		return m, m.toggleLogs()
	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == paneTable {
			m.focusedPane = paneDetail
		} else {
			m.focusedPane = paneTable
		}
		return m, nil
	}

	if m.engine == nil {
		return m, nil
	}
	if m.focusedPane == paneDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.engine
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Escape):
		switch {
		case e.Query() != "":
			e.SetQuery("")
			m.cursor = 0
		case e.ShowFilterPanel():
			e.ToggleFilterPanel()
		}

	case key.Matches(msg, m.keys.Search):
		if !e.Options().Search {
			m.notice = "search is disabled"
			break
		}
		m.searching = true
		m.searchPrev = e.Query()
		m.searchInput.SetValue(e.Query())
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleSort):
		m.cycleSort()

	case key.Matches(msg, m.keys.FlipSort):
		if field := e.SortField(); field != "" {
			e.ToggleSort(field)
			m.cursor = 0
		} else {
			m.cycleSort()
		}

	case key.Matches(msg, m.keys.SortColumn):
		n, _ := strconv.Atoi(msg.String())
		m.sortByColumn(n - 1)

	case key.Matches(msg, m.keys.Select):
		if r, ok := m.currentRow(); ok {
			e.ToggleSelection(r)
		}

	case key.Matches(msg, m.keys.SelectPage):
		e.SelectAllVisible()

	case key.Matches(msg, m.keys.ClearSelect):
		e.ClearSelection()

	case key.Matches(msg, m.keys.NextPage):
		if e.NextPage() {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.PrevPage):
		if e.PrevPage() {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.FilterPanel):
		if !e.Options().Filterable {
			m.notice = "filtering is disabled"
			break
		}
		e.ToggleFilterPanel()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(e.View().Rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(e.View().Rows) - 1
	}

	m.clampCursor()
	m.updateDetailViewport()
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.focusedPane = paneTable
		return m, nil
	}
	vp := &m.detailViewport
	if m.logs.visible {
		vp = &m.logs.viewport
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		vp.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		vp.LineUp(1)
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	}
	return m, nil
}

// handleSearchKey edits the query live so the grid narrows while typing.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.searchInput.Blur()
		m.engine.SetQuery(m.searchPrev)
		m.clampCursor()
		m.updateDetailViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.engine.Query() != m.searchInput.Value() {
		m.engine.SetQuery(m.searchInput.Value())
		m.cursor = 0
		m.updateDetailViewport()
	}
	return m, cmd
}

// cycleSort moves the active sort to the next sortable column, wrapping
// back to the first.
func (m *Model) cycleSort() {
	cols := m.engine.Columns()
	start := 0
	for i, c := range cols {
		if c.Field == m.engine.SortField() {
			start = i + 1
			break
		}
	}
	for i := 0; i < len(cols); i++ {
		c := cols[(start+i)%len(cols)]
		if c.Field == m.engine.SortField() {
			continue
		}
		if m.engine.ToggleSort(c.Field) {
			m.cursor = 0
			return
		}
	}
	if m.engine.SortField() == "" {
		m.notice = "no sortable columns"
	}
}

func (m *Model) sortByColumn(idx int) {
	cols := m.engine.Columns()
	if idx < 0 || idx >= len(cols) {
		return
	}
	if !m.engine.ToggleSort(cols[idx].Field) {
		m.notice = cols[idx].Title() + " is not sortable"
		return
	}
	m.cursor = 0
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath == "" {
		return
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		m.logger.Warn("load prefs", zap.Error(err))
	}
	p.Theme = m.theme.Name
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs", zap.Error(err))
	}
}

func (m *Model) clampCursor() {
	if m.engine == nil {
		m.cursor = 0
		return
	}
	n := len(m.engine.View().Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

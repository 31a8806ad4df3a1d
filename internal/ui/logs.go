package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/logtail"
)

const logTailLines = 400

// logState holds the in-app log pane.
type logState struct {
	file     string
	visible  bool
	entries  []logtail.Entry
	err      error
	viewport viewport.Model
}

type logLinesMsg struct {
	lines []string
	err   error
}

func readLogsCmd(file string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(file, logTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// toggleLogs shows or hides the log pane, fetching immediately on open.
func (m *Model) toggleLogs() tea.Cmd {
	if m.logs.file == "" {
		m.notice = "logging is disabled"
		return nil
	}
	m.logs.visible = !m.logs.visible
	if !m.logs.visible {
		return nil
	}
	return readLogsCmd(m.logs.file)
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.entries = logtail.ParseLines(msg.lines)
	}
	m.updateLogViewport()
}

func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	atBottom := m.logs.viewport.AtBottom()
	m.logs.viewport.SetContent(m.renderLogContent(m.logs.viewport.Width))
	if atBottom {
		m.logs.viewport.GotoBottom()
	}
}

func (m Model) renderLogContent(width int) string {
	styles := m.theme.Styles()
	if m.logs.err != nil {
		return styles.DangerText.Render(truncate(m.logs.err.Error(), width))
	}
	if len(m.logs.entries) == 0 {
		return styles.MutedText.Render("No log entries")
	}

	lines := make([]string, 0, len(m.logs.entries))
	for _, e := range m.logs.entries {
		if e.Raw != "" {
			lines = append(lines, styles.Text.Render(truncate(e.Raw, width)))
			continue
		}
		ts := e.Time
		if len(ts) >= 19 {
			ts = ts[11:19]
		}
		level := padRight(e.Level, 5)
		rest := e.Message
		if len(e.Fields) > 0 {
			rest += " " + strings.Join(e.Fields, " ")
		}
		rest = truncate(rest, max(width-len(ts)-len(level)-2, 1))
		lines = append(lines,
			styles.FaintText.Render(ts)+" "+
				styles.LevelStyle(e.Level).Render(level)+" "+
				styles.Text.Render(rest))
	}
	return strings.Join(lines, "\n")
}

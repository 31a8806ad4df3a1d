package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the title, connection state, and record counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render(m.config.Title, styles.Title)}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("● "+classifyConnectionError(m.snapshot.LastError), styles.DangerText))
	case m.snapshot.LastError != nil:
		parts = append(parts, bg.Render("● RETRYING", styles.WarningText.Bold(true)))
	case m.snapshot.HasRecords:
		parts = append(parts, bg.Render("● LIVE", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("● LOADING", styles.WarningText.Bold(true)))
	}

	if m.engine != nil {
		v := m.engine.View()
		parts = append(parts,
			bg.Render("Records:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", v.Total), styles.Text))
		if n := len(m.engine.Selected()); n > 0 {
			parts = append(parts,
				bg.Render("Selected:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", n), styles.Checked))
		}
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	if m.width >= 100 {
		if src := m.config.SourceLabel(); src != "" {
			parts = append(parts, bg.Render(truncateMiddle(src, 48), styles.FaintText))
		}
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(parts, "  "))
}

// classifyConnectionError returns a short description of a fetch error.
func classifyConnectionError(err error) string {
	if err == nil {
		return "OFFLINE"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "no such file"):
		return "FILE MISSING"
	case strings.Contains(msg, "returned status"):
		return "HTTP ERROR"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints, or the search box while typing.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.searching {
		return styles.Header.Width(m.width).MaxWidth(m.width).Render(
			m.searchInput.View() + bg.Spaces(2) +
				bg.Render("enter", styles.AccentText) + bg.Render(":Apply", styles.MutedText) + bg.Spaces(2) +
				bg.Render("esc", styles.AccentText) + bg.Render(":Cancel", styles.MutedText))
	}

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.focusedPane == paneDetail {
		commands = []cmd{
			{"j/k", "Scroll"},
			{"Tab", "Table"},
			{"L", "Log"},
			{"?", "More"},
		}
	} else {
		commands = []cmd{
			{"/", "Search"},
			{"s/S", "Sort"},
			{"Space", "Select"},
			{"a/A", "All/None"},
			{"n/p", "Page"},
			{"f", "Filters"},
			{"Tab", "Detail"},
			{"?", "More"},
		}
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.engine != nil && m.engine.Query() != "" {
		segments = append(segments, bg.Render("/"+truncate(m.engine.Query(), 18), styles.AccentText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

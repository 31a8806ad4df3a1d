package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the palette for the dashboard.
type Theme struct {
	Name string

	Background string // outermost background
	Surface    string // header and command bar
	SurfaceAlt string // unfocused panes
	FocusBg    string // focused pane

	SelectionBg   string // cursor row background
	SelectionText string // cursor row text

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		ColumnHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SelectionText)),

		Checked: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header       lipgloss.Style
	Title        lipgloss.Style
	ColumnHeader lipgloss.Style
	Selected     lipgloss.Style
	Checked      lipgloss.Style
}

// WithBackground returns a copy of Styles where every text style carries
// bgColor, so adjacent segments do not leave gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	return Styles{
		Background:   s.Background.Background(bg),
		Text:         s.Text.Background(bg),
		MutedText:    s.MutedText.Background(bg),
		FaintText:    s.FaintText.Background(bg),
		AccentText:   s.AccentText.Background(bg),
		SuccessText:  s.SuccessText.Background(bg),
		WarningText:  s.WarningText.Background(bg),
		DangerText:   s.DangerText.Background(bg),
		InfoText:     s.InfoText.Background(bg),
		Header:       s.Header.Background(bg),
		Title:        s.Title.Background(bg),
		ColumnHeader: s.ColumnHeader.Background(bg),
		Selected:     s.Selected.Background(bg),
		Checked:      s.Checked.Background(bg),
	}
}

// LevelStyle colors a log level.
func (s Styles) LevelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR", "FATAL", "PANIC", "DPANIC":
		return s.DangerText
	case "WARN":
		return s.WarningText
	case "DEBUG":
		return s.InfoText
	default:
		return s.SuccessText
	}
}

// palette lists a theme's colors in a fixed order: background, surface,
// surface alt, focus, selection bg, selection text, border, border focus,
// text, muted, faint, accent, success, warning, danger, info.
type palette [16]string

func (p palette) theme(name string) Theme {
	return Theme{
		Name:          name,
		Background:    p[0],
		Surface:       p[1],
		SurfaceAlt:    p[2],
		FocusBg:       p[3],
		SelectionBg:   p[4],
		SelectionText: p[5],
		Border:        p[6],
		BorderMuted:   p[2],
		BorderFocus:   p[7],
		Text:          p[8],
		Muted:         p[9],
		Faint:         p[10],
		Accent:        p[11],
		Success:       p[12],
		Warning:       p[13],
		Danger:        p[14],
		Info:          p[15],
	}
}

var themeOrder = []string{"Nord", "Gruvbox", "Paper"}

var themes = map[string]Theme{
	// https://www.nordtheme.com/docs/colors-and-palettes
	"Nord": palette{
		"#242933", "#2e3440", "#3b4252", "#434c5e",
		"#4c566a", "#eceff4",
		"#4c566a", "#88c0d0",
		"#e5e9f0", "#a3adbf", "#7b88a1",
		"#81a1c1", "#a3be8c", "#ebcb8b", "#bf616a", "#8fbcbb",
	}.theme("Nord"),
	// https://github.com/morhetz/gruvbox
	"Gruvbox": palette{
		"#1d2021", "#282828", "#3c3836", "#504945",
		"#504945", "#fbf1c7",
		"#665c54", "#fabd2f",
		"#ebdbb2", "#bdae93", "#928374",
		"#83a598", "#b8bb26", "#fabd2f", "#fb4934", "#8ec07c",
	}.theme("Gruvbox"),
	// Light scheme for bright terminals.
	"Paper": palette{
		"#fafaf7", "#f0efe9", "#e6e4dc", "#dcd9cf",
		"#c9d7ec", "#1f2328",
		"#b8b4a8", "#0969da",
		"#1f2328", "#57606a", "#8c959f",
		"#0969da", "#1a7f37", "#9a6700", "#cf222e", "#1b7c83",
	}.theme("Paper"),
}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/dashboard"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/records"
	"github.com/five82/tally/internal/state"
)

type pane int

const (
	paneTable pane = iota
	paneDetail
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Config    config.Config
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Logger    *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	config    config.Config
	prefsPath string
	pollTick  time.Duration
	logger    *zap.Logger
	keys      keyMap

	// engine is nil until the first snapshot when columns are inferred.
	engine    *dashboard.Engine
	sourceGen uint64

	theme       Theme
	width       int
	height      int
	ready       bool
	focusedPane pane
	cursor      int

	searching   bool
	searchInput textinput.Model
	// searchPrev is restored when a search is cancelled.
	searchPrev string

	detailViewport viewport.Model

	showHelp bool
	logs     logState

	snapshot    state.Snapshot
	lastUpdated time.Time
	notice      string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "search all fields"
	input.CharLimit = 256

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		config:      opts.Config,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		logger:      logger,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		searchInput: input,
		logs:        logState{file: opts.Config.Log.File},
	}
	if !dashboard.NeedsInference(m.config) {
		m.engine = dashboard.NewEngine(m.config, nil)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// applySnapshot loads new records into the engine when the store has moved
// past the generation already shown.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.lastUpdated = time.Now()
	if !snap.HasRecords || snap.Generation == m.sourceGen {
		return
	}
	m.sourceGen = snap.Generation
	m.ensureEngine(snap.Records)
	m.engine.SetSource(snap.Records)
	m.clampCursor()
	m.updateDetailViewport()
}

// ensureEngine builds the engine on first use. With inferred columns it is
// rebuilt once the first non-empty collection arrives.
func (m *Model) ensureEngine(recs []records.Record) {
	if m.engine != nil {
		if !dashboard.NeedsInference(m.config) || len(m.engine.Columns()) > 0 || len(recs) == 0 {
			return
		}
	}
	m.engine = dashboard.NewEngine(m.config, recs)
	m.logger.Debug("engine built", zap.Int("columns", len(m.engine.Columns())))
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.logs.visible {
		cmds = append(cmds, readLogsCmd(m.logs.file))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

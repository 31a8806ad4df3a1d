package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/dashboard"
	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/state"
	"github.com/five82/tally/internal/ui"
)

// Options configure the tally application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tally/prefs.toml
	PollEvery  int    // seconds; zero uses default
}

// Run boots the tally TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs", zap.Error(err))
	}
	if userPrefs.PageSize > 0 {
		cfg.Grid.PageSize = userPrefs.PageSize
	}

	fetcher, err := dashboard.Source(cfg)
	if err != nil {
		return err
	}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	logger.Info("starting tally",
		zap.String("source", cfg.SourceLabel()),
		zap.Duration("poll_interval", interval))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	// Populate the store before the UI starts so the first frame has data.
	refresh(ctx, store, fetcher, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		Poll(gctx, store, fetcher, interval, logger)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return ui.Run(ui.Options{
			Context:   gctx,
			Store:     store,
			Config:    cfg,
			PollTick:  time.Second,
			ThemeName: userPrefs.Theme,
			PrefsPath: opts.PrefsPath,
			Logger:    logger,
		})
	})
	return g.Wait()
}

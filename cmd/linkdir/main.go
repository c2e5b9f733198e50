package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/linkdir/internal/browser"
	"github.com/nikbrunner/linkdir/internal/controller"
	"github.com/nikbrunner/linkdir/internal/logging"
	"github.com/nikbrunner/linkdir/internal/model"
	"github.com/nikbrunner/linkdir/internal/source"
	"github.com/nikbrunner/linkdir/internal/state"
	"github.com/nikbrunner/linkdir/internal/storage"
	"github.com/nikbrunner/linkdir/internal/tui"
	"github.com/nikbrunner/linkdir/internal/viewed"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	source     string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "linkdir",
		Short: "Browse a categorized link directory in the terminal",
		Long: `linkdir loads a categorized list of links from a JSON document and shows it
as a collapsible, sortable, searchable table. Links you open are remembered.

TUI keybindings:
  j/k, gg/G     move, jump to top/bottom
  l/Enter       expand/collapse category, open entry
  o             open entry
  E/C           expand/collapse all
  1-4           sort by name/description/link/date (again to reverse)
  /             search, Esc clears
  Y             copy link
  T             toggle light/dark theme
  q             quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/linkdir/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.source, "source", "", "directory document, file path or http(s) URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(findCmd(opts))
	rootCmd.AddCommand(exportCmd(opts))
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(viewedCmd(opts))

	return rootCmd
}

// env is everything a command needs, built from config and flags.
type env struct {
	cfg     *storage.Config
	logger  *zap.Logger
	kv      storage.KV
	tracker *viewed.Tracker
	fetcher *source.Fetcher
}

func setup(ctx context.Context, opts *rootOptions) (*env, error) {
	configPath := opts.configPath
	if configPath == "" {
		var err error
		configPath, err = storage.DefaultConfigFilePath()
		if err != nil {
			return nil, fmt.Errorf("get config path: %w", err)
		}
	}
	dir := filepath.Dir(configPath)

	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.source != "" {
		cfg.Source = opts.source
	}

	logPath := cfg.LogPath
	if logPath == "" {
		logPath = logging.DefaultPath(dir)
	}
	logger, err := logging.New(logging.Options{Path: logPath, Debug: opts.debug})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	kvPath := cfg.Storage.Path
	if kvPath == "" {
		kvPath = filepath.Join(dir, storage.FileName(cfg.Storage.Backend))
	}
	kv, err := storage.Open(cfg.Storage.Backend, kvPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	tracker := viewed.New(kv, viewed.Options{
		TTL:    time.Duration(cfg.ViewedExpiryDays) * 24 * time.Hour,
		Logger: logger,
	})
	tracker.LoadPersisted(ctx)

	logger.Debug("environment ready",
		zap.String("config", configPath),
		zap.String("source", cfg.Source),
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("viewed", tracker.Len()))

	return &env{
		cfg:     cfg,
		logger:  logger,
		kv:      kv,
		tracker: tracker,
		fetcher: source.NewFetcher(nil),
	}, nil
}

func (e *env) Close() {
	if err := e.kv.Close(); err != nil {
		e.logger.Warn("close storage", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// load fetches and parses the configured source.
func (e *env) load(ctx context.Context) (*model.Store, error) {
	store, err := e.fetcher.Load(ctx, e.cfg.Source)
	if err != nil {
		e.logger.Error("load directory", zap.String("source", e.cfg.Source), zap.Error(err))
		return nil, err
	}
	return store, nil
}

// controllerParams configures the engine from the config file.
func (e *env) controllerParams() controller.Params {
	return controller.Params{
		View:          state.New(state.Options{Expand: state.ParseExpandPolicy(e.cfg.ExpandMode)}),
		Tracker:       e.tracker,
		Opener:        browser.Opener{},
		Logger:        e.logger,
		StartExpanded: e.cfg.Expanded(),
		ViewedOn:      controller.ParseViewedTrigger(e.cfg.MarkViewedOn),
	}
}

// runTUI runs the full interactive TUI.
func runTUI(ctx context.Context, opts *rootOptions) error {
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	app := tui.NewApp(tui.AppParams{
		Controller:     e.controllerParams(),
		Load:           e.load,
		KV:             e.kv,
		SearchDebounce: e.cfg.SearchDebounce(),
		Context:        ctx,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glabrego/reels-cli/internal/app"
	"github.com/glabrego/reels-cli/internal/config"
	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/storage"
	"github.com/glabrego/reels-cli/internal/tui"
	"github.com/glabrego/reels-cli/internal/tui/platform"
)

type options struct {
	configPath string
	apiBaseURL string
	token      string
	source     string
	viewerID   string
	dbPath     string
	logPath    string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "reels",
		Short: "Watch a reels feed in the terminal",
		Long: `Watch a short-form video feed one reel per screen.

The feed source is one of category:<name>, user:<id>, hashtag:<tag> or
trending. Flags override REELS_* environment variables, which override the
optional YAML config file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&opts.apiBaseURL, "api", "", "reels API base URL")
	cmd.Flags().StringVar(&opts.token, "token", "", "bearer token")
	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "feed source (category:<name>|user:<id>|hashtag:<tag>|trending)")
	cmd.Flags().StringVar(&opts.viewerID, "viewer", "", "viewer user id")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "path to the local history database")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "write logs to this file")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		return fmt.Errorf("storage write check failed (%v). Verify REELS_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	service := app.NewService(repo)
	prefs, err := service.LoadPreferences(ctx, cfg.Source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load preferences (%v), using defaults\n", err)
	}

	buildOpts := app.Options{Clipboard: platform.CopyToClipboard, Logger: logger}
	if !sourceExplicit(cmd) && prefs.Source != cfg.Source {
		if mode, err := reels.ParseMode(prefs.Source); err == nil {
			buildOpts.Mode = &mode
		}
	}

	engine, err := app.Build(cfg, buildOpts)
	if err != nil {
		return err
	}
	defer engine.Close()

	logger.Info("starting feed", "source", engine.Store.Mode().String(), "api", engine.Client.BaseURL())

	model := tui.NewModel(engine.Deps(ctx, cfg, service, logger, nil))
	model.ApplyPreferences(prefs)
	model.SetPreferencesSaver(service.SavePreferences)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func applyFlags(cfg *config.Config, opts *options) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	if opts.apiBaseURL != "" && cfg.Origin == config.OriginOf(cfg.APIBaseURL) {
		cfg.Origin = config.OriginOf(opts.apiBaseURL)
	}
	set(&cfg.APIBaseURL, opts.apiBaseURL)
	set(&cfg.Token, opts.token)
	set(&cfg.Source, opts.source)
	set(&cfg.ViewerID, opts.viewerID)
	set(&cfg.DBPath, opts.dbPath)
	set(&cfg.LogPath, opts.logPath)
}

// sourceExplicit reports whether the source came from a flag or the
// environment. Otherwise the last stored source wins over the default.
func sourceExplicit(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("source") || os.Getenv("REELS_SOURCE") != ""
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

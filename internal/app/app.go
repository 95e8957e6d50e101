package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/glabrego/reels-cli/internal/config"
	"github.com/glabrego/reels-cli/internal/engagement"
	"github.com/glabrego/reels-cli/internal/feed"
	"github.com/glabrego/reels-cli/internal/media"
	"github.com/glabrego/reels-cli/internal/playback"
	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/storage"
	"github.com/glabrego/reels-cli/internal/tui"
	"github.com/glabrego/reels-cli/internal/viewport"
)

const mediaProbeTimeout = 8 * time.Second

type Repository interface {
	RecordView(ctx context.Context, reelID string, at time.Time) error
	CountViews(ctx context.Context) (int, error)
	LoadPreferences(ctx context.Context) (storage.Preferences, error)
	SavePreferences(ctx context.Context, prefs storage.Preferences) error
}

// Service is the local history and preferences boundary used by the feed
// surface.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RecordView(ctx context.Context, reelID string, at time.Time) error {
	if err := s.repo.RecordView(ctx, reelID, at); err != nil {
		return fmt.Errorf("record view in history: %w", err)
	}
	return nil
}

func (s *Service) CountViews(ctx context.Context) (int, error) {
	n, err := s.repo.CountViews(ctx)
	if err != nil {
		return 0, fmt.Errorf("count views in history: %w", err)
	}
	return n, nil
}

// LoadPreferences returns the stored preferences. An empty source falls back
// to fallbackSource.
func (s *Service) LoadPreferences(ctx context.Context, fallbackSource string) (storage.Preferences, error) {
	prefs, err := s.repo.LoadPreferences(ctx)
	if err != nil {
		return storage.Preferences{Source: fallbackSource}, fmt.Errorf("load preferences: %w", err)
	}
	if prefs.Source == "" {
		prefs.Source = fallbackSource
	}
	return prefs, nil
}

func (s *Service) SavePreferences(ctx context.Context, prefs storage.Preferences) error {
	if err := s.repo.SavePreferences(ctx, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Options tune how the engine is assembled.
type Options struct {
	HTTPClient *http.Client
	Clipboard  func(string) error
	Logger     *slog.Logger
	// Mode overrides the source parsed from the config.
	Mode *reels.Mode
}

// Engine holds the wired playback engine.
type Engine struct {
	Client  *reels.Client
	Store   *feed.Store
	Loader  *feed.Loader
	Tracker *viewport.Tracker
	Player  *playback.Controller
	Policy  *media.Policy
	Gateway *engagement.Gateway
}

// Build wires the reels client, feed, viewport, playback and engagement
// components for cfg.
func Build(cfg config.Config, opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	mode, err := cfg.Mode()
	if err != nil {
		return nil, fmt.Errorf("parse feed source: %w", err)
	}
	if opts.Mode != nil {
		mode = *opts.Mode
	}

	client := reels.NewClient(cfg.APIBaseURL, cfg.Token, opts.HTTPClient)
	store := feed.NewStore(mode)
	loader := feed.NewLoader(store, client, cfg.PageLimit, logger.With("component", "feed"))
	tracker := viewport.NewTracker(store, viewport.WithSettleDelay(cfg.SettleDelay))
	player := playback.NewController(store, logger.With("component", "playback"))
	gateway := engagement.NewGateway(client, store, cfg.Origin, opts.Clipboard, logger.With("component", "engagement"))

	return &Engine{
		Client:  client,
		Store:   store,
		Loader:  loader,
		Tracker: tracker,
		Player:  player,
		Policy:  media.NewPolicy(),
		Gateway: gateway,
	}, nil
}

// NewElement returns the factory the feed surface uses to create a clip
// for each reel entering the mount window.
func (e *Engine) NewElement(httpClient *http.Client) func(reels.Reel) media.Element {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: mediaProbeTimeout}
	}
	return func(r reels.Reel) media.Element {
		var duration float64
		if r.Duration != nil {
			duration = *r.Duration
		}
		return media.NewClip(r.ID, r.VideoURL, duration,
			media.WithPolicy(e.Policy),
			media.WithHTTPClient(httpClient),
		)
	}
}

// Deps returns the dependencies of the feed surface. The view counter starts
// from the stored history; a failed count starts it at zero.
func (e *Engine) Deps(ctx context.Context, cfg config.Config, svc *Service, logger *slog.Logger, httpClient *http.Client) tui.Deps {
	deps := tui.Deps{
		Loader:     e.Loader,
		Tracker:    e.Tracker,
		Player:     e.Player,
		Gateway:    e.Gateway,
		Policy:     e.Policy,
		ViewerID:   cfg.ViewerID,
		Origin:     cfg.Origin,
		Logger:     logger,
		NewElement: e.NewElement(httpClient),
	}
	if svc == nil {
		return deps
	}
	deps.Views = svc
	n, err := svc.CountViews(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("count stored views failed", "err", err)
		}
		return deps
	}
	deps.ViewCount = n
	return deps
}

// Close cancels every in-flight fetch.
func (e *Engine) Close() {
	e.Loader.Close()
}

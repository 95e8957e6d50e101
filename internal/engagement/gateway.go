// Package engagement sends reel mutations and merges the authoritative
// server response back into the feed store. There is no optimistic update:
// a failed mutation leaves the reel untouched.
package engagement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/glabrego/reels-cli/internal/feed"
	"github.com/glabrego/reels-cli/internal/reels"
)

type Action string

const (
	ActionLike     Action = "like"
	ActionSave     Action = "save"
	ActionComment  Action = "comment"
	ActionShare    Action = "share"
	ActionReaction Action = "reaction"
)

var (
	ErrEmptyComment = errors.New("comment text is empty")
	ErrUnknownReel  = errors.New("reel is not loaded")
)

// Failure is returned by every Gateway mutation that did not take effect.
type Failure struct {
	Action Action
	ReelID string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s reel %s: %v", f.Action, f.ReelID, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// UserVisible reports whether the failure must be shown as an alert. Share
// and reaction carry visible side effects; the rest are only logged.
func (f *Failure) UserVisible() bool {
	return f.Action == ActionShare || f.Action == ActionReaction
}

type Client interface {
	Like(ctx context.Context, reelID string) (reels.Patch, error)
	Save(ctx context.Context, reelID string) (reels.Patch, error)
	Share(ctx context.Context, reelID string) (reels.Patch, error)
	Comment(ctx context.Context, reelID, text string) (reels.Patch, error)
	React(ctx context.Context, reelID string, reaction reels.ReactionType) (reels.Patch, error)
}

type Gateway struct {
	client    Client
	store     *feed.Store
	origin    string
	clipboard func(string) error
	logger    *slog.Logger
}

func NewGateway(client Client, store *feed.Store, origin string, clipboard func(string) error, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gateway{
		client:    client,
		store:     store,
		origin:    strings.TrimRight(origin, "/"),
		clipboard: clipboard,
		logger:    logger,
	}
}

func (g *Gateway) Like(ctx context.Context, reelID string) error {
	return g.mutate(ActionLike, reelID, func() (reels.Patch, error) {
		return g.client.Like(ctx, reelID)
	})
}

func (g *Gateway) Save(ctx context.Context, reelID string) error {
	return g.mutate(ActionSave, reelID, func() (reels.Patch, error) {
		return g.client.Save(ctx, reelID)
	})
}

func (g *Gateway) Comment(ctx context.Context, reelID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &Failure{Action: ActionComment, ReelID: reelID, Err: ErrEmptyComment}
	}
	return g.mutate(ActionComment, reelID, func() (reels.Patch, error) {
		return g.client.Comment(ctx, reelID, text)
	})
}

func (g *Gateway) React(ctx context.Context, reelID string, reaction reels.ReactionType) error {
	if _, err := reels.ParseReactionType(string(reaction)); err != nil {
		return &Failure{Action: ActionReaction, ReelID: reelID, Err: err}
	}
	return g.mutate(ActionReaction, reelID, func() (reels.Patch, error) {
		return g.client.React(ctx, reelID, reaction)
	})
}

// Share records the share and copies the canonical reel URL to the
// clipboard once the server has confirmed it.
func (g *Gateway) Share(ctx context.Context, reelID string) (string, error) {
	err := g.mutate(ActionShare, reelID, func() (reels.Patch, error) {
		return g.client.Share(ctx, reelID)
	})
	if err != nil {
		return "", err
	}

	link := ShareURL(g.origin, reelID)
	if g.clipboard == nil {
		return link, &Failure{Action: ActionShare, ReelID: reelID, Err: errors.New("no clipboard available")}
	}
	if err := g.clipboard(link); err != nil {
		g.logger.Warn("copy share link failed", "reel_id", reelID, "err", err)
		return link, &Failure{Action: ActionShare, ReelID: reelID, Err: fmt.Errorf("copy link: %w", err)}
	}
	return link, nil
}

func (g *Gateway) mutate(action Action, reelID string, call func() (reels.Patch, error)) error {
	if g.store.IndexOf(reelID) < 0 {
		return &Failure{Action: action, ReelID: reelID, Err: ErrUnknownReel}
	}

	patch, err := call()
	if err != nil {
		f := &Failure{Action: action, ReelID: reelID, Err: err}
		if f.UserVisible() {
			g.logger.Warn("engagement failed", "action", string(action), "reel_id", reelID, "err", err)
		} else {
			g.logger.Info("engagement failed silently", "action", string(action), "reel_id", reelID, "err", err)
		}
		return f
	}

	g.store.Update(reelID, patch.Apply)
	return nil
}

// ShareURL is the canonical dashboard link of a reel.
func ShareURL(origin, reelID string) string {
	return strings.TrimRight(origin, "/") + "/dashboard/reels/" + url.PathEscape(reelID)
}

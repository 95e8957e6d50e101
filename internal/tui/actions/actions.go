package actions

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/reels-cli/internal/engagement"
	"github.com/glabrego/reels-cli/internal/feed"
	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/storage"
)

const (
	pageTimeout       = 12 * time.Second
	mediaTimeout      = 8 * time.Second
	playTimeout       = 5 * time.Second
	engagementTimeout = 10 * time.Second
	storageTimeout    = 3 * time.Second
)

type PageRequest interface {
	Page() int
	Do(ctx context.Context) (feed.Result, error)
}

type Switcher interface {
	SwitchTo(ctx context.Context, index int) error
}

type Toggler interface {
	TogglePlay(ctx context.Context, id string) (bool, error)
}

type MediaLoader interface {
	ID() string
	Load(ctx context.Context) error
}

type Engager interface {
	Like(ctx context.Context, reelID string) error
	Save(ctx context.Context, reelID string) error
	Comment(ctx context.Context, reelID, text string) error
	React(ctx context.Context, reelID string, reaction reels.ReactionType) error
	Share(ctx context.Context, reelID string) (string, error)
}

type ViewRecorder interface {
	RecordView(ctx context.Context, reelID string, at time.Time) error
}

type PageLoadSuccessMsg struct {
	Result   feed.Result
	Duration time.Duration
}

type PageLoadErrorMsg struct {
	Page int
	Err  error
}

type SwitchDoneMsg struct {
	Index int
	Err   error
}

type MediaLoadedMsg struct {
	ReelID string
	Err    error
}

type TogglePlayMsg struct {
	ReelID  string
	Playing bool
	Err     error
}

type EngagementSuccessMsg struct {
	Action engagement.Action
	ReelID string
	Status string
}

type EngagementErrorMsg struct {
	Action engagement.Action
	ReelID string
	Err    error
}

// Visible reports whether the failure should be shown as an alert.
func (m EngagementErrorMsg) Visible() bool {
	var failure *engagement.Failure
	if errors.As(m.Err, &failure) {
		return failure.UserVisible()
	}
	return true
}

type ViewRecordErrorMsg struct {
	ReelID string
	Err    error
}

type SettleMsg struct {
	Generation uint64
}

type ScrollFrameMsg struct {
	Seq int
}

type PlaybackTickMsg struct{}

type ClearStatusMsg struct {
	ID int
}

type PreferencesSaveErrorMsg struct {
	Err error
}

func LoadPageCmd(req PageRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pageTimeout)
		defer cancel()
		start := time.Now()

		res, err := req.Do(ctx)
		if err != nil {
			return PageLoadErrorMsg{Page: req.Page(), Err: err}
		}
		return PageLoadSuccessMsg{Result: res, Duration: time.Since(start)}
	}
}

func SwitchCmd(ctrl Switcher, index int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
		defer cancel()
		return SwitchDoneMsg{Index: index, Err: ctrl.SwitchTo(ctx, index)}
	}
}

func TogglePlayCmd(ctrl Toggler, reelID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
		defer cancel()
		playing, err := ctrl.TogglePlay(ctx, reelID)
		return TogglePlayMsg{ReelID: reelID, Playing: playing, Err: err}
	}
}

func LoadMediaCmd(el MediaLoader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mediaTimeout)
		defer cancel()
		return MediaLoadedMsg{ReelID: el.ID(), Err: el.Load(ctx)}
	}
}

func LikeCmd(g Engager, reelID string) tea.Cmd {
	return engageCmd(engagement.ActionLike, reelID, "Like updated", func(ctx context.Context) error {
		return g.Like(ctx, reelID)
	})
}

func SaveCmd(g Engager, reelID string) tea.Cmd {
	return engageCmd(engagement.ActionSave, reelID, "Save updated", func(ctx context.Context) error {
		return g.Save(ctx, reelID)
	})
}

func CommentCmd(g Engager, reelID, text string) tea.Cmd {
	return engageCmd(engagement.ActionComment, reelID, "Comment posted", func(ctx context.Context) error {
		return g.Comment(ctx, reelID, text)
	})
}

func ReactCmd(g Engager, reelID string, reaction reels.ReactionType) tea.Cmd {
	return engageCmd(engagement.ActionReaction, reelID, "Reacted "+string(reaction), func(ctx context.Context) error {
		return g.React(ctx, reelID, reaction)
	})
}

func ShareCmd(g Engager, reelID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), engagementTimeout)
		defer cancel()

		link, err := g.Share(ctx, reelID)
		if err != nil {
			return EngagementErrorMsg{Action: engagement.ActionShare, ReelID: reelID, Err: err}
		}
		return EngagementSuccessMsg{Action: engagement.ActionShare, ReelID: reelID, Status: "Link copied: " + link}
	}
}

func engageCmd(action engagement.Action, reelID, status string, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), engagementTimeout)
		defer cancel()

		if err := call(ctx); err != nil {
			return EngagementErrorMsg{Action: action, ReelID: reelID, Err: err}
		}
		return EngagementSuccessMsg{Action: action, ReelID: reelID, Status: status}
	}
}

func RecordViewCmd(rec ViewRecorder, reelID string, at time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		if err := rec.RecordView(ctx, reelID, at); err != nil {
			return ViewRecordErrorMsg{ReelID: reelID, Err: err}
		}
		return nil
	}
}

func SettleCmd(generation uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SettleMsg{Generation: generation}
	})
}

func ScrollFrameCmd(seq int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return ScrollFrameMsg{Seq: seq}
	})
}

func PlaybackTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PlaybackTickMsg{}
	})
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}

func SavePreferencesCmd(saveFn func(context.Context, storage.Preferences) error, prefs storage.Preferences) tea.Cmd {
	return func() tea.Msg {
		if saveFn == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		if err := saveFn(ctx, prefs); err != nil {
			return PreferencesSaveErrorMsg{Err: err}
		}
		return nil
	}
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened reel in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, link copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: errors.New("could not open link or copy to clipboard")}
	}
}

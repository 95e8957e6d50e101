package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/glabrego/reels-cli/internal/playback"
	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/render/caption"
	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
)

type CardInput struct {
	Reel     reels.Reel
	ViewerID string
	Index    int
	Total    int
	Current  bool
	State    playback.State
	Muted    bool
	Paused   bool
	Position float64
	Duration float64
	MediaErr string
	Width    int
	Height   int
}

func Card(in CardInput, th tuitheme.Theme) string {
	width := max(20, in.Width-4)
	lines := make([]string, 0, in.Height)

	lines = append(lines, ownerLine(in, th))
	if in.Reel.Music != nil && in.Reel.Music.Title != "" {
		music := in.Reel.Music.Title
		if in.Reel.Music.Artist != "" {
			music += " · " + in.Reel.Music.Artist
		}
		lines = append(lines, th.MetaValue.Render("♪ "+music))
	}
	lines = append(lines, "")

	captionLines := caption.LinesWithOptions(in.Reel.Caption, width, caption.Options{
		StyleTags:  true,
		StyleLinks: true,
		MaxLines:   max(1, in.Height-8),
	})
	if len(captionLines) == 0 {
		captionLines = []string{th.MetaLabel.Render("(no caption)")}
	}
	lines = append(lines, captionLines...)
	lines = append(lines, "")
	lines = append(lines, CounterLine(in.Reel, in.ViewerID, th))

	if in.MediaErr != "" {
		lines = append(lines, th.StateWarn.Render("⚠ video unavailable: "+in.MediaErr+" (r to retry)"))
	} else {
		lines = append(lines, ProgressBar(in.Position, in.Duration, max(10, width-24), th)+" "+PlaybackLabel(in, th))
	}

	for len(lines) < in.Height-2 {
		lines = append(lines, "")
	}
	return th.Card.Width(width).Render(strings.Join(lines, "\n"))
}

func ownerLine(in CardInput, th tuitheme.Theme) string {
	name := in.Reel.Owner.Name
	if name == "" {
		name = in.Reel.Owner.ID
	}
	if name == "" {
		name = "unknown"
	}
	line := th.Owner.Render("@" + name)
	if in.Reel.Owner.Verified {
		line += " " + th.Verified.Render("✓")
	}
	if in.Total > 0 {
		line += " " + th.MetaLabel.Render(fmt.Sprintf("%d/%d", in.Index+1, in.Total))
	}
	return line
}

// CounterLine renders engagement counters, highlighting the ones the viewer
// contributed to.
func CounterLine(r reels.Reel, viewerID string, th tuitheme.Theme) string {
	parts := []string{
		th.StyleCounter(r.LikedBy(viewerID), fmt.Sprintf("♥ %d", len(r.Likes))),
		th.Counter.Render(fmt.Sprintf("✎ %d", len(r.Comments))),
		th.Counter.Render(fmt.Sprintf("↗ %d", len(r.Shares))),
		th.StyleCounter(r.IsSavedBy(viewerID), fmt.Sprintf("⚑ %d", len(r.SavedBy))),
	}
	if top, count := reels.MostCommonReaction(r.Reactions, viewerID); count > 0 {
		label := fmt.Sprintf("%s %s ×%d", reactionGlyph(top), top, count)
		if mine, ok := r.ReactionOf(viewerID); ok {
			label += " (you: " + string(mine) + ")"
		}
		parts = append(parts, th.Reaction.Render(label))
	}
	return strings.Join(parts, "  ")
}

func reactionGlyph(t reels.ReactionType) string {
	switch t {
	case reels.ReactionLike:
		return "👍"
	case reels.ReactionLove:
		return "❤"
	case reels.ReactionHaha:
		return "😆"
	case reels.ReactionWow:
		return "😮"
	case reels.ReactionSad:
		return "😢"
	case reels.ReactionAngry:
		return "😠"
	default:
		return "•"
	}
}

func ProgressBar(position, duration float64, width int, th tuitheme.Theme) string {
	if width < 1 {
		width = 1
	}
	filled := 0
	if duration > 0 {
		filled = int(math.Round(position / duration * float64(width)))
	}
	filled = min(max(filled, 0), width)
	bar := th.Progress.Render(strings.Repeat("━", filled)) + th.Track.Render(strings.Repeat("─", width-filled))
	return bar + " " + th.MetaValue.Render(FormatClock(position)+"/"+FormatClock(duration))
}

func PlaybackLabel(in CardInput, th tuitheme.Theme) string {
	audio := "🔇"
	if !in.Muted {
		audio = "🔊"
	}
	if !in.Current {
		return th.MetaLabel.Render(audio)
	}
	label := in.State.String()
	if in.Paused && in.State != playback.StateBlocked {
		label = "paused"
	}
	if in.State == playback.StateBlocked {
		label = "tap to play"
	}
	return audio + " " + th.StylePlayback(in.State, label)
}

func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

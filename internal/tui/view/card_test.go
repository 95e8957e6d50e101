package view

import (
	"strings"
	"testing"

	"github.com/glabrego/reels-cli/internal/playback"
	"github.com/glabrego/reels-cli/internal/reels"
	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
)

func sampleReel() reels.Reel {
	return reels.Reel{
		ID:      "r1",
		Caption: `<p>Sunset run <a href="/tags/run">#run</a></p>`,
		Owner:   reels.Owner{ID: "u1", Name: "ana", Verified: true},
		Likes:   []string{"me", "u2"},
		SavedBy: []string{"u3"},
		Reactions: []reels.Reaction{
			{User: "u2", Type: reels.ReactionLove},
			{User: "u3", Type: reels.ReactionLove},
			{User: "me", Type: reels.ReactionWow},
		},
		Music: &reels.Music{Title: "Golden Hour", Artist: "JVKE"},
	}
}

func TestCard_RendersReel(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(Card(CardInput{
		Reel:     sampleReel(),
		ViewerID: "me",
		Index:    1,
		Total:    5,
		Current:  true,
		State:    playback.StatePlaying,
		Muted:    true,
		Position: 3,
		Duration: 15,
		Width:    60,
		Height:   16,
	}, th))

	for _, want := range []string{"@ana", "✓", "2/5", "♪ Golden Hour · JVKE", "Sunset run #run", "♥ 2", "⚑ 1", "love ×2", "(you: wow)", "0:03/0:15", "🔇", "playing"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in card, got:\n%s", want, got)
		}
	}
}

func TestCard_MediaErrorFallback(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(Card(CardInput{
		Reel:     sampleReel(),
		Current:  true,
		MediaErr: "media responded with status 404",
		Width:    60,
		Height:   12,
	}, th))
	if !strings.Contains(got, "video unavailable: media responded with status 404 (r to retry)") {
		t.Fatalf("expected inline media error, got:\n%s", got)
	}
	if strings.Contains(got, "0:00/") {
		t.Fatalf("expected no progress bar on media error, got:\n%s", got)
	}
}

func TestPlaybackLabel(t *testing.T) {
	th := tuitheme.Default()
	cases := []struct {
		in   CardInput
		want string
	}{
		{in: CardInput{Current: true, State: playback.StateBlocked, Paused: true, Muted: true}, want: "🔇 tap to play"},
		{in: CardInput{Current: true, State: playback.StatePlaying, Paused: true}, want: "🔊 paused"},
		{in: CardInput{Current: true, State: playback.StateMutedFallback, Muted: true}, want: "🔇 muted-fallback"},
		{in: CardInput{Current: false, Muted: true}, want: "🔇"},
	}
	for _, tc := range cases {
		if got := stripANSI(PlaybackLabel(tc.in, th)); got != tc.want {
			t.Fatalf("PlaybackLabel(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestProgressBarAndClock(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(ProgressBar(7.5, 15, 10, th))
	if !strings.HasPrefix(got, "━━━━━─────") {
		t.Fatalf("unexpected progress bar: %q", got)
	}
	if FormatClock(75) != "1:15" || FormatClock(-3) != "0:00" {
		t.Fatalf("unexpected clock formatting: %q %q", FormatClock(75), FormatClock(-3))
	}
}

func TestUpNext_WindowAroundCurrent(t *testing.T) {
	th := tuitheme.Default()
	items := make([]reels.Reel, 6)
	for i := range items {
		items[i] = reels.Reel{ID: string(rune('a' + i)), Owner: reels.Owner{Name: "user" + string(rune('a'+i))}, Caption: "clip\nsecond line"}
	}
	got := stripANSI(UpNext(items, 3, 3, 80, th))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	if !strings.HasPrefix(lines[1], "▶ 4. @userd clip") {
		t.Fatalf("expected current marker on middle line, got %q", lines[1])
	}
	if strings.Contains(got, "second line") {
		t.Fatalf("expected only first caption line, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Fatalf("unexpected passthrough: %q", got)
	}
}

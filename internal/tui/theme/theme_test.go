package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/glabrego/reels-cli/internal/playback"
)

func TestStylePlayback_ByState(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	for _, state := range []playback.State{
		playback.StateIdle,
		playback.StateSwitching,
		playback.StatePlaying,
		playback.StateMutedFallback,
		playback.StateBlocked,
	} {
		got := th.StylePlayback(state, state.String())
		if !strings.Contains(got, "\x1b[") {
			t.Fatalf("expected styled label for %s, got %q", state, got)
		}
		if !strings.Contains(got, state.String()) {
			t.Fatalf("expected label text for %s, got %q", state, got)
		}
	}
}

func TestStyleCounter_MarksOwnContribution(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	mine := th.StyleCounter(true, "12")
	other := th.StyleCounter(false, "12")
	if mine == other {
		t.Fatalf("expected distinct styles, got %q for both", mine)
	}
}

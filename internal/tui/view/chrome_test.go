package view

import (
	"regexp"
	"strings"
	"testing"

	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
)

var ansiStrip = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiStrip.ReplaceAllString(s, "")
}

func TestToolbar(t *testing.T) {
	if got := Toolbar(false, false); !strings.Contains(got, "j/k scroll") {
		t.Fatalf("unexpected compact toolbar: %q", got)
	}
	if got := Toolbar(true, false); !strings.Contains(got, "1-6: like/love/haha/wow/sad/angry") {
		t.Fatalf("unexpected nerd toolbar: %q", got)
	}
	if got := Toolbar(true, true); !strings.Contains(got, "enter: post comment") {
		t.Fatalf("unexpected composing toolbar: %q", got)
	}
}

func TestCompactFooter(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(CompactFooter(FooterInput{Mode: "category:general", Page: 2, Shown: 20, Current: 4, HasNext: true}, th))
	for _, want := range []string{"source category:general", "page 2", "reel 5/20", "more"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in footer, got %q", want, got)
		}
	}
	if got := stripANSI(CompactFooter(FooterInput{Mode: "trending"}, th)); !strings.Contains(got, "reel -") || !strings.Contains(got, "end") {
		t.Fatalf("unexpected empty footer: %q", got)
	}
	if got := stripANSI(CompactFooter(FooterInput{Mode: "trending", Loading: true, HasNext: true}, th)); !strings.Contains(got, "loading") {
		t.Fatalf("expected loading marker, got %q", got)
	}
}

func TestNerdFooter(t *testing.T) {
	got := NerdFooter(NerdFooterInput{
		FooterInput: FooterInput{Mode: "hashtag:cats", Page: 3, Shown: 30, Current: 28, HasNext: true, Views: 7},
		State:       "playing",
		Muted:       true,
		Feed:        "ready",
		InFlight:    1,
		Mounted:     3,
	})
	if !strings.Contains(got, "Source: hashtag:cats | Page: 3 | Loaded: 30 | Current: 28") {
		t.Fatalf("unexpected nerd footer: %q", got)
	}
	if !strings.Contains(got, "Playback: playing | Muted: true | Mounted: 3 | Views: 7") {
		t.Fatalf("unexpected nerd footer tail: %q", got)
	}
}

func TestCompactMessage(t *testing.T) {
	th := tuitheme.Default()
	if got := stripANSI(CompactMessage(false, false, "", "", th)); !strings.Contains(got, "state: idle | Ready") {
		t.Fatalf("unexpected idle compact message: %q", got)
	}
	if got := stripANSI(CompactMessage(true, false, "", "", th)); !strings.Contains(got, "state: loading") {
		t.Fatalf("unexpected loading compact message: %q", got)
	}
	if got := stripANSI(CompactMessage(false, true, "", "boom", th)); !strings.Contains(got, "state: warning | boom") {
		t.Fatalf("unexpected warning compact message: %q", got)
	}
}

func TestNerdMessage(t *testing.T) {
	got := NerdMessage("ok", "-", "playing", "page 1 in 12ms")
	if !strings.Contains(got, "Status: ok | Warning: - | State: playing | Startup: page 1 in 12ms") {
		t.Fatalf("unexpected nerd message: %q", got)
	}
}

func TestAlertAndErrorPanel(t *testing.T) {
	th := tuitheme.Default()
	if got := stripANSI(Alert("Could not share reel", 40, th)); !strings.Contains(got, "Could not share reel") {
		t.Fatalf("unexpected alert: %q", got)
	}
	got := stripANSI(ErrorPanel("initial feed load failed: 500", th))
	if !strings.Contains(got, "Could not load reels") || !strings.Contains(got, "press r to retry") {
		t.Fatalf("unexpected error panel: %q", got)
	}
}

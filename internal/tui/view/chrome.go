package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
)

func Toolbar(nerdMode, composing bool) string {
	if composing {
		return "enter: post comment | esc: cancel"
	}
	if nerdMode {
		return "j/k/arrows: scroll | space: play/pause | m: mute | l: like | s: save | y: share | o: open | c: comment | 1-6: like/love/haha/wow/sad/angry | r: retry | n: nerd footer | ?: help | q: quit"
	}
	return "j/k scroll | space tap | m mute | l/s/y like/save/share | c comment | 1-6 react | ? help"
}

type FooterInput struct {
	Mode    string
	Page    int
	Shown   int
	Current int
	HasNext bool
	Loading bool
	Views   int
}

func CompactFooter(in FooterInput, th tuitheme.Theme) string {
	position := "-"
	if in.Shown > 0 {
		position = fmt.Sprintf("%d/%d", in.Current+1, in.Shown)
	}
	more := "end"
	switch {
	case in.Loading:
		more = "loading"
	case in.HasNext:
		more = "more"
	}
	parts := []string{
		th.MetaLabel.Render("source") + " " + th.MetaValue.Render(in.Mode),
		th.MetaLabel.Render("page") + " " + th.MetaValue.Render(fmt.Sprintf("%d", in.Page)),
		th.MetaLabel.Render("reel") + " " + th.MetaValue.Render(position),
		th.MetaValue.Render(more),
	}
	return strings.Join(parts, " • ")
}

type NerdFooterInput struct {
	FooterInput
	State    string
	Muted    bool
	Feed     string
	InFlight int
	Mounted  int
}

func NerdFooter(in NerdFooterInput) string {
	return fmt.Sprintf("Source: %s | Page: %d | Loaded: %d | Current: %d | HasNext: %t | Feed: %s | InFlight: %d | Playback: %s | Muted: %t | Mounted: %d | Views: %d",
		in.Mode, in.Page, in.Shown, in.Current, in.HasNext, in.Feed, in.InFlight, in.State, in.Muted, in.Mounted, in.Views)
}

func CompactMessage(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

func NerdMessage(status, warning, state, startup string) string {
	return fmt.Sprintf("Status: %s | Warning: %s | State: %s | Startup: %s", status, warning, state, startup)
}

// Alert renders a user-visible failure box.
func Alert(text string, width int, th tuitheme.Theme) string {
	style := th.Alert
	if width > 4 {
		style = style.Width(width - 4)
	}
	return style.Render("⚠ " + text)
}

// ErrorPanel is the full-screen state shown when the first page failed.
func ErrorPanel(err string, th tuitheme.Theme) string {
	return strings.Join([]string{
		th.StateWarn.Render("Could not load reels"),
		"",
		th.MetaValue.Render(err),
		"",
		th.MetaLabel.Render("press r to retry, q to quit"),
	}, "\n")
}

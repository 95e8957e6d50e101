package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/render/caption"
	tuistate "github.com/glabrego/reels-cli/internal/tui/state"
	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
)

// UpNext renders a short window of reel headlines around current.
func UpNext(items []reels.Reel, current, height, width int, th tuitheme.Theme) string {
	start, end := tuistate.CenteredWindow(len(items), current, height)
	if start >= end {
		return ""
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		marker := "  "
		if i == current {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%d. @%s %s", marker, i+1, ownerName(items[i]), firstCaptionLine(items[i].Caption))
		line = truncate(line, width)
		if i == current {
			line = th.Title.Render(line)
		} else {
			line = th.MetaValue.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func ownerName(r reels.Reel) string {
	if r.Owner.Name != "" {
		return r.Owner.Name
	}
	if r.Owner.ID != "" {
		return r.Owner.ID
	}
	return "unknown"
}

func firstCaptionLine(raw string) string {
	text := caption.Text(raw)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return text
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

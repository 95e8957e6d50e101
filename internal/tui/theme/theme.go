package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/reels-cli/internal/playback"
)

type Theme struct {
	Title     lipgloss.Style
	ModePill  lipgloss.Style
	Owner     lipgloss.Style
	Verified  lipgloss.Style
	Counter   lipgloss.Style
	Reaction  lipgloss.Style
	Active    lipgloss.Style
	MetaLabel lipgloss.Style
	MetaValue lipgloss.Style
	StateIdle lipgloss.Style
	StateWarn lipgloss.Style
	StateLoad lipgloss.Style
	Alert     lipgloss.Style
	Progress  lipgloss.Style
	Track     lipgloss.Style
	Card      lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpSky := lipgloss.Color("#89dceb")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpSurface2 := lipgloss.Color("#585b70")

	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:  lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Owner:     lipgloss.NewStyle().Bold(true).Foreground(cpText),
		Verified:  lipgloss.NewStyle().Foreground(cpSky),
		Counter:   lipgloss.NewStyle().Foreground(cpYellow).Bold(true),
		Reaction:  lipgloss.NewStyle().Foreground(cpRosewater),
		Active:    lipgloss.NewStyle().Foreground(cpRed).Bold(true),
		MetaLabel: lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue: lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle: lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn: lipgloss.NewStyle().Foreground(cpRed),
		StateLoad: lipgloss.NewStyle().Foreground(cpPeach),
		Alert: lipgloss.NewStyle().
			Foreground(cpRed).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpRed).
			Padding(0, 1),
		Progress: lipgloss.NewStyle().Foreground(cpMauve),
		Track:    lipgloss.NewStyle().Foreground(cpSurface2),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpSurface2).
			Padding(0, 1),
	}
}

// StylePlayback colors a playback state label.
func (t Theme) StylePlayback(state playback.State, label string) string {
	switch state {
	case playback.StatePlaying:
		return t.StateIdle.Render(label)
	case playback.StateSwitching:
		return t.StateLoad.Render(label)
	case playback.StateMutedFallback, playback.StateBlocked:
		return t.StateWarn.Render(label)
	default:
		return t.MetaValue.Render(label)
	}
}

// StyleCounter highlights a counter the viewer contributed to.
func (t Theme) StyleCounter(mine bool, s string) string {
	if mine {
		return t.Active.Render(s)
	}
	return t.Counter.Render(s)
}

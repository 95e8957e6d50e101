package caption

import "github.com/charmbracelet/lipgloss"

var (
	cpBlue  = lipgloss.Color("#89b4fa")
	cpMauve = lipgloss.Color("#cba6f7")
	cpTeal  = lipgloss.Color("#94e2d5")

	hashtagStyle = lipgloss.NewStyle().Foreground(cpTeal)
	mentionStyle = lipgloss.NewStyle().Foreground(cpMauve)
	linkURLStyle = lipgloss.NewStyle().Foreground(cpBlue).Faint(true)
)

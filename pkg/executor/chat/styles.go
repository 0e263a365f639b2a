package chat

import "github.com/charmbracelet/lipgloss"

// Color palette
// Single source of truth for all chat UI colors.
var (
	threadTeal  = lipgloss.Color("#7FDBCA") // primary accent
	softAmber   = lipgloss.Color("#FFD8A8") // user input accent
	mintGreen   = lipgloss.Color("#A8E6CF") // tool/success states
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(threadTeal).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	userStyle = lipgloss.NewStyle().
			Foreground(softAmber).
			Bold(true)

	thinkingStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	toolStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	toolResultStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB3BA"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(threadTeal).
			Padding(0, 1)
)

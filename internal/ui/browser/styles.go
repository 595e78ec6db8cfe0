package browser

import "github.com/charmbracelet/lipgloss"

var (
	primary   = lipgloss.Color("#7D56F4")
	highlight = lipgloss.Color("#89DDFF")
	folderFg  = lipgloss.Color("#5FAFFF")
	fileFg    = lipgloss.Color("#98C379")
	muted     = lipgloss.Color("240")
	errorFg   = lipgloss.Color("#E06C75")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primary)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	folderStyle = lipgloss.NewStyle().Foreground(folderFg)
	fileStyle   = lipgloss.NewStyle().Foreground(fileFg)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(errorFg)
	markedStyle = lipgloss.NewStyle().Underline(true)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1)
	focusedPane = paneStyle.BorderForeground(primary)
)

const (
	arrowDown  = "⌄"
	arrowRight = "›"
)

package tui

import "github.com/charmbracelet/lipgloss"

// NeuroLab palette
var (
	Primary = lipgloss.Color("#6C5CE7")
	Accent  = lipgloss.Color("#00CEC9")
	Muted   = lipgloss.Color("#8395A7")
	Surface = lipgloss.Color("#2D3436")
	Light   = lipgloss.Color("#F5F6FA")
	Warning = lipgloss.Color("#FDCB6E")
)

// Styles groups the styles of the chat screen.
type Styles struct {
	Header        lipgloss.Style
	Status        lipgloss.Style
	UserBubble    lipgloss.Style
	BotBubble     lipgloss.Style
	Timestamp     lipgloss.Style
	Typing        lipgloss.Style
	JumpHint      lipgloss.Style
	Hint          lipgloss.Style
	InputBorder   lipgloss.Style
	bubbleMaxFrac float64
}

// DefaultStyles returns the standard chat styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Light).
			Background(Primary).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true),
		UserBubble: lipgloss.NewStyle().
			Foreground(Light).
			Background(Primary).
			Padding(0, 1),
		BotBubble: lipgloss.NewStyle().
			Foreground(Light).
			Background(Surface).
			Padding(0, 1),
		Timestamp: lipgloss.NewStyle().
			Foreground(Muted).
			Faint(true),
		Typing: lipgloss.NewStyle().
			Foreground(Accent),
		JumpHint: lipgloss.NewStyle().
			Foreground(Surface).
			Background(Accent).
			Padding(0, 1),
		Hint: lipgloss.NewStyle().
			Foreground(Warning),
		InputBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary),
		bubbleMaxFrac: 0.75,
	}
}

// bubbleWidth is the widest a message bubble may be on a screen of width w.
func (s Styles) bubbleWidth(w int) int {
	bw := int(float64(w) * s.bubbleMaxFrac)
	if bw < 20 {
		bw = 20
	}
	return bw
}

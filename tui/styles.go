package tui

import "github.com/charmbracelet/lipgloss"

var (
	orange = lipgloss.Color("#EA580C")
	gray   = lipgloss.Color("#4B5563")
	red    = lipgloss.Color("#DC2626")
	blue   = lipgloss.Color("#2563EB")
	green  = lipgloss.Color("#16A34A")
)

// Styles groups the lipgloss styles used by the form view.
type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Error         lipgloss.Style
	Radio         lipgloss.Style
	RadioFocused  lipgloss.Style
	Link          lipgloss.Style
	LinkFocused   lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	Frame         lipgloss.Style
}

// DefaultStyles returns the orange-on-white look of the order form.
func DefaultStyles() Styles {
	button := lipgloss.NewStyle().Padding(0, 3).Foreground(lipgloss.Color("#FFFFFF")).Background(gray)
	return Styles{
		Title:         lipgloss.NewStyle().Foreground(orange).Bold(true).MarginBottom(1),
		Label:         lipgloss.NewStyle().Foreground(gray),
		FocusedLabel:  lipgloss.NewStyle().Foreground(orange),
		Error:         lipgloss.NewStyle().Foreground(red),
		Radio:         lipgloss.NewStyle().Foreground(gray),
		RadioFocused:  lipgloss.NewStyle().Foreground(orange).Bold(true),
		Link:          lipgloss.NewStyle().Foreground(blue),
		LinkFocused:   lipgloss.NewStyle().Foreground(blue).Underline(true).Bold(true),
		Button:        button,
		ButtonFocused: button.Background(orange).Bold(true),
		Status:        lipgloss.NewStyle().Foreground(green),
		StatusError:   lipgloss.NewStyle().Foreground(red),
		Frame:         lipgloss.NewStyle().Padding(1, 2),
	}
}

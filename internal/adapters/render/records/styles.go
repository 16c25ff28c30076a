package records

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Address   lipgloss.Style
	Own       lipgloss.Style
	Timestamp lipgloss.Style
	Message   lipgloss.Style
	Card      lipgloss.Style
	Empty     lipgloss.Style
	Notice    lipgloss.Style
	Warning   lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Address:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Own:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Message:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Card:      lipgloss.NewStyle().MarginTop(1).PaddingLeft(1).BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(lipgloss.Color("238")),
		Empty:     lipgloss.NewStyle().Faint(true),
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		Warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

package records

import (
	"fmt"
	"strings"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// Account highlights the connected user's own records.
	Account domain.Address
	// Width wraps messages; zero leaves them unwrapped.
	Width int
	// HideTitle drops the heading lines, for embedding in a larger view.
	HideTitle bool
}

func View(entries []domain.Entry, opts RenderOptions, s Styles) string {
	var lines []string
	if !opts.HideTitle {
		lines = append(lines,
			s.Title.Render("WavePortal"),
			s.Header.Render(fmt.Sprintf("waves: %d", len(entries))),
		)
	}

	if len(entries) == 0 {
		lines = append(lines, s.Empty.Render("No waves yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, entry := range entries {
		lines = append(lines, renderEntry(entry, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderEntry(entry domain.Entry, opts RenderOptions, s Styles) string {
	address := s.Address
	label := string(entry.Address)
	if !opts.Account.IsZero() && entry.Address.Key() == opts.Account.Key() {
		address = s.Own
		label += " (you)"
	}

	message := s.Message
	if opts.Width > 4 {
		message = message.Width(opts.Width - 4)
	}

	card := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, address.Render(label), "  ", s.Timestamp.Render(entry.Timestamp)),
		message.Render(messageText(entry.Message)),
	)

	return s.Card.Render(card)
}

func messageText(message string) string {
	if strings.TrimSpace(message) == "" {
		return "(no message)"
	}

	return message
}

// Package tui is the interactive terminal screen over an application.Portal.
package tui

import (
	"context"

	"github.com/bnema/waveportal-cli/internal/application"
	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
)

// Portal is the slice of application.Portal the screen drives.
type Portal interface {
	Session() domain.Session
	Records() []domain.Entry
	PendingText() string
	SetPendingText(text string)
	Submission() domain.SubmissionState
	Connect(ctx context.Context) error
	Submit(ctx context.Context) (application.SubmissionResult, error)
	Updates() <-chan struct{}
}

var _ Portal = (*application.Portal)(nil)

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// PortalUpdatedMsg tells the model to re-read portal state.
type PortalUpdatedMsg struct{}

// NoticeMsg carries a user-facing notice from a Notifier.
type NoticeMsg struct {
	Text string
}

type submitDoneMsg struct {
	result application.SubmissionResult
	err    error
}

type connectDoneMsg struct {
	err error
}

// Notifier delivers notices to the screen. Notices sent before the program
// starts are buffered; once the buffer is full the oldest wins.
type Notifier struct {
	ch chan string
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan string, 8)}
}

func (n *Notifier) Notify(message string) {
	select {
	case n.ch <- message:
	default:
	}
}

func waitForUpdate(updates <-chan struct{}) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return PortalUpdatedMsg{}
	}
}

func waitForNotice(n *Notifier) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		text, ok := <-n.ch
		if !ok {
			return nil
		}
		return NoticeMsg{Text: text}
	}
}

func submitCmd(ctx context.Context, portal Portal) tea.Cmd {
	return func() tea.Msg {
		result, err := portal.Submit(ctx)
		return submitDoneMsg{result: result, err: err}
	}
}

func connectCmd(ctx context.Context, portal Portal) tea.Cmd {
	return func() tea.Msg {
		return connectDoneMsg{err: portal.Connect(ctx)}
	}
}

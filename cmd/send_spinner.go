package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/waveportal-cli/internal/application"
	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// submissionProgress is the part of the portal the send spinner follows.
type submissionProgress interface {
	Submission() domain.SubmissionState
	PendingTx() (domain.PendingTx, bool)
	Updates() <-chan struct{}
}

type submitProgressMsg struct{}

type submitDoneMsg struct {
	result application.SubmissionResult
	err    error
}

type submitSpinnerModel struct {
	spinner  spinner.Model
	progress submissionProgress
	submit   tea.Cmd
	label    string
	sent     string
	result   application.SubmissionResult
	err      error
	done     bool
}

func newSubmitSpinnerModel(progress submissionProgress, submit tea.Cmd) submitSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return submitSpinnerModel{
		spinner:  s,
		progress: progress,
		submit:   submit,
		label:    submitLabel(progress.Submission(), domain.PendingTx{}, false),
	}
}

// submitLabel describes where an attempt stands: waiting on the wallet to
// accept it, then on the chain to mine it.
func submitLabel(state domain.SubmissionState, tx domain.PendingTx, accepted bool) string {
	switch {
	case state == domain.SubmissionSubmitting && accepted:
		return fmt.Sprintf("Mining %s...", tx.Hash)
	case state == domain.SubmissionSubmitting:
		return "Waiting for the wallet to approve the wave..."
	default:
		return "Preparing wave..."
	}
}

func waitForProgress(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-updates
		return submitProgressMsg{}
	}
}

func (m submitSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.submit, waitForProgress(m.progress.Updates()))
}

func (m submitSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case submitProgressMsg:
		if m.done {
			return m, nil
		}
		tx, accepted := m.progress.PendingTx()
		m.label = submitLabel(m.progress.Submission(), tx, accepted)
		cmds := []tea.Cmd{waitForProgress(m.progress.Updates())}
		if accepted && tx.Hash != m.sent {
			m.sent = tx.Hash
			cmds = append(cmds, tea.Println("sent "+tx.Hash))
		}
		return m, tea.Batch(cmds...)
	case submitDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m submitSpinnerModel) View() string {
	if !m.done {
		return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	}
	if m.err != nil || m.result.Outcome != domain.SubmissionConfirmed {
		return ""
	}

	return fmt.Sprintf("mined in block %d\n", m.result.Receipt.BlockNumber)
}

// runSubmitSpinner shows the progress of submit on output until it returns.
func runSubmitSpinner(ctx context.Context, output io.Writer, progress submissionProgress, submit func(context.Context) (application.SubmissionResult, error)) (application.SubmissionResult, error) {
	submitCmd := func() tea.Msg {
		result, err := submit(ctx)
		return submitDoneMsg{result: result, err: err}
	}

	p := tea.NewProgram(
		newSubmitSpinnerModel(progress, submitCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return application.SubmissionResult{}, err
	}

	final, ok := finalModel.(submitSpinnerModel)
	if !ok {
		return application.SubmissionResult{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return final.result, final.err
}

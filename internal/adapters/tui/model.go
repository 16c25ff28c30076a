package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/waveportal-cli/internal/adapters/render/records"
	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var _ tea.Model = Model{}

type Model struct {
	// Input is bound to the portal's pending text. Exported for test access.
	Input textinput.Model
	// Viewport scrolls the record list. Exported for test access.
	Viewport viewport.Model

	ctx      context.Context
	portal   Portal
	notifier *Notifier
	styles   records.Styles
	spinner  spinner.Model

	notice string
	err    error
	width  int
	ready  bool
}

func New(ctx context.Context, portal Portal, notifier *Notifier) Model {
	ti := textinput.New()
	ti.Placeholder = "Wave at the portal..."
	ti.Prompt = "> "
	ti.CharLimit = 280
	ti.SetValue(portal.PendingText())
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		Input:    ti,
		ctx:      ctx,
		portal:   portal,
		notifier: notifier,
		styles:   records.NewStyles(),
		spinner:  sp,
	}
}

func (m Model) Notice() string { return m.notice }

func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForUpdate(m.portal.Updates()),
		waitForNotice(m.notifier),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PortalUpdatedMsg:
		m = m.refresh()
		return m, waitForUpdate(m.portal.Updates())

	case NoticeMsg:
		m.notice = msg.Text
		return m, waitForNotice(m.notifier)

	case submitDoneMsg:
		m.err = msg.err
		return m.refresh(), nil

	case connectDoneMsg:
		m.err = msg.err
		return m.refresh(), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.sessionLine())
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())

	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	sessionHeight := 1
	statusHeight := 1
	inputHeight := 1
	separators := 3
	vpHeight := msg.Height - sessionHeight - statusHeight - inputHeight - separators
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.width = msg.Width
	m.Input.Width = msg.Width - len(m.Input.Prompt) - 1

	return m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		if m.portal.Submission() == domain.SubmissionSubmitting {
			return m, nil
		}
		m.err = nil
		m.portal.SetPendingText(m.Input.Value())
		return m, submitCmd(m.ctx, m.portal)

	case tea.KeyCtrlO:
		m.err = nil
		m.notice = ""
		return m, connectCmd(m.ctx, m.portal)

	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.portal.SetPendingText(m.Input.Value())
	return m, cmd
}

// refresh re-reads portal state. The record list follows the tail when the
// user was already at the bottom.
func (m Model) refresh() Model {
	if pending := m.portal.PendingText(); pending != m.Input.Value() {
		m.Input.SetValue(pending)
		m.Input.CursorEnd()
	}
	if !m.ready {
		return m
	}

	atBottom := m.Viewport.AtBottom()
	m.Viewport.SetContent(records.View(m.portal.Records(), records.RenderOptions{
		Account:   m.portal.Session().Account,
		Width:     m.width,
		HideTitle: true,
	}, m.styles))
	if atBottom {
		m.Viewport.GotoBottom()
	}

	return m
}

func (m Model) sessionLine() string {
	session := m.portal.Session()
	count := m.styles.Header.Render(fmt.Sprintf("waves: %d", len(m.portal.Records())))
	if !session.Connected() {
		return m.styles.Title.Render("WavePortal") + "  " + m.styles.Empty.Render("not connected (ctrl+o to connect)") + "  " + count
	}

	return m.styles.Title.Render("WavePortal") + "  " + m.styles.Own.Render(session.Account.Short()) + "  " + count
}

func (m Model) statusLine() string {
	switch {
	case m.portal.Submission() == domain.SubmissionSubmitting:
		return m.spinner.View() + " " + m.styles.Header.Render(m.portal.Submission().Label())
	case m.err != nil:
		return m.styles.Warning.Render(m.err.Error())
	case m.notice != "":
		return m.styles.Notice.Render(m.notice)
	default:
		return m.styles.Header.Render("Enter to wave, Ctrl+O to connect, Ctrl+C to quit")
	}
}

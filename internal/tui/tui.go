package tui

import (
	"context"
	"strings"
	"time"

	"codeberg.org/capworks/portal/internal/logger"
	"codeberg.org/capworks/portal/internal/presenter"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

func NewApp(ctx context.Context, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "login EMAIL PASSWORD"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorGray)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(60),
	)
	if err != nil {
		logger.Warn("markdown renderer unavailable, modal falls back to plain text", "error", err)
	}

	m := &Model{
		ctx:        ctx,
		client:     opts.Client,
		session:    opts.Session,
		stream:     opts.Stream,
		wsEndpoint: opts.WSEndpoint,
		env:        opts.Env,
		input:      ti,
		spinner:    sp,
		route:      []string{"/"},
		renderer:   renderer,
		now:        time.Now,
	}

	m.dispatcher = presenter.NewDispatcher(opts.Deriver, presenter.Collaborators{
		Notifier:  m,
		Navigator: m,
		Session:   opts.Session,
		Modal:     m,
	})

	opts.Session.OnClear(m.closeUserStream)

	return m
}

func (m *Model) Init() tea.Cmd {
	m.dispatcher.Attach(m.stream)

	return tea.Batch(
		textinput.Blink,
		waitForError(m.stream),
		tick(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-10)
		return m, nil

	case errorEventMsg:
		action := m.dispatcher.Dispatch(m.ctx, msg.err)
		logger.Debug("error dispatched", "kind", action.Kind.String(), "status", action.Status)
		return m, waitForError(m.stream)

	case resultMsg:
		m.finish()
		if msg.text != "" {
			m.Emit(presenter.DisplayMessage{Text: msg.text}, presenter.ToastSuccess)
		}
		return m, nil

	case loggedInMsg:
		m.finish()
		m.session.Observe(msg.user)
		m.NavigateTo([]string{"/", "jobs"})
		if msg.user != nil {
			m.Emit(presenter.DisplayMessage{Text: "Logged in as " + msg.user.Email}, presenter.ToastSuccess)
		}
		return m, connectStream(m.ctx, m.wsEndpoint, m.session)

	case profileLoadedMsg:
		m.finish()
		m.session.Observe(msg.user)
		return m, nil

	case streamConnectedMsg:
		m.closeUserStream()
		m.userStream = msg.client
		return m, watchStream(m.ctx, m.session, msg.client)

	case streamClosedMsg:
		if msg.client == m.userStream {
			m.userStream = nil
			m.status = "live updates disconnected"
		}
		return m, nil

	case tickMsg:
		m.expireToasts()
		return m, tick()

	case spinner.TickMsg:
		if m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.closeUserStream()
		return m, tea.Quit

	case "esc":
		if m.modalOpen {
			m.modalOpen = false
		}
		return m, nil

	case "ctrl+o":
		if !m.modalOpen {
			m.runNewestAction()
		}
		return m, nil
	}

	// the modal blocks all other input until closed
	if m.modalOpen {
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		line := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		if line == "" {
			return m, nil
		}
		return m, m.execute(line)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if m.modalOpen {
		return m.modalView()
	}

	var b strings.Builder

	b.WriteString(m.screenView())
	b.WriteString("\n")

	if toasts := m.toastsView(); toasts != "" {
		b.WriteString(toasts)
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.busy > 0:
		b.WriteString(m.spinner.View() + statusStyle.Render(" working..."))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}

	b.WriteString(helpStyle.Render("\nenter: run  ctrl+o: follow newest link  esc: close dialog  ctrl+c: quit"))

	return b.String()
}

// marks one in-flight command as done
func (m *Model) finish() {
	if m.busy > 0 {
		m.busy--
	}
}

func (m *Model) closeUserStream() {
	if m.userStream != nil {
		m.userStream.Close()
		m.userStream = nil
	}
}

// blocks until the next error event
func waitForError(stream *presenter.ErrorStream) tea.Cmd {
	return func() tea.Msg {
		return errorEventMsg{err: <-stream.Events()}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

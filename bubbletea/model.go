package bubbletea

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/jpalves/smartnurse"
)

var _ tea.Model = Model{}

// Config carries the presentation labels for one chat screen.
type Config struct {
	Title       string
	Placeholder string
}

// turnView is the renderable projection of one conversation turn.
type turnView struct {
	id       string
	userText string
	botText  string
}

// Model is the Bubble Tea model for one chat screen. It projects the
// session controller's turn log into the viewport and forwards keystrokes:
// Enter submits, Ctrl+L clears, Ctrl+C quits. Input is disabled while the
// assistant is writing, mirroring the controller's submission lock.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	ctrl   *smartnurse.Controller
	cfg    Config
	styles Styles

	views   []turnView
	writing bool
	err     error
	ready   bool

	eventCh chan smartnurse.Event
	doneCh  chan error
}

// New creates a TUI Model over a session controller.
func New(ctrl *smartnurse.Controller, theme smartnurse.Theme, cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	m := Model{
		Input:  ti,
		ctrl:   ctrl,
		cfg:    cfg,
		styles: NewStyles(theme),
	}
	m.views = projectTurns(ctrl.Turns())
	return m
}

// Writing returns whether an exchange is in flight.
func (m Model) Writing() bool { return m.writing }

// Err returns the last presentation-level error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model. The connectivity probe runs once at startup;
// it is a no-op for direct-mode screens.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, probeSession(m.ctrl))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ProbeDoneMsg:
		m.views = projectTurns(m.ctrl.Turns())
		m = m.refreshViewport()
		return m, nil

	case SessionEventMsg:
		m = m.applyEvent(msg.Event)
		m = m.refreshViewport()
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case ExchangeDoneMsg:
		m.writing = false
		m.eventCh = nil
		m.doneCh = nil
		m.err = msg.Err
		m = m.refreshViewport()
		cmds = append(cmds, m.Input.Focus())
		return m, tea.Batch(cmds...)
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.writing {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.titleLine())
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	titleH := 1
	inputH := 1
	statusH := 1
	gapH := 2 // newlines between sections
	vpHeight := msg.Height - titleH - inputH - statusH - gapH
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.ctrl.Close()
		return m, tea.Quit

	case tea.KeyEnter:
		if m.writing {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)

	case tea.KeyCtrlL:
		// The controller refuses to clear mid-flight; the guard here
		// only avoids a pointless round trip.
		if !m.writing && m.ctrl.Clear(nil) {
			m.views = projectTurns(m.ctrl.Turns())
			m.err = nil
			m = m.refreshViewport()
		}
		return m, nil
	}

	// When idle, pass keys to both the input (for typing) and the viewport
	// (for scrolling). Only forward non-character keys to the viewport to
	// avoid conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.writing {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m.writing = true
	m.Input.Blur()

	m.eventCh = make(chan smartnurse.Event, 256)
	m.doneCh = make(chan error, 1)

	return m, tea.Batch(
		startExchange(m.ctrl, text, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
	)
}

// applyEvent routes a session event to the view projection.
func (m Model) applyEvent(evt smartnurse.Event) Model {
	switch e := evt.(type) {
	case smartnurse.EventTurnAppended:
		m.views = append(m.views, turnView{
			id:       e.Turn.ID,
			userText: e.Turn.UserText,
			botText:  e.Turn.ResponderText,
		})
	case smartnurse.EventRevealTick:
		m.setBotText(e.TurnID, e.Text)
	case smartnurse.EventRevealDone:
		m.setBotText(e.TurnID, e.Text)
	case smartnurse.EventSessionCleared:
		m.views = []turnView{{
			id:      e.Greeting.ID,
			botText: e.Greeting.ResponderText,
		}}
	}
	return m
}

func (m *Model) setBotText(id, text string) {
	for i := len(m.views) - 1; i >= 0; i-- {
		if m.views[i].id == id {
			m.views[i].botText = text
			return
		}
	}
}

func (m Model) refreshViewport() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) renderContent() string {
	var b strings.Builder
	for i, v := range m.views {
		if i > 0 {
			b.WriteString("\n")
		}
		if v.userText != "" {
			b.WriteString(m.styles.UserLabel.Render("Você: "))
			b.WriteString(v.userText)
			b.WriteString("\n")
		}
		if v.botText != "" {
			b.WriteString(m.styles.BotLabel.Render("Assistente: "))
			b.WriteString(m.styles.BotMsg.Render(v.botText))
			b.WriteString("\n")
		}
	}
	b.WriteString(m.sourcesFooter())
	return b.String()
}

// sourcesFooter lists the sources of the last successful triage, the way the
// original screen showed its triage-details panel.
func (m Model) sourcesFooter() string {
	if m.writing {
		return ""
	}
	last := m.ctrl.LastTriage()
	if last == nil || len(last.Sources) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Fontes:"))
	for _, src := range last.Sources {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("  - " + src))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) titleLine() string {
	title := m.cfg.Title
	width := m.Viewport.Width
	pad := (width - runewidth.StringWidth(title)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + m.styles.Title.Render(title)
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render("Erro: " + m.err.Error())
	}
	if m.writing {
		return m.styles.Muted.Render("O assistente está a escrever...")
	}
	return m.styles.Muted.Render("Enter envia · Ctrl+L limpa a conversa · Ctrl+C sai")
}

// projectTurns builds view projections from a turn log snapshot.
func projectTurns(turns []smartnurse.Turn) []turnView {
	views := make([]turnView, 0, len(turns))
	for _, t := range turns {
		views = append(views, turnView{
			id:       t.ID,
			userText: t.UserText,
			botText:  t.ResponderText,
		})
	}
	return views
}

// probeSession runs the connectivity probe off the event loop.
func probeSession(ctrl *smartnurse.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Probe(context.Background())
		return ProbeDoneMsg{}
	}
}

// startExchange runs one submit exchange in a goroutine and signals
// completion through doneCh once the event channel is drained.
func startExchange(ctrl *smartnurse.Controller, text string, eventCh chan<- smartnurse.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.Submit(context.Background(), text, func(e smartnurse.Event) {
			eventCh <- e
		})
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next session event. When the channel closes,
// it reads the exchange error from doneCh and returns ExchangeDoneMsg.
func listenForEvent(ch <-chan smartnurse.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return ExchangeDoneMsg{Err: err}
		}
		return SessionEventMsg{Event: evt}
	}
}

// Package tui is the terminal chat screen. It renders a chat.Conversation
// and follows new content with the scroll rule from package scroll.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/weiawesome/neurolab/neuro-chat/internal/chat"
	"github.com/weiawesome/neurolab/neuro-chat/internal/scroll"
	"github.com/weiawesome/neurolab/pkg/log"
)

// DefaultLineHeight converts one terminal line into scroll units.
const DefaultLineHeight = 20

const (
	headerHeight = 1
	statusHeight = 1
	inputHeight  = 3
	helpHeight   = 1

	busyHint = "Still replying. Press esc to stop the current reply."
	helpText = "enter send • esc stop • pgup/pgdn scroll • ctrl+g jump to latest • ctrl+c quit"
)

// Options configures the chat screen.
type Options struct {
	Timing     chat.Timing
	Threshold  int
	LineHeight int
	Styles     *Styles
}

// changedMsg tells the UI loop that the conversation changed.
type changedMsg struct{}

// cancelledMsg is returned once a stopped reply has exited.
type cancelledMsg struct{}

// Model is the bubbletea model of the chat screen.
type Model struct {
	ctx     context.Context
	conv    *chat.Conversation
	changes <-chan struct{}

	tracker    *scroll.Tracker
	lineHeight int

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	styles   Styles

	width  int
	height int
	ready  bool
	status string
}

// NewModel builds the chat screen around a new conversation. The
// conversation signals changes through a one-slot channel so its reply
// task never blocks on the UI loop.
func NewModel(ctx context.Context, sender chat.Sender, opts Options) Model {
	if opts.Timing == (chat.Timing{}) {
		opts.Timing = chat.DefaultTiming()
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = DefaultLineHeight
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	changes := make(chan struct{}, 1)
	conv := chat.New(sender,
		chat.WithTiming(opts.Timing),
		chat.WithObserver(func(chat.Update) {
			select {
			case changes <- struct{}{}:
			default:
			}
		}),
	)

	ta := textarea.New()
	ta.Placeholder = "Ask about EEG, stress or mental health..."
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Typing),
	)

	return Model{
		ctx:        ctx,
		conv:       conv,
		changes:    changes,
		tracker:    scroll.NewTracker(opts.Threshold),
		lineHeight: opts.LineHeight,
		input:      ta,
		spinner:    sp,
		styles:     styles,
	}
}

// Conversation returns the conversation shown by the model.
func (m Model) Conversation() *chat.Conversation {
	return m.conv
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		waitForChange(m.changes),
	)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.conv.Busy() {
				return m, nil
			}
			conv := m.conv
			return m, func() tea.Msg {
				conv.Cancel()
				return cancelledMsg{}
			}
		case "ctrl+g":
			m.jumpToBottom()
			return m, nil
		case "enter":
			m.submit()
			return m, nil
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			if m.ready {
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(msg)
				m.observe()
				return m, cmd
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			m.observe()
			return m, cmd
		}
		return m, nil

	case changedMsg:
		m.contentChanged()
		return m, waitForChange(m.changes)

	case cancelledMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.conv.Typing() && m.ready {
			m.viewport.SetContent(m.renderMessages())
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		return
	}

	ok, err := m.conv.Submit(m.ctx, value)
	switch {
	case errors.Is(err, chat.ErrBusy):
		m.status = busyHint
		return
	case err != nil:
		l := log.L()
		l.Warn().Err(err).Msg("send rejected")
		m.status = err.Error()
		return
	case !ok:
		return
	}

	m.input.Reset()
	m.status = ""
}

// contentChanged re-renders the list and applies the scroll rule using
// the position recorded before this change.
func (m *Model) contentChanged() {
	if !m.ready {
		return
	}
	decision := m.tracker.ContentChanged()
	m.viewport.SetContent(m.renderMessages())
	if decision == scroll.AutoScroll {
		m.viewport.GotoBottom()
	}
	m.observe()
}

func (m *Model) jumpToBottom() {
	if !m.ready {
		return
	}
	m.viewport.GotoBottom()
	m.tracker.JumpToBottom()
	m.observe()
}

func (m *Model) observe() {
	lh := m.lineHeight
	m.tracker.Observe(
		m.viewport.YOffset*lh,
		m.viewport.Height*lh,
		m.viewport.TotalLineCount()*lh,
	)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	vpHeight := height - headerHeight - statusHeight - inputHeight - helpHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	followBottom := !m.ready || !m.tracker.JumpVisible()
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.SetWidth(width - 2)

	m.viewport.SetContent(m.renderMessages())
	if followBottom {
		m.viewport.GotoBottom()
	}
	m.observe()
}

func (m Model) renderMessages() string {
	msgs := m.conv.Messages()
	typing := m.conv.Typing()
	bw := m.styles.bubbleWidth(m.width)

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderMessage(msg, bw, typing && i == len(msgs)-1 && !msg.IsUser))
	}
	return b.String()
}

func (m Model) renderMessage(msg chat.Message, maxWidth int, typing bool) string {
	style := m.styles.BotBubble
	align := lipgloss.Left
	if msg.IsUser {
		style = m.styles.UserBubble
		align = lipgloss.Right
	}

	text := msg.Text
	if typing && text == "" {
		text = m.spinner.View() + " typing"
	}

	w := lipgloss.Width(text) + style.GetHorizontalPadding()
	if w > maxWidth {
		w = maxWidth
	}
	bubble := style.Width(w).Render(text)
	stamp := m.styles.Timestamp.Render(msg.Timestamp)
	block := lipgloss.JoinVertical(align, bubble, stamp)

	return lipgloss.PlaceHorizontal(m.width, align, block)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.styles.Header.Width(m.width).Render("NeuroLab Assistant")

	status := m.status
	switch {
	case m.tracker.JumpVisible():
		status = m.styles.JumpHint.Render("↓ New messages (ctrl+g)")
	case status != "":
		status = m.styles.Hint.Render(status)
	case m.conv.Typing():
		status = m.styles.Status.Render("NeuroLab is typing...")
	case m.conv.Phase() == chat.PhaseFetching:
		status = m.styles.Status.Render("Waiting for reply...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		status,
		m.styles.InputBorder.Width(m.width-2).Render(m.input.View()),
		m.styles.Status.Render(helpText),
	)
}

// Run shows the chat screen until the user quits or ctx is cancelled.
// The reply in progress is cancelled before Run returns.
func Run(ctx context.Context, sender chat.Sender, opts Options) error {
	m := NewModel(ctx, sender, opts)
	defer m.conv.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

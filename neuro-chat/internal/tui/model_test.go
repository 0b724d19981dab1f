package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/neurolab/neuro-chat/internal/api"
	"github.com/weiawesome/neurolab/neuro-chat/internal/chat"
)

var fastTiming = chat.Timing{InitialDelay: time.Millisecond, ChunkDelay: time.Millisecond}

type stubSender struct {
	reply api.ChatReply
	block chan struct{}
}

func (s *stubSender) SendMessage(ctx context.Context, _ string) (api.ChatReply, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return api.ChatReply{}, ctx.Err()
		}
	}
	return s.reply, nil
}

func chunksReply(n int) api.ChatReply {
	chunks := make([]string, n)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("Sentence number %d explains one more brain fact.", i+1)
	}
	return api.ChatReply{Kind: api.ReplyChunks, Chunks: chunks}
}

func newTestModel(t *testing.T, sender chat.Sender, timing chat.Timing, width, height int) Model {
	t.Helper()
	m := NewModel(context.Background(), sender, Options{Timing: timing})
	t.Cleanup(m.Conversation().Close)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return updated.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func send(t *testing.T, m Model, text string) Model {
	t.Helper()
	m.input.SetValue(text)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestModel_InitialView(t *testing.T) {
	m := NewModel(context.Background(), &stubSender{}, Options{})
	t.Cleanup(m.Conversation().Close)
	assert.Equal(t, "Initializing...", m.View())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.True(t, m.ready)
	assert.Contains(t, m.View(), chat.Greeting)
	assert.Contains(t, m.View(), "NeuroLab Assistant")
}

func TestModel_SendRevealsReply(t *testing.T) {
	sender := &stubSender{reply: api.ChatReply{Kind: api.ReplyChunks, Chunks: []string{"Alpha waves.", "Beta waves."}}}
	m := newTestModel(t, sender, fastTiming, 120, 30)

	m = send(t, m, "Tell me about EEG")
	assert.Empty(t, m.input.Value())

	m.Conversation().Wait()
	m, cmd := update(t, m, changedMsg{})
	require.NotNil(t, cmd)

	msgs := m.Conversation().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Alpha waves. Beta waves.", msgs[2].Text)
	assert.Contains(t, m.View(), "Alpha waves. Beta waves.")
	assert.Contains(t, m.View(), "Tell me about EEG")
	assert.True(t, m.viewport.AtBottom())
}

func TestModel_BlankInputIsIgnored(t *testing.T) {
	m := newTestModel(t, &stubSender{}, fastTiming, 80, 24)

	m = send(t, m, "   ")
	assert.Len(t, m.Conversation().Messages(), 1)
	assert.Equal(t, chat.PhaseIdle, m.Conversation().Phase())
}

func TestModel_TypingIndicator(t *testing.T) {
	sender := &stubSender{reply: chunksReply(1)}
	m := newTestModel(t, sender, chat.Timing{InitialDelay: time.Hour, ChunkDelay: time.Hour}, 120, 30)

	m = send(t, m, "hello")
	require.Eventually(t, m.Conversation().Typing, time.Second, time.Millisecond)

	m, _ = update(t, m, changedMsg{})
	view := m.View()
	assert.Contains(t, view, "typing")
	assert.Contains(t, view, "NeuroLab is typing...")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, cancelledMsg{}, cmd())
	assert.False(t, m.Conversation().Busy())
	assert.False(t, m.Conversation().Typing())
}

func TestModel_SendWhileBusyShowsHint(t *testing.T) {
	sender := &stubSender{reply: chunksReply(1), block: make(chan struct{})}
	m := newTestModel(t, sender, fastTiming, 80, 24)

	m = send(t, m, "first")
	require.True(t, m.Conversation().Busy())

	m = send(t, m, "second")
	assert.Equal(t, busyHint, m.status)
	assert.Equal(t, "second", m.input.Value())
	assert.Len(t, m.Conversation().Messages(), 2)
	assert.Contains(t, m.View(), "Still replying")

	close(sender.block)
	m.Conversation().Wait()
	m, _ = update(t, m, changedMsg{})

	m = send(t, m, "second")
	assert.Empty(t, m.status)
	m.Conversation().Wait()
	assert.Len(t, m.Conversation().Messages(), 5)
}

func TestModel_EscWhenIdle(t *testing.T) {
	m := newTestModel(t, &stubSender{}, fastTiming, 80, 24)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
}

func TestModel_ScrolledAwayShowsJumpHint(t *testing.T) {
	sender := &stubSender{reply: chunksReply(20)}
	m := newTestModel(t, sender, fastTiming, 80, 14)

	m = send(t, m, "hi")
	m.Conversation().Wait()
	m, _ = update(t, m, changedMsg{})
	require.True(t, m.viewport.AtBottom())
	require.False(t, m.tracker.JumpVisible())

	// One page up is more than the threshold away from the bottom.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	require.Greater(t, m.tracker.Distance(), m.tracker.Threshold())
	offset := m.viewport.YOffset

	m = send(t, m, "more please")
	m.Conversation().Wait()
	m, _ = update(t, m, changedMsg{})

	assert.True(t, m.tracker.JumpVisible())
	assert.Equal(t, offset, m.viewport.YOffset)
	assert.False(t, m.viewport.AtBottom())
	assert.Contains(t, m.View(), "New messages")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.True(t, m.viewport.AtBottom())
	assert.False(t, m.tracker.JumpVisible())
	assert.NotContains(t, m.View(), "New messages")
}

func TestModel_NearBottomFollowsContent(t *testing.T) {
	sender := &stubSender{reply: chunksReply(20)}
	m := newTestModel(t, sender, fastTiming, 80, 14)

	m = send(t, m, "hi")
	m.Conversation().Wait()
	m, _ = update(t, m, changedMsg{})

	// Four lines up is 80 units, inside the 100 unit threshold.
	m.viewport.SetYOffset(m.viewport.YOffset - 4)
	m.observe()
	require.LessOrEqual(t, m.tracker.Distance(), m.tracker.Threshold())

	m = send(t, m, "again")
	m.Conversation().Wait()
	m, _ = update(t, m, changedMsg{})

	assert.True(t, m.viewport.AtBottom())
	assert.False(t, m.tracker.JumpVisible())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(t, &stubSender{}, fastTiming, 80, 24)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_ResizeKeepsLayout(t *testing.T) {
	m := newTestModel(t, &stubSender{}, fastTiming, 80, 24)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Equal(t, 60, m.viewport.Width)
	assert.Equal(t, 20-headerHeight-statusHeight-inputHeight-helpHeight, m.viewport.Height)

	lines := strings.Split(m.View(), "\n")
	assert.GreaterOrEqual(t, len(lines), m.viewport.Height)
}

func TestModel_SendAfterCloseShowsError(t *testing.T) {
	m := newTestModel(t, &stubSender{}, fastTiming, 80, 24)
	m.Conversation().Close()

	m = send(t, m, "hello")
	assert.Equal(t, chat.ErrClosed.Error(), m.status)
	assert.Equal(t, "hello", m.input.Value())
	assert.Len(t, m.Conversation().Messages(), 1)
}

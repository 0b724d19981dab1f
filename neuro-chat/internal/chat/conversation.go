// Package chat runs a conversation with the NeuroLab assistant and reveals
// each reply progressively, one chunk at a time.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/weiawesome/neurolab/neuro-chat/internal/idgen"
	"github.com/weiawesome/neurolab/pkg/log"
	"github.com/weiawesome/neurolab/pkg/text"
)

var (
	// ErrBusy is returned by Submit while a reply is still being fetched or revealed.
	ErrBusy = errors.New("a reply is still in progress")
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("conversation closed")
)

// Option configures a Conversation.
type Option func(*Conversation)

// WithTiming overrides the reveal pauses.
func WithTiming(t Timing) Option {
	return func(c *Conversation) { c.timing = t }
}

// WithObserver registers fn to be called after every state change. Calls
// are sequential and made without the state lock held, so fn may read the
// conversation. fn must not call Cancel or Close.
func WithObserver(fn func(Update)) Option {
	return func(c *Conversation) { c.observer = fn }
}

// WithClock sets the clock used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) { c.now = now }
}

// Conversation owns the message list of one chat screen.
//
// At most one reply task runs at a time. Each task carries a generation
// number and a cancel func; every mutation it makes is checked against
// both, so a cancelled or superseded task never touches the list again.
type Conversation struct {
	sender   Sender
	timing   Timing
	ids      *idgen.Generator
	now      func() time.Time
	observer func(Update)

	// notifyMu keeps observer calls sequential across goroutines.
	notifyMu sync.Mutex

	mu       sync.Mutex
	messages []Message
	phase    Phase
	typing   bool
	closed   bool
	gen      uint64
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a conversation that starts with the assistant greeting.
func New(sender Sender, opts ...Option) *Conversation {
	c := &Conversation{
		sender: sender,
		timing: DefaultTiming(),
		ids:    idgen.New(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.messages = []Message{c.newMessage(Greeting, false)}
	return c
}

// Submit sends input as a user message. Blank input is ignored and
// reports false. Otherwise the user message is appended at once and a
// task fetches and reveals the reply. Submit returns ErrBusy, leaving the
// list unchanged, while a previous reply is in progress.
func (c *Conversation) Submit(ctx context.Context, input string) (bool, error) {
	msg := strings.TrimSpace(input)
	if msg == "" {
		return false, nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, ErrClosed
	}
	if c.phase.Active() {
		c.mu.Unlock()
		return false, ErrBusy
	}

	user := c.newMessage(msg, true)
	c.messages = append(c.messages, user)
	index := len(c.messages) - 1

	c.gen++
	gen := c.gen
	taskCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.phase = PhaseFetching
	c.mu.Unlock()

	c.notify(
		Update{Kind: MessageAppended, Index: index, Message: user},
		Update{Kind: PhaseChanged, Phase: PhaseFetching},
	)

	taskCtx = log.WithStr(taskCtx, log.FieldMessageID, user.ID)
	go c.run(taskCtx, cancel, gen, msg, done)
	return true, nil
}

// run fetches the reply to msg and reveals it.
func (c *Conversation) run(ctx context.Context, cancel context.CancelFunc, gen uint64, msg string, done chan struct{}) {
	defer close(done)
	defer cancel()
	defer c.finish(gen)

	l := log.Ctx(ctx)

	reply, err := c.sender.SendMessage(ctx, msg)
	if err != nil {
		if ctx.Err() != nil {
			l.Debug().Err(err).Msg("reply fetch cancelled")
			return
		}
		l.Warn().Err(err).Msg("chat request failed, showing fallback")
		c.fallback(ctx, gen)
		return
	}

	chunks := reply.Chunks
	if len(chunks) == 0 {
		l.Warn().Str("kind", reply.Kind.String()).Msg("reply has no chunks, showing fallback")
		c.fallback(ctx, gen)
		return
	}
	l.Debug().
		Int(log.FieldChunks, len(chunks)).
		Str("kind", reply.Kind.String()).
		Msg("reply received")

	// AwaitingFirstChunk: empty bubble with the typing indicator.
	ok := c.mutate(ctx, gen, func() []Update {
		placeholder := c.newMessage("", false)
		c.messages = append(c.messages, placeholder)
		c.phase = PhaseAwaitingFirstChunk
		c.typing = true
		return []Update{
			{Kind: MessageAppended, Index: len(c.messages) - 1, Message: placeholder},
			{Kind: PhaseChanged, Phase: PhaseAwaitingFirstChunk},
			{Kind: TypingChanged, Typing: true},
		}
	})
	if !ok || !sleep(ctx, c.timing.InitialDelay) {
		return
	}

	ok = c.mutate(ctx, gen, func() []Update {
		c.typing = false
		c.phase = PhaseRevealing
		return append(
			[]Update{
				{Kind: TypingChanged, Typing: false},
				{Kind: PhaseChanged, Phase: PhaseRevealing},
			},
			c.setLastText(chunks[0]),
		)
	})
	if !ok {
		return
	}

	for i := 1; i < len(chunks); i++ {
		if !sleep(ctx, c.timing.ChunkDelay) {
			return
		}
		revealed := text.JoinChunks(chunks, i+1)
		if !c.mutate(ctx, gen, func() []Update { return []Update{c.setLastText(revealed)} }) {
			return
		}
	}

	c.mutate(ctx, gen, func() []Update {
		c.phase = PhaseDone
		return []Update{{Kind: PhaseChanged, Phase: PhaseDone}}
	})
	l.Debug().Str(log.FieldPhase, PhaseDone.String()).Msg("reply revealed")
}

// fallback appends the fixed apology in place of the reply.
func (c *Conversation) fallback(ctx context.Context, gen uint64) {
	c.mutate(ctx, gen, func() []Update {
		msg := c.newMessage(FallbackText, false)
		c.messages = append(c.messages, msg)
		c.phase = PhaseDone
		return []Update{
			{Kind: MessageAppended, Index: len(c.messages) - 1, Message: msg},
			{Kind: PhaseChanged, Phase: PhaseDone},
		}
	})
}

// finish settles the phase when the task ends early, e.g. because the
// parent context was cancelled. It is a no-op once the task is superseded.
func (c *Conversation) finish(gen uint64) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.gen != gen || !c.phase.Active() {
		c.mu.Unlock()
		return
	}
	updates := c.settle()
	c.mu.Unlock()

	c.emit(updates)
}

// settle ends an interrupted task: the typing indicator goes away, a
// placeholder still without text is dropped and the phase becomes Done.
// c.mu must be held.
func (c *Conversation) settle() []Update {
	var updates []Update
	if c.typing {
		c.typing = false
		updates = append(updates, Update{Kind: TypingChanged, Typing: false})
	}
	if last := len(c.messages) - 1; last > 0 && !c.messages[last].IsUser && c.messages[last].Text == "" {
		removed := c.messages[last]
		c.messages = c.messages[:last]
		updates = append(updates, Update{Kind: MessageRemoved, Index: last, Message: removed})
	}
	c.phase = PhaseDone
	return append(updates, Update{Kind: PhaseChanged, Phase: PhaseDone})
}

// mutate applies fn if the task identified by gen is still current, then
// notifies the observer. It reports whether fn ran.
func (c *Conversation) mutate(ctx context.Context, gen uint64, fn func() []Update) bool {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	updates, ok := c.apply(ctx, gen, fn)
	if !ok {
		return false
	}
	c.emit(updates)
	return true
}

func (c *Conversation) apply(ctx context.Context, gen uint64, fn func() []Update) ([]Update, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen || ctx.Err() != nil {
		return nil, false
	}
	return fn(), true
}

// setLastText replaces the text of the last message. c.mu must be held.
func (c *Conversation) setLastText(s string) Update {
	last := len(c.messages) - 1
	c.messages[last].Text = s
	return Update{Kind: MessageChanged, Index: last, Message: c.messages[last]}
}

func (c *Conversation) notify(updates ...Update) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.emit(updates)
}

// emit calls the observer. c.notifyMu must be held.
func (c *Conversation) emit(updates []Update) {
	if c.observer == nil {
		return
	}
	for _, u := range updates {
		c.observer(u)
	}
}

// Cancel stops the reply in progress, if any, and waits for its task to
// exit. A partly revealed message keeps the text shown so far; a
// placeholder still waiting for its first chunk is removed. The
// conversation accepts sends again afterwards.
func (c *Conversation) Cancel() {
	c.stop(false)
}

// Close cancels the reply in progress and waits for its task to exit.
// No update is made after Close returns and later sends fail with ErrClosed.
func (c *Conversation) Close() {
	c.stop(true)
}

func (c *Conversation) stop(closing bool) {
	c.mu.Lock()
	if closing {
		c.closed = true
	}
	active := c.phase.Active()
	cancel, done := c.cancel, c.done
	c.gen++
	var updates []Update
	if active {
		updates = c.settle()
	}
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	if !closing {
		c.notify(updates...)
	}
}

// Wait blocks until the current reply task, if any, has exited.
func (c *Conversation) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Messages returns a copy of the message list.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// Phase returns the current reply phase.
func (c *Conversation) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Typing reports whether the typing indicator is shown.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// Busy reports whether a reply is being fetched or revealed.
func (c *Conversation) Busy() bool {
	return c.Phase().Active()
}

func (c *Conversation) newMessage(s string, isUser bool) Message {
	return Message{
		ID:        c.ids.MustGenerate(),
		Text:      s,
		IsUser:    isUser,
		Timestamp: c.now().Format(DisplayTimeLayout),
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

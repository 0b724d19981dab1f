package chat

import (
	"context"
	"time"

	"github.com/weiawesome/neurolab/neuro-chat/internal/api"
)

// DisplayTimeLayout is the clock format shown next to messages.
const DisplayTimeLayout = "3:04 PM"

const (
	// Greeting opens every conversation.
	Greeting = "Hi! I'm your NeuroLab assistant. Ask me about EEG, stress or mental health."
	// FallbackText replaces the reply when the request fails.
	FallbackText = "Sorry, I couldn't reach the NeuroLab assistant right now. Please try again in a moment."
)

// Message is one entry of the conversation. Only the assistant message
// being revealed changes after it is appended.
type Message struct {
	ID        string
	Text      string
	IsUser    bool
	Timestamp string
}

// Phase is the state of the reply task.
type Phase int

const (
	// PhaseIdle is the state before the first send.
	PhaseIdle Phase = iota
	// PhaseFetching waits for the server reply.
	PhaseFetching
	// PhaseAwaitingFirstChunk shows the typing indicator on an empty bubble.
	PhaseAwaitingFirstChunk
	// PhaseRevealing discloses one chunk per ChunkDelay.
	PhaseRevealing
	// PhaseDone means the last reply is final. Sends are accepted again.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetching:
		return "fetching"
	case PhaseAwaitingFirstChunk:
		return "awaiting_first_chunk"
	case PhaseRevealing:
		return "revealing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Active reports whether a reply task owns the conversation.
func (p Phase) Active() bool {
	return p == PhaseFetching || p == PhaseAwaitingFirstChunk || p == PhaseRevealing
}

// Timing holds the fixed reveal pauses.
type Timing struct {
	InitialDelay time.Duration
	ChunkDelay   time.Duration
}

// DefaultTiming returns the standard pauses.
func DefaultTiming() Timing {
	return Timing{
		InitialDelay: 1000 * time.Millisecond,
		ChunkDelay:   600 * time.Millisecond,
	}
}

// Sender delivers one chat message and returns the validated reply.
// *api.Client implements it.
type Sender interface {
	SendMessage(ctx context.Context, text string) (api.ChatReply, error)
}

// UpdateKind tells what changed.
type UpdateKind int

const (
	MessageAppended UpdateKind = iota + 1
	MessageChanged
	TypingChanged
	PhaseChanged
	// MessageRemoved drops an assistant placeholder that never got text.
	MessageRemoved
)

// Update describes one state change. Index and Message are set for
// message updates, Typing for TypingChanged and Phase for PhaseChanged.
type Update struct {
	Kind    UpdateKind
	Index   int
	Message Message
	Typing  bool
	Phase   Phase
}

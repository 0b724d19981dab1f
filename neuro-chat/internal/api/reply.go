package api

import (
	"encoding/json"
	"fmt"

	"github.com/weiawesome/neurolab/pkg/text"
)

// ReplyKind tells how a ChatReply was produced.
type ReplyKind int

const (
	// ReplyChunks came pre-segmented from the server.
	ReplyChunks ReplyKind = iota + 1
	// ReplySentences was split client-side from a single response string.
	ReplySentences
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyChunks:
		return "chunks"
	case ReplySentences:
		return "sentences"
	default:
		return "unknown"
	}
}

// ChatReply is a validated chat response. Chunks is never empty.
type ChatReply struct {
	Kind      ReplyKind
	Chunks    []string
	Timestamp string
}

// Text returns the full reply, chunks joined by single spaces.
func (r ChatReply) Text() string {
	return text.JoinChunks(r.Chunks, len(r.Chunks))
}

// ParseError reports a chat payload that is not a usable reply.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed chat reply: %s: %v", e.Reason, e.Err)
	}
	return "malformed chat reply: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type rawChatReply struct {
	Success        *bool     `json:"success"`
	ResponseChunks *[]string `json:"responseChunks"`
	Response       *string   `json:"response"`
	Message        string    `json:"message"`
	Timestamp      string    `json:"timestamp"`
}

// ParseChatReply validates a chat response body. When both responseChunks
// and response are present, responseChunks wins.
func ParseChatReply(body []byte) (ChatReply, error) {
	var raw rawChatReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return ChatReply{}, &ParseError{Reason: "invalid json", Err: err}
	}

	switch {
	case raw.Success == nil:
		return ChatReply{}, &ParseError{Reason: "missing success flag"}
	case !*raw.Success:
		reason := "server reported failure"
		if raw.Message != "" {
			reason += ": " + raw.Message
		}
		return ChatReply{}, &ParseError{Reason: reason}
	}

	if raw.ResponseChunks != nil {
		if len(*raw.ResponseChunks) == 0 {
			return ChatReply{}, &ParseError{Reason: "empty responseChunks"}
		}
		return ChatReply{
			Kind:      ReplyChunks,
			Chunks:    *raw.ResponseChunks,
			Timestamp: raw.Timestamp,
		}, nil
	}

	if raw.Response != nil {
		sentences := text.SplitSentences(*raw.Response)
		if len(sentences) == 0 {
			return ChatReply{}, &ParseError{Reason: "empty response"}
		}
		return ChatReply{
			Kind:      ReplySentences,
			Chunks:    sentences,
			Timestamp: raw.Timestamp,
		}, nil
	}

	return ChatReply{}, &ParseError{Reason: "neither responseChunks nor response present"}
}

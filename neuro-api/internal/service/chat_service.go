package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/neuro-api/internal/repository"
	"github.com/weiawesome/neurolab/pkg/log"
	"github.com/weiawesome/neurolab/pkg/text"
)

// Reply modes.
const (
	ModeChunks = "chunks"
	ModeSingle = "single"
)

// TimestampLayout matches JavaScript's Date.toISOString in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type chatServiceImpl struct {
	repo  repository.ChatRepository
	mode  string
	delay time.Duration
	now   func() time.Time
}

// NewChatService creates a chat service. mode is ModeChunks or ModeSingle;
// delay is waited before every reply.
func NewChatService(repo repository.ChatRepository, mode string, delay time.Duration) (ChatService, error) {
	switch mode {
	case "":
		mode = ModeChunks
	case ModeChunks, ModeSingle:
	default:
		return nil, fmt.Errorf("unknown chat mode %q", mode)
	}

	return &chatServiceImpl{
		repo:  repo,
		mode:  mode,
		delay: delay,
		now:   time.Now,
	}, nil
}

// Reply answers message with the matching canned reply.
func (s *chatServiceImpl) Reply(ctx context.Context, message string) (*domain.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	answer := replyFor(message)

	if err := sleep(ctx, s.delay); err != nil {
		return nil, err
	}

	resp := &domain.ChatResponse{
		Success:   true,
		Timestamp: s.now().UTC().Format(TimestampLayout),
	}
	if s.mode == ModeSingle {
		resp.Response = answer
	} else {
		resp.ResponseChunks = text.SplitSentences(answer)
	}

	l := log.Ctx(ctx)
	l.Debug().
		Str("mode", s.mode).
		Int(log.FieldChunks, len(resp.ResponseChunks)).
		Msg("chat reply prepared")

	return resp, nil
}

// History returns stored conversations, newest first.
func (s *chatServiceImpl) History(ctx context.Context) ([]domain.ChatHistorySummary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return summaries, nil
}

// Detail returns one stored conversation.
func (s *chatServiceImpl) Detail(ctx context.Context, id string) (*domain.ChatDetail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return detail, nil
}

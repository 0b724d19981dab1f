package domain

import "time"

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply to POST /api/chat. Exactly one of
// ResponseChunks and Response is set, depending on the configured mode.
type ChatResponse struct {
	Success        bool     `json:"success"`
	ResponseChunks []string `json:"responseChunks,omitempty"`
	Response       string   `json:"response,omitempty"`
	Timestamp      string   `json:"timestamp"`
}

// ChatHistorySummary is one row of the chat history list.
type ChatHistorySummary struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Timestamp          time.Time `json:"timestamp"`
	LastMessageSnippet string    `json:"lastMessageSnippet"`
}

// ChatDetailMessage is a message inside a stored conversation.
type ChatDetailMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsUser    bool   `json:"isUser"`
	Timestamp string `json:"timestamp"`
}

// ChatDetail is a stored conversation with its messages in order.
type ChatDetail struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Timestamp time.Time           `json:"timestamp"`
	Messages  []ChatDetailMessage `json:"messages"`
}

// ChatModel is the GORM model for chats table.
type ChatModel struct {
	ID        string             `gorm:"type:varchar(36);primaryKey"`
	Title     string             `gorm:"type:varchar(255);not null"`
	Messages  []ChatMessageModel `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// TableName specifies the table name for ChatModel.
func (ChatModel) TableName() string {
	return "chats"
}

// ChatMessageModel is the GORM model for chat_messages table.
type ChatMessageModel struct {
	ID       string `gorm:"type:varchar(36);primaryKey"`
	ChatID   string `gorm:"type:varchar(36);index;not null"`
	Position int    `gorm:"not null"`
	Text     string `gorm:"type:text;not null"`
	IsUser   bool
	SentAt   time.Time
}

// TableName specifies the table name for ChatMessageModel.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// ToSummary converts ChatModel to its history row. Messages must be
// loaded and ordered by position for the snippet to be meaningful.
func (m *ChatModel) ToSummary() ChatHistorySummary {
	s := ChatHistorySummary{
		ID:        m.ID,
		Title:     m.Title,
		Timestamp: m.UpdatedAt,
	}
	if n := len(m.Messages); n > 0 {
		s.LastMessageSnippet = Snippet(m.Messages[n-1].Text, SnippetLength)
	}
	return s
}

// ToDetail converts ChatModel to ChatDetail.
func (m *ChatModel) ToDetail() *ChatDetail {
	d := &ChatDetail{
		ID:        m.ID,
		Title:     m.Title,
		Timestamp: m.UpdatedAt,
		Messages:  make([]ChatDetailMessage, 0, len(m.Messages)),
	}
	for _, msg := range m.Messages {
		d.Messages = append(d.Messages, ChatDetailMessage{
			ID:        msg.ID,
			Text:      msg.Text,
			IsUser:    msg.IsUser,
			Timestamp: msg.SentAt.Format(DisplayTimeLayout),
		})
	}
	return d
}

const (
	// DisplayTimeLayout is the clock format shown next to chat bubbles.
	DisplayTimeLayout = "3:04 PM"
	// SnippetLength bounds lastMessageSnippet, in runes.
	SnippetLength = 80
)

// Snippet shortens s to at most n runes, ending with an ellipsis when cut.
func Snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

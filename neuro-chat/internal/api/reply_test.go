package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChatReply(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantKind   ReplyKind
		wantChunks []string
		wantErr    bool
	}{
		{
			name:       "chunks",
			body:       `{"success":true,"responseChunks":["A.","B.","C."]}`,
			wantKind:   ReplyChunks,
			wantChunks: []string{"A.", "B.", "C."},
		},
		{
			name:       "single response is split into sentences",
			body:       `{"success":true,"response":"Hi there! How are you? Fine."}`,
			wantKind:   ReplySentences,
			wantChunks: []string{"Hi there!", "How are you?", "Fine."},
		},
		{
			name:       "chunks win over response",
			body:       `{"success":true,"responseChunks":["X."],"response":"Y. Z."}`,
			wantKind:   ReplyChunks,
			wantChunks: []string{"X."},
		},
		{name: "missing success", body: `{"responseChunks":["A."]}`, wantErr: true},
		{name: "success false", body: `{"success":false,"message":"No message provided"}`, wantErr: true},
		{name: "no payload", body: `{"success":true}`, wantErr: true},
		{name: "empty chunks", body: `{"success":true,"responseChunks":[]}`, wantErr: true},
		{name: "blank response", body: `{"success":true,"response":"   "}`, wantErr: true},
		{name: "chunks wrong type", body: `{"success":true,"responseChunks":"A."}`, wantErr: true},
		{name: "invalid json", body: `{"success":`, wantErr: true},
		{name: "html", body: `<html>502</html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := ParseChatReply([]byte(tt.body))
			if tt.wantErr {
				var pErr *ParseError
				require.True(t, errors.As(err, &pErr), "want *ParseError, got %v", err)
				assert.NotEmpty(t, pErr.Reason)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, reply.Kind)
			assert.Equal(t, tt.wantChunks, reply.Chunks)
		})
	}
}

func TestChatReply_Text(t *testing.T) {
	reply := ChatReply{Kind: ReplyChunks, Chunks: []string{"A.", "B.", "C."}}
	assert.Equal(t, "A. B. C.", reply.Text())
	assert.Equal(t, "chunks", reply.Kind.String())
}

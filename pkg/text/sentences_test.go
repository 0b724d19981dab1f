package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \n\t", nil},
		{"single sentence no punctuation", "hello there", []string{"hello there"}},
		{"three sentences", "A. B. C.", []string{"A.", "B.", "C."}},
		{"mixed punctuation", "Really? Yes! Fine.", []string{"Really?", "Yes!", "Fine."}},
		{"abbreviation-like dots inside words", "Use v1.2 now. Done.", []string{"Use v1.2 now.", "Done."}},
		{"ellipsis", "Wait... then go.", []string{"Wait...", "then go."}},
		{"closing quote stays", `He said "stop." Then left.`, []string{`He said "stop."`, "Then left."}},
		{"trailing text without terminal", "One. two", []string{"One.", "two"}},
		{"collapses whitespace between", "One.   \n Two.", []string{"One.", "Two."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

func TestSplitSentences_ParenthesisedTerm(t *testing.T) {
	in := "EEG (Electroencephalography) is a method to record electrical activity of the brain. It's commonly used to diagnose conditions."
	got := SplitSentences(in)
	assert.Len(t, got, 2)
	assert.Equal(t, "EEG (Electroencephalography) is a method to record electrical activity of the brain.", got[0])
}

func TestJoinChunks(t *testing.T) {
	chunks := []string{"A.", "B.", "C."}

	assert.Equal(t, "", JoinChunks(chunks, 0))
	assert.Equal(t, "A.", JoinChunks(chunks, 1))
	assert.Equal(t, "A. B.", JoinChunks(chunks, 2))
	assert.Equal(t, "A. B. C.", JoinChunks(chunks, 3))
	assert.Equal(t, "A. B. C.", JoinChunks(chunks, 10))
	assert.Equal(t, "", JoinChunks(nil, 2))
}

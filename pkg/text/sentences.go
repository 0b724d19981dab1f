// Package text holds text helpers shared by the backend and the chat client.
package text

import (
	"strings"
	"unicode"
)

// SplitSentences splits s after sentence-ending punctuation ('.', '!', '?')
// that is followed by whitespace. The punctuation stays with its sentence,
// the separating whitespace is dropped and empty pieces are skipped.
// Trailing closing quotes or brackets stay attached to the sentence.
func SplitSentences(s string) []string {
	var (
		out   []string
		start = 0
		runes = []rune(s)
	)

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && isCloser(runes[end]) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			continue
		}
		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			out = append(out, piece)
		}
		start = end
		i = end - 1
	}

	if piece := strings.TrimSpace(string(runes[start:])); piece != "" {
		out = append(out, piece)
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’':
		return true
	}
	return false
}

// JoinChunks joins the first n chunks with single spaces. n is clamped
// to the number of chunks.
func JoinChunks(chunks []string, n int) string {
	if n > len(chunks) {
		n = len(chunks)
	}
	if n <= 0 {
		return ""
	}
	return strings.Join(chunks[:n], " ")
}

package service

import "strings"

type reply struct {
	keyword string
	text    string
}

// replies is checked in order; the first keyword found in the message wins.
var replies = []reply{
	{
		keyword: "eeg",
		text: "EEG (Electroencephalography) is a method to record electrical activity of the brain. " +
			"It's commonly used to diagnose and monitor neurological conditions. " +
			"Researchers also use it to understand brain function. " +
			"Small sensors on the scalp pick up the signals produced by neurons. " +
			"NeuroLab turns these signals into insights about focus, relaxation and fatigue.",
	},
	{
		keyword: "mental health",
		text: "Mental health refers to cognitive, behavioral, and emotional well-being. " +
			"It affects how we think, feel, and behave, and also determines how we handle stress, relate to others, and make choices.",
	},
	{
		keyword: "stress",
		text: "Stress is your body's reaction to pressure from a certain situation or event. " +
			"It can be a physical, mental, or emotional strain causing bodily or mental tension.",
	},
}

const defaultReply = "I'm your NeuroLab AI assistant. " +
	"I'm here to help you with understanding brain function, mental health, and cognitive science. " +
	"How can I assist you today?"

// replyFor picks the canned answer for message.
func replyFor(message string) string {
	lower := strings.ToLower(message)
	for _, r := range replies {
		if strings.Contains(lower, r.keyword) {
			return r.text
		}
	}
	return defaultReply
}

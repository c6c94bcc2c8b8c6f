package telegram

import "strings"

// MaxMessageLen is the largest message body sent in one Telegram call,
// slightly under the API's 4096-character limit.
const MaxMessageLen = 4090

// SplitMessage splits text into chunks that fit a single Telegram message,
// cutting on line boundaries. A single oversized line is sent as its own
// chunk and left to the API to reject.
func SplitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var (
		messages []string
		current  strings.Builder
	)
	for _, line := range strings.Split(text, "\n") {
		if current.Len() > 0 && current.Len()+len(line)+1 > maxLen {
			messages = append(messages, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		messages = append(messages, current.String())
	}
	return messages
}

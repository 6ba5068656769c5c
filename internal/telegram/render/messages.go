package render

import (
	"fmt"
	"strings"

	"github.com/futig/ums-chatbot/internal/entity"
)

const (
	MsgHelp = `Commands:
/start - start a new conversation
/status - show whether the chatbot server is reachable
/history - show this conversation
/help - show this help

Just send a question about courses, prerequisites or schedules.`

	MsgStillThinking  = "I'm still working on your previous question. Please wait a moment."
	MsgUnknownCommand = "Unknown command. Use /help to see what I can do."
	MsgPanic          = "Something went wrong. Please try again or use /start."

	statusOnline  = "Online - connected to the chatbot server."
	statusOffline = "Offline - the chatbot server is not reachable right now."
)

// StatusLine renders the relay connectivity flag
func StatusLine(connected bool) string {
	if connected {
		return statusOnline
	}
	return statusOffline
}

// Welcome is the greeting followed by connectivity status
func Welcome(greeting string, connected bool) string {
	return fmt.Sprintf("%s\n\n%s", greeting, StatusLine(connected))
}

// Transcript renders a conversation thread, oldest first
func Transcript(messages []entity.Message) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		who := "Bot"
		if msg.Sender == entity.SenderStudent {
			who = "You"
		}
		fmt.Fprintf(&b, "[%s] %s: %s", msg.Timestamp, who, msg.Text)
	}
	return b.String()
}

package render

import (
	"testing"

	"github.com/futig/ums-chatbot/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestTranscript(t *testing.T) {
	msgs := []entity.Message{
		{ID: 1, Text: "Hello!", Sender: entity.SenderBot, Timestamp: "09:00"},
		{ID: 2, Text: "When does registration open?", Sender: entity.SenderStudent, Timestamp: "09:01"},
	}

	assert.Equal(t, "[09:00] Bot: Hello!\n\n[09:01] You: When does registration open?", Transcript(msgs))
	assert.Empty(t, Transcript(nil))
}

func TestWelcome(t *testing.T) {
	assert.Equal(t, "hi\n\n"+statusOnline, Welcome("hi", true))
	assert.Equal(t, "hi\n\n"+statusOffline, Welcome("hi", false))
}

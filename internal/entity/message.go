package entity

import "time"

type Sender string

const (
	SenderStudent Sender = "student"
	SenderBot     Sender = "bot"
)

// TimestampLayout renders message times as hour:minute
const TimestampLayout = "15:04"

// Message is one bubble of a client-side conversation thread
type Message struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
}

func NewMessage(id int, text string, sender Sender, at time.Time) Message {
	return Message{
		ID:        id,
		Text:      text,
		Sender:    sender,
		Timestamp: at.Format(TimestampLayout),
	}
}

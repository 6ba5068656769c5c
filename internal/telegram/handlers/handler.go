package handlers

import "context"

// Bot commands
const (
	CommandStart   = "start"
	CommandHelp    = "help"
	CommandStatus  = "status"
	CommandHistory = "history"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
}

// Handler processes normalized messages
type Handler interface {
	HandleCommand(ctx context.Context, msg *Message, command string) error
	HandleText(ctx context.Context, msg *Message) error
}

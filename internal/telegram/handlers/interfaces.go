package handlers

import (
	"github.com/futig/ums-chatbot/internal/usecase/chat"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI is the subset of *tgbotapi.BotAPI the handlers talk to
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// ConversationStore keeps one conversation per chat
type ConversationStore interface {
	Get(chatID int64) (*chat.Conversation, bool)
	Reset(chatID int64) *chat.Conversation
}

package telegram

import (
	"context"
	"fmt"

	"github.com/futig/ums-chatbot/internal/config"
	"github.com/futig/ums-chatbot/internal/telegram/bot"
	"github.com/futig/ums-chatbot/internal/telegram/handlers"
	"github.com/futig/ums-chatbot/internal/telegram/state"
	"github.com/futig/ums-chatbot/internal/usecase/chat"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot wires a Telegram front-end that talks to the relay through relay
func NewBot(cfg *config.TelegramConfig, relay chat.RelayConnector, logger *zap.Logger) (Bot, error) {
	store := state.NewStore(cfg.ConversationTTL, func() *chat.Conversation {
		return chat.NewConversation(relay)
	})

	b, err := bot.New(cfg, func(api handlers.BotAPI) handlers.Handler {
		return handlers.NewChatHandler(api, store, handlers.NewMessageSender(api, &cfg.SendRetry))
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

package handlers

import (
	"context"

	pkgRetry "github.com/futig/ums-chatbot/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MessageSender delivers text messages, retrying transient Telegram failures
type MessageSender struct {
	bot   BotAPI
	retry *pkgRetry.RetryConfig
}

func NewMessageSender(bot BotAPI, retry *pkgRetry.RetryConfig) *MessageSender {
	if retry == nil {
		retry = pkgRetry.DefaultRetryConfig()
	}
	return &MessageSender{
		bot:   bot,
		retry: retry,
	}
}

// Send sends text to the chat
func (s *MessageSender) Send(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)

	err := s.retry.Do(ctx, func() error {
		_, err := s.bot.Send(msg)
		return err
	}, func(n uint, err error) {
		ctxzap.Warn(ctx, "failed to send message, retrying",
			zap.Error(err),
			zap.Uint("attempt", n+1),
			zap.Int64("chat_id", chatID),
		)
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}

	return nil
}

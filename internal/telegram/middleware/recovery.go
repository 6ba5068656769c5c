package middleware

import (
	"context"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Sender is the part of the Telegram API used to report a crash to the user
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Recovery turns a panic in next into a log entry and an apology message
func Recovery(bot Sender, apology string) func(ctx context.Context, update tgbotapi.Update, next Next) {
	return func(ctx context.Context, update tgbotapi.Update, next Next) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctxzap.Error(ctx, "panic recovered in telegram handler",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)

			if update.Message == nil {
				return
			}
			chatID := update.Message.Chat.ID
			if _, err := bot.Send(tgbotapi.NewMessage(chatID, apology)); err != nil {
				ctxzap.Error(ctx, "failed to send error message",
					zap.Error(err),
					zap.Int64("chat_id", chatID),
				)
			}
		}()

		next(ctx, update)
	}
}

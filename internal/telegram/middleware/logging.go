package middleware

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Next is the rest of the update chain
type Next func(ctx context.Context, update tgbotapi.Update)

// Logging attaches update fields to the context logger and logs timing
func Logging(ctx context.Context, update tgbotapi.Update, next Next) {
	start := time.Now()

	var userID, chatID int64
	messageType := "other"
	if msg := update.Message; msg != nil {
		if msg.From != nil {
			userID = msg.From.ID
		}
		chatID = msg.Chat.ID

		switch {
		case msg.IsCommand():
			messageType = "command"
		case msg.Text != "":
			messageType = "text"
		}
	}

	ctxzap.AddFields(ctx,
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
	)
	ctxzap.Debug(ctx, "telegram update received", zap.String("type", messageType))

	next(ctx, update)

	ctxzap.Info(ctx, "telegram update processed",
		zap.String("type", messageType),
		zap.Duration("duration", time.Since(start)),
	)
}

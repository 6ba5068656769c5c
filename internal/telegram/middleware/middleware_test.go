package middleware

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingSender struct {
	texts []string
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		r.texts = append(r.texts, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func testUpdate() tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 42,
		Message: &tgbotapi.Message{
			Text: "hello",
			Chat: &tgbotapi.Chat{ID: 9},
			From: &tgbotapi.User{ID: 3},
		},
	}
}

func TestRecoveryApologizes(t *testing.T) {
	sender := &recordingSender{}
	ctx := ctxzap.ToContext(context.Background(), zap.NewNop())

	assert.NotPanics(t, func() {
		Recovery(sender, "sorry")(ctx, testUpdate(), func(context.Context, tgbotapi.Update) {
			panic("boom")
		})
	})
	assert.Equal(t, []string{"sorry"}, sender.texts)
}

func TestRecoveryPassesThrough(t *testing.T) {
	sender := &recordingSender{}
	called := false

	Recovery(sender, "sorry")(context.Background(), testUpdate(), func(context.Context, tgbotapi.Update) {
		called = true
	})

	assert.True(t, called)
	assert.Empty(t, sender.texts)
}

func TestLoggingCallsNext(t *testing.T) {
	ctx := ctxzap.ToContext(context.Background(), zap.NewNop())
	var got int

	Logging(ctx, testUpdate(), func(_ context.Context, u tgbotapi.Update) {
		got = u.UpdateID
	})

	assert.Equal(t, 42, got)
}

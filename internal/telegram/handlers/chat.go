package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/futig/ums-chatbot/internal/entity"
	"github.com/futig/ums-chatbot/internal/telegram/render"
	"github.com/futig/ums-chatbot/internal/usecase/chat"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ChatHandler maps Telegram chats onto conversations with the relay
type ChatHandler struct {
	bot    BotAPI
	store  ConversationStore
	sender *MessageSender
}

func NewChatHandler(bot BotAPI, store ConversationStore, sender *MessageSender) *ChatHandler {
	return &ChatHandler{
		bot:    bot,
		store:  store,
		sender: sender,
	}
}

// HandleCommand handles bot commands
func (h *ChatHandler) HandleCommand(ctx context.Context, msg *Message, command string) error {
	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", msg.UserID),
	)

	switch command {
	case CommandStart:
		conv := h.store.Reset(msg.ChatID)
		connected := conv.CheckConnection(ctx)
		greeting := conv.Messages()[0].Text
		return h.sender.Send(ctx, msg.ChatID, render.Welcome(greeting, connected))

	case CommandHelp:
		return h.sender.Send(ctx, msg.ChatID, render.MsgHelp)

	case CommandStatus:
		conv, created := h.store.Get(msg.ChatID)
		connected := conv.IsConnected()
		if created || !connected {
			connected = conv.CheckConnection(ctx)
		}
		return h.sender.Send(ctx, msg.ChatID, render.StatusLine(connected))

	case CommandHistory:
		conv := h.conversation(ctx, msg.ChatID)
		return h.sender.Send(ctx, msg.ChatID, render.Transcript(conv.Messages()))

	default:
		return h.sender.Send(ctx, msg.ChatID, render.MsgUnknownCommand)
	}
}

// HandleText forwards a question and replies with the answer or a fallback
func (h *ChatHandler) HandleText(ctx context.Context, msg *Message) error {
	if strings.TrimSpace(msg.Text) == "" {
		return nil
	}

	conv := h.conversation(ctx, msg.ChatID)
	if conv.IsLoading() {
		return h.sender.Send(ctx, msg.ChatID, render.MsgStillThinking)
	}

	typing := NewTypingNotifier(h.bot, msg.ChatID)
	typing.Start(ctx)
	reply, err := conv.Send(ctx, msg.Text)
	typing.Stop()

	switch {
	case errors.Is(err, entity.ErrRequestInFlight):
		return h.sender.Send(ctx, msg.ChatID, render.MsgStillThinking)
	case errors.Is(err, entity.ErrEmptyMessage):
		return nil
	case err != nil:
		return err
	}

	return h.sender.Send(ctx, msg.ChatID, reply.Text)
}

// conversation returns the chat's conversation, probing the relay once when
// it is new
func (h *ChatHandler) conversation(ctx context.Context, chatID int64) *chat.Conversation {
	conv, created := h.store.Get(chatID)
	if created {
		conv.CheckConnection(ctx)
	}
	return conv
}

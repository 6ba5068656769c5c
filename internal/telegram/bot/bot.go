package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/ums-chatbot/internal/config"
	"github.com/futig/ums-chatbot/internal/telegram/handlers"
	"github.com/futig/ums-chatbot/internal/telegram/middleware"
	"github.com/futig/ums-chatbot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	handler     handlers.Handler
	logger      *zap.Logger
	recovery    func(ctx context.Context, update tgbotapi.Update, next middleware.Next)
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	loopDone    chan struct{}
	slots       chan struct{}
	wg          sync.WaitGroup
}

// New authorizes against the Bot API. The handler is created from the
// authorized client so replies go through the same connection.
func New(
	cfg *config.TelegramConfig,
	newHandler func(api handlers.BotAPI) handlers.Handler,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return &Bot{
		api:      api,
		cfg:      cfg,
		handler:  newHandler(api),
		logger:   logger,
		recovery: middleware.Recovery(api, render.MsgPanic),
		stopChan: make(chan struct{}),
		slots:    make(chan struct{}, cfg.MaxConcurrentUsers),
	}, nil
}

// Start starts long polling in the background
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)
	b.loopDone = make(chan struct{})

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops polling and waits for in-flight updates
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	if err := b.drain(time.Duration(b.cfg.ShutdownTimeout) * time.Second); err != nil {
		return err
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// drain waits for the update loop to exit and then for its handlers. The loop
// is the only caller of wg.Add, so Wait never races with it.
func (b *Bot) drain(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		if b.loopDone != nil {
			<-b.loopDone
		}
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
		return nil
	case <-time.After(timeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", timeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}
}

func (b *Bot) processUpdates(ctx context.Context) {
	defer close(b.loopDone)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			b.logger.Info("stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}

			// Bound the number of updates handled at once
			select {
			case b.slots <- struct{}{}:
			case <-b.stopChan:
				return
			}

			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer func() {
					<-b.slots
					b.wg.Done()
				}()
				b.handleUpdate(ctx, u)
			}(update)
		}
	}
}

// handleUpdate runs one update through logging, recovery and routing
func (b *Bot) handleUpdate(parent context.Context, update tgbotapi.Update) {
	ctx := ctxzap.ToContext(parent, b.logger)

	middleware.Logging(ctx, update, func(ctx context.Context, u tgbotapi.Update) {
		b.recovery(ctx, u, b.route)
	})
}

func (b *Bot) route(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Chat == nil {
		return
	}

	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}
	if message.From != nil {
		msg.UserID = message.From.ID
	}

	var err error
	if message.IsCommand() {
		err = b.handler.HandleCommand(ctx, msg, message.Command())
	} else {
		err = b.handler.HandleText(ctx, msg)
	}

	if err != nil {
		ctxzap.Error(ctx, "handler error", zap.Error(err))
	}
}

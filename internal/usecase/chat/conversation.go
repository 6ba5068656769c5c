package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/futig/ums-chatbot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	Greeting = "Hello! I'm your UMS Chatbot assistant. I can help you with course registration, " +
		"prerequisites, schedules, and other university-related questions. What would you like to know?"

	// FallbackNoAnswer is shown when the relay succeeded but carried no answer
	FallbackNoAnswer = "Sorry, I couldn't process your question. Please try again."
	// FallbackUnreachable is shown for every other failure
	FallbackUnreachable = "Sorry, I'm having trouble connecting to the server. Please try again later."
)

type RelayConnector interface {
	Ask(ctx context.Context, question string) (string, error)
	Ping(ctx context.Context) error
}

type Option func(*Conversation)

// WithClock overrides the source of message timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		c.now = now
	}
}

// WithGreeting replaces the opening bot message
func WithGreeting(text string) Option {
	return func(c *Conversation) {
		c.greeting = text
	}
}

// Conversation is one volatile chat thread. It allows at most one outstanding
// question at a time and is safe for concurrent use.
type Conversation struct {
	relay    RelayConnector
	now      func() time.Time
	greeting string

	mu        sync.Mutex
	messages  []entity.Message
	lastID    int
	loading   bool
	connected bool
}

func NewConversation(relay RelayConnector, opts ...Option) *Conversation {
	c := &Conversation{
		relay:    relay,
		now:      time.Now,
		greeting: Greeting,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.appendLocked(c.greeting, entity.SenderBot)
	return c
}

// CanSend reports whether Send would issue a request for text
func (c *Conversation) CanSend(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return strings.TrimSpace(text) != "" && !c.loading
}

// Send appends the student's message, asks the relay and appends the bot's
// reply. Relay failures never surface as errors: they become a fallback reply.
func (c *Conversation) Send(ctx context.Context, text string) (*entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entity.ErrEmptyMessage
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil, entity.ErrRequestInFlight
	}
	c.appendLocked(text, entity.SenderStudent)
	c.loading = true
	c.mu.Unlock()

	reply := c.ask(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	msg := c.appendLocked(reply, entity.SenderBot)
	c.loading = false

	return &msg, nil
}

func (c *Conversation) ask(ctx context.Context, question string) string {
	answer, err := c.relay.Ask(ctx, question)
	if err != nil {
		ctxzap.Warn(ctx, "error querying relay", zap.Error(err))
		return FallbackUnreachable
	}

	if answer == "" {
		return FallbackNoAnswer
	}

	return answer
}

// CheckConnection probes the relay once and records the result. Failures are
// logged, not returned.
func (c *Conversation) CheckConnection(ctx context.Context) bool {
	err := c.relay.Ping(ctx)
	if err != nil {
		ctxzap.Warn(ctx, "server connection failed", zap.Error(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.connected = err == nil
	return c.connected
}

// Messages returns a copy of the thread in append order
func (c *Conversation) Messages() []entity.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]entity.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loading
}

func (c *Conversation) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connected
}

func (c *Conversation) appendLocked(text string, sender entity.Sender) entity.Message {
	c.lastID++
	msg := entity.NewMessage(c.lastID, text, sender, c.now())
	c.messages = append(c.messages, msg)
	return msg
}

package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/ums-chatbot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRelay struct {
	answer  string
	err     error
	pingErr error
	release chan struct{}
	started chan struct{}
	asked   []string
}

func (f *fakeRelay) Ask(_ context.Context, question string) (string, error) {
	f.asked = append(f.asked, question)
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.answer, f.err
}

func (f *fakeRelay) Ping(_ context.Context) error {
	return f.pingErr
}

var fixedClock = WithClock(func() time.Time { return time.Date(2025, 9, 1, 14, 5, 0, 0, time.UTC) })

func TestNewConversationStartsWithGreeting(t *testing.T) {
	conv := NewConversation(&fakeRelay{}, fixedClock)

	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, entity.Message{ID: 1, Text: Greeting, Sender: entity.SenderBot, Timestamp: "14:05"}, msgs[0])
	assert.False(t, conv.IsLoading())
	assert.False(t, conv.IsConnected())
}

func TestSendAppendsStudentAndBotMessages(t *testing.T) {
	relay := &fakeRelay{answer: "CS301 requires CS201."}
	conv := NewConversation(relay, fixedClock)

	reply, err := conv.Send(context.Background(), "What are the prerequisites for CS301?")
	require.NoError(t, err)

	assert.Equal(t, "CS301 requires CS201.", reply.Text)
	assert.Equal(t, []string{"What are the prerequisites for CS301?"}, relay.asked)

	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, entity.Message{ID: 2, Text: "What are the prerequisites for CS301?", Sender: entity.SenderStudent, Timestamp: "14:05"}, msgs[1])
	assert.Equal(t, entity.Message{ID: 3, Text: "CS301 requires CS201.", Sender: entity.SenderBot, Timestamp: "14:05"}, msgs[2])
	assert.False(t, conv.IsLoading())
}

func TestSendRejectsBlankInput(t *testing.T) {
	relay := &fakeRelay{answer: "x"}
	conv := NewConversation(relay)

	for _, text := range []string{"", "  ", "\n\t"} {
		assert.False(t, conv.CanSend(text))

		_, err := conv.Send(context.Background(), text)
		assert.ErrorIs(t, err, entity.ErrEmptyMessage)
	}

	assert.Empty(t, relay.asked)
	assert.Len(t, conv.Messages(), 1)
}

func TestSendFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		relay *fakeRelay
		want  string
	}{
		{name: "empty answer", relay: &fakeRelay{answer: ""}, want: FallbackNoAnswer},
		{name: "relay error status", relay: &fakeRelay{err: entity.ErrRelayStatus}, want: FallbackUnreachable},
		{name: "relay unreachable", relay: &fakeRelay{err: errors.New("dial tcp: refused")}, want: FallbackUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConversation(tt.relay)

			reply, err := conv.Send(context.Background(), "hello")
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Text)
			assert.Equal(t, entity.SenderBot, reply.Sender)
			assert.False(t, conv.IsLoading())
		})
	}
}

func TestSendRejectsSecondQuestionWhileLoading(t *testing.T) {
	relay := &fakeRelay{
		answer:  "first answer",
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	conv := NewConversation(relay)

	done := make(chan *entity.Message)
	go func() {
		reply, _ := conv.Send(context.Background(), "first")
		done <- reply
	}()

	<-relay.started
	assert.True(t, conv.IsLoading())
	assert.False(t, conv.CanSend("second"))

	_, err := conv.Send(context.Background(), "second")
	assert.ErrorIs(t, err, entity.ErrRequestInFlight)

	close(relay.release)
	reply := <-done
	assert.Equal(t, "first answer", reply.Text)

	assert.Equal(t, []string{"first"}, relay.asked)
	assert.Len(t, conv.Messages(), 3)
	assert.True(t, conv.CanSend("second"))
}

func TestCheckConnection(t *testing.T) {
	relay := &fakeRelay{}
	conv := NewConversation(relay)

	assert.True(t, conv.CheckConnection(context.Background()))
	assert.True(t, conv.IsConnected())

	relay.pingErr = entity.ErrRelayUnreachable
	assert.False(t, conv.CheckConnection(context.Background()))
	assert.False(t, conv.IsConnected())
}

func TestMessagesReturnsCopy(t *testing.T) {
	conv := NewConversation(&fakeRelay{}, WithGreeting("hi"))

	msgs := conv.Messages()
	msgs[0].Text = "changed"

	assert.Equal(t, "hi", conv.Messages()[0].Text)
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/futig/ums-chatbot/internal/entity"
	"github.com/futig/ums-chatbot/internal/usecase/chat"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	cmdQuit    = "/quit"
	cmdExit    = "/exit"
	cmdHistory = "/history"
	cmdHelp    = "/help"

	// maxLineSize matches the relay's request body limit
	maxLineSize = 1 << 20

	helpText = `Commands:
  /history  show the conversation so far
  /help     show this help
  /quit     leave the chat`
)

// Session is an interactive terminal chat over one conversation
type Session struct {
	conv *chat.Conversation
	in   io.Reader
	out  io.Writer
}

func NewSession(conv *chat.Conversation, in io.Reader, out io.Writer) *Session {
	return &Session{
		conv: conv,
		in:   in,
		out:  out,
	}
}

// Run probes the relay once, then reads one question per line until the input
// ends, /quit is typed or ctx is cancelled
func (s *Session) Run(ctx context.Context) error {
	connected := s.conv.CheckConnection(ctx)
	s.printHeader(connected)

	for _, msg := range s.conv.Messages() {
		s.printMessage(msg)
	}

	// Releases the reader once the session ends
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go s.readLines(ctx, lines, readErr)

	for {
		s.prompt()

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case err := <-readErr:
			return err
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return nil
			}
			line = l
		}

		switch strings.TrimSpace(line) {
		case cmdQuit, cmdExit:
			return nil
		case cmdHistory:
			for _, msg := range s.conv.Messages() {
				s.printMessage(msg)
			}
			continue
		case cmdHelp:
			fmt.Fprintln(s.out, helpText)
			continue
		}

		if !s.conv.CanSend(line) {
			continue
		}

		fmt.Fprintln(s.out, "Thinking...")
		reply, err := s.conv.Send(ctx, line)
		if err != nil {
			if errors.Is(err, entity.ErrEmptyMessage) || errors.Is(err, entity.ErrRequestInFlight) {
				continue
			}
			return err
		}

		ctxzap.Debug(ctx, "reply received", zap.Int("message_id", reply.ID))
		s.printMessage(*reply)
	}
}

func (s *Session) readLines(ctx context.Context, lines chan<- string, errs chan<- error) {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		errs <- fmt.Errorf("read input: %w", err)
		return
	}
	close(lines)
}

func (s *Session) printHeader(connected bool) {
	status := "Offline"
	if connected {
		status = "Online"
	}
	fmt.Fprintf(s.out, "UMS Chatbot - %s\nType %s for commands.\n\n", status, cmdHelp)
}

func (s *Session) printMessage(msg entity.Message) {
	who := "Bot"
	if msg.Sender == entity.SenderStudent {
		who = "You"
	}
	fmt.Fprintf(s.out, "[%s] %s: %s\n", msg.Timestamp, who, msg.Text)
}

func (s *Session) prompt() {
	fmt.Fprint(s.out, "> ")
}

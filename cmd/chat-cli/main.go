package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/futig/ums-chatbot/internal/builder"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
)

func main() {
	session, logger, err := builder.BuildChatCLI()
	if err != nil {
		log.Fatal("Failed to build chat client: ", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctxzap.ToContext(ctx, logger)); err != nil {
		logger.Sugar().Errorf("chat session ended with error: %v", err)
		os.Exit(1)
	}
}

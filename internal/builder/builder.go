package builder

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/futig/ums-chatbot/internal/api"
	relayapi "github.com/futig/ums-chatbot/internal/api/relay"
	"github.com/futig/ums-chatbot/internal/cli"
	"github.com/futig/ums-chatbot/internal/config"
	"github.com/futig/ums-chatbot/internal/integration/answer"
	relayclient "github.com/futig/ums-chatbot/internal/integration/relay"
	"github.com/futig/ums-chatbot/internal/pkg/logger"
	"github.com/futig/ums-chatbot/internal/telegram"
	"github.com/futig/ums-chatbot/internal/usecase/chat"
	relayuc "github.com/futig/ums-chatbot/internal/usecase/relay"
	"go.uber.org/zap"
)

// Build assembles the relay server
func Build() (*App, error) {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return nil, err
	}

	log.Info("Building relay server",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("upstream_url", cfg.AnswerConnectorCfg.Url),
	)

	var answerConnector relayuc.AnswerConnector
	if cfg.EnableMocks {
		log.Info("Using mock answer service")
		answerConnector = answer.NewMockConnector(log)
	} else {
		answerConnector = answer.NewConnector(cfg.AnswerConnectorCfg, log)
	}

	relayUC := relayuc.NewUsecase(answerConnector, log)
	relayHandler := relayapi.NewHandler(relayUC)

	router := api.SetupRouter(relayHandler, api.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	}, log)

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       60 * time.Second,
	}

	log.Info("Relay server built successfully")

	return &App{
		server: server,
		logger: log,
	}, nil
}

// writeTimeout outlives the tightest deadline on the request path so a late
// answer or its error still reaches the caller. With no deadline configured
// writes are unbounded.
func writeTimeout(cfg *config.Config) time.Duration {
	var bound time.Duration
	for _, d := range []time.Duration{cfg.RequestTimeout, cfg.AnswerConnectorCfg.RequestTimeout} {
		if d > 0 && (bound == 0 || d < bound) {
			bound = d
		}
	}
	if bound == 0 {
		return 0
	}
	return bound + 5*time.Second
}

// BuildTelegramBot assembles the Telegram front-end
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.TelegramCfg.ValidateTelegram(); err != nil {
		return nil, nil, fmt.Errorf("invalid telegram configuration: %w", err)
	}

	log.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
		zap.String("relay_url", cfg.ClientCfg.RelayURL),
	)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, relayclient.NewConnector(cfg.ClientCfg, log), log)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	return bot, log, nil
}

// BuildChatCLI assembles the terminal front-end on stdin/stdout
func BuildChatCLI() (*cli.Session, *zap.Logger, error) {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return nil, nil, err
	}

	conv := chat.NewConversation(relayclient.NewConnector(cfg.ClientCfg, log))

	return cli.NewSession(conv, os.Stdin, os.Stdout), log, nil
}

func loadConfigAndLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	return cfg, log, nil
}

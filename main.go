package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"

	"github.com/twacha/skincare-assistant/pkg/api"
	"github.com/twacha/skincare-assistant/pkg/auth"
	"github.com/twacha/skincare-assistant/pkg/database"
	"github.com/twacha/skincare-assistant/pkg/gemini"
	"github.com/twacha/skincare-assistant/pkg/logger"
	"github.com/twacha/skincare-assistant/pkg/repository"
	"github.com/twacha/skincare-assistant/pkg/service"
	"github.com/twacha/skincare-assistant/pkg/services"
	"github.com/twacha/skincare-assistant/pkg/storage"
)

type Config struct {
	GeminiAPIKey string   `env:"GEMINI_API_KEY,required"`
	GeminiModel  string   `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	DatabasePath string   `env:"DATABASE_PATH" envDefault:"twacha.db"`
	ListenAddr   string   `env:"LISTEN_ADDR" envDefault:":8080"`
	APITokens    []string `env:"API_TOKENS" envSeparator:" "`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	serviceGroup, err := setupServices(ctx)
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return serviceGroup.Run(ctx)
}

func setupServices(ctx context.Context) (service.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	db, err := database.NewSQLite(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}

	blobStore := storage.NewSQLiteBlobStore(db, storage.HistoryKey)

	sessionRepository, err := repository.NewSessionRepository(ctx, blobStore)
	if err != nil {
		return nil, fmt.Errorf("creating session repository: %w", err)
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	consultationService := services.NewConsultationService(sessionRepository, geminiClient)
	authenticator := auth.NewAuthenticator(cfg.APITokens)

	router := api.NewRouter(sessionRepository, consultationService, consultationService, authenticator)

	return service.Group{
		service.NewHTTPServer(cfg.ListenAddr, router),
	}, nil
}

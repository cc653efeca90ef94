package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/ward-bot/backend/internal/config"
	"github.com/zhouzirui/ward-bot/backend/internal/handler"
	"github.com/zhouzirui/ward-bot/backend/internal/logger"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
	"github.com/zhouzirui/ward-bot/backend/internal/service/chat"
)

const janitorInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is optional; the process environment wins.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log, err := logger.New(os.Stdout, "ward-bot", cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to build logger")
	}
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file, using process environment only")
	}

	source, err := openContent(ctx, cfg.Content, log)
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("failed to load content")
	}

	chatService := chat.NewService(source, chat.Config{
		HistoryLimit: cfg.Session.HistoryLimit,
		RandomSeed:   cfg.Session.RandomSeed,
		Now:          cfg.Session.Now,
		IdleTTL:      cfg.Session.IdleTTL,
	}, log)
	go chatService.RunJanitor(ctx, janitorInterval)

	router := handler.NewRouter(source, chatService, log)

	startServer(ctx, cfg.Server, router, log)
}

// openContent picks the built-in seed, a one-shot file load, or a watched file.
func openContent(ctx context.Context, cfg config.ContentConfig, log zerolog.Logger) (content.Source, error) {
	if cfg.Path == "" {
		log.Info().Msg("serving built-in content")
		return content.Static(content.NewMemoryStore(content.Seed())), nil
	}

	if !cfg.Watch {
		tables, err := content.Load(cfg.Path)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "load %s", cfg.Path)
		}
		log.Info().Str("path", cfg.Path).Msg("serving content file")
		return content.Static(content.NewMemoryStore(tables)), nil
	}

	w, err := content.NewWatcher(cfg.Path, log)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "watch %s", cfg.Path)
	}
	go func() {
		w.Run(ctx)
		_ = w.Close()
	}()
	log.Info().Str("path", cfg.Path).Msg("serving content file with hot reload")
	return w, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log zerolog.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("ward bot listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

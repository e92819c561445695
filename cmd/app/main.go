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

	"github.com/stroyservice/intake-system/internal/api"
	"github.com/stroyservice/intake-system/internal/bot"
	"github.com/stroyservice/intake-system/internal/core/ports"
	"github.com/stroyservice/intake-system/internal/core/service"
	"github.com/stroyservice/intake-system/internal/infrastructure/config"
	redisdb "github.com/stroyservice/intake-system/internal/infrastructure/db/redis"
	"github.com/stroyservice/intake-system/internal/infrastructure/process"
	"github.com/stroyservice/intake-system/internal/infrastructure/queue"
	"github.com/stroyservice/intake-system/internal/infrastructure/storage"
	"github.com/stroyservice/intake-system/internal/infrastructure/telegram"
	"github.com/stroyservice/intake-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Local development convenience; absent .env is fine in production.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log, err := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
		File:   cfg.LogPath,
	})
	if err != nil {
		panic(err)
	}

	// --- State ---
	roleStore := storage.NewRoleStore(cfg.KeysPath, log)
	orderStore := storage.NewOrderStore(cfg.OrdersPath, log)
	logFile := storage.NewLogFile(cfg.LogPath)

	// --- Optional duplicate-submission guard ---
	var guard ports.SubmissionGuard
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, duplicate-submission guard disabled")
		} else {
			defer client.Close()
			guard = redisdb.NewSubmissionGuard(client)
		}
	}

	// --- Telegram transport ---
	tg, err := telegram.New(cfg.BotToken, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise telegram transport")
	}

	// --- Notification fan-out ---
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, tg, log)
	dispatcher.Start(ctx)
	notifier := service.NewNotifyService(roleStore, dispatcher, log)

	// --- Web intake ---
	intake := service.NewIntakeService(orderStore, notifier, guard, log)
	e := api.NewRouter(intake, log)

	// --- Bot dispatchers ---
	b := bot.New(tg, tg, roleStore, orderStore, logFile, process.ReExec, log)
	go tg.Poll(ctx, b)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("order intake service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

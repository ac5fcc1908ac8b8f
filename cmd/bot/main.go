package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"excelbot/cmd/internal/bot"
	"excelbot/cmd/internal/config"
	"excelbot/cmd/internal/contract"
	"excelbot/cmd/internal/domain/database"
	"excelbot/cmd/internal/domain/database/repository"
	"excelbot/cmd/internal/domain/policy"
	"excelbot/cmd/internal/http/handler"
	webhookmw "excelbot/cmd/internal/http/middleware"
	"excelbot/cmd/internal/infrastructure/aws/parameters"
	"excelbot/cmd/internal/infrastructure/session"
	"excelbot/cmd/internal/infrastructure/telegram"
	"excelbot/cmd/internal/service"
	"excelbot/cmd/internal/service/jobs"
	"excelbot/cmd/internal/utils/validators"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const (
	queueSize       = 64
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	loadEnv(ctx)

	if err := run(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

// run serves until ctx is done or a background task fails. Either way the
// same shutdown runs: HTTP server, worker pool, then sessions and database.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log.SetLevel(cfg.Level())

	// Init database
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	sessions, closeSessions, err := initSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	client, err := telegram.NewBotClient(cfg.BotToken)
	if err != nil {
		return err
	}

	// Getting repos
	noteRepo := repository.NewNoteRepository(db)
	userRepo := repository.NewUserRepository(db)

	adminID, hasAdmin := cfg.Admin()
	notePolicy := policy.NewNotePolicy(adminID, hasAdmin)

	// Getting services
	userService := service.NewUserService(userRepo)
	uploadService := service.NewUploadService(noteRepo, sessions, validators.New())
	noteService := service.NewNoteService(noteRepo, client, notePolicy)
	adminService := service.NewAdminService(userRepo, noteRepo, client, notePolicy)

	dispatcher := bot.NewDispatcher(userService, uploadService, noteService, adminService, client)
	pool := bot.NewWorkerPool(dispatcher, cfg.Workers, queueSize)
	// Queued updates are still handled after a signal, pool.Stop waits for them.
	pool.Start(context.WithoutCancel(ctx))
	defer pool.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.Level())
	e.Use(middleware.Recover())
	// The webhook URI is the bot token, it must never reach the access log.
	e.Use(webhookmw.NewAccessLogger(nil, handler.WebhookPath))

	// Uptime pingers
	e.GET("/", handler.Alive)
	e.GET("/health", handler.Health)

	// Background tasks report here instead of exiting, so shutdown still runs.
	failures := make(chan error, 2)

	if endpoint := cfg.WebhookEndpoint(); endpoint != "" {
		if err := client.SetWebhook(endpoint, cfg.WebhookSecret); err != nil {
			return err
		}

		webhookRoute := handler.NewWebhookRoute(cfg.BotToken, client, pool)
		e.POST(handler.WebhookPath, webhookRoute.Receive, webhookmw.NewWebhookSecretMiddleware(cfg.WebhookSecret))
		log.Infof("%s is receiving updates through its webhook", contract.BotName)
	} else {
		go func() {
			if err := poll(ctx, client, pool); err != nil {
				failures <- err
			}
		}()
	}

	go func() {
		if err := e.Start(":" + strconv.Itoa(cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failures <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	runErr := awaitShutdown(ctx, failures)
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http server shutdown: %v", err)
	}
	return runErr
}

// awaitShutdown blocks until ctx is done (nil) or a background task fails
// (its error).
func awaitShutdown(ctx context.Context, failures <-chan error) error {
	select {
	case <-ctx.Done():
		return nil
	case err := <-failures:
		return err
	}
}

func loadEnv(ctx context.Context) {
	boot, err := config.LoadBootstrap()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if !boot.IsProduction() {
		// A missing .env is fine, the variables may already be set.
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("unable to read .env: %v", err)
		}
		return
	}

	// AWS SSM Parameter Store
	src, err := parameters.NewSSMSource(ctx, boot.AWSRegion)
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	if _, err := parameters.ExportPath(ctx, src, boot.SSMPath); err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}
}

// initSessions picks Redis when configured so uploads survive restarts,
// otherwise an in-memory store swept by the session cleaner.
func initSessions(ctx context.Context, cfg *config.Config) (service.SessionStore, func(), error) {
	if cfg.RedisAddr == "" {
		store := session.NewMemoryStore()
		go jobs.NewSessionCleaner(store, cfg.SessionTTL).Start(ctx)
		return store, func() {}, nil
	}

	store, err := session.NewRedisStore(ctx, &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.SessionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	log.Infof("upload sessions are stored in redis at %s", cfg.RedisAddr)
	return store, func() { _ = store.Close() }, nil
}

func poll(ctx context.Context, client *telegram.BotClient, pool *bot.WorkerPool) error {
	log.Infof("%s is polling for updates", contract.BotName)

	err := client.Poll(ctx, func(upd contract.Update) {
		if err := pool.Submit(ctx, upd); err != nil {
			log.Warnf("dropping update from user %d: %v", upd.From.ID, err)
		}
	})
	if err != nil {
		return fmt.Errorf("polling stopped: %w", err)
	}
	return nil
}

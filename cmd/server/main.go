// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sponsornest/internal/api/router"
	"sponsornest/internal/common/config"
	"sponsornest/internal/common/database"
	"sponsornest/internal/common/logger"
	"sponsornest/internal/common/mail"
	"sponsornest/internal/common/observability"
	"sponsornest/internal/handlers/createevent"
	"sponsornest/internal/handlers/matchsponsors"
	"sponsornest/internal/handlers/notifyinterest"
	"sponsornest/internal/handlers/notifysponsors"
	"sponsornest/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting sponsornest server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Document store ---
	documents := store.New(pg.DB, log, config.GetDuration(cfg.Matching.StoreTimeout))
	if err := documents.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("document schema setup failed", zap.Error(err))
	}

	providers := store.NewProviderSource(
		documents,
		redis.Client,
		config.GetDuration(cfg.Matching.SnapshotTTL),
		log,
	)

	// --- Mail transport ---
	mailer, err := mail.New(ctx, cfg.Mail, log)
	if err != nil {
		zapLog.Fatal("mail transport setup failed", zap.Error(err))
	}
	zapLog.Info("Mail transport initialized", zap.String("provider", cfg.Mail.Provider))

	// --- Handlers ---
	handlers := router.Handlers{
		MatchSponsors:  matchsponsors.NewHandler(matchsponsors.LoadConfig(cfg), providers, documents, log),
		NotifySponsors: notifysponsors.NewHandler(notifysponsors.LoadConfig(cfg), mailer, documents, log),
		NotifyInterest: notifyinterest.NewHandler(notifyinterest.LoadConfig(cfg), mailer, documents, log),
		CreateEvent:    createevent.NewHandler(createevent.LoadConfig(cfg), documents, log),
	}

	engine := router.New(handlers, obs, log, cfg.App.Environment)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Server stopped")
}

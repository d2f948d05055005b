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
	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/auth"
	"budget/internal/backend"
	"budget/internal/cache"
	"budget/internal/config"
	apphttp "budget/internal/http"
	"budget/internal/ledger"
	"budget/internal/livequery"
	"budget/internal/log"
	"budget/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentApp)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.WithComponent(log.ComponentBackend))
	result, err := factory.Create(cfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldError, err.Error(), "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err.Error())
			}
		}
	}()

	hub := livequery.NewHub(result.Store, result.Store, logger.WithComponent(log.ComponentLiveQuery))
	defer hub.Close()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summaries := cache.NewSummaryCache(128, 5*time.Minute)
	summaries.StartSweeper(rootCtx, 10*time.Minute)

	// Local writes fan out to the hub (snapshot refresh), the summary
	// cache (invalidation) and, when configured, the AMQP exchange so
	// other processes refresh too.
	sinks := store.MultiSink{hub, summaries}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, logger.WithComponent(log.ComponentAMQP))
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without cross-process sync",
				log.FieldError, err.Error())
		} else {
			defer amqpClient.Close()
			sinks = append(sinks, amqpClient)
			logger.Info("Initialized AMQP change broadcasting", "exchange", cfg.AMQPExchange)
		}
	}

	editor := ledger.NewEditor(result.Store, result.Store, sinks, logger.WithComponent(log.ComponentLedger))
	seeder := ledger.NewCategorySeeder(result.Store, sinks, logger.WithComponent(log.ComponentSeeding))

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	session := auth.NewSession()
	session.SetUnauthenticated()
	authSvc := auth.NewService(result.Store, tokens, session, seeder, logger.WithComponent(log.ComponentAuth))

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Auth:      authSvc,
		Tokens:    tokens,
		Editor:    editor,
		Seeder:    seeder,
		Hub:       hub,
		Txs:       result.Store,
		Cats:      result.Store,
		Summaries: summaries,
		Logger:    logger.WithComponent(log.ComponentHTTP),
	})
	// No WriteTimeout: the SSE stream holds its response open.
	srv.IdleTimeout = 120 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		logger.Info("Starting budget server",
			log.FieldOperation, log.OpStartup,
			"port", cfg.Port,
			"backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if amqpClient != nil {
		// Changes from other processes reach this one's subscribers and
		// invalidate its cached summaries.
		g.Go(func() error {
			err := amqpClient.ConsumeChanges(ctx, func(ch store.Change) {
				hub.Notify(ctx, ch)
				_ = summaries.Publish(ctx, ch)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

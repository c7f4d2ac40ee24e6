package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pratoria-backoffice-service/internal/config"
	"pratoria-backoffice-service/internal/db"
	httpapi "pratoria-backoffice-service/internal/http"
	"pratoria-backoffice-service/internal/logger"
	"pratoria-backoffice-service/internal/queue"
	"pratoria-backoffice-service/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	var queueClient *queue.Client
	if cfg.RabbitMQURL != "" {
		qc, err := queue.New(cfg.RabbitMQURL)
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq connection failed", zap.Error(err))
			}
			log.Warn("rabbitmq connection failed; continuing without events", zap.Error(err))
		} else if err := qc.EnsureTopology(); err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq topology failed", zap.Error(err))
			}
			log.Warn("rabbitmq topology failed; continuing without events", zap.Error(err))
			_ = qc.Close()
		} else {
			log.Info("report events enabled", zap.String("exchange", queue.EventsExchange))
			queueClient = qc
			defer qc.Close()
		}
	} else {
		log.Info("report events disabled (RABBITMQ_URL is empty)")
	}

	var exports *storage.ObjectStore
	if cfg.ObjectStoreEndpoint != "" {
		exports, err = storage.NewObjectStore(ctx, storage.Config{
			Endpoint:        cfg.ObjectStoreEndpoint,
			Region:          cfg.ObjectStoreRegion,
			AccessKeyID:     cfg.ObjectStoreAccessKeyID,
			SecretAccessKey: cfg.ObjectStoreSecretAccessKey,
			Bucket:          cfg.ObjectStoreBucket,
			PublicBaseURL:   cfg.ObjectStorePublicBaseURL,
			StorageClass:    cfg.ObjectStoreStorageClass,
		})
		if err != nil {
			log.Warn("object store unavailable; report exports disabled", zap.Error(err))
			exports = nil
		}
	} else {
		log.Info("report exports disabled (OBJECT_STORE_ENDPOINT is empty)")
	}

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(pool, log, cfg, queueClient, exports),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("backoffice report api ready", zap.String("base", "/api/backoffice"))
		log.Info("backoffice service listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}

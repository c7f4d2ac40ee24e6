package httpapi

import (
	"net/http"

	"pratoria-backoffice-service/internal/config"
	"pratoria-backoffice-service/internal/http/handlers"
	"pratoria-backoffice-service/internal/middleware"
	"pratoria-backoffice-service/internal/queue"
	"pratoria-backoffice-service/internal/report"
	"pratoria-backoffice-service/internal/storage"
	"pratoria-backoffice-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func NewRouter(db *pgxpool.Pool, logger *zap.Logger, cfg config.Config, queueClient *queue.Client, exports *storage.ObjectStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Telemetry(logger))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}

		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}

		r.Use(cors.Handler(options))
	}

	orders := store.NewOrderStore(db)
	h := &handlers.Handler{
		DB:      db,
		Logger:  logger,
		Config:  cfg,
		Reports: report.NewService(orders, logger),
		Orders:  orders,
		Queue:   queueClient,
		Exports: exports,
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/backoffice", func(r chi.Router) {
		r.Use(middleware.StoreAuth(db, cfg.JWTSecret))

		r.Get("/reports", h.BackofficeReport)
		r.Get("/reports/summary", h.BackofficeReportSummary)
		r.Post("/reports/export", h.BackofficeReportExport)
		r.Get("/reports/exports", h.BackofficeReportExportList)
	})

	r.Route("/api/cron", func(r chi.Router) {
		r.Use(middleware.CronAuth(cfg.CronSecret))

		r.Post("/daily-digest", h.CronDailyDigest)
	})

	return r
}

package handlers

import (
	"pratoria-backoffice-service/internal/config"
	"pratoria-backoffice-service/internal/queue"
	"pratoria-backoffice-service/internal/report"
	"pratoria-backoffice-service/internal/storage"
	"pratoria-backoffice-service/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Handler carries the injected dependencies for every endpoint. Queue and
// Exports are optional; endpoints degrade when they are nil.
type Handler struct {
	DB      *pgxpool.Pool
	Logger  *zap.Logger
	Config  config.Config
	Reports *report.Service
	Orders  *store.OrderStore
	Queue   *queue.Client
	Exports *storage.ObjectStore
}

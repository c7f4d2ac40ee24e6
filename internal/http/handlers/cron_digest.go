package handlers

import (
	"context"
	"net/http"
	"time"

	"pratoria-backoffice-service/internal/queue"
	"pratoria-backoffice-service/internal/report"
	"pratoria-backoffice-service/pkg/response"

	"go.uber.org/zap"
)

// CronDailyDigest computes yesterday's report for every active store and
// publishes one digest event per store. Invoked by an external scheduler
// through the cron-auth route; per-store failures are logged and skipped so
// one broken store never blocks the rest.
func (h *Handler) CronDailyDigest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Queue == nil {
		response.Error(w, http.StatusServiceUnavailable, "QUEUE_DISABLED", "Digest publishing requires the event queue")
		return
	}

	storeIDs, err := h.listActiveStoreIDs(ctx)
	if err != nil {
		h.Logger.Error("digest store listing failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list stores")
		return
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := report.PeriodRange{Start: midnight.AddDate(0, 0, -1), End: midnight}
	dayBefore := report.PeriodRange{Start: midnight.AddDate(0, 0, -2), End: midnight.AddDate(0, 0, -1)}

	published := 0
	failed := 0
	for _, storeID := range storeIDs {
		if err := h.publishStoreDigest(ctx, storeID, yesterday, dayBefore); err != nil {
			failed++
			h.Logger.Warn("store digest failed", zap.Int64("storeId", storeID), zapError(err))
			continue
		}
		published++
	}

	h.Logger.Info("daily digest run finished",
		zap.Int("published", published),
		zap.Int("failed", failed))

	response.Success(w, map[string]any{
		"reportDate": yesterday.Start.Format("2006-01-02"),
		"published":  published,
		"failed":     failed,
	})
}

func (h *Handler) publishStoreDigest(ctx context.Context, storeID int64, yesterday, dayBefore report.PeriodRange) error {
	fetchCtx, cancel := context.WithTimeout(ctx, h.Config.FetchTimeout)
	defer cancel()

	current, err := h.Orders.FetchOrders(fetchCtx, storeID, yesterday.Start, yesterday.End)
	if err != nil {
		return err
	}
	prior, err := h.Orders.FetchOrders(fetchCtx, storeID, dayBefore.Start, dayBefore.End)
	if err != nil {
		return err
	}

	bundle := report.BuildBundle(current, prior, report.PeriodDaily, yesterday.Start)
	return h.Queue.PublishDailyDigest(ctx, queue.DailyDigestEvent{
		StoreID:    storeID,
		ReportDate: yesterday.Start.Format("2006-01-02"),
		Bundle:     bundle,
	})
}

func (h *Handler) listActiveStoreIDs(ctx context.Context) ([]int64, error) {
	rows, err := h.DB.Query(ctx, `select id from stores where is_active order by id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pratoria-backoffice-service/internal/middleware"
	"pratoria-backoffice-service/internal/queue"
	"pratoria-backoffice-service/internal/report"
	"pratoria-backoffice-service/pkg/response"

	"go.uber.org/zap"
)

// BackofficeReport serves the full report bundle for the authenticated store.
func (h *Handler) BackofficeReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok || authCtx.StoreID == nil {
		response.Error(w, http.StatusUnauthorized, "STORE_ID_REQUIRED", "Store ID not found")
		return
	}
	storeID := *authCtx.StoreID

	period := report.ParsePeriodType(r.URL.Query().Get("period"))
	now := time.Now()

	cacheBucket := now.Truncate(5 * time.Minute)
	cacheKey := reportCacheKey("bundle", storeID, string(period), cacheBucket.Format(time.RFC3339))
	if cached, ok := getReportCache(cacheKey); ok {
		response.JSON(w, http.StatusOK, cached)
		return
	}

	bundle, err := h.computeBundle(ctx, storeID, period, now)
	if err != nil {
		if errors.Is(err, report.ErrStoreRequired) {
			response.Error(w, http.StatusUnauthorized, "STORE_ID_REQUIRED", "Store ID not found")
			return
		}
		h.Logger.Error("report computation failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute report")
		return
	}

	pair := report.ResolvePeriod(now, period)
	payload := map[string]any{
		"success": true,
		"data":    bundle,
		"meta": map[string]any{
			"period":       string(period),
			"currentStart": pair.Current.Start.Format(time.RFC3339),
			"currentEnd":   pair.Current.End.Format(time.RFC3339),
			"priorStart":   pair.Prior.Start.Format(time.RFC3339),
			"priorEnd":     pair.Prior.End.Format(time.RFC3339),
		},
	}

	if !bundle.IsFallback {
		setReportCache(cacheKey, payload, h.Config.ReportCacheTTL)
	}
	h.publishReportComputed(ctx, storeID, period, now, bundle)

	response.JSON(w, http.StatusOK, payload)
}

// BackofficeReportSummary serves the KPI set without series and breakdowns,
// for lightweight dashboard polling.
func (h *Handler) BackofficeReportSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok || authCtx.StoreID == nil {
		response.Error(w, http.StatusUnauthorized, "STORE_ID_REQUIRED", "Store ID not found")
		return
	}
	storeID := *authCtx.StoreID

	period := report.ParsePeriodType(r.URL.Query().Get("period"))
	now := time.Now()

	cacheBucket := now.Truncate(5 * time.Minute)
	cacheKey := reportCacheKey("summary", storeID, string(period), cacheBucket.Format(time.RFC3339))
	if cached, ok := getReportCache(cacheKey); ok {
		response.JSON(w, http.StatusOK, cached)
		return
	}

	bundle, err := h.computeBundle(ctx, storeID, period, now)
	if err != nil {
		h.Logger.Error("report summary failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute report summary")
		return
	}

	payload := map[string]any{
		"success": true,
		"data": map[string]any{
			"kpis":       bundle.Kpis,
			"isFallback": bundle.IsFallback,
		},
		"meta": map[string]any{"period": string(period)},
	}
	if !bundle.IsFallback {
		setReportCache(cacheKey, payload, h.Config.ReportCacheTTL)
	}

	response.JSON(w, http.StatusOK, payload)
}

// computeBundle applies the configured fetch timeout around the engine call.
// Exceeding it surfaces as a fetch failure inside the engine, which degrades
// to the fallback bundle.
func (h *Handler) computeBundle(ctx context.Context, storeID int64, period report.PeriodType, now time.Time) (report.ReportBundle, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, h.Config.FetchTimeout)
	defer cancel()
	return h.Reports.ComputeReportBundle(fetchCtx, storeID, period, now)
}

func (h *Handler) publishReportComputed(ctx context.Context, storeID int64, period report.PeriodType, now time.Time, bundle report.ReportBundle) {
	if h.Queue == nil {
		return
	}
	event := queue.ReportComputedEvent{
		StoreID:    storeID,
		Period:     string(period),
		ComputedAt: now,
		IsFallback: bundle.IsFallback,
		Kpis:       bundle.Kpis,
	}
	if err := h.Queue.PublishReportComputed(ctx, event); err != nil {
		h.Logger.Warn("report event publish failed", zap.Int64("storeId", storeID), zapError(err))
	}
}

package queue

import (
	"context"
	"time"

	"pratoria-backoffice-service/internal/report"
)

const (
	RouteReportComputed = "report.computed"
	RouteDailyDigest    = "report.digest.daily"
)

// ReportComputedEvent is emitted after every successful bundle computation so
// downstream consumers (digest mailer, audit log) can react without calling
// back into the service.
type ReportComputedEvent struct {
	StoreID    int64         `json:"storeId"`
	Period     string        `json:"period"`
	ComputedAt time.Time     `json:"computedAt"`
	IsFallback bool          `json:"isFallback"`
	Kpis       report.KpiSet `json:"kpis"`
}

// DailyDigestEvent carries yesterday's full bundle for one store.
type DailyDigestEvent struct {
	StoreID    int64               `json:"storeId"`
	ReportDate string              `json:"reportDate"`
	Bundle     report.ReportBundle `json:"bundle"`
}

func (c *Client) PublishReportComputed(ctx context.Context, event ReportComputedEvent) error {
	return c.PublishJSON(ctx, RouteReportComputed, event)
}

func (c *Client) PublishDailyDigest(ctx context.Context, event DailyDigestEvent) error {
	return c.PublishJSON(ctx, RouteDailyDigest, event)
}

package report

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStoreRequired is the only hard failure the engine surfaces: without a
// resolvable store there is nothing to report on.
var ErrStoreRequired = errors.New("store id required")

// OrderRepository fetches every order with a timestamp in [start, end) for
// one store. Implementations live outside the engine.
type OrderRepository interface {
	FetchOrders(ctx context.Context, storeID int64, start, end time.Time) ([]Order, error)
}

// Service composes the period resolver, fetches and aggregations into a
// single entry point. It is stateless; the repository is injected.
type Service struct {
	repo   OrderRepository
	logger *zap.Logger
}

func NewService(repo OrderRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ComputeReportBundle resolves the current and prior ranges for periodType,
// fetches both order sets concurrently and aggregates them. A failed or
// timed-out fetch degrades to a fallback bundle rather than an error; the
// computation itself never fails once the snapshots are in memory.
func (s *Service) ComputeReportBundle(ctx context.Context, storeID int64, periodType PeriodType, now time.Time) (ReportBundle, error) {
	if storeID <= 0 {
		return ReportBundle{}, ErrStoreRequired
	}

	pair := ResolvePeriod(now, periodType)

	var current, prior []Order
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.repo.FetchOrders(gctx, storeID, pair.Current.Start, pair.Current.End)
		return err
	})
	g.Go(func() error {
		var err error
		prior, err = s.repo.FetchOrders(gctx, storeID, pair.Prior.Start, pair.Prior.End)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("order fetch failed, serving fallback report",
			zap.Int64("storeId", storeID),
			zap.String("period", string(periodType)),
			zap.Error(err))
		return FallbackBundle(periodType, now), nil
	}

	return BuildBundle(current, prior, periodType, now), nil
}

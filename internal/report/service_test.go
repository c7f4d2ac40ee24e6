package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeRepository struct {
	mu     sync.Mutex
	orders []Order
	err    error
	calls  []PeriodRange
}

func (f *fakeRepository) FetchOrders(ctx context.Context, storeID int64, start, end time.Time) ([]Order, error) {
	f.mu.Lock()
	f.calls = append(f.calls, PeriodRange{Start: start, End: end})
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	matched := make([]Order, 0)
	for _, order := range f.orders {
		if (PeriodRange{Start: start, End: end}).Contains(order.PlacedAt) {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func TestComputeReportBundle(t *testing.T) {
	repo := &fakeRepository{orders: []Order{
		{
			PlacedAt:      time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC),
			Status:        StatusDelivered,
			Total:         100,
			PaymentMethod: "pix",
			Customer:      Customer{Phone: "+5511990000001"},
			Items:         []LineItem{{Name: "Pizza", Category: "Pizzas", UnitPrice: 50, Quantity: 2}},
		},
		{
			PlacedAt: time.Date(2026, time.March, 18, 13, 0, 0, 0, time.UTC),
			Status:   StatusCancelled,
			Total:    50,
			Customer: Customer{Phone: "+5511990000002"},
		},
		{
			// Prior week.
			PlacedAt: time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
			Status:   StatusDelivered,
			Total:    50,
			Customer: Customer{Phone: "+5511990000001"},
		},
	}}

	svc := NewService(repo, zap.NewNop())
	bundle, err := svc.ComputeReportBundle(context.Background(), 7, PeriodWeekly, refNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bundle.IsFallback {
		t.Fatalf("expected computed bundle, got fallback")
	}
	if bundle.Kpis.Revenue.Value != 100 {
		t.Fatalf("expected revenue 100, got %v", bundle.Kpis.Revenue.Value)
	}
	if bundle.Kpis.Revenue.Variance != 100 {
		t.Fatalf("expected revenue variance 100, got %v", bundle.Kpis.Revenue.Variance)
	}
	if bundle.Kpis.Orders.Value != 2 || bundle.Kpis.CancellationRate.Value != 50 {
		t.Fatalf("unexpected kpis: %+v", bundle.Kpis)
	}
	if len(bundle.TimeSeries.BucketLabels) != 7 {
		t.Fatalf("expected weekly series, got %d buckets", len(bundle.TimeSeries.BucketLabels))
	}
	if len(bundle.TopProducts) != 1 || bundle.TopProducts[0].Key != "Pizza" {
		t.Fatalf("unexpected top products: %v", bundle.TopProducts)
	}

	if len(repo.calls) != 2 {
		t.Fatalf("expected exactly two fetches, got %d", len(repo.calls))
	}
}

func TestComputeReportBundleFallbackOnFetchError(t *testing.T) {
	repo := &fakeRepository{err: errors.New("connection refused")}
	svc := NewService(repo, zap.NewNop())

	bundle, err := svc.ComputeReportBundle(context.Background(), 7, PeriodDaily, refNow)
	if err != nil {
		t.Fatalf("fetch failures must degrade, not error: %v", err)
	}

	if !bundle.IsFallback {
		t.Fatalf("expected fallback flag")
	}
	if bundle.Kpis.Revenue.Value != 0 || bundle.Kpis.Orders.Value != 0 {
		t.Fatalf("fallback bundle must be zeroed, got %+v", bundle.Kpis)
	}
	if len(bundle.TimeSeries.BucketLabels) != 24 {
		t.Fatalf("fallback series must stay structurally complete, got %d buckets", len(bundle.TimeSeries.BucketLabels))
	}
	for _, value := range bundle.TimeSeries.Current {
		if value != 0 {
			t.Fatalf("fallback series must be all zero")
		}
	}
	if bundle.CategoryBreakdown == nil || bundle.TopProducts == nil {
		t.Fatalf("fallback slices must be present, not nil")
	}
}

func TestComputeReportBundleRequiresStore(t *testing.T) {
	svc := NewService(&fakeRepository{}, zap.NewNop())

	if _, err := svc.ComputeReportBundle(context.Background(), 0, PeriodWeekly, refNow); !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}
}

func TestComputeReportBundleEmptyDataset(t *testing.T) {
	svc := NewService(&fakeRepository{}, zap.NewNop())

	bundle, err := svc.ComputeReportBundle(context.Background(), 7, PeriodMonthly, refNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.IsFallback {
		t.Fatalf("an empty dataset is a valid zero report, not a fallback")
	}
	if len(bundle.CategoryBreakdown) != 0 || len(bundle.TopProducts) != 0 {
		t.Fatalf("expected empty breakdowns, got %+v", bundle)
	}
}

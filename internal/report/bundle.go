package report

import "time"

// ReportBundle is the complete output of one report computation. It is built
// fresh per request and never mutated afterwards.
type ReportBundle struct {
	Kpis              KpiSet         `json:"kpis"`
	CategoryBreakdown []BreakdownRow `json:"categoryBreakdown"`
	PaymentBreakdown  []BreakdownRow `json:"paymentBreakdown"`
	TimeSeries        TimeSeries     `json:"timeSeries"`
	TopProducts       []RankedRow    `json:"topProducts"`
	PeakBuckets       []BreakdownRow `json:"peakBuckets"`
	IsFallback        bool           `json:"isFallback"`
}

// BuildBundle runs every aggregation over the fetched order sets. All parts
// are pure functions of the inputs, so repeated calls are bit-identical.
func BuildBundle(current, prior []Order, periodType PeriodType, now time.Time) ReportBundle {
	return ReportBundle{
		Kpis:              ComputeKPIs(current, prior),
		CategoryBreakdown: CategoryBreakdown(current),
		PaymentBreakdown:  PaymentBreakdown(current),
		TimeSeries:        ComputeTimeSeries(current, prior, periodType, now),
		TopProducts:       TopProducts(current),
		PeakBuckets:       PeakHours(current),
		IsFallback:        false,
	}
}

// FallbackBundle is the degraded substitute when fetching or computation
// cannot proceed: structurally complete, every number zero, flagged so
// callers can tell it apart from a genuinely computed zero-state.
func FallbackBundle(periodType PeriodType, now time.Time) ReportBundle {
	labels := bucketLabels(periodType, now)
	return ReportBundle{
		CategoryBreakdown: []BreakdownRow{},
		PaymentBreakdown:  []BreakdownRow{},
		TimeSeries: TimeSeries{
			BucketLabels: labels,
			Current:      make([]float64, len(labels)),
			Prior:        make([]float64, len(labels)),
		},
		TopProducts: []RankedRow{},
		PeakBuckets: []BreakdownRow{},
		IsFallback:  true,
	}
}

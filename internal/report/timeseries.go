package report

import (
	"fmt"
	"time"
)

// TimeSeries overlays current and prior revenue over one shared ordered
// label sequence, so chart consumers can plot both without realignment.
type TimeSeries struct {
	BucketLabels []string  `json:"bucketLabels"`
	Current      []float64 `json:"current"`
	Prior        []float64 `json:"prior"`
}

// Fixed Sunday-first table; never derived from locale data.
var weekdayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// ComputeTimeSeries buckets realized revenue of both order sets by the
// period's bucketing rule: hour of day for daily, weekday for weekly, calendar
// day of the month containing now for monthly. Buckets with no orders stay at
// zero, including days a shorter prior month never reaches.
func ComputeTimeSeries(current, prior []Order, periodType PeriodType, now time.Time) TimeSeries {
	labels := bucketLabels(periodType, now)

	return TimeSeries{
		BucketLabels: labels,
		Current:      bucketRevenue(current, periodType, len(labels)),
		Prior:        bucketRevenue(prior, periodType, len(labels)),
	}
}

func bucketLabels(periodType PeriodType, now time.Time) []string {
	switch periodType {
	case PeriodDaily:
		labels := make([]string, 24)
		for hour := range labels {
			labels[hour] = fmt.Sprintf("%02d", hour)
		}
		return labels
	case PeriodMonthly:
		labels := make([]string, daysInMonth(now))
		for day := range labels {
			labels[day] = fmt.Sprintf("%02d", day+1)
		}
		return labels
	default:
		return weekdayLabels[:]
	}
}

func bucketRevenue(orders []Order, periodType PeriodType, bucketCount int) []float64 {
	series := make([]float64, bucketCount)
	for _, order := range orders {
		if !order.Realized() {
			continue
		}
		idx := bucketIndex(order.PlacedAt, periodType)
		if idx < 0 || idx >= bucketCount {
			continue
		}
		series[idx] += order.Total
	}
	return series
}

// bucketIndex is a pure function of timestamp and period type.
func bucketIndex(ts time.Time, periodType PeriodType) int {
	switch periodType {
	case PeriodDaily:
		return ts.Hour()
	case PeriodMonthly:
		return ts.Day() - 1
	default:
		return int(ts.Weekday())
	}
}

func daysInMonth(now time.Time) int {
	// Day zero of the next month normalizes to this month's last day.
	return time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
}

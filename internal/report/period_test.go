package report

import (
	"testing"
	"time"
)

// Wednesday 2026-03-18 15:30 UTC.
var refNow = time.Date(2026, time.March, 18, 15, 30, 0, 0, time.UTC)

func TestParsePeriodTypeDefaultsToWeekly(t *testing.T) {
	cases := []struct {
		raw      string
		expected PeriodType
	}{
		{raw: "daily", expected: PeriodDaily},
		{raw: "weekly", expected: PeriodWeekly},
		{raw: "monthly", expected: PeriodMonthly},
		{raw: "", expected: PeriodWeekly},
		{raw: "quarterly", expected: PeriodWeekly},
		{raw: "DAILY", expected: PeriodWeekly},
	}

	for _, tc := range cases {
		if got := ParsePeriodType(tc.raw); got != tc.expected {
			t.Fatalf("ParsePeriodType(%q): expected %s, got %s", tc.raw, tc.expected, got)
		}
	}
}

func TestResolvePeriodDaily(t *testing.T) {
	pair := ResolvePeriod(refNow, PeriodDaily)

	midnight := time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC)
	if !pair.Current.Start.Equal(midnight) || !pair.Current.End.Equal(refNow) {
		t.Fatalf("unexpected current range: %v", pair.Current)
	}
	if !pair.Prior.Start.Equal(midnight.AddDate(0, 0, -1)) || !pair.Prior.End.Equal(midnight) {
		t.Fatalf("unexpected prior range: %v", pair.Prior)
	}
}

func TestResolvePeriodWeekly(t *testing.T) {
	pair := ResolvePeriod(refNow, PeriodWeekly)

	sunday := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !pair.Current.Start.Equal(sunday) || !pair.Current.End.Equal(refNow) {
		t.Fatalf("unexpected current range: %v", pair.Current)
	}
	if !pair.Prior.Start.Equal(sunday.AddDate(0, 0, -7)) || !pair.Prior.End.Equal(sunday) {
		t.Fatalf("unexpected prior range: %v", pair.Prior)
	}
}

func TestResolvePeriodWeeklyOnSunday(t *testing.T) {
	sundayNoon := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	pair := ResolvePeriod(sundayNoon, PeriodWeekly)

	sunday := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !pair.Current.Start.Equal(sunday) {
		t.Fatalf("expected current week to start on the same Sunday, got %v", pair.Current.Start)
	}
}

func TestResolvePeriodMonthly(t *testing.T) {
	pair := ResolvePeriod(refNow, PeriodMonthly)

	marchFirst := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	febFirst := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !pair.Current.Start.Equal(marchFirst) || !pair.Current.End.Equal(refNow) {
		t.Fatalf("unexpected current range: %v", pair.Current)
	}
	if !pair.Prior.Start.Equal(febFirst) || !pair.Prior.End.Equal(marchFirst) {
		t.Fatalf("unexpected prior range: %v", pair.Prior)
	}
}

// The prior window must always span a full period even when the current one
// is only partially elapsed.
func TestResolvePeriodPriorSpansFullPeriod(t *testing.T) {
	cases := []struct {
		periodType PeriodType
		expected   time.Duration
	}{
		{periodType: PeriodDaily, expected: 24 * time.Hour},
		{periodType: PeriodWeekly, expected: 7 * 24 * time.Hour},
		{periodType: PeriodMonthly, expected: 28 * 24 * time.Hour}, // February 2026
	}

	for _, tc := range cases {
		pair := ResolvePeriod(refNow, tc.periodType)
		if got := pair.Prior.Duration(); got != tc.expected {
			t.Fatalf("%s: expected prior duration %v, got %v", tc.periodType, tc.expected, got)
		}
		if pair.Prior.Duration() < pair.Current.Duration() {
			t.Fatalf("%s: prior shorter than truncated current", tc.periodType)
		}
	}
}

func TestPeriodRangeHalfOpen(t *testing.T) {
	r := PeriodRange{
		Start: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
	}

	if !r.Contains(r.Start) {
		t.Fatalf("range start must be included")
	}
	if r.Contains(r.End) {
		t.Fatalf("range end must be excluded")
	}
}

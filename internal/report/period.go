package report

import "time"

type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// ParsePeriodType maps a raw query value to a period type. Anything
// unrecognized falls back to weekly instead of failing.
func ParsePeriodType(value string) PeriodType {
	switch PeriodType(value) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return PeriodType(value)
	default:
		return PeriodWeekly
	}
}

// PeriodRange is a half-open interval [Start, End).
type PeriodRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r PeriodRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r PeriodRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

type PeriodPair struct {
	Current PeriodRange `json:"current"`
	Prior   PeriodRange `json:"prior"`
}

// ResolvePeriod computes the current range for the period containing now
// plus the immediately preceding comparable range. Current is truncated at
// now; prior always spans a full period so rate comparisons stay unbiased.
func ResolvePeriod(now time.Time, periodType PeriodType) PeriodPair {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch periodType {
	case PeriodDaily:
		return PeriodPair{
			Current: PeriodRange{Start: midnight, End: now},
			Prior:   PeriodRange{Start: midnight.AddDate(0, 0, -1), End: midnight},
		}
	case PeriodMonthly:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return PeriodPair{
			Current: PeriodRange{Start: monthStart, End: now},
			Prior:   PeriodRange{Start: monthStart.AddDate(0, -1, 0), End: monthStart},
		}
	default:
		weekStart := midnight.AddDate(0, 0, -int(now.Weekday()))
		return PeriodPair{
			Current: PeriodRange{Start: weekStart, End: now},
			Prior:   PeriodRange{Start: weekStart.AddDate(0, 0, -7), End: weekStart},
		}
	}
}

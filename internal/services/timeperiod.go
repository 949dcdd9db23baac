// internal/services/timeperiod.go
package services

import "time"

// TimePeriod is the closed set of reporting windows the dashboard accepts.
// Parsing is centralized here: every unrecognized input maps to PeriodAll,
// which applies no lower bound at all.
type TimePeriod string

const (
	PeriodAll     TimePeriod = "all"
	Period7Days   TimePeriod = "7days"
	Period30Days  TimePeriod = "30days"
	Period90Days  TimePeriod = "90days"
	Period6Months TimePeriod = "6months"
	Period1Year   TimePeriod = "1year"
)

var periodDays = map[TimePeriod]int{
	Period7Days:   7,
	Period30Days:  30,
	Period90Days:  90,
	Period6Months: 180,
	Period1Year:   365,
}

func ParseTimePeriod(s string) TimePeriod {
	p := TimePeriod(s)
	if _, ok := periodDays[p]; ok {
		return p
	}
	return PeriodAll
}

// Cutoff returns the minimum creation timestamp for the period. The second
// return value is false for PeriodAll, meaning no lower bound is applied.
func (p TimePeriod) Cutoff(now time.Time) (time.Time, bool) {
	days, ok := periodDays[p]
	if !ok {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}

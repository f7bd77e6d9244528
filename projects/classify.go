package projects

import (
	"sort"
	"time"

	"github.com/facture-ma/dashkit/clock"
)

// Cap for the urgent/recent panels.
const listLimit = 5

// Deadlines within this many days count as urgent.
const urgentHorizonDays = 7

// noDeadline stands in for a missing end date so one bad record never
// blocks classification of the rest: such a record sorts last and is
// neither urgent nor overdue.
const noDeadline = int(^uint(0) >> 1)

// DaysLeft returns whole days until the record's deadline relative to now,
// or noDeadline when the record has none.
func DaysLeft(r Record, now time.Time) int {
	if r.EndDate == nil || r.EndDate.IsZero() {
		return noDeadline
	}
	return clock.DaysUntil(now, *r.EndDate)
}

// Overdue: strictly past due. A record due today (0 days left) is not yet
// overdue.
func overdue(r Record, now time.Time) bool {
	return r.Status != StatusCompleted && DaysLeft(r, now) < 0
}

// Urgent: deadline within the horizon, excluding already-overdue records.
func urgent(r Record, now time.Time) bool {
	if r.Status == StatusCompleted {
		return false
	}
	d := DaysLeft(r, now)
	return d > 0 && d <= urgentHorizonDays
}

// Classify buckets records and computes portfolio statistics. The input
// slice and its records are never mutated, and the clock is read once so
// every bucket sees the same instant.
func Classify(records []Record, clk clock.Clock) Summary {
	now := clk.Now()

	s := Summary{
		Urgent: []Record{},
		Recent: []Record{},
	}
	s.Counts.Total = len(records)

	var progressSum float64
	for _, r := range records {
		progressSum += r.Progress
		s.TotalBudget += r.Budget
		switch r.Status {
		case StatusCompleted:
			s.Counts.Completed++
		case StatusInProgress:
			s.Counts.Active++
		}
		if overdue(r, now) {
			s.Counts.Overdue++
		}
		if urgent(r, now) {
			s.Urgent = append(s.Urgent, r)
		}
	}
	if len(records) > 0 {
		s.AverageProgress = progressSum / float64(len(records))
	}

	// Soonest deadline first; IDs break ties so repeated calls are
	// bit-identical.
	sort.Slice(s.Urgent, func(i, j int) bool {
		di, dj := DaysLeft(s.Urgent[i], now), DaysLeft(s.Urgent[j], now)
		if di != dj {
			return di < dj
		}
		return s.Urgent[i].ID.String() < s.Urgent[j].ID.String()
	})
	if len(s.Urgent) > listLimit {
		s.Urgent = s.Urgent[:listLimit]
	}

	s.Recent = append(s.Recent, records...)
	sort.Slice(s.Recent, func(i, j int) bool {
		if !s.Recent[i].CreatedAt.Equal(s.Recent[j].CreatedAt) {
			return s.Recent[i].CreatedAt.After(s.Recent[j].CreatedAt)
		}
		return s.Recent[i].ID.String() > s.Recent[j].ID.String()
	})
	if len(s.Recent) > listLimit {
		s.Recent = s.Recent[:listLimit]
	}

	return s
}

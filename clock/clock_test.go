package clock

import (
	"testing"
	"time"
)

func TestDaysUntilRoundsUp(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"six hours ahead counts as one day", now.Add(6 * time.Hour), 1},
		{"exactly one day ahead", now.Add(24 * time.Hour), 1},
		{"one day and change ahead", now.Add(30 * time.Hour), 2},
		{"same instant", now, 0},
		{"one hour ago", now.Add(-time.Hour), 0},
		{"twenty-five hours ago", now.Add(-25 * time.Hour), -1},
		{"three days ahead", now.Add(72 * time.Hour), 3},
	}
	for _, tc := range cases {
		if got := DaysUntil(now, tc.target); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)
	clk := NewFixed(at)
	if !clk.Now().Equal(at) {
		t.Fatalf("fixed clock drifted: got %v, want %v", clk.Now(), at)
	}
	if !clk.Now().Equal(clk.Now()) {
		t.Fatal("fixed clock must report the same instant on every read")
	}
}

func TestSystemClockAdvances(t *testing.T) {
	before := time.Now().Add(-time.Second)
	got := System{}.Now()
	if got.Before(before) {
		t.Fatalf("system clock reported a stale instant: %v", got)
	}
}

package progress

import (
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name   string
		last   string
		streak int
		today  string
		want   int
	}{
		{"first ever", "", 0, "2024-03-10", 1},
		{"same day", "2024-03-10", 1, "2024-03-10", 1},
		{"same day keeps long streak", "2024-03-10", 7, "2024-03-10", 7},
		{"consecutive day", "2024-03-09", 1, "2024-03-10", 2},
		{"consecutive from zero", "2024-03-09", 0, "2024-03-10", 1},
		{"gap of two days", "2024-03-08", 5, "2024-03-10", 1},
		{"month boundary", "2024-02-29", 3, "2024-03-01", 4},
		{"year boundary", "2023-12-31", 9, "2024-01-01", 10},
		{"future last date", "2024-03-11", 4, "2024-03-10", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStreak(tt.last, tt.streak, tt.today)
			if got != tt.want {
				t.Errorf("NextStreak(%q, %d, %q) = %d, want %d", tt.last, tt.streak, tt.today, got, tt.want)
			}
		})
	}
}

func TestDayKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	ts := time.Date(2024, 3, 10, 2, 0, 0, 0, loc) // 2024-03-09T17:00Z
	if got := DayKey(ts); got != "2024-03-09" {
		t.Errorf("DayKey = %q, want 2024-03-09", got)
	}
}

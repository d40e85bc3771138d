package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("bad day %q: %v", value, err)
	}
	return parsed
}

func TestComputeStreak(t *testing.T) {
	now := day(t, "2026-03-10").Add(14 * time.Hour)

	tests := []struct {
		name   string
		events []string
		want   int
	}{
		{
			name:   "no events",
			events: nil,
			want:   0,
		},
		{
			name:   "no event today breaks immediately",
			events: []string{"2026-03-09", "2026-03-08"},
			want:   0,
		},
		{
			name:   "three consecutive days ending today",
			events: []string{"2026-03-10", "2026-03-09", "2026-03-08"},
			want:   3,
		},
		{
			name:   "gap stops the walk",
			events: []string{"2026-03-10", "2026-03-09", "2026-03-07", "2026-03-06"},
			want:   2,
		},
		{
			name:   "single event today",
			events: []string{"2026-03-10"},
			want:   1,
		},
		{
			name:   "duplicate events on one day count once",
			events: []string{"2026-03-10", "2026-03-10", "2026-03-09"},
			want:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]time.Time, len(tt.events))
			for i, e := range tt.events {
				events[i] = day(t, e).Add(9 * time.Hour)
			}
			assert.Equal(t, tt.want, computeStreak(events, now))
		})
	}
}

func TestComputeStreakFullWindow(t *testing.T) {
	// N consecutive days ending today yield exactly N.
	now := day(t, "2026-03-30").Add(10 * time.Hour)
	events := make([]time.Time, DefaultStreakWindow)
	for i := range events {
		events[i] = startOfDay(now).AddDate(0, 0, -i)
	}
	assert.Equal(t, DefaultStreakWindow, computeStreak(events, now))
}

func TestStartOfWeek(t *testing.T) {
	// 2026-03-11 is a Wednesday; the week starts on Sunday 2026-03-08.
	wednesday := day(t, "2026-03-11").Add(16 * time.Hour)
	assert.Equal(t, day(t, "2026-03-08"), startOfWeek(wednesday))

	sunday := day(t, "2026-03-08").Add(5 * time.Hour)
	assert.Equal(t, day(t, "2026-03-08"), startOfWeek(sunday))
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, day(t, "2026-02-28"), endOfMonth(day(t, "2026-02-10")))
	assert.Equal(t, day(t, "2026-03-31"), endOfMonth(day(t, "2026-03-01")))
	assert.Equal(t, day(t, "2026-12-31"), endOfMonth(day(t, "2026-12-31")))
}

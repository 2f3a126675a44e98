package service

import (
	"testing"
	"time"
)

func TestStreakFrom(t *testing.T) {
	now := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return now.AddDate(0, 0, offset).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour)
	}

	tests := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{name: "no sessions", want: 0},
		{name: "today only", times: []time.Time{day(0, 9)}, want: 1},
		{name: "three consecutive days", times: []time.Time{day(0, 9), day(-1, 20), day(-2, 7)}, want: 3},
		{name: "gap breaks streak", times: []time.Time{day(0, 9), day(-2, 7), day(-3, 7)}, want: 1},
		{name: "nothing today counts yesterday", times: []time.Time{day(-1, 20), day(-2, 7)}, want: 2},
		{name: "last practice two days ago", times: []time.Time{day(-2, 7), day(-3, 7)}, want: 0},
		{name: "multiple sessions one day", times: []time.Time{day(0, 9), day(0, 19), day(-1, 8)}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := streakFrom(tt.times, now); got != tt.want {
				t.Errorf("streakFrom() = %d, want %d", got, tt.want)
			}
		})
	}
}

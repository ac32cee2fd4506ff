package livefeed

import (
	"testing"
	"time"
)

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"minutes only", 30 * time.Minute, "30m"},
		{"hours and minutes", 5 * time.Hour, "5h 0m"},
		{"ninety minutes", 90 * time.Minute, "1h 30m"},
		{"just under a day", 23*time.Hour + 59*time.Minute, "23h 59m"},
		{"exactly one day", 24 * time.Hour, "1d 0h"},
		{"days and hours", 3 * 24 * time.Hour, "3d 0h"},
		{"just under a week", 6*24*time.Hour + 23*time.Hour, "6d 23h"},
		{"exactly one week", 7 * 24 * time.Hour, "1w 0d"},
		{"weeks and days", 10 * 24 * time.Hour, "1w 3d"},
		{"zero", 0, EndedLabel},
		{"negative", -time.Minute, EndedLabel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRemaining(tc.d); got != tc.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tc.d, got, tc.want)
			}
		})
	}
}

func TestLiveWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	if !Live(start, end, true, now) {
		t.Error("item inside its window should be live")
	}
	if Live(now.Add(time.Minute), end, true, now) {
		t.Error("item before its start must not be live")
	}
	if Live(start, now, true, now) {
		t.Error("item at its end time must not be live")
	}
	if Live(start, end, false, now) {
		t.Error("inactive item must not be live")
	}
	if !Live(now, end, true, now) {
		t.Error("item starting exactly now should be live")
	}
}

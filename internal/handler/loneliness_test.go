package handler

import "testing"

func TestIsolationScore(t *testing.T) {
	cases := []struct {
		days         int
		dontApproach bool
		want         int
	}{
		{0, false, 0},
		{0, true, 20},
		{3, false, 45},
		{5, false, 75},
		{5, true, 95},
		{6, false, 90},
		{10, false, 100}, // plafonné
		{10, true, 100},
	}

	for _, c := range cases {
		if got := isolationScore(c.days, c.dontApproach); got != c.want {
			t.Errorf("isolationScore(%d, %v) = %d, want %d", c.days, c.dontApproach, got, c.want)
		}
	}
}

func TestTriggerLevels(t *testing.T) {
	if _, triggered := triggerLevelFor(69); triggered {
		t.Error("score 69 should not trigger")
	}

	cases := []struct {
		score int
		want  string
	}{
		{70, "info"},
		{74, "info"},
		{75, "warning"},
		{89, "warning"},
		{90, "intervention"},
		{100, "intervention"},
	}

	for _, c := range cases {
		level, triggered := triggerLevelFor(c.score)
		if !triggered {
			t.Errorf("score %d should trigger", c.score)
			continue
		}
		if string(level) != c.want {
			t.Errorf("triggerLevelFor(%d) = %s, want %s", c.score, level, c.want)
		}
	}
}

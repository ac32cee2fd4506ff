package livefeed

import (
	"testing"
	"time"
)

type fakeItem struct {
	id       string
	category string
}

func TestFilterIsPure(t *testing.T) {
	items := []fakeItem{
		{"1", "participation"},
		{"2", "social"},
		{"3", "participation"},
		{"4", "competition"},
	}
	key := func(i fakeItem) string { return i.category }

	filtered := Filter(items, "participation", key)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 participation items, got %d", len(filtered))
	}

	// Revenir sur "all" restitue la liste complète, sans re-fetch ni mutation
	restored := Filter(items, FilterAll, key)
	if len(restored) != 4 {
		t.Fatalf("expected full list back, got %d items", len(restored))
	}
	for i := range items {
		if restored[i] != items[i] {
			t.Errorf("item %d changed: %+v", i, restored[i])
		}
	}
}

func TestFilterUnknownCategoryIsEmpty(t *testing.T) {
	items := []fakeItem{{"1", "social"}}
	got := Filter(items, "does_not_exist", func(i fakeItem) string { return i.category })
	if len(got) != 0 {
		t.Errorf("expected no items, got %v", got)
	}
}

func TestChallengeCardScenario(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	state := CardState{
		CurrentCount: 9,
		TargetCount:  10,
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(90 * time.Minute),
		IsActive:     true,
	}

	view := BuildCardView(state, false, now)
	if view.ProgressPercent != 90 {
		t.Errorf("progress = %d, want 90", view.ProgressPercent)
	}
	if view.TimeLeft != "1h 30m" {
		t.Errorf("time left = %q, want \"1h 30m\"", view.TimeLeft)
	}
	if view.Completed {
		t.Error("completion banner must stay hidden at 9/10")
	}
	if !view.JoinEnabled {
		t.Error("join should be enabled on a live, not-joined challenge")
	}

	// Un join réussi pousse le compteur à 10 : le bandeau apparaît sans rechargement
	state.CurrentCount = 10
	view = BuildCardView(state, true, now)
	if !view.Completed {
		t.Error("completion banner must appear once current reaches target")
	}
	if view.ProgressPercent != 100 {
		t.Errorf("progress = %d, want 100", view.ProgressPercent)
	}
	if view.JoinEnabled {
		t.Error("join must be disabled once joined")
	}
}

func TestCardViewEnded(t *testing.T) {
	now := time.Now()
	view := BuildCardView(CardState{
		CurrentCount: 3,
		TargetCount:  10,
		StartTime:    now.Add(-2 * time.Hour),
		EndTime:      now.Add(-time.Hour),
		IsActive:     true,
	}, false, now)

	if !view.Ended {
		t.Error("expected ended view")
	}
	if view.TimeLeft != EndedLabel {
		t.Errorf("time left = %q, want %q", view.TimeLeft, EndedLabel)
	}
	if view.JoinEnabled {
		t.Error("join must be disabled after the window closes")
	}
}

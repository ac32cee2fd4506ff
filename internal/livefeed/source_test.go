package livefeed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSourceStopCancelsPolling(t *testing.T) {
	var fetches atomic.Int64
	src := NewSource(func(ctx context.Context) ([]string, error) {
		fetches.Add(1)
		return []string{"a"}, nil
	}, 20*time.Millisecond)

	src.Start(context.Background())
	time.Sleep(70 * time.Millisecond)
	src.Stop()

	// Laisser retomber un éventuel fetch déjà en vol au moment du Stop
	time.Sleep(30 * time.Millisecond)
	after := fetches.Load()
	if after == 0 {
		t.Fatal("expected at least one fetch before Stop")
	}

	time.Sleep(80 * time.Millisecond)
	if fetches.Load() != after {
		t.Errorf("fetches continued after Stop: %d -> %d", after, fetches.Load())
	}
}

func TestSourceFetchErrorDegradesToEmpty(t *testing.T) {
	src := NewSource(func(ctx context.Context) ([]string, error) {
		return nil, errors.New("network down")
	}, time.Hour)

	updated := make(chan struct{}, 1)
	src.OnUpdate(func([]string) { updated <- struct{}{} })

	src.Start(context.Background())
	defer src.Stop()

	select {
	case <-updated:
	case <-time.After(time.Second):
		t.Fatal("no snapshot applied")
	}

	if got := src.Snapshot(); len(got) != 0 {
		t.Errorf("expected empty snapshot on fetch error, got %v", got)
	}
}

func TestSourceDiscardsStaleResponse(t *testing.T) {
	src := NewSource(func(ctx context.Context) ([]string, error) {
		return nil, nil
	}, time.Hour)

	// La réponse de génération 2 arrive avant la réponse lente de génération 1
	src.apply(2, []string{"fresh"})
	src.apply(1, []string{"stale"})

	got := src.Snapshot()
	if len(got) != 1 || got[0] != "fresh" {
		t.Errorf("stale response overwrote newer snapshot: %v", got)
	}
}

func TestSourceSnapshotIsACopy(t *testing.T) {
	src := NewSource(func(ctx context.Context) ([]string, error) {
		return nil, nil
	}, time.Hour)
	src.apply(1, []string{"a", "b"})

	snap := src.Snapshot()
	snap[0] = "mutated"

	if got := src.Snapshot(); got[0] != "a" {
		t.Errorf("Snapshot leaked internal slice: %v", got)
	}
}

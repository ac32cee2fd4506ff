package livefeed

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestJoinIsIdempotent(t *testing.T) {
	m := NewMembership(5, time.Now().Add(time.Hour))

	writes := 0
	write := func(ctx context.Context) error {
		writes++
		return nil
	}

	if err := m.Join(context.Background(), write); err != nil {
		t.Fatalf("first Join failed: %v", err)
	}
	if err := m.Join(context.Background(), write); err != nil {
		t.Fatalf("second Join failed: %v", err)
	}

	if writes != 1 {
		t.Errorf("expected exactly 1 write, got %d", writes)
	}
	if !m.Joined() {
		t.Error("expected joined state")
	}
	if m.Count() != 6 {
		t.Errorf("expected count 6, got %d", m.Count())
	}
}

func TestJoinRevertsOnWriteFailure(t *testing.T) {
	m := NewMembership(5, time.Now().Add(time.Hour))

	boom := errors.New("backend unavailable")
	err := m.Join(context.Background(), func(ctx context.Context) error {
		return boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected write error to propagate, got %v", err)
	}
	if m.Joined() {
		t.Error("failed join must revert local state")
	}
	if m.Count() != 5 {
		t.Errorf("failed join must revert count, got %d", m.Count())
	}
}

func TestLeaveFloorsAtZero(t *testing.T) {
	noop := func(ctx context.Context) error { return nil }

	for _, start := range []int{0, 1} {
		m := NewMembership(start, time.Now().Add(time.Hour))
		m.joined = true

		if err := m.Leave(context.Background(), noop); err != nil {
			t.Fatalf("Leave failed: %v", err)
		}
		if m.Count() < 0 {
			t.Errorf("count went negative from %d: %d", start, m.Count())
		}
	}
}

func TestLeaveWithoutJoinIsNoop(t *testing.T) {
	m := NewMembership(3, time.Now().Add(time.Hour))

	writes := 0
	err := m.Leave(context.Background(), func(ctx context.Context) error {
		writes++
		return nil
	})

	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if writes != 0 {
		t.Errorf("Leave on a non-joined item must not write, got %d writes", writes)
	}
	if m.Count() != 3 {
		t.Errorf("count changed to %d", m.Count())
	}
}

func TestEndedSuppressesTransitions(t *testing.T) {
	m := NewMembership(5, time.Now().Add(time.Hour))
	m.now = func() time.Time { return m.end.Add(time.Minute) }

	writes := 0
	write := func(ctx context.Context) error {
		writes++
		return nil
	}

	if err := m.Join(context.Background(), write); !errors.Is(err, ErrEnded) {
		t.Errorf("Join after end: expected ErrEnded, got %v", err)
	}

	m.joined = true
	if err := m.Leave(context.Background(), write); !errors.Is(err, ErrEnded) {
		t.Errorf("Leave after end: expected ErrEnded, got %v", err)
	}

	if writes != 0 {
		t.Errorf("ended item must not issue writes, got %d", writes)
	}
}

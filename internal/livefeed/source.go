package livefeed

import (
	"context"
	"sync"
	"time"
)

// FetchFunc charge l'ensemble courant d'éléments d'un feed
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Source est une source de données à rafraîchissement périodique : fetch au
// démarrage puis à chaque tick, snapshot remplacé atomiquement. Une erreur ou
// un résultat vide dégrade vers un snapshot vide, rien ne remonte à l'appelant.
//
// Chaque fetch porte un numéro de génération ; une réponse lente arrivée après
// une réponse plus récente est jetée au lieu d'écraser le snapshot.
type Source[T any] struct {
	fetch    FetchFunc[T]
	interval time.Duration
	onUpdate func([]T)

	mu       sync.Mutex
	snapshot []T
	applied  uint64
	nextGen  uint64

	cancel  context.CancelFunc
	done    chan struct{}
	started bool
	stopped bool
}

// NewSource construit une source avec la fonction de fetch et l'intervalle donnés
func NewSource[T any](fetch FetchFunc[T], interval time.Duration) *Source[T] {
	return &Source[T]{
		fetch:    fetch,
		interval: interval,
	}
}

// OnUpdate enregistre un callback appelé à chaque remplacement du snapshot
// À appeler avant Start
func (s *Source[T]) OnUpdate(fn func([]T)) {
	s.onUpdate = fn
}

// Start lance le fetch initial puis le rafraîchissement périodique
func (s *Source[T]) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.run(ctx)
}

// Stop arrête le ticker ; les réponses encore en vol seront jetées
func (s *Source[T]) Stop() {
	s.mu.Lock()
	s.stopped = true
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (s *Source[T]) run(ctx context.Context) {
	defer close(s.done)

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh lance un fetch sans attendre le précédent : deux requêtes peuvent
// se chevaucher, la numérotation de génération garantit que seule la plus
// récente est appliquée
func (s *Source[T]) refresh(ctx context.Context) {
	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.mu.Unlock()

	go func() {
		items, err := s.fetch(ctx)
		if err != nil || ctx.Err() != nil {
			items = nil
		}
		s.apply(gen, items)
	}()
}

func (s *Source[T]) apply(gen uint64, items []T) {
	s.mu.Lock()
	if s.stopped || gen <= s.applied {
		// Source arrêtée, ou réponse dépassée par une plus récente
		s.mu.Unlock()
		return
	}
	s.applied = gen
	s.snapshot = items
	onUpdate := s.onUpdate
	s.mu.Unlock()

	if onUpdate != nil {
		onUpdate(items)
	}
}

// Snapshot retourne une copie de l'ensemble courant
func (s *Source[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

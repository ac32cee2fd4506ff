package livefeed

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEnded l'élément a atteint sa fin de fenêtre, plus aucune transition
	ErrEnded = errors.New("livefeed: item has ended")
)

// WriteFunc applique l'écriture backend d'un join ou d'un leave
type WriteFunc func(ctx context.Context) error

// Membership suit l'état join/leave local d'un élément de feed, avec mise à
// jour optimiste : l'état bascule avant l'écriture et revient en arrière si
// l'écriture échoue, au lieu de laisser l'UI diverger silencieusement du backend.
type Membership struct {
	joined bool
	count  int
	end    time.Time
	now    func() time.Time
}

// NewMembership initialise le suivi d'un élément avec son compteur courant
// et sa fin de fenêtre
func NewMembership(count int, end time.Time) *Membership {
	return &Membership{
		count: count,
		end:   end,
		now:   time.Now,
	}
}

// Joined retourne l'état local courant
func (m *Membership) Joined() bool { return m.joined }

// Count retourne le compteur local courant
func (m *Membership) Count() int { return m.count }

// Ended indique si l'élément a atteint son état terminal
func (m *Membership) Ended() bool {
	return !m.now().Before(m.end)
}

// Join bascule l'état local puis lance l'écriture. Un second Join sur un
// élément déjà rejoint ne déclenche aucune écriture. Si l'écriture échoue,
// l'état local est rétabli et l'erreur remonte à l'appelant.
func (m *Membership) Join(ctx context.Context, write WriteFunc) error {
	if m.Ended() {
		return ErrEnded
	}
	if m.joined {
		return nil
	}

	m.joined = true
	m.count++

	if err := write(ctx); err != nil {
		m.joined = false
		if m.count > 0 {
			m.count--
		}
		return err
	}

	return nil
}

// Leave est le miroir de Join : décrément avec plancher à zéro, retour en
// arrière si l'écriture échoue
func (m *Membership) Leave(ctx context.Context, write WriteFunc) error {
	if m.Ended() {
		return ErrEnded
	}
	if !m.joined {
		return nil
	}

	m.joined = false
	prev := m.count
	if m.count > 0 {
		m.count--
	}

	if err := write(ctx); err != nil {
		m.joined = true
		m.count = prev
		return err
	}

	return nil
}

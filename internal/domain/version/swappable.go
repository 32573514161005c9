package version

import (
	"fmt"
	"sync"
	"time"
)

// Extends returns an InvalidTable error unless next holds every Version of previous, unchanged
// and in the same positions. Regenerating a table may only ever append newer editions.
func Extends(previous Registry, next Registry) error {
	prev := previous.All()
	nxt := next.All()
	if len(nxt) < len(prev) {
		return InvalidTable{Reason: fmt.Sprintf("regenerated table has %d versions, fewer than the current %d", len(nxt), len(prev))}
	}
	for i, p := range prev {
		n := nxt[i]
		if p.ID != n.ID || p.Edition != n.Edition || !p.Ratified.Equal(n.Ratified) {
			return InvalidTable{Reason: fmt.Sprintf("regenerated table changes [%v] (edition %v) at position %d", p.ID, p.Edition, i)}
		}
	}
	return nil
}

// Swappable is a Registry that delegates to an underlying Registry which can be
// replaced by a regenerated one. It is safe for concurrent use.
type Swappable struct {
	mu      sync.RWMutex
	current Registry
}

// NewSwappable returns a Swappable initially delegating to the given Registry
func NewSwappable(initial Registry) *Swappable {
	return &Swappable{current: initial}
}

// Current returns the Registry currently delegated to
func (s *Swappable) Current() Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Swap replaces the underlying Registry with next, as long as next Extends it.
// Returns true if the number of Versions changed.
func (s *Swappable) Swap(next Registry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := Extends(s.current, next); err != nil {
		return false, err
	}
	grew := len(next.All()) != len(s.current.All())
	s.current = next
	return grew, nil
}

func (s *Swappable) All() []Version {
	return s.Current().All()
}

func (s *Swappable) ByIdentifier(id Identifier) (*Version, error) {
	return s.Current().ByIdentifier(id)
}

func (s *Swappable) ByEdition(edition Edition) (*Version, error) {
	return s.Current().ByEdition(edition)
}

func (s *Swappable) IdentifierByEdition(edition Edition) (Identifier, error) {
	return s.Current().IdentifierByEdition(edition)
}

func (s *Swappable) RatifiedBy(at time.Time) ([]Version, error) {
	return s.Current().RatifiedBy(at)
}

func (s *Swappable) IdentifiersRatifiedBy(at time.Time) ([]Identifier, error) {
	return s.Current().IdentifiersRatifiedBy(at)
}

func (s *Swappable) LatestRatifiedBy(at time.Time) (*Version, error) {
	return s.Current().LatestRatifiedBy(at)
}

func (s *Swappable) LatestIdentifierRatifiedBy(at time.Time) (Identifier, error) {
	return s.Current().LatestIdentifierRatifiedBy(at)
}

func (s *Swappable) CompareIdentifiers(a Identifier, b Identifier) (int, error) {
	return s.Current().CompareIdentifiers(a, b)
}

func (s *Swappable) SortIdentifiers(ids []Identifier) ([]Identifier, error) {
	return s.Current().SortIdentifiers(ids)
}

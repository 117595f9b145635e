package match

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mauv0809/stumps/internal/scoring"
)

// MockStore is an in-memory MatchStore with the same versioning rules as the
// real store. It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	matches map[string]*scoring.Match

	// Optional overrides, checked before the in-memory behaviour.
	GetFunc  func(id string) (*scoring.Match, error)
	SaveFunc func(m *scoring.Match) error

	// Call records
	CreateCalls []*scoring.Match
	GetCalls    []string
	SaveCalls   []*scoring.Match
	ListCalls   []ListFilter
}

// NewMock creates an empty mock store.
func NewMock() *MockStore {
	return &MockStore{matches: make(map[string]*scoring.Match)}
}

// Put seeds a match without recording a call.
func (m *MockStore) Put(match *scoring.Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[match.ID] = match.Clone()
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = nil
	m.GetCalls = nil
	m.SaveCalls = nil
	m.ListCalls = nil
}

func (m *MockStore) Create(_ context.Context, match *scoring.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, match.Clone())
	if _, ok := m.matches[match.ID]; ok {
		return fmt.Errorf("%w: match %s already exists", scoring.ErrConflict, match.ID)
	}
	match.Version = 1
	m.matches[match.ID] = match.Clone()
	return nil
}

func (m *MockStore) Get(_ context.Context, id string) (*scoring.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, id)
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	stored, ok := m.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: match %s", scoring.ErrNotFound, id)
	}
	return stored.Clone(), nil
}

func (m *MockStore) Save(_ context.Context, match *scoring.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, match.Clone())
	if m.SaveFunc != nil {
		if err := m.SaveFunc(match); err != nil {
			return err
		}
	}
	stored, ok := m.matches[match.ID]
	if !ok {
		return fmt.Errorf("%w: match %s", scoring.ErrNotFound, match.ID)
	}
	if stored.Version != match.Version {
		return fmt.Errorf("%w: match %s is at version %d, not %d", scoring.ErrConflict, match.ID, stored.Version, match.Version)
	}
	match.Version++
	m.matches[match.ID] = match.Clone()
	return nil
}

func (m *MockStore) List(_ context.Context, filter ListFilter) ([]*scoring.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls = append(m.ListCalls, filter)
	out := []*scoring.Match{}
	for _, stored := range m.matches {
		if filter.TournamentID != "" && stored.TournamentID != filter.TournamentID {
			continue
		}
		if filter.Status != "" && stored.Status != filter.Status {
			continue
		}
		out = append(out, stored.Clone())
	}
	slices.SortFunc(out, func(a, b *scoring.Match) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

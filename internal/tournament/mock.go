package tournament

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mauv0809/stumps/internal/scoring"
)

// MockStore is an in-memory TournamentStore. It is safe for concurrent use.
type MockStore struct {
	mu          sync.Mutex
	tournaments map[string]*Tournament

	SaveFunc func(t *Tournament) error

	// Call records
	CreateCalls []*Tournament
	GetCalls    []string
	SaveCalls   []*Tournament
}

// NewMock creates an empty mock store.
func NewMock() *MockStore {
	return &MockStore{tournaments: make(map[string]*Tournament)}
}

// Put seeds a tournament without recording a call.
func (m *MockStore) Put(t *Tournament) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournaments[t.ID] = clone(t)
}

func (m *MockStore) Create(_ context.Context, t *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, clone(t))
	if _, ok := m.tournaments[t.ID]; ok {
		return fmt.Errorf("%w: tournament %s already exists", scoring.ErrConflict, t.ID)
	}
	t.Version = 1
	m.tournaments[t.ID] = clone(t)
	return nil
}

func (m *MockStore) Get(_ context.Context, id string) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, id)
	t, ok := m.tournaments[id]
	if !ok {
		return nil, fmt.Errorf("%w: tournament %s", scoring.ErrNotFound, id)
	}
	return clone(t), nil
}

func (m *MockStore) Save(_ context.Context, t *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, clone(t))
	if m.SaveFunc != nil {
		if err := m.SaveFunc(t); err != nil {
			return err
		}
	}
	stored, ok := m.tournaments[t.ID]
	if !ok {
		return fmt.Errorf("%w: tournament %s", scoring.ErrNotFound, t.ID)
	}
	if stored.Version != t.Version {
		return fmt.Errorf("%w: tournament %s is at version %d, not %d", scoring.ErrConflict, t.ID, stored.Version, t.Version)
	}
	t.Version++
	m.tournaments[t.ID] = clone(t)
	return nil
}

func (m *MockStore) List(_ context.Context) ([]*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Tournament, 0, len(m.tournaments))
	for _, t := range m.tournaments {
		out = append(out, clone(t))
	}
	slices.SortFunc(out, func(a, b *Tournament) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func clone(t *Tournament) *Tournament {
	c := *t
	c.Teams = slices.Clone(t.Teams)
	c.Standings.Rows = slices.Clone(t.Standings.Rows)
	c.Standings.AppliedMatchIDs = slices.Clone(t.Standings.AppliedMatchIDs)
	return &c
}

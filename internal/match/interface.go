package match

import (
	"context"

	"github.com/mauv0809/stumps/internal/scoring"
)

// MatchStore persists whole match aggregates.
type MatchStore interface {
	// Create inserts a new match at version 1.
	Create(ctx context.Context, m *scoring.Match) error

	// Get loads a match by id. It returns scoring.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*scoring.Match, error)

	// Save writes m if the stored version still equals m.Version and bumps
	// m.Version on success. A moved version yields scoring.ErrConflict.
	Save(ctx context.Context, m *scoring.Match) error

	// List returns matches ordered by creation time, newest first.
	List(ctx context.Context, filter ListFilter) ([]*scoring.Match, error)
}

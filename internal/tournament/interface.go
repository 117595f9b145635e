package tournament

import "context"

// TournamentStore persists tournaments with the same optimistic versioning as
// matches.
type TournamentStore interface {
	Create(ctx context.Context, t *Tournament) error
	Get(ctx context.Context, id string) (*Tournament, error)
	Save(ctx context.Context, t *Tournament) error
	List(ctx context.Context) ([]*Tournament, error)
}

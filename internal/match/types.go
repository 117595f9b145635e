package match

import "github.com/mauv0809/stumps/internal/scoring"

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	TournamentID string
	Status       scoring.MatchStatus
	Limit        int
}

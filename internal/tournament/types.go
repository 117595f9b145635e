package tournament

import (
	"time"

	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/standings"
)

// Tournament groups matches under one points table.
type Tournament struct {
	ID         string          `json:"id" msgpack:"id"`
	Name       string          `json:"name" msgpack:"name"`
	TotalOvers int             `json:"total_overs" msgpack:"total_overs"`
	Teams      []scoring.Team  `json:"teams" msgpack:"teams"`
	Standings  standings.Table `json:"standings" msgpack:"standings"`
	Version    int64           `json:"version" msgpack:"version"`
	CreatedAt  time.Time       `json:"created_at" msgpack:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" msgpack:"updated_at"`
}

// Team returns the registered team with the given id.
func (t *Tournament) Team(id string) (scoring.Team, bool) {
	for _, team := range t.Teams {
		if team.ID == id {
			return team, true
		}
	}
	return scoring.Team{}, false
}

package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/stumps/internal/broadcast"
	"github.com/mauv0809/stumps/internal/commentary"
	"github.com/mauv0809/stumps/internal/database"
	"github.com/mauv0809/stumps/internal/match"
	"github.com/mauv0809/stumps/internal/metrics"
	"github.com/mauv0809/stumps/internal/notifier"
	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/tournament"
	"github.com/prometheus/client_golang/prometheus"
)

var teamNames = []string{"Lions", "Tigers", "Falcons", "Sharks", "Wolves", "Eagles"}

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":     "stumps-seed.db",
		"SEED_TEAMS":  "4",
		"SEED_OVERS":  "5",
		"SEED_PLAYED": "true",
	}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "SEED_TEAMS", "SEED_OVERS", "SEED_PLAYED"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func intSetting(cfg map[string]string, key string, lo, hi int) int {
	n, err := strconv.Atoi(cfg[key])
	if err != nil || n < lo || n > hi {
		log.Fatalf("Error: %s must be between %d and %d, got %q", key, lo, hi, cfg[key])
	}
	return n
}

func main() {
	log.Info("Starting tournament seeder...")
	cfg := loadConfig()
	teams := intSetting(cfg, "SEED_TEAMS", 2, len(teamNames))
	overs := intSetting(cfg, "SEED_OVERS", 1, 50)
	play, _ := strconv.ParseBool(cfg["SEED_PLAYED"])

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	// Nothing is listening while seeding, so events go nowhere.
	proc := processor.New(
		match.New(db),
		tournament.New(db),
		broadcast.NewFanout(),
		notifier.Nop{},
		metrics.NewService(prometheus.NewRegistry()),
		commentary.New(nil),
	)

	ctx := context.Background()
	startTime := time.Now()
	t, err := proc.CreateTournament(ctx, processor.CreateTournamentInput{
		Name:       fmt.Sprintf("Seeded Cup %s", uuid.NewString()[:8]),
		TotalOvers: overs,
		Teams:      seedTeams(teams),
	})
	if err != nil {
		log.Fatalf("Failed to create tournament: %s", err)
	}
	log.Info("Created tournament", "tournamentID", t.ID, "teams", len(t.Teams), "overs", t.TotalOvers)

	rng := rand.New(rand.NewPCG(uint64(startTime.UnixNano()), 7))
	fixtures := roundRobin(t.Teams)
	for i, f := range fixtures {
		m, err := proc.ScheduleMatch(ctx, processor.ScheduleMatchInput{
			TournamentID: t.ID,
			Home:         scoring.Team{ID: f[0].ID},
			Away:         scoring.Team{ID: f[1].ID},
		})
		if err != nil {
			log.Fatalf("Failed to schedule fixture %d: %s", i+1, err)
		}
		if !play {
			continue
		}
		played, err := simulate(ctx, proc, m, rng)
		if err != nil {
			log.Fatalf("Failed to simulate match %s: %s", m.ID, err)
		}
		log.Info("Played fixture", "matchID", played.ID, "result", played.Result.Summary, "completed", i+1, "total", len(fixtures))
	}

	duration := time.Since(startTime)
	log.Info("Seeding finished", "tournamentID", t.ID, "fixtures", len(fixtures), "duration", duration)
}

func seedTeams(n int) []scoring.Team {
	out := make([]scoring.Team, n)
	for i := range out {
		name := teamNames[i]
		team := scoring.Team{ID: uuid.NewString(), Name: name}
		for p := 1; p <= scoring.PlayingXISize; p++ {
			team.Players = append(team.Players, scoring.Player{
				ID:   fmt.Sprintf("%s-%02d", team.ID, p),
				Name: fmt.Sprintf("%s %d", name, p),
			})
		}
		out[i] = team
	}
	return out
}

// roundRobin pairs every team with every other team once.
func roundRobin(teams []scoring.Team) [][2]scoring.Team {
	var fixtures [][2]scoring.Team
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			fixtures = append(fixtures, [2]scoring.Team{teams[i], teams[j]})
		}
	}
	return fixtures
}

func simulate(ctx context.Context, proc *processor.Processor, m *scoring.Match, rng *rand.Rand) (*scoring.Match, error) {
	decision := scoring.TossBat
	if rng.IntN(2) == 1 {
		decision = scoring.TossBowl
	}
	m, err := proc.RecordToss(ctx, m.ID, scoring.Toss{WinnerTeamID: m.Teams[rng.IntN(2)].ID, Decision: decision})
	if err != nil {
		return m, err
	}
	for idx := range scoring.InningsCount {
		if idx == 1 {
			if m, err = proc.StartNextInnings(ctx, m.ID); err != nil {
				return m, err
			}
		}
		if err := playInnings(ctx, proc, m, idx, rng); err != nil {
			return m, err
		}
		if m, err = proc.EndInnings(ctx, m.ID, idx); err != nil {
			return m, err
		}
	}
	return m, nil
}

func playInnings(ctx context.Context, proc *processor.Processor, m *scoring.Match, idx int, rng *rand.Rand) error {
	batting, _ := m.Team(m.Innings[idx].BattingTeamID)
	bowling, _ := m.Team(m.Innings[idx].BowlingTeamID)
	striker, nonStriker, nextIn := 0, 1, 2
	for over := 0; ; over++ {
		// The last five in the order share the bowling.
		bowler := bowling.Players[len(bowling.Players)-1-over%5].ID
		for legal := 0; legal < scoring.BallsPerOver; {
			input := scoring.BallInput{
				StrikerID:    batting.Players[striker].ID,
				NonStrikerID: batting.Players[nonStriker].ID,
				BowlerID:     bowler,
			}
			switch roll := rng.IntN(100); {
			case roll < 4:
				input.Wide = true
			case roll < 10:
				input.Wicket = true
				input.Dismissal = scoring.DismissalBowled
			case roll < 22:
				input.Runs = 4
			case roll < 27:
				input.Runs = 6
			default:
				input.Runs = rng.IntN(4)
			}
			outcome, err := proc.RecordBall(ctx, m.ID, idx, input)
			if err != nil {
				return err
			}
			if outcome.Ball.Legal {
				legal++
			}
			if input.Wicket {
				striker = nextIn
				nextIn++
			} else if input.Runs%2 == 1 {
				striker, nonStriker = nonStriker, striker
			}
			if outcome.ShouldEndInnings {
				return nil
			}
		}
		striker, nonStriker = nonStriker, striker
	}
}

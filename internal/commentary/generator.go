package commentary

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// Facts is everything the generator needs to know about a delivery.
type Facts struct {
	OverNumber int
	BallInOver int
	Runs       int
	Wide       bool
	NoBall     bool
	Bye        bool
	LegBye     bool
	Wicket     bool
	Dismissal  string
}

// Classify picks the phrase category for a delivery. Wickets win over extras,
// extras win over plain runs.
func Classify(f Facts) Category {
	if f.Wicket {
		switch f.Dismissal {
		case "bowled":
			return CategoryBowled
		case "caught":
			return CategoryCaught
		case "lbw":
			return CategoryLBW
		case "run_out":
			return CategoryRunOut
		case "stumped":
			return CategoryStumped
		case "hit_wicket":
			return CategoryHitWicket
		default:
			return CategoryWicketOther
		}
	}
	switch {
	case f.Wide:
		return CategoryWide
	case f.NoBall:
		return CategoryNoBall
	case f.Bye || f.LegBye:
		return CategoryBye
	}
	switch f.Runs {
	case 0:
		return CategoryDot
	case 1:
		return CategorySingle
	case 2:
		return CategoryDouble
	case 3:
		return CategoryTriple
	case 4:
		return CategoryFour
	case 6:
		return CategorySix
	default:
		return CategoryRuns
	}
}

// Phrases returns the pool for a category.
func Phrases(c Category) []string {
	return pools[c]
}

// Generate picks a phrase uniformly from the matching pool using rng and
// prefixes it with "<over>.<ball>".
func Generate(rng *rand.Rand, f Facts) string {
	category := Classify(f)
	pool := pools[category]
	phrase := pool[rng.IntN(len(pool))]
	if category == CategoryRuns {
		phrase = fmt.Sprintf("%d %s", f.Runs, phrase)
	}
	return fmt.Sprintf("%d.%d %s", f.OverNumber, f.BallInOver, phrase)
}

// Generator is a Generate wrapper that is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Generator. A nil rng gets a time-seeded source.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Generator{rng: rng}
}

// Describe implements scoring.Commentator.
func (g *Generator) Describe(f Facts) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Generate(g.rng, f)
}

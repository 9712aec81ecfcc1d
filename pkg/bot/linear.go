package bot

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/yourusername/gammon/pkg/board"
)

// Weight vectors per phase. Hand-tuned; the shape of the policy (not
// these particular values) is the contract. In a race nothing matters
// but the pip count and borne-off checkers; in contact positions
// structure and hits dominate; with a crashed structure the race
// terms take over again while blots stay expensive.
var (
	contactWeights = []float64{
		featPipLead:    1.0,
		featOff:        2.0,
		featOppBar:     1.5,
		featOwnBar:     -1.5,
		featBlots:      -1.2,
		featPoints:     0.8,
		featHomePoints: 1.2,
		featAnchors:    0.9,
		featBackDist:   -0.3,
		featStacked:    -0.4,
	}
	crashedWeights = []float64{
		featPipLead:    1.6,
		featOff:        2.5,
		featOppBar:     1.0,
		featOwnBar:     -1.8,
		featBlots:      -1.4,
		featPoints:     0.5,
		featHomePoints: 0.8,
		featAnchors:    0.6,
		featBackDist:   -0.5,
		featStacked:    -0.2,
	}
	raceWeights = []float64{
		featPipLead:    2.5,
		featOff:        3.0,
		featOppBar:     0,
		featOwnBar:     -2.0,
		featBlots:      0,
		featPoints:     0,
		featHomePoints: 0.2,
		featAnchors:    0,
		featBackDist:   -0.8,
		featStacked:    -0.1,
	}
)

// LinearBot scores candidate plays with a linear function of position
// features, using a different weight vector per game phase.
type LinearBot struct {
	weights map[Phase][]float64
}

// NewLinearBot returns a bot with the default weight vectors.
func NewLinearBot() *LinearBot {
	return &LinearBot{
		weights: map[Phase][]float64{
			PhaseContact: contactWeights,
			PhaseCrashed: crashedWeights,
			PhaseRace:    raceWeights,
		},
	}
}

func (lb *LinearBot) Name() string { return "linear" }

// Score evaluates a position for color. Finished games score outside
// the range any weight vector can reach.
func (lb *LinearBot) Score(b *board.Board, c board.Color) float64 {
	phase := Classify(b)
	if phase == PhaseOver {
		if b.Off(c) == board.CheckersPerSide {
			return 1000
		}
		return -1000
	}
	return floats.Dot(lb.weights[phase], Features(b, c))
}

// ChoosePlay simulates every candidate play on a cloned board and
// returns the best-scoring one.
func (lb *LinearBot) ChoosePlay(b *board.Board, c board.Color, plays []*board.Play) *board.Play {
	if len(plays) == 0 {
		return nil
	}

	type scored struct {
		play  *board.Play
		score float64
	}
	candidates := make([]scored, 0, len(plays))
	for _, p := range plays {
		sim := b.Copy()
		if err := sim.ApplyPlay(c, p); err != nil {
			continue // not reachable for plays drawn from the legal set
		}
		candidates = append(candidates, scored{play: p, score: lb.Score(sim, c)})
	}
	if len(candidates) == 0 {
		return nil
	}

	best := lo.MaxBy(candidates, func(a, b scored) bool {
		return a.score > b.score
	})
	return best.play
}

// ShouldDouble applies the doubling-phase policy: in a race, offer
// the cube with a lead of a tenth of the own count plus two pips; in
// contact positions, require a clearly better evaluation as well.
func (lb *LinearBot) ShouldDouble(b *board.Board, c board.Color) bool {
	own := b.PipCount(c)
	opp := b.PipCount(c.Opponent())
	lead := opp - own

	switch Classify(b) {
	case PhaseRace:
		return lead >= own/10+2
	case PhaseContact, PhaseCrashed:
		return lead >= own/10+2 && lb.Score(b, c) > lb.Score(b, c.Opponent())+0.5
	default:
		return false
	}
}

// Package bot provides rule-based computer opponents. Bots receive
// the legal-play set from the board, simulate candidate plays on
// cloned boards, and pick one; they never mutate the live board.
package bot

import (
	"lukechampine.com/frand"

	"github.com/yourusername/gammon/pkg/board"
)

// Bot selects one play from the legal-play set. A nil result means
// no play was offered (the turn is skipped).
type Bot interface {
	Name() string
	ChoosePlay(b *board.Board, c board.Color, plays []*board.Play) *board.Play
}

// RandomBot picks uniformly among the legal plays.
type RandomBot struct {
	rng *frand.RNG
}

// NewRandomBot returns a bot with its own RNG.
func NewRandomBot() *RandomBot {
	return &RandomBot{rng: frand.New()}
}

func (rb *RandomBot) Name() string { return "random" }

// ChoosePlay picks any legal play.
func (rb *RandomBot) ChoosePlay(_ *board.Board, _ board.Color, plays []*board.Play) *board.Play {
	if len(plays) == 0 {
		return nil
	}
	return plays[rb.rng.Intn(len(plays))]
}

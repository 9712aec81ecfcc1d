// Package game runs the backgammon turn loop: rolling, asking the
// board for legal plays, letting a player choose, and applying the
// chosen play to the live board until someone wins.
package game

import (
	"github.com/rs/zerolog"

	"github.com/yourusername/gammon/internal/dice"
	"github.com/yourusername/gammon/pkg/board"
)

// Player chooses one play from the legal-play set. Bots from pkg/bot
// satisfy this directly; interactive frontends implement it with a
// prompt. A nil result concedes the choice to the first legal play.
type Player interface {
	Name() string
	ChoosePlay(b *board.Board, c board.Color, plays []*board.Play) *board.Play
}

// Result is the outcome of a finished game.
type Result struct {
	Winner board.Color
	Points int // 1 = single, 2 = gammon, 3 = backgammon
	Turns  int
}

// Game owns the live board and drives the turn loop. It is
// single-threaded; one turn is fully applied before the next starts.
type Game struct {
	Board  *board.Board
	roller dice.Roller
	player [2]Player
	onRoll board.Color
	turns  int
	log    zerolog.Logger
}

// New sets up a game on the standard starting position. px plays X,
// po plays O.
func New(px, po Player, roller dice.Roller, log zerolog.Logger) *Game {
	return &Game{
		Board:  board.Start(),
		roller: roller,
		player: [2]Player{px, po},
		onRoll: board.X,
		log:    log,
	}
}

// OnRoll returns the side to move.
func (g *Game) OnRoll() board.Color { return g.onRoll }

// Turns returns the number of turns taken so far.
func (g *Game) Turns() int { return g.turns }

// OpeningRoll rolls one die per side, re-rolling ties, and gives the
// winner the combined roll as the first turn.
func (g *Game) OpeningRoll() dice.Roll {
	for {
		r := g.roller.Roll()
		if r.IsDoubles() {
			continue
		}
		if r[0] > r[1] {
			g.onRoll = board.X
		} else {
			g.onRoll = board.O
		}
		g.log.Debug().Stringer("roll", r).Stringer("first", g.onRoll).
			Msg("opening roll")
		return r
	}
}

// PlayTurn runs one full turn for the side on roll with the given
// roll. An empty legal-play set skips the turn; that is a normal
// outcome, not an error.
func (g *Game) PlayTurn(roll dice.Roll) {
	c := g.onRoll
	g.turns++

	plays := g.Board.LegalPlays(c, roll.Values())
	if len(plays) == 0 {
		g.log.Info().Stringer("color", c).Stringer("roll", roll).
			Msg("no legal plays, turn skipped")
		g.onRoll = c.Opponent()
		return
	}

	choice := g.player[c].ChoosePlay(g.Board, c, plays)
	if choice == nil {
		choice = plays[0]
	}

	played := choice.String()
	for {
		m, ok := choice.NextMove()
		if !ok {
			break
		}
		captured, err := g.Board.Move(c, int(m.From), int(m.To))
		if err != nil {
			// Plays from the legal set always apply cleanly; reaching
			// this means a player handed back a foreign play.
			g.log.Error().Err(err).Stringer("color", c).
				Str("move", board.FormatMove(m)).Msg("chosen play rejected")
			break
		}
		if captured != board.None {
			g.log.Debug().Stringer("hit", captured).
				Str("move", board.FormatMove(m)).Msg("blot captured")
		}
	}

	g.log.Info().Stringer("color", c).Stringer("roll", roll).
		Str("play", played).Int("pips", g.Board.PipCount(c)).Msg("turn played")

	g.onRoll = c.Opponent()
}

// Over reports whether either side has borne off all checkers.
func (g *Game) Over() bool {
	return g.Board.Off(board.X) == board.CheckersPerSide ||
		g.Board.Off(board.O) == board.CheckersPerSide
}

// Play runs a complete game and returns the result.
func (g *Game) Play() Result {
	if g.Over() {
		return g.result()
	}

	roll := g.OpeningRoll()
	g.PlayTurn(roll)

	for !g.Over() {
		g.PlayTurn(g.roller.Roll())
	}
	return g.result()
}

// Score rates a finished board: gammon if the loser bore off nothing,
// backgammon if, in addition, the loser still has a checker in the
// winner's home board or on the bar.
func Score(b *board.Board) (winner board.Color, points int) {
	winner = board.X
	if b.Off(board.O) == board.CheckersPerSide {
		winner = board.O
	}
	loser := winner.Opponent()

	points = 1
	if b.Off(loser) == 0 {
		points = 2
		if b.Bar(loser) > 0 || loserInWinnerHome(b, loser, winner) {
			points = 3
		}
	}
	return winner, points
}

func (g *Game) result() Result {
	winner, points := Score(g.Board)
	res := Result{Winner: winner, Points: points, Turns: g.turns}
	g.log.Info().Stringer("winner", winner).Int("points", points).
		Int("turns", g.turns).Msg("game over")
	return res
}

func loserInWinnerHome(b *board.Board, loser, winner board.Color) bool {
	lo, hi := 1, 6
	if winner == board.O {
		lo, hi = 19, 24
	}
	for p := lo; p <= hi; p++ {
		if b.Checkers(loser, p) > 0 {
			return true
		}
	}
	return false
}

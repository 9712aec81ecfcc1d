package bot

import (
	"github.com/yourusername/gammon/pkg/board"
)

// Phase is the position class the evaluator selects its weight
// vector by.
type Phase int

const (
	PhaseContact Phase = iota // back checkers have not passed each other
	PhaseCrashed              // contact with one side's structure collapsed
	PhaseRace                 // pure race, no contact possible
	PhaseOver                 // one side has borne off everything
)

func (p Phase) String() string {
	switch p {
	case PhaseContact:
		return "contact"
	case PhaseCrashed:
		return "crashed"
	case PhaseRace:
		return "race"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// Classify determines the phase of a position. The mover is not part
// of the classification; the phase is a property of the position.
func Classify(b *board.Board) Phase {
	if b.Off(board.X) == board.CheckersPerSide || b.Off(board.O) == board.CheckersPerSide {
		return PhaseOver
	}

	dx := b.FarthestDistance(board.X)
	dy := b.FarthestDistance(board.O)
	if dx == 0 || dy == 0 {
		return PhaseOver
	}

	// Rearmost checkers still face each other when their combined
	// distances exceed the board.
	if dx+dy > board.BarPoint {
		if crashed(b, board.X) || crashed(b, board.O) {
			return PhaseCrashed
		}
		return PhaseContact
	}

	return PhaseRace
}

// crashed reports whether a side's checker structure has collapsed:
// too few checkers in play, or the spares buried behind the bar and
// the ace point.
func crashed(b *board.Board, c board.Color) bool {
	const n = 6

	tot := board.CheckersPerSide - b.Off(c)
	if tot <= n {
		return true
	}

	bar := b.Bar(c)
	acePoint := b.Checkers(c, absAce(c))

	if bar > 1 {
		if tot <= n+bar {
			return true
		}
		if 1+tot-(bar+acePoint) <= n && acePoint > 1 {
			return true
		}
	} else if tot <= n+(acePoint-1) {
		return true
	}

	return false
}

// absAce returns the absolute point one pip from bearing off.
func absAce(c board.Color) int {
	if c == board.X {
		return 1
	}
	return board.NumPoints
}

package board

import (
	"sort"
	"strings"
)

// CheckerMove is a single-die move: one checker from one point to
// another. From may be BarPoint and To may be OffPoint. Pips is the
// die value that paid for the move, which can exceed the distance
// travelled when bearing off with a larger roll.
type CheckerMove struct {
	From int8
	To   int8
	Pips int8
}

func (m CheckerMove) String() string { return FormatMove(m) }

// Play is one player's full turn: an ordered sequence of single-die
// moves. Two plays are the same play if they contain the same moves
// regardless of order; Key returns the canonical form used to compare
// and deduplicate them.
type Play struct {
	moves []CheckerMove
	pips  int
}

// NewPlay constructs a play from zero or more initial moves.
func NewPlay(moves ...CheckerMove) *Play {
	p := &Play{}
	for _, m := range moves {
		p.moves = append(p.moves, m)
		p.pips += int(m.Pips)
	}
	return p
}

// AddMove appends a move. Legality is the caller's responsibility.
func (p *Play) AddMove(from, to, pips int) {
	p.moves = append(p.moves, CheckerMove{From: int8(from), To: int8(to), Pips: int8(pips)})
	p.pips += pips
}

// Combine returns a new play holding p's moves followed by o's.
func (p *Play) Combine(o *Play) *Play {
	n := &Play{
		moves: make([]CheckerMove, 0, len(p.moves)+len(o.moves)),
		pips:  p.pips + o.pips,
	}
	n.moves = append(n.moves, p.moves...)
	n.moves = append(n.moves, o.moves...)
	return n
}

// Copy returns an independent copy of the play.
func (p *Play) Copy() *Play {
	return &Play{moves: append([]CheckerMove(nil), p.moves...), pips: p.pips}
}

// Len returns the number of moves in the play.
func (p *Play) Len() int { return len(p.moves) }

// TotalPips returns the sum of the play's die values, the measure the
// maximal-play rule compares.
func (p *Play) TotalPips() int { return p.pips }

// Moves returns a copy of the play's moves in order.
func (p *Play) Moves() []CheckerMove {
	return append([]CheckerMove(nil), p.moves...)
}

// NextMove removes and returns the earliest-added move, for applying
// the play to the live board one die at a time. The second result is
// false once the play is exhausted.
func (p *Play) NextMove() (CheckerMove, bool) {
	if len(p.moves) == 0 {
		return CheckerMove{}, false
	}
	m := p.moves[0]
	p.moves = p.moves[1:]
	p.pips -= int(m.Pips)
	return m, true
}

// Key returns the canonical sorted form of the play's move set. Equal
// keys mean equal plays, independent of move order.
func (p *Play) Key() string {
	sorted := append([]CheckerMove(nil), p.moves...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From > sorted[j].From
		}
		if sorted[i].To != sorted[j].To {
			return sorted[i].To > sorted[j].To
		}
		return sorted[i].Pips > sorted[j].Pips
	})
	parts := make([]string, len(sorted))
	for i, m := range sorted {
		parts[i] = FormatMove(m)
	}
	return strings.Join(parts, " ")
}

// Equal reports whether two plays contain the same moves, in any
// order.
func (p *Play) Equal(o *Play) bool {
	if len(p.moves) != len(o.moves) {
		return false
	}
	return p.Key() == o.Key()
}

// String renders the play in move notation, e.g. "24/18 13/8".
func (p *Play) String() string {
	parts := make([]string, len(p.moves))
	for i, m := range p.moves {
		parts[i] = FormatMove(m)
	}
	return strings.Join(parts, " ")
}

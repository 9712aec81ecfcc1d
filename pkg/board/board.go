// Package board implements the backgammon board position, the legal
// play search, and the play value type.
package board

import (
	"errors"
	"fmt"
	"strings"
)

// Color identifies a side. X moves from point 24 toward point 1 and
// bears off from points 1-6; O moves the opposite way and bears off
// from points 19-24.
type Color uint8

const (
	X Color = iota
	O
	None // empty point / no capture
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == X {
		return O
	}
	return X
}

func (c Color) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "-"
}

const (
	// NumPoints is the number of numbered points on the board.
	NumPoints = 24
	// BarPoint is the sentinel point for checkers on the bar. It is
	// also the pip distance of a barred checker.
	BarPoint = 25
	// OffPoint is the sentinel point for borne-off checkers.
	OffPoint = 0
	// CheckersPerSide is the number of checkers each side starts with.
	CheckersPerSide = 15
)

// Board holds the checker positions for both sides: 24 points plus
// bar and off per color. It is a plain value type; Copy produces an
// independent position for hypothetical move sequences.
//
// Invariant: a point holds checkers of at most one color. Move
// resolves captures so the invariant is never visible to callers.
type Board struct {
	points [2][NumPoints + 1]uint8 // index 1-24; index 0 unused
	bar    [2]uint8
	off    [2]uint8

	// Legal-play cache for the most recent LegalPlays call.
	// Cleared by any mutation; not carried across Copy.
	cacheKey   string
	cachePlays []*Play
}

// Move rejection errors.
var (
	ErrNoChecker      = errors.New("no checker at source point")
	ErrMustEnter      = errors.New("checker on the bar must enter first")
	ErrBlocked        = errors.New("destination point is blocked")
	ErrWrongDirection = errors.New("move goes the wrong direction")
	ErrCannotBearOff  = errors.New("cannot bear off with checkers outside home")
	ErrOffBoard       = errors.New("point is off the board")
)

// Start returns the standard backgammon starting position.
func Start() *Board {
	b := &Board{}
	b.points[X][24] = 2
	b.points[X][13] = 5
	b.points[X][8] = 3
	b.points[X][6] = 5

	b.points[O][1] = 2
	b.points[O][12] = 5
	b.points[O][17] = 3
	b.points[O][19] = 5
	return b
}

// Checkers returns the number of color's checkers at point, which may
// be a board point (1-24), BarPoint, or OffPoint.
func (b *Board) Checkers(c Color, point int) int {
	switch point {
	case BarPoint:
		return int(b.bar[c])
	case OffPoint:
		return int(b.off[c])
	default:
		if point < 1 || point > NumPoints {
			return 0
		}
		return int(b.points[c][point])
	}
}

// Point returns the occupying color and checker count at a board
// point. Empty points report None.
func (b *Board) Point(point int) (Color, int) {
	if point < 1 || point > NumPoints {
		return None, 0
	}
	if n := b.points[X][point]; n > 0 {
		return X, int(n)
	}
	if n := b.points[O][point]; n > 0 {
		return O, int(n)
	}
	return None, 0
}

// Bar returns the number of color's checkers on the bar.
func (b *Board) Bar(c Color) int { return int(b.bar[c]) }

// Off returns the number of color's checkers borne off.
func (b *Board) Off(c Color) int { return int(b.off[c]) }

// SetCheckers places n of color's checkers at point, replacing any of
// that color already there. Used to construct positions; it does not
// check the shared-point invariant.
func (b *Board) SetCheckers(c Color, point, n int) {
	b.invalidate()
	switch point {
	case BarPoint:
		b.bar[c] = uint8(n)
	case OffPoint:
		b.off[c] = uint8(n)
	default:
		if point >= 1 && point <= NumPoints {
			b.points[c][point] = uint8(n)
		}
	}
}

// Copy returns an independent deep copy of the position. The
// legal-play cache is not carried over.
func (b *Board) Copy() *Board {
	nb := &Board{
		points: b.points,
		bar:    b.bar,
		off:    b.off,
	}
	return nb
}

// Equal reports whether two positions hold identical checkers.
func (b *Board) Equal(o *Board) bool {
	return b.points == o.points && b.bar == o.bar && b.off == o.off
}

// PipCount returns the total distance color's checkers must travel to
// bear off. Checkers on the bar count 25 pips; borne-off checkers
// count zero.
func (b *Board) PipCount(c Color) int {
	pips := int(b.bar[c]) * BarPoint
	for p := 1; p <= NumPoints; p++ {
		pips += int(b.points[c][p]) * distance(c, p)
	}
	return pips
}

// MayBearOff reports whether color has every checker in its home
// board (or already off), the precondition for bearing off.
func (b *Board) MayBearOff(c Color) bool {
	if b.bar[c] > 0 {
		return false
	}
	for p := 1; p <= NumPoints; p++ {
		if b.points[c][p] > 0 && distance(c, p) > 6 {
			return false
		}
	}
	return true
}

// FarthestDistance returns the pip distance of color's rearmost
// checker, or 0 if every checker is off.
func (b *Board) FarthestDistance(c Color) int {
	if b.bar[c] > 0 {
		return BarPoint
	}
	far := 0
	for p := 1; p <= NumPoints; p++ {
		if b.points[c][p] > 0 && distance(c, p) > far {
			far = distance(c, p)
		}
	}
	return far
}

// Move relocates one of color's checkers from one point to another,
// capturing a lone opposing checker on the destination to the bar.
// from may be BarPoint (entering) and to may be OffPoint (bearing
// off). The captured color is returned, or None.
//
// Illegal requests are rejected with a sentinel error and leave the
// position untouched. Move checks single-move legality only; whether
// the move belongs to a maximal play is the caller's concern.
func (b *Board) Move(c Color, from, to int) (Color, error) {
	if from != BarPoint && (from < 1 || from > NumPoints) {
		return None, ErrOffBoard
	}
	if to != OffPoint && (to < 1 || to > NumPoints) {
		return None, ErrOffBoard
	}
	if b.Checkers(c, from) == 0 {
		return None, ErrNoChecker
	}
	if b.bar[c] > 0 && from != BarPoint {
		return None, ErrMustEnter
	}
	if to == OffPoint {
		if from == BarPoint || !b.MayBearOff(c) {
			return None, ErrCannotBearOff
		}
	} else {
		if b.points[c.Opponent()][to] >= 2 {
			return None, ErrBlocked
		}
		if from == BarPoint {
			// Entry lands in the opponent's home board.
			if distance(c, to) < 19 {
				return None, ErrWrongDirection
			}
		} else if distance(c, to) >= distance(c, from) {
			return None, ErrWrongDirection
		}
	}

	return b.applyMove(c, from, to), nil
}

// applyMove performs a move without legality checks. The search uses
// it on cloned boards where legality is established up front.
func (b *Board) applyMove(c Color, from, to int) Color {
	b.invalidate()

	if from == BarPoint {
		b.bar[c]--
	} else {
		b.points[c][from]--
	}

	if to == OffPoint {
		b.off[c]++
		return None
	}

	captured := None
	opp := c.Opponent()
	if b.points[opp][to] == 1 {
		b.points[opp][to] = 0
		b.bar[opp]++
		captured = opp
	}
	b.points[c][to]++
	return captured
}

// ApplyPlay applies every move of a play to the live board in order.
// The play itself is not consumed; callers holding a play for later
// application should pop moves with NextMove instead.
func (b *Board) ApplyPlay(c Color, p *Play) error {
	for _, m := range p.Moves() {
		if _, err := b.Move(c, int(m.From), int(m.To)); err != nil {
			return fmt.Errorf("apply %s: %w", FormatMove(m), err)
		}
	}
	return nil
}

func (b *Board) invalidate() {
	b.cacheKey = ""
	b.cachePlays = nil
}

// distance returns how many pips a checker at point still has to
// travel: the point number for X, the mirror for O.
func distance(c Color, point int) int {
	if c == X {
		return point
	}
	return BarPoint - point
}

// destPoint returns the landing point for a checker moving die pips,
// or OffPoint if the move leaves the board.
func destPoint(c Color, from, die int) int {
	var to int
	if c == X {
		to = from - die
	} else {
		to = from + die
	}
	if to < 1 || to > NumPoints {
		return OffPoint
	}
	return to
}

// entryPoint returns the point a barred checker enters on for a die
// value: the opponent's home board, deepest for the highest die.
func entryPoint(c Color, die int) int {
	if c == X {
		return BarPoint - die
	}
	return die
}

// String renders the position as text, points 13-24 across the top
// and 12-1 across the bottom.
func (b *Board) String() string {
	var sb strings.Builder

	sb.WriteString("13 14 15 16 17 18 | 19 20 21 22 23 24\n")
	b.writeHalf(&sb, 13, 24)
	sb.WriteString("------------------+------------------\n")
	b.writeHalf(&sb, 12, 1)
	sb.WriteString("12 11 10  9  8  7 |  6  5  4  3  2  1\n")

	fmt.Fprintf(&sb, "bar X:%d O:%d  off X:%d O:%d\n",
		b.bar[X], b.bar[O], b.off[X], b.off[O])
	return sb.String()
}

func (b *Board) writeHalf(sb *strings.Builder, from, to int) {
	step := 1
	if to < from {
		step = -1
	}
	for row := 0; row < 5; row++ {
		for p := from; p != to+step; p += step {
			c, n := b.Point(p)
			cell := "  "
			switch {
			case n > row+1 && row == 4:
				cell = fmt.Sprintf("%d%s", n-4, c)
			case n > row:
				cell = " " + c.String()
			}
			if p == 19 || p == 6 {
				sb.WriteString("| ")
			}
			sb.WriteString(cell + " ")
		}
		sb.WriteString("\n")
	}
}

package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Notation errors.
var (
	ErrBadNotation = errors.New("unrecognized move notation")
	ErrIllegalPlay = errors.New("not a legal play for this roll")
)

// FormatMove renders a move in the turn loop's command vocabulary:
// "enter N" for entry from the bar, "bear N" for bearing off, and
// "F/T" for point-to-point moves.
func FormatMove(m CheckerMove) string {
	switch {
	case m.From == BarPoint:
		return fmt.Sprintf("enter %d", m.To)
	case m.To == OffPoint:
		return fmt.Sprintf("bear %d", m.From)
	default:
		return fmt.Sprintf("%d/%d", m.From, m.To)
	}
}

// ParseMove parses a single move in the vocabulary FormatMove emits.
// The rolled die values are needed to recover the die paid for a
// bear-off: the exact distance when it was rolled, otherwise the
// smallest larger die. With the roll in hand the mapping is bijective
// with the (from, to, pips) form.
func ParseMove(c Color, text string, dice []int) (CheckerMove, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	if rest, ok := strings.CutPrefix(text, "enter "); ok {
		p, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || p < 1 || p > NumPoints {
			return CheckerMove{}, ErrBadNotation
		}
		die := distance(c.Opponent(), p)
		if die < 1 || die > 6 {
			return CheckerMove{}, ErrBadNotation
		}
		return CheckerMove{From: BarPoint, To: int8(p), Pips: int8(die)}, nil
	}

	if rest, ok := strings.CutPrefix(text, "bear "); ok {
		p, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || p < 1 || p > NumPoints {
			return CheckerMove{}, ErrBadNotation
		}
		die, ok := bearOffDie(distance(c, p), dice)
		if !ok {
			return CheckerMove{}, ErrBadNotation
		}
		return CheckerMove{From: int8(p), To: OffPoint, Pips: int8(die)}, nil
	}

	from, to, found := strings.Cut(text, "/")
	if !found {
		return CheckerMove{}, ErrBadNotation
	}
	f, err1 := strconv.Atoi(strings.TrimSpace(from))
	t, err2 := strconv.Atoi(strings.TrimSpace(to))
	if err1 != nil || err2 != nil ||
		f < 1 || f > NumPoints || t < 1 || t > NumPoints {
		return CheckerMove{}, ErrBadNotation
	}
	pips := distance(c, f) - distance(c, t)
	if pips < 1 || pips > 6 {
		return CheckerMove{}, ErrBadNotation
	}
	return CheckerMove{From: int8(f), To: int8(t), Pips: int8(pips)}, nil
}

// bearOffDie resolves which rolled die pays for bearing off from a
// point dist pips from the edge: the exact die when available, else
// the smallest rolled die that overshoots.
func bearOffDie(dist int, dice []int) (int, bool) {
	for _, d := range dice {
		if d == dist {
			return d, true
		}
	}
	best := 0
	for _, d := range dice {
		if d > dist && (best == 0 || d < best) {
			best = d
		}
	}
	return best, best != 0
}

// ParsePlay parses a comma-separated full turn, e.g. "24/18, 13/8"
// or "enter 3, bear 6", and validates it against the legal plays for
// the roll. The canonical play from the legal set is returned so the
// caller applies exactly what the search produced.
func ParsePlay(b *Board, c Color, dice []int, text string) (*Play, error) {
	entered := NewPlay()
	remaining := append([]int(nil), dice...)
	for _, part := range strings.Split(text, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		// Resolve each move against the dice not yet spoken for, so
		// "bear 4, bear 2" on a 6-4 pays the 4 before the overroll.
		m, err := ParseMove(c, part, remaining)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", strings.TrimSpace(part), err)
		}
		for i, d := range remaining {
			if d == int(m.Pips) {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
		entered.AddMove(int(m.From), int(m.To), int(m.Pips))
	}

	for _, legal := range b.LegalPlays(c, dice) {
		if legal.Equal(entered) {
			return legal, nil
		}
	}
	return nil, ErrIllegalPlay
}

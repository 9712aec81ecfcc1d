package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yourusername/gammon/pkg/board"
)

var errBadRequest = errors.New("bad request")

// sideCounts flattens a layout into counts indexed by point.
func (l *CheckerLayout) sideCounts() [board.NumPoints + 1]int {
	return [board.NumPoints + 1]int{
		0, l.P1, l.P2, l.P3, l.P4, l.P5, l.P6, l.P7, l.P8, l.P9, l.P10,
		l.P11, l.P12, l.P13, l.P14, l.P15, l.P16, l.P17, l.P18, l.P19,
		l.P20, l.P21, l.P22, l.P23, l.P24,
	}
}

func layoutOf(b *board.Board, c board.Color) CheckerLayout {
	var l CheckerLayout
	fields := []*int{
		nil, &l.P1, &l.P2, &l.P3, &l.P4, &l.P5, &l.P6, &l.P7, &l.P8,
		&l.P9, &l.P10, &l.P11, &l.P12, &l.P13, &l.P14, &l.P15, &l.P16,
		&l.P17, &l.P18, &l.P19, &l.P20, &l.P21, &l.P22, &l.P23, &l.P24,
	}
	for p := 1; p <= board.NumPoints; p++ {
		*fields[p] = b.Checkers(c, p)
	}
	l.Bar = b.Bar(c)
	l.Off = b.Off(c)
	return l
}

// BoardToLayout renders a board as the explicit JSON layout.
func BoardToLayout(b *board.Board) BoardLayout {
	return BoardLayout{X: layoutOf(b, board.X), O: layoutOf(b, board.O)}
}

func boardFromLayout(l *BoardLayout) (*board.Board, error) {
	b := &board.Board{}
	for c, side := range map[board.Color]*CheckerLayout{board.X: &l.X, board.O: &l.O} {
		counts := side.sideCounts()
		for p := 1; p <= board.NumPoints; p++ {
			if counts[p] < 0 || counts[p] > board.CheckersPerSide {
				return nil, fmt.Errorf("%w: point %d has %d checkers", errBadRequest, p, counts[p])
			}
			b.SetCheckers(c, p, counts[p])
		}
		b.SetCheckers(c, board.BarPoint, side.Bar)
		b.SetCheckers(c, board.OffPoint, side.Off)
	}
	for p := 1; p <= board.NumPoints; p++ {
		if c, _ := b.Point(p); c != board.None {
			opp := c.Opponent()
			if b.Checkers(opp, p) > 0 {
				return nil, fmt.Errorf("%w: point %d holds both colors", errBadRequest, p)
			}
		}
	}
	return b, nil
}

func parsePlayer(s string) (board.Color, error) {
	switch s {
	case "x", "X", "":
		return board.X, nil
	case "o", "O":
		return board.O, nil
	}
	return board.X, fmt.Errorf("%w: player must be \"x\" or \"o\"", errBadRequest)
}

// resolvePosition turns a request into a board and the side on roll.
// An explicit layout wins over a position ID.
func resolvePosition(req *PositionRequest) (*board.Board, board.Color, error) {
	c, err := parsePlayer(req.Player)
	if err != nil {
		return nil, c, err
	}

	switch {
	case req.Board != nil:
		b, err := boardFromLayout(req.Board)
		return b, c, err
	case req.Position != "":
		b, err := board.FromPositionID(req.Position, c)
		if err != nil {
			return nil, c, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return b, c, nil
	}
	return nil, c, fmt.Errorf("%w: board or position required", errBadRequest)
}

func checkDice(dice []int) error {
	if len(dice) < 1 || len(dice) > 4 {
		return fmt.Errorf("%w: dice must hold 1-4 values", errBadRequest)
	}
	for _, d := range dice {
		if d < 1 || d > 6 {
			return fmt.Errorf("%w: die value %d out of range", errBadRequest, d)
		}
	}
	return nil
}

// expandDice applies the doubles rule when the caller sends the raw
// two-die roll.
func expandDice(dice []int) []int {
	if len(dice) == 2 && dice[0] == dice[1] {
		return []int{dice[0], dice[0], dice[0], dice[0]}
	}
	return dice
}

func pointName(p int8) string {
	switch p {
	case board.BarPoint:
		return "bar"
	case board.OffPoint:
		return "off"
	}
	return strconv.Itoa(int(p))
}

// PlayToJSON renders a play for a response.
func PlayToJSON(p *board.Play) PlayJSON {
	moves := p.Moves()
	out := PlayJSON{
		Moves: make([]MoveJSON, len(moves)),
		Pips:  p.TotalPips(),
		Text:  p.String(),
	}
	for i, m := range moves {
		out.Moves[i] = MoveJSON{From: pointName(m.From), To: pointName(m.To), Pips: int(m.Pips)}
	}
	return out
}

package board

import (
	"github.com/yourusername/gammon/internal/positionid"
)

// PositionID encodes the position as a gnubg-style 14-character ID.
// IDs are written from the perspective of the side on roll: the
// opponent's checkers first, then the mover's.
func (b *Board) PositionID(onRoll Color) string {
	var rel positionid.RelBoard
	rel[0] = b.relSide(onRoll.Opponent())
	rel[1] = b.relSide(onRoll)
	return positionid.Encode(rel)
}

// FromPositionID reconstructs a board from a position ID, with
// onRoll naming the side the ID was written for. Checkers missing
// from the board are assumed borne off.
func FromPositionID(id string, onRoll Color) (*Board, error) {
	rel, err := positionid.Decode(id)
	if err != nil {
		return nil, err
	}

	b := &Board{}
	b.setRelSide(onRoll.Opponent(), rel[0])
	b.setRelSide(onRoll, rel[1])
	return b, nil
}

// relSide converts one side to its relative view: index i holds the
// checkers i+1 pips from home, index 24 the bar.
func (b *Board) relSide(c Color) [positionid.RelPoints]uint8 {
	var rel [positionid.RelPoints]uint8
	for i := 0; i < NumPoints; i++ {
		rel[i] = uint8(b.Checkers(c, absPoint(c, i+1)))
	}
	rel[NumPoints] = b.bar[c]
	return rel
}

func (b *Board) setRelSide(c Color, rel [positionid.RelPoints]uint8) {
	total := 0
	for i := 0; i < NumPoints; i++ {
		b.points[c][absPoint(c, i+1)] = rel[i]
		total += int(rel[i])
	}
	b.bar[c] = rel[NumPoints]
	total += int(rel[NumPoints])
	if total < CheckersPerSide {
		b.off[c] = uint8(CheckersPerSide - total)
	}
}

// absPoint maps a pip distance back to the absolute board point.
func absPoint(c Color, dist int) int {
	if c == X {
		return dist
	}
	return BarPoint - dist
}

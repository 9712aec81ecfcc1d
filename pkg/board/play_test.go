package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayAddMoveAccumulatesPips(t *testing.T) {
	p := NewPlay()
	p.AddMove(24, 18, 6)
	p.AddMove(13, 8, 5)

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 11, p.TotalPips())
	assert.Equal(t, "24/18 13/8", p.String())
}

func TestPlayEqualityIgnoresOrder(t *testing.T) {
	a := NewPlay(
		CheckerMove{From: 24, To: 18, Pips: 6},
		CheckerMove{From: 13, To: 8, Pips: 5},
	)
	b := NewPlay(
		CheckerMove{From: 13, To: 8, Pips: 5},
		CheckerMove{From: 24, To: 18, Pips: 6},
	)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())

	c := NewPlay(
		CheckerMove{From: 24, To: 18, Pips: 6},
		CheckerMove{From: 13, To: 7, Pips: 6},
	)
	assert.False(t, a.Equal(c))
}

func TestPlayEqualityDistinguishesDieValue(t *testing.T) {
	// Bearing off the same checker with a 5 or a 6 is a different
	// move, even though from and to match.
	a := NewPlay(CheckerMove{From: 5, To: OffPoint, Pips: 5})
	b := NewPlay(CheckerMove{From: 5, To: OffPoint, Pips: 6})
	assert.False(t, a.Equal(b))
}

func TestPlayCombine(t *testing.T) {
	a := NewPlay(CheckerMove{From: 24, To: 18, Pips: 6})
	b := NewPlay(CheckerMove{From: 18, To: 13, Pips: 5})

	c := a.Combine(b)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, 11, c.TotalPips())
	assert.Equal(t, "24/18 18/13", c.String())

	// Combine must not alias its inputs.
	a.AddMove(13, 8, 5)
	assert.Equal(t, 2, c.Len())
}

func TestPlayNextMovePopsInOrder(t *testing.T) {
	p := NewPlay(
		CheckerMove{From: 24, To: 18, Pips: 6},
		CheckerMove{From: 18, To: 13, Pips: 5},
	)

	m, ok := p.NextMove()
	require.True(t, ok)
	assert.Equal(t, int8(24), m.From)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 5, p.TotalPips())

	m, ok = p.NextMove()
	require.True(t, ok)
	assert.Equal(t, int8(18), m.From)

	_, ok = p.NextMove()
	assert.False(t, ok)
	assert.Equal(t, 0, p.Len())
}

func TestPlayCopyIsIndependent(t *testing.T) {
	p := NewPlay(CheckerMove{From: 24, To: 18, Pips: 6})
	q := p.Copy()
	q.AddMove(18, 13, 5)

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 2, q.Len())
}

package board

import (
	"fmt"
	"sort"
	"strings"
)

// LegalPlays returns every maximal legal play for color given the die
// values available this turn: two values, four for doubles, or fewer
// when re-querying mid-turn. Plays are deduplicated by move set and
// filtered to those using the most dice and then the most pips, per
// the rule that as much of the roll as possible must be played.
//
// An empty result means no legal play exists and the turn is skipped;
// it is not an error.
//
// The result is cached on the board until the next mutation.
func (b *Board) LegalPlays(c Color, dice []int) []*Play {
	key := playCacheKey(c, dice)
	if b.cachePlays != nil && b.cacheKey == key {
		return copyPlays(b.cachePlays)
	}

	found := b.searchPlays(c, dice)

	// Deduplicate by move-set equality: different die orders can
	// reach the same set of moves.
	byKey := make(map[string]*Play, len(found))
	maxLen, maxPips := 0, 0
	for _, p := range found {
		if p.Len() > maxLen {
			maxLen = p.Len()
		}
		if p.TotalPips() > maxPips {
			maxPips = p.TotalPips()
		}
		byKey[p.Key()] = p
	}

	keys := make([]string, 0, len(byKey))
	for k, p := range byKey {
		if p.Len() == maxLen && p.TotalPips() == maxPips {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	plays := make([]*Play, 0, len(keys))
	for _, k := range keys {
		plays = append(plays, byKey[k])
	}

	b.cacheKey = key
	b.cachePlays = plays
	return copyPlays(plays)
}

// copyPlays shields the cache from callers that consume plays with
// NextMove.
func copyPlays(plays []*Play) []*Play {
	out := make([]*Play, len(plays))
	for i, p := range plays {
		out[i] = p.Copy()
	}
	return out
}

// searchPlays enumerates every legal play, maximal or not, by trying
// each distinct die value as the next move and recursing on a cloned
// board with the remaining dice. A branch with no legal continuation
// yields the partial play built so far; the caller ranks them.
func (b *Board) searchPlays(c Color, dice []int) []*Play {
	var plays []*Play
	var tried [7]bool

	for i, die := range dice {
		if die < 1 || die > 6 || tried[die] {
			continue
		}
		tried[die] = true

		for _, m := range b.singleMoves(c, die) {
			next := b.Copy()
			next.applyMove(c, int(m.From), int(m.To))

			rest := make([]int, 0, len(dice)-1)
			rest = append(rest, dice[:i]...)
			rest = append(rest, dice[i+1:]...)

			subs := next.searchPlays(c, rest)
			if len(subs) == 0 {
				plays = append(plays, NewPlay(m))
				continue
			}
			for _, sub := range subs {
				plays = append(plays, NewPlay(m).Combine(sub))
			}
		}
	}

	return plays
}

// singleMoves returns every legal single-die move for color. The
// move phase follows the board state: forced entry while any checker
// is on the bar, then normal movement, with bearing off available
// once every checker is home.
func (b *Board) singleMoves(c Color, die int) []CheckerMove {
	opp := c.Opponent()

	if b.bar[c] > 0 {
		p := entryPoint(c, die)
		if b.points[opp][p] >= 2 {
			return nil
		}
		return []CheckerMove{{From: BarPoint, To: int8(p), Pips: int8(die)}}
	}

	var moves []CheckerMove
	bearingOff := b.MayBearOff(c)
	farthest := b.FarthestDistance(c)

	for p := 1; p <= NumPoints; p++ {
		if b.points[c][p] == 0 {
			continue
		}
		dist := distance(c, p)
		if die < dist {
			to := destPoint(c, p, die)
			if b.points[opp][to] < 2 {
				moves = append(moves, CheckerMove{From: int8(p), To: int8(to), Pips: int8(die)})
			}
			continue
		}
		// die >= dist: the checker would leave the board. Legal only
		// when bearing off, with the exact die or an overroll from
		// the rearmost occupied point.
		if bearingOff && (die == dist || dist == farthest) {
			moves = append(moves, CheckerMove{From: int8(p), To: OffPoint, Pips: int8(die)})
		}
	}

	return moves
}

func playCacheKey(c Color, dice []int) string {
	sorted := append([]int(nil), dice...)
	sort.Ints(sorted)
	var sb strings.Builder
	sb.WriteString(c.String())
	for _, d := range sorted {
		fmt.Fprintf(&sb, ":%d", d)
	}
	return sb.String()
}

package bot

import (
	"github.com/yourusername/gammon/pkg/board"
)

// Feature indices for the linear evaluator.
const (
	featPipLead = iota // pip count advantage over the opponent
	featOff            // checkers borne off
	featOppBar         // opposing checkers sent to the bar
	featOwnBar         // own checkers stuck on the bar
	featBlots          // own single exposed checkers
	featPoints         // points held with two or more checkers
	featHomePoints     // held points inside the home board
	featAnchors        // held points inside the opponent's home board
	featBackDist       // distance of the rearmost checker
	featStacked        // checkers piled past four on a point

	// NumFeatures is the length of a feature vector.
	NumFeatures
)

// Features extracts the evaluation vector for color from a position.
// Values are scaled to roughly unit range so the weight vectors stay
// comparable across features.
func Features(b *board.Board, c board.Color) []float64 {
	f := make([]float64, NumFeatures)
	opp := c.Opponent()

	f[featPipLead] = float64(b.PipCount(opp)-b.PipCount(c)) / 167.0
	f[featOff] = float64(b.Off(c)) / float64(board.CheckersPerSide)
	f[featOppBar] = float64(b.Bar(opp)) / 2.0
	f[featOwnBar] = float64(b.Bar(c)) / 2.0

	blots, points, homePoints, anchors, stacked := 0, 0, 0, 0, 0
	for p := 1; p <= board.NumPoints; p++ {
		n := b.Checkers(c, p)
		switch {
		case n == 1:
			blots++
		case n >= 2:
			points++
			if inHome(c, p) {
				homePoints++
			}
			if inHome(opp, p) {
				anchors++
			}
			if n > 4 {
				stacked += n - 4
			}
		}
	}
	f[featBlots] = float64(blots) / 4.0
	f[featPoints] = float64(points) / 7.0
	f[featHomePoints] = float64(homePoints) / 6.0
	f[featAnchors] = float64(anchors) / 2.0
	f[featBackDist] = float64(b.FarthestDistance(c)) / float64(board.BarPoint)
	f[featStacked] = float64(stacked) / 5.0

	return f
}

// inHome reports whether a point lies in color's home board.
func inHome(c board.Color, p int) bool {
	if c == board.X {
		return p >= 1 && p <= 6
	}
	return p >= 19 && p <= 24
}

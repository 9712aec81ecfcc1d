package api

// CheckerLayout gives per-point checker counts for one side, keyed by
// absolute point number (1-24 for both sides).
type CheckerLayout struct {
	P1  int `json:"1,omitempty"`
	P2  int `json:"2,omitempty"`
	P3  int `json:"3,omitempty"`
	P4  int `json:"4,omitempty"`
	P5  int `json:"5,omitempty"`
	P6  int `json:"6,omitempty"`
	P7  int `json:"7,omitempty"`
	P8  int `json:"8,omitempty"`
	P9  int `json:"9,omitempty"`
	P10 int `json:"10,omitempty"`
	P11 int `json:"11,omitempty"`
	P12 int `json:"12,omitempty"`
	P13 int `json:"13,omitempty"`
	P14 int `json:"14,omitempty"`
	P15 int `json:"15,omitempty"`
	P16 int `json:"16,omitempty"`
	P17 int `json:"17,omitempty"`
	P18 int `json:"18,omitempty"`
	P19 int `json:"19,omitempty"`
	P20 int `json:"20,omitempty"`
	P21 int `json:"21,omitempty"`
	P22 int `json:"22,omitempty"`
	P23 int `json:"23,omitempty"`
	P24 int `json:"24,omitempty"`
	Bar int `json:"bar,omitempty"`
	Off int `json:"off,omitempty"`
}

// BoardLayout is the explicit JSON form of a position.
type BoardLayout struct {
	X CheckerLayout `json:"x"`
	O CheckerLayout `json:"o"`
}

// PositionRequest locates a position either as an explicit layout or
// as a position ID, plus the side on roll.
type PositionRequest struct {
	Board    *BoardLayout `json:"board,omitempty"`
	Position string       `json:"position,omitempty"`
	Player   string       `json:"player"` // "x" or "o"
}

// PlaysRequest asks for the legal plays of a roll.
type PlaysRequest struct {
	PositionRequest
	Dice []int `json:"dice"`
}

// BestPlayRequest asks a bot to pick from the legal plays.
type BestPlayRequest struct {
	PlaysRequest
	Bot string `json:"bot,omitempty"` // "linear" (default) or "random"
}

// MoveJSON is one checker move; from may be "bar" and to may be
// "off", otherwise both are point numbers.
type MoveJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
	Pips int    `json:"pips"`
}

// PlayJSON is a full turn.
type PlayJSON struct {
	Moves []MoveJSON `json:"moves"`
	Pips  int        `json:"pips"`
	Text  string     `json:"text"`
}

// PlaysResponse lists every maximal legal play. An empty list means
// the turn must be skipped.
type PlaysResponse struct {
	Plays    []PlayJSON `json:"plays"`
	Position string     `json:"position"`
}

// BestPlayResponse carries the chosen play and how the bot saw the
// position.
type BestPlayResponse struct {
	Play   *PlayJSON `json:"play"`
	Score  float64   `json:"score"`
	Phase  string    `json:"phase"`
	Double bool      `json:"double"`
}

// PipCountResponse reports both sides' pip counts.
type PipCountResponse struct {
	X int `json:"x"`
	O int `json:"o"`
}

// HealthResponse reports server status.
type HealthResponse struct {
	Status  string     `json:"status"`
	Version string     `json:"version"`
	Pool    *PoolStats `json:"pool,omitempty"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SelfPlayEvent is one streamed turn of a bot-vs-bot game.
type SelfPlayEvent struct {
	Turn     int    `json:"turn"`
	Color    string `json:"color"`
	Roll     [2]int `json:"roll"`
	Play     string `json:"play"`
	Skipped  bool   `json:"skipped,omitempty"`
	PipsX    int    `json:"pips_x"`
	PipsO    int    `json:"pips_o"`
	Position string `json:"position"`
}

// SelfPlayResult closes a streamed game.
type SelfPlayResult struct {
	Winner string `json:"winner"`
	Points int    `json:"points"`
	Turns  int    `json:"turns"`
}

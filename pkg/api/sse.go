package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yourusername/gammon/internal/dice"
	"github.com/yourusername/gammon/pkg/board"
	"github.com/yourusername/gammon/pkg/bot"
	"github.com/yourusername/gammon/pkg/game"
)

// selfPlayTurnCap aborts runaway games. A normal game ends well under
// 200 turns; hitting the cap means a buggy bot is shuffling checkers.
const selfPlayTurnCap = 2000

// SelfPlaySSE handles GET /api/selfplay/stream: a bot-vs-bot game
// streamed turn by turn as Server-Sent Events.
// Query parameters: bot_x, bot_o (default "linear"), seed.
func (h *Handlers) SelfPlaySSE(c echo.Context) error {
	res := c.Response()
	res.Header().Set("Content-Type", "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")

	botX, err := pickBot(c.QueryParam("bot_x"))
	if err != nil {
		return writeSSEError(res, err.Error())
	}
	botO, err := pickBot(c.QueryParam("bot_o"))
	if err != nil {
		return writeSSEError(res, err.Error())
	}

	var roller dice.Roller
	if s := c.QueryParam("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return writeSSEError(res, "invalid seed")
		}
		roller = dice.NewSeededRoller(seed)
	} else {
		roller = dice.NewRoller()
	}

	ctx := c.Request().Context()
	if h.pool != nil {
		// Streams are long-lived; refuse rather than queue when all
		// game slots are taken.
		if !h.pool.TryAcquireSlow() {
			return writeSSEError(res, "server busy")
		}
		defer h.pool.ReleaseSlow()
	}

	// Streams outlive the server write timeout.
	rc := http.NewResponseController(res)
	_ = rc.SetWriteDeadline(time.Time{})

	players := [2]bot.Bot{botX, botO}
	b := board.Start()

	// Opening roll, re-rolling doubles.
	var roll dice.Roll
	onRoll := board.X
	for {
		roll = roller.Roll()
		if !roll.IsDoubles() {
			break
		}
	}
	if roll[0] < roll[1] {
		onRoll = board.O
	}

	turn := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		turn++
		if turn > selfPlayTurnCap {
			return writeSSEError(res, "game did not finish")
		}

		event := SelfPlayEvent{
			Turn:  turn,
			Color: onRoll.String(),
			Roll:  [2]int(roll),
			PipsX: b.PipCount(board.X),
			PipsO: b.PipCount(board.O),
		}

		plays := b.LegalPlays(onRoll, roll.Values())
		if len(plays) == 0 {
			event.Skipped = true
		} else {
			choice := players[onRoll].ChoosePlay(b, onRoll, plays)
			if choice == nil {
				choice = plays[0]
			}
			if err := b.ApplyPlay(onRoll, choice); err != nil {
				h.log.Error().Err(err).Str("play", choice.String()).
					Msg("self-play move rejected")
				return writeSSEError(res, "internal error")
			}
			event.Play = choice.String()
			event.PipsX = b.PipCount(board.X)
			event.PipsO = b.PipCount(board.O)
		}

		onRoll = onRoll.Opponent()
		event.Position = b.PositionID(onRoll)

		if err := writeSSEEvent(res, "turn", event); err != nil {
			return nil
		}

		if b.Off(board.X) == board.CheckersPerSide ||
			b.Off(board.O) == board.CheckersPerSide {
			break
		}
		roll = roller.Roll()
	}

	winner, points := game.Score(b)
	if err := writeSSEEvent(res, "result", SelfPlayResult{
		Winner: winner.String(),
		Points: points,
		Turns:  turn,
	}); err != nil {
		return nil
	}
	return writeSSEEvent(res, "done", nil)
}

// writeSSEEvent writes one Server-Sent Event and flushes it.
func writeSSEEvent(res *echo.Response, event string, data interface{}) error {
	if _, err := fmt.Fprintf(res, "event: %s\n", event); err != nil {
		return err
	}
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(res, "data: %s\n", jsonData); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(res, "\n"); err != nil {
		return err
	}
	res.Flush()
	return nil
}

// writeSSEError writes an error event and ends the stream.
func writeSSEError(res *echo.Response, message string) error {
	return writeSSEEvent(res, "error", map[string]string{"error": message})
}

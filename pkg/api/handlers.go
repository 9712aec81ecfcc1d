package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yourusername/gammon/pkg/board"
	"github.com/yourusername/gammon/pkg/bot"
)

// Handlers holds the HTTP handlers and their shared state.
type Handlers struct {
	version string
	pool    *WorkerPool
	log     zerolog.Logger
}

// NewHandlers creates a Handlers instance. pool may be nil, in which
// case requests run unthrottled.
func NewHandlers(version string, pool *WorkerPool, log zerolog.Logger) *Handlers {
	return &Handlers{version: version, pool: pool, log: log}
}

func jsonError(c echo.Context, status int, msg, code string) error {
	return c.JSON(status, ErrorResponse{Error: msg, Code: code})
}

func badRequest(c echo.Context, err error) error {
	return jsonError(c, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
}

// pickBot resolves a bot name from a request.
func pickBot(name string) (bot.Bot, error) {
	switch name {
	case "", "linear":
		return bot.NewLinearBot(), nil
	case "random":
		return bot.NewRandomBot(), nil
	}
	return nil, fmt.Errorf("%w: unknown bot %q", errBadRequest, name)
}

// Health handles GET /api/health.
func (h *Handlers) Health(c echo.Context) error {
	resp := HealthResponse{Status: "ok", Version: h.version}
	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}
	return c.JSON(http.StatusOK, resp)
}

// Plays handles POST /api/plays: every maximal legal play for a
// position and roll.
func (h *Handlers) Plays(c echo.Context) error {
	if h.pool != nil {
		if err := h.pool.AcquireFast(c.Request().Context()); err != nil {
			return jsonError(c, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		}
		defer h.pool.ReleaseFast()
	}

	var req PlaysRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
	}

	b, player, err := resolvePosition(&req.PositionRequest)
	if err != nil {
		return badRequest(c, err)
	}
	if err := checkDice(req.Dice); err != nil {
		return badRequest(c, err)
	}

	plays := b.LegalPlays(player, expandDice(req.Dice))
	resp := PlaysResponse{
		Plays:    make([]PlayJSON, len(plays)),
		Position: b.PositionID(player),
	}
	for i, p := range plays {
		resp.Plays[i] = PlayToJSON(p)
	}
	return c.JSON(http.StatusOK, resp)
}

// BestPlay handles POST /api/bestplay: a bot picks from the legal
// plays and reports how it saw the position.
func (h *Handlers) BestPlay(c echo.Context) error {
	if h.pool != nil {
		if err := h.pool.AcquireFast(c.Request().Context()); err != nil {
			return jsonError(c, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		}
		defer h.pool.ReleaseFast()
	}

	var req BestPlayRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
	}

	b, player, err := resolvePosition(&req.PositionRequest)
	if err != nil {
		return badRequest(c, err)
	}
	if err := checkDice(req.Dice); err != nil {
		return badRequest(c, err)
	}
	chooser, err := pickBot(req.Bot)
	if err != nil {
		return badRequest(c, err)
	}

	plays := b.LegalPlays(player, expandDice(req.Dice))
	if len(plays) == 0 {
		return c.JSON(http.StatusOK, BestPlayResponse{
			Phase: bot.Classify(b).String(),
		})
	}

	choice := chooser.ChoosePlay(b, player, plays)
	if choice == nil {
		choice = plays[0]
	}

	after := b.Copy()
	if err := after.ApplyPlay(player, choice); err != nil {
		h.log.Error().Err(err).Str("play", choice.String()).Msg("chosen play failed to apply")
		return jsonError(c, http.StatusInternalServerError, "internal error", "INTERNAL")
	}

	eval := bot.NewLinearBot()
	play := PlayToJSON(choice)
	return c.JSON(http.StatusOK, BestPlayResponse{
		Play:   &play,
		Score:  eval.Score(after, player),
		Phase:  bot.Classify(after).String(),
		Double: eval.ShouldDouble(b, player),
	})
}

// PipCount handles POST /api/pipcount.
func (h *Handlers) PipCount(c echo.Context) error {
	if h.pool != nil {
		if err := h.pool.AcquireFast(c.Request().Context()); err != nil {
			return jsonError(c, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		}
		defer h.pool.ReleaseFast()
	}

	var req PositionRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
	}

	b, _, err := resolvePosition(&req)
	if err != nil {
		return badRequest(c, err)
	}

	return c.JSON(http.StatusOK, PipCountResponse{
		X: b.PipCount(board.X),
		O: b.PipCount(board.O),
	})
}

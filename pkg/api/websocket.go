package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/yourusername/gammon/pkg/board"
	"github.com/yourusername/gammon/pkg/bot"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origins are filtered by the CORS layer in front
	},
}

// WSMessage is a client request over the WebSocket. Type is one of
// "plays", "bestplay", "pipcount" or "ping".
type WSMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// WSResponse answers one WSMessage. Type is "result", "error" or
// "pong"; ID echoes the request.
type WSResponse struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// wsClient is one connected WebSocket client.
type wsClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
}

// WebSocket handles GET /api/ws: the same analysis operations as the
// REST endpoints, multiplexed over one connection.
func (h *Handlers) WebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return nil
	}
	client := &wsClient{conn: conn, handlers: h, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
	return nil
}

func (c *wsClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *wsClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *wsClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "plays":
		c.handlePlays(msg)
	case "bestplay":
		c.handleBestPlay(msg)
	case "pipcount":
		c.handlePipCount(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

func (c *wsClient) sendError(id string, err error) {
	c.sendChan <- WSResponse{Type: "error", ID: id, Error: err.Error()}
}

func (c *wsClient) handlePlays(msg WSMessage) {
	var req PlaysRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	b, player, err := resolvePosition(&req.PositionRequest)
	if err != nil {
		c.sendError(msg.ID, err)
		return
	}
	if err := checkDice(req.Dice); err != nil {
		c.sendError(msg.ID, err)
		return
	}

	plays := b.LegalPlays(player, expandDice(req.Dice))
	resp := PlaysResponse{
		Plays:    make([]PlayJSON, len(plays)),
		Position: b.PositionID(player),
	}
	for i, p := range plays {
		resp.Plays[i] = PlayToJSON(p)
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}

func (c *wsClient) handleBestPlay(msg WSMessage) {
	var req BestPlayRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	b, player, err := resolvePosition(&req.PositionRequest)
	if err != nil {
		c.sendError(msg.ID, err)
		return
	}
	if err := checkDice(req.Dice); err != nil {
		c.sendError(msg.ID, err)
		return
	}
	chooser, err := pickBot(req.Bot)
	if err != nil {
		c.sendError(msg.ID, err)
		return
	}

	plays := b.LegalPlays(player, expandDice(req.Dice))
	if len(plays) == 0 {
		c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: BestPlayResponse{
			Phase: bot.Classify(b).String(),
		}}
		return
	}

	choice := chooser.ChoosePlay(b, player, plays)
	if choice == nil {
		choice = plays[0]
	}
	after := b.Copy()
	if err := after.ApplyPlay(player, choice); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "internal error"}
		return
	}

	eval := bot.NewLinearBot()
	play := PlayToJSON(choice)
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: BestPlayResponse{
		Play:   &play,
		Score:  eval.Score(after, player),
		Phase:  bot.Classify(after).String(),
		Double: eval.ShouldDouble(b, player),
	}}
}

func (c *wsClient) handlePipCount(msg WSMessage) {
	var req PositionRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	b, _, err := resolvePosition(&req)
	if err != nil {
		c.sendError(msg.ID, err)
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: PipCountResponse{
		X: b.PipCount(board.X),
		O: b.PipCount(board.O),
	}}
}

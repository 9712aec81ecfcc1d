package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yourusername/gammon/pkg/board"
)

const startingPosition = "4HPwATDgc/ABMA"

func newTestHandlers() *Handlers {
	return NewHandlers("test-version", nil, zerolog.Nop())
}

// do runs one handler against a JSON body and returns the recorder.
func do(t *testing.T, handler echo.HandlerFunc, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if s, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(s))
	} else {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Marshal error: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	e := echo.New()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("Handler error: %v", err)
	}
	return rec
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandlers()

	rec := do(t, h.Health, "GET", "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Health status = %d, want %d", rec.Code, http.StatusOK)
	}

	var health HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("Status = %q, want %q", health.Status, "ok")
	}
	if health.Version != "test-version" {
		t.Errorf("Version = %q, want %q", health.Version, "test-version")
	}
}

func TestHealthHandlerPoolStats(t *testing.T) {
	pool := NewWorkerPool(DefaultPoolConfig())
	h := NewHandlers("1.0.0", pool, zerolog.Nop())

	rec := do(t, h.Health, "GET", "/api/health", nil)

	var health HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if health.Pool == nil {
		t.Fatal("Expected pool stats when a pool is configured")
	}
	if health.Pool.MaxFast != 100 {
		t.Errorf("MaxFast = %d, want 100", health.Pool.MaxFast)
	}
}

func TestPlaysHandler(t *testing.T) {
	h := newTestHandlers()

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name: "starting position by ID",
			body: PlaysRequest{
				PositionRequest: PositionRequest{Position: startingPosition, Player: "x"},
				Dice:            []int{3, 1},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "starting position by layout",
			body: PlaysRequest{
				PositionRequest: PositionRequest{Board: startLayout()},
				Dice:            []int{6, 5},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing position",
			body: PlaysRequest{
				Dice: []int{3, 1},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing dice",
			body: PlaysRequest{
				PositionRequest: PositionRequest{Position: startingPosition},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "die out of range",
			body: PlaysRequest{
				PositionRequest: PositionRequest{Position: startingPosition},
				Dice:            []int{7, 1},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad player",
			body: PlaysRequest{
				PositionRequest: PositionRequest{Position: startingPosition, Player: "z"},
				Dice:            []int{3, 1},
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h.Plays, "POST", "/api/plays", tc.body)
			if rec.Code != tc.wantStatus {
				t.Errorf("Status = %d, want %d", rec.Code, tc.wantStatus)
			}

			if tc.wantStatus == http.StatusOK {
				var resp PlaysResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("Decode error: %v", err)
				}
				if len(resp.Plays) == 0 {
					t.Error("Expected legal plays for an opening roll")
				}
				if resp.Position == "" {
					t.Error("Expected position ID in response")
				}
			}
		})
	}
}

func TestPlaysHandlerOpening65(t *testing.T) {
	h := newTestHandlers()

	rec := do(t, h.Plays, "POST", "/api/plays", PlaysRequest{
		PositionRequest: PositionRequest{Position: startingPosition, Player: "x"},
		Dice:            []int{6, 5},
	})

	var resp PlaysResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(resp.Plays) != 8 {
		t.Errorf("Opening 6-5 plays = %d, want 8", len(resp.Plays))
	}
	for _, p := range resp.Plays {
		if len(p.Moves) != 2 {
			t.Errorf("Play %q has %d moves, want 2", p.Text, len(p.Moves))
		}
		if p.Pips != 11 {
			t.Errorf("Play %q pips = %d, want 11", p.Text, p.Pips)
		}
	}
}

func TestBestPlayHandler(t *testing.T) {
	h := newTestHandlers()

	for _, name := range []string{"", "linear", "random"} {
		rec := do(t, h.BestPlay, "POST", "/api/bestplay", BestPlayRequest{
			PlaysRequest: PlaysRequest{
				PositionRequest: PositionRequest{Position: startingPosition, Player: "x"},
				Dice:            []int{3, 1},
			},
			Bot: name,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("bot %q: status = %d, want %d", name, rec.Code, http.StatusOK)
		}

		var resp BestPlayResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if resp.Play == nil {
			t.Fatalf("bot %q: expected a chosen play", name)
		}
		if len(resp.Play.Moves) != 2 {
			t.Errorf("bot %q: moves = %d, want 2", name, len(resp.Play.Moves))
		}
		if resp.Phase != "contact" {
			t.Errorf("bot %q: phase = %q, want %q", name, resp.Phase, "contact")
		}
	}
}

func TestBestPlayHandlerUnknownBot(t *testing.T) {
	h := newTestHandlers()

	rec := do(t, h.BestPlay, "POST", "/api/bestplay", BestPlayRequest{
		PlaysRequest: PlaysRequest{
			PositionRequest: PositionRequest{Position: startingPosition},
			Dice:            []int{3, 1},
		},
		Bot: "neural",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPipCountHandler(t *testing.T) {
	h := newTestHandlers()

	rec := do(t, h.PipCount, "POST", "/api/pipcount", PositionRequest{
		Position: startingPosition,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp PipCountResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if resp.X != 167 || resp.O != 167 {
		t.Errorf("Pip counts = %d/%d, want 167/167", resp.X, resp.O)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	b := board.Start()
	layout := BoardToLayout(b)

	back, err := boardFromLayout(&layout)
	if err != nil {
		t.Fatalf("boardFromLayout error: %v", err)
	}
	if !back.Equal(b) {
		t.Error("Layout round trip changed the position")
	}
}

func TestBoardFromLayoutRejectsSharedPoint(t *testing.T) {
	layout := BoardLayout{
		X: CheckerLayout{P6: 2, Off: 13},
		O: CheckerLayout{P6: 2, Off: 13},
	}
	if _, err := boardFromLayout(&layout); err == nil {
		t.Error("Expected error for a point held by both colors")
	}
}

// startLayout builds the starting position as an explicit layout.
func startLayout() *BoardLayout {
	return &BoardLayout{
		X: CheckerLayout{P24: 2, P13: 5, P8: 3, P6: 5},
		O: CheckerLayout{P1: 2, P12: 5, P17: 3, P19: 5},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(DefaultConfig(), "test", zerolog.Nop())
	server := httptest.NewServer(s.Echo())
	t.Cleanup(server.Close)
	return server
}

func TestWebSocketPing(t *testing.T) {
	server := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer ws.Close()

	if err := ws.WriteJSON(WSMessage{Type: "ping", ID: "ping-1"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var resp WSResponse
	if err := ws.ReadJSON(&resp); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if resp.Type != "pong" {
		t.Errorf("Response type = %q, want %q", resp.Type, "pong")
	}
	if resp.ID != "ping-1" {
		t.Errorf("Response ID = %q, want %q", resp.ID, "ping-1")
	}
}

func TestWebSocketPlays(t *testing.T) {
	server := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer ws.Close()

	payload, _ := json.Marshal(PlaysRequest{
		PositionRequest: PositionRequest{Position: startingPosition, Player: "x"},
		Dice:            []int{6, 5},
	})
	if err := ws.WriteJSON(WSMessage{Type: "plays", ID: "plays-1", Payload: payload}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var resp WSResponse
	if err := ws.ReadJSON(&resp); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if resp.Type != "result" {
		t.Fatalf("Response type = %q, want %q (error: %s)", resp.Type, "result", resp.Error)
	}

	data, _ := json.Marshal(resp.Payload)
	var plays PlaysResponse
	if err := json.Unmarshal(data, &plays); err != nil {
		t.Fatalf("Unmarshal payload: %v", err)
	}
	if len(plays.Plays) != 8 {
		t.Errorf("Opening 6-5 plays = %d, want 8", len(plays.Plays))
	}
}

func TestWebSocketErrors(t *testing.T) {
	server := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer ws.Close()

	tests := []struct {
		name    string
		msgType string
		payload interface{}
	}{
		{"unknown type", "unknown", nil},
		{"bad position", "plays", PlaysRequest{
			PositionRequest: PositionRequest{Position: "invalid!!!"},
			Dice:            []int{3, 1},
		}},
		{"bad dice", "plays", PlaysRequest{
			PositionRequest: PositionRequest{Position: startingPosition},
			Dice:            []int{7, 1},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var payload json.RawMessage
			if tc.payload != nil {
				payload, _ = json.Marshal(tc.payload)
			}
			if err := ws.WriteJSON(WSMessage{Type: tc.msgType, ID: tc.name, Payload: payload}); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			ws.SetReadDeadline(time.Now().Add(2 * time.Second))
			var resp WSResponse
			if err := ws.ReadJSON(&resp); err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if resp.Type != "error" {
				t.Errorf("Response type = %q, want %q", resp.Type, "error")
			}
		})
	}
}

func TestSelfPlayStream(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/selfplay/stream?seed=1")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	var turns int
	var result *SelfPlayResult
	scanner := bufio.NewScanner(resp.Body)
	event := ""
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data := strings.TrimPrefix(line, "data: ")
			switch event {
			case "turn":
				turns++
			case "result":
				result = &SelfPlayResult{}
				if err := json.Unmarshal([]byte(data), result); err != nil {
					t.Fatalf("Unmarshal result: %v", err)
				}
			case "error":
				t.Fatalf("Stream error: %s", data)
			}
		}
	}

	if result == nil {
		t.Fatal("Stream ended without a result event")
	}
	if turns == 0 {
		t.Error("Expected turn events before the result")
	}
	if result.Winner != "X" && result.Winner != "O" {
		t.Errorf("Winner = %q, want X or O", result.Winner)
	}
	if result.Points < 1 || result.Points > 3 {
		t.Errorf("Points = %d, want 1-3", result.Points)
	}
}

func TestSelfPlayStreamRefusedWhenGameSlotsFull(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxFastWorkers: 1, MaxSlowWorkers: 1})
	if !pool.TryAcquireSlow() {
		t.Fatal("game slot should be free")
	}
	defer pool.ReleaseSlow()

	h := NewHandlers("test-version", pool, zerolog.Nop())
	rec := do(t, h.SelfPlaySSE, "GET", "/api/selfplay/stream?seed=1", nil)

	body := rec.Body.String()
	if !strings.Contains(body, "event: error") {
		t.Fatalf("expected an error event, got %q", body)
	}
	if !strings.Contains(body, "server busy") {
		t.Errorf("error body = %q, want a server busy message", body)
	}
	if strings.Contains(body, "event: turn") {
		t.Error("a refused stream must not play any turns")
	}
}

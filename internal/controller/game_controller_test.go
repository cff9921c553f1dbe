package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app, _ := newTestAppWithManager(t)
	return app
}

func newTestAppWithManager(t *testing.T) (*fiber.App, *service.GameManager) {
	t.Helper()
	store, err := storage.Open("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	gm, err := service.NewGameManager(store, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	t.Cleanup(gm.Close)
	return NewApp(service.NewGameService(gm), []string{"http://localhost:5173"}), gm
}

func doRequest(t *testing.T, app *fiber.App, method, path, playerID, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doRequest(t, app, http.MethodPost, "/api/game/create", "alice", "")
	if status != fiber.StatusOK {
		t.Fatalf("create: status %d body %s", status, body)
	}
	var created struct {
		GameID string `json:"game_id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatal(err)
	}
	return created.GameID
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp(t)
	status, _ := doRequest(t, app, http.MethodPost, "/api/game/create", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	status, _ = doRequest(t, app, http.MethodPost, "/api/game/create?playerId=alice", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected query player ID to be accepted, got %d", status)
	}
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)
	status, _ := doRequest(t, app, http.MethodGet, "/ws/matchmaking", "alice", "")
	if status != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", status)
	}
}

func TestPlayGameOverHTTP(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app)

	for _, player := range []string{"alice", "bob"} {
		status, body := doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, player, "")
		if status != fiber.StatusOK {
			t.Fatalf("join %s: status %d body %s", player, status, body)
		}
	}
	status, _ := doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, "carol", "")
	if status != fiber.StatusConflict {
		t.Fatalf("third player: expected 409, got %d", status)
	}

	e2e4 := `{"from":{"rank":6,"file":4},"to":{"rank":4,"file":4}}`
	tests := []struct {
		name   string
		player string
		body   string
		status int
	}{
		{name: "spectator cannot move", player: "carol", body: e2e4, status: fiber.StatusForbidden},
		{name: "black cannot open", player: "bob", body: `{"from":{"rank":1,"file":4},"to":{"rank":3,"file":4}}`, status: fiber.StatusConflict},
		{name: "off board", player: "alice", body: `{"from":{"rank":6,"file":4},"to":{"rank":9,"file":4}}`, status: fiber.StatusUnprocessableEntity},
		{name: "illegal geometry", player: "alice", body: `{"from":{"rank":6,"file":4},"to":{"rank":3,"file":4}}`, status: fiber.StatusUnprocessableEntity},
		{name: "malformed body", player: "alice", body: `{"from":`, status: fiber.StatusBadRequest},
		{name: "e2-e4", player: "alice", body: e2e4, status: fiber.StatusOK},
		{name: "white moves twice", player: "alice", body: `{"from":{"rank":6,"file":3},"to":{"rank":4,"file":3}}`, status: fiber.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, http.MethodPost, "/api/game/"+gameID+"/move", tt.player, tt.body)
			if status != tt.status {
				t.Fatalf("expected %d, got %d (%s)", tt.status, status, body)
			}
		})
	}

	status, body := doRequest(t, app, http.MethodGet, "/api/game/"+gameID, "alice", "")
	if status != fiber.StatusOK {
		t.Fatalf("state: %d %s", status, body)
	}
	var state struct {
		ToMove   string            `json:"toMove"`
		Board    [][]*model.Piece  `json:"boardState"`
		LastMove *model.SimpleMove `json:"lastMove"`
	}
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode state %s: %v", body, err)
	}
	if state.ToMove != "black" {
		t.Fatalf("expected black to move, got %q", state.ToMove)
	}
	if p := state.Board[4][4]; p == nil || p.Type != model.Pawn || p.Color != model.White {
		t.Fatalf("expected white pawn on e4, got %+v", p)
	}
	if state.Board[6][4] != nil {
		t.Fatalf("expected e2 to be empty")
	}
	if state.LastMove == nil || state.LastMove.From != (model.Position{Rank: 6, File: 4}) {
		t.Fatalf("unexpected last move %+v", state.LastMove)
	}

	status, body = doRequest(t, app, http.MethodGet, "/api/game/"+gameID+"/history", "alice", "")
	if status != fiber.StatusOK {
		t.Fatalf("history: %d %s", status, body)
	}
	if !strings.Contains(string(body), `"notation":"e4"`) {
		t.Fatalf("history does not contain e4: %s", body)
	}
}

func TestUnknownGameIsNotFound(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/game/missing", "/api/game/missing/history"} {
		if status, _ := doRequest(t, app, http.MethodGet, path, "alice", ""); status != fiber.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, status)
		}
	}
	if status, _ := doRequest(t, app, http.MethodPost, "/api/game/join/missing", "alice", ""); status != fiber.StatusNotFound {
		t.Fatalf("join missing: expected 404, got %d", status)
	}
}

func TestJoinMatchmakingTwice(t *testing.T) {
	app := newTestApp(t)
	if status, _ := doRequest(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", ""); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if status, _ := doRequest(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", ""); status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
}

func TestSeatsSurviveLaterRequests(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app)
	for _, player := range []string{"alice", "bob"} {
		if status, body := doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, player, ""); status != fiber.StatusOK {
			t.Fatalf("join %s: status %d body %s", player, status, body)
		}
	}

	// Unrelated traffic with other IDs must not rewrite the stored seats.
	for i := 0; i < 20; i++ {
		doRequest(t, app, http.MethodPost, "/api/game/create", fmt.Sprintf("zz-%02d", i), "")
		doRequest(t, app, http.MethodGet, "/api/game/"+gameID+"?playerId="+fmt.Sprintf("q%d", i), "", "")
	}

	for _, player := range []string{"carol", "dave"} {
		if status, body := doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, player, ""); status != fiber.StatusConflict {
			t.Fatalf("join %s: expected 409, got %d %s", player, status, body)
		}
	}

	status, body := doRequest(t, app, http.MethodGet, "/api/game/"+gameID, "alice", "")
	if status != fiber.StatusOK {
		t.Fatalf("state: %d %s", status, body)
	}
	var state model.GameState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatal(err)
	}
	if state.Players.White.ID != "alice" || state.Players.Black.ID != "bob" {
		t.Fatalf("seats changed to %q and %q", state.Players.White.ID, state.Players.Black.ID)
	}

	e2e4 := `{"from":{"rank":6,"file":4},"to":{"rank":4,"file":4}}`
	if status, _ := doRequest(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "zz-00", e2e4); status != fiber.StatusForbidden {
		t.Fatalf("unseated player moved: %d", status)
	}
	if status, body := doRequest(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "alice", e2e4); status != fiber.StatusOK {
		t.Fatalf("alice move: %d %s", status, body)
	}
}

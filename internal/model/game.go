package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*ws.Client // playerID -> client
	mu          sync.RWMutex
}

// Game owns one board, its last move and turn, and the observers watching it.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *BoardState
	lastMove    LastMove
	turn        Turn
	seats       Seats
	moveHistory []Move
	captured    CapturedPieces
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	updatedAt   time.Time
	version     uint64 // starts at 1, bumped by every move
}

type Seats struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type GameState struct {
	ID             string         `json:"id"`
	Board          *BoardState    `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	IsBlackTurn    bool           `json:"isBlackTurn"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *SimpleMove    `json:"lastMove"`
	Players        Seats          `json:"players"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// GameRecord is the persisted form of a game.
type GameRecord struct {
	ID          string         `json:"id"`
	Board       *BoardState    `json:"board"`
	IsBlackTurn bool           `json:"isBlackTurn"`
	LastMove    *SimpleMove    `json:"lastMove"`
	Players     Seats          `json:"players"`
	MoveHistory []Move         `json:"moveHistory"`
	Captured    CapturedPieces `json:"captured"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func NewGame(id string, clockTime time.Duration) *Game {
	return &Game{
		ID:          id,
		board:       NewBoard(),
		moveHistory: make([]Move, 0),
		captured:    newCapturedPieces(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(clockTime),
		blackClock:  NewClock(clockTime),
		updatedAt:   time.Now(),
		version:     1,
	}
}

// RestoreGame rebuilds a game from its record. Clocks restart from the
// remaining time stored with each seat.
func RestoreGame(record GameRecord) *Game {
	g := &Game{
		ID:          record.ID,
		board:       record.Board,
		turn:        NewTurn(record.IsBlackTurn),
		seats:       record.Players,
		moveHistory: record.MoveHistory,
		captured:    record.Captured,
		connections: NewGameConnections(),
		whiteClock:  NewClock(time.Duration(record.Players.White.TimeLeft) * 100 * time.Millisecond),
		blackClock:  NewClock(time.Duration(record.Players.Black.TimeLeft) * 100 * time.Millisecond),
		updatedAt:   record.UpdatedAt,
		version:     1,
	}
	if g.board == nil {
		g.board = NewBoard()
	}
	if g.moveHistory == nil {
		g.moveHistory = make([]Move, 0)
	}
	if record.LastMove != nil {
		g.lastMove.record(record.LastMove.From, record.LastMove.To)
	}
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*ws.Client),
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// AddPlayer seats white first, then black. A seated player re-joining gets
// their seat back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color := g.seatColor(playerID); color != "" {
		return color, nil
	}
	if g.seats.White.ID == "" {
		g.seats.White = ClientPlayer{
			ID:       playerID,
			Color:    PlayerColorWhite,
			TimeLeft: g.whiteClock.tenths(),
		}
		g.updatedAt = time.Now()
		return PlayerColorWhite, nil
	}
	if g.seats.Black.ID == "" {
		g.seats.Black = ClientPlayer{
			ID:       playerID,
			Color:    PlayerColorBlack,
			TimeLeft: g.blackClock.tenths(),
		}
		g.updatedAt = time.Now()
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// Record returns the game in its persisted form.
func (g *Game) Record() GameRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.snapshot()
	return GameRecord{
		ID:          g.ID,
		Board:       state.Board,
		IsBlackTurn: state.IsBlackTurn,
		LastMove:    state.LastMove,
		Players:     state.Players,
		MoveHistory: state.MoveHistory,
		Captured:    state.CapturedPieces,
		UpdatedAt:   g.updatedAt,
	}
}

func (g *Game) snapshot() GameState {
	seats := g.seats
	seats.White.TimeLeft = g.whiteClock.tenths()
	seats.Black.TimeLeft = g.blackClock.tenths()
	return GameState{
		ID:          g.ID,
		Board:       g.board.Clone(),
		ToMove:      g.turn.Color(),
		IsBlackTurn: g.turn.IsBlackTurn(),
		MoveHistory: append(make([]Move, 0, len(g.moveHistory)), g.moveHistory...),
		CapturedPieces: CapturedPieces{
			White: append([]Piece{}, g.captured.White...),
			Black: append([]Piece{}, g.captured.Black...),
		},
		LastMove: g.lastMove.Simple(),
		Players:  seats,
	}
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.seatColor(playerID) != ""
}

func (g *Game) seatColor(playerID string) PlayerColor {
	if playerID == "" {
		return ""
	}
	if g.seats.White.ID == playerID {
		return PlayerColorWhite
	}
	if g.seats.Black.ID == playerID {
		return PlayerColorBlack
	}
	return ""
}

func (g *Game) canObserve(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seatColor(playerID) != "" || g.hasOpenSeat()
}

func (g *Game) hasOpenSeat() bool {
	return g.seats.White.ID == "" || g.seats.Black.ID == ""
}

// MakeMove plays a move for the seated player whose turn it is. Coordinates
// are checked here so that user input never reaches the board's panics.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.seatColor(playerID)
	if seat == "" {
		return ErrNotInGame
	}
	if seat.color() != g.turn.Color() {
		return ErrNotYourTurn
	}
	if !move.From.OnBoard() || !move.To.OnBoard() {
		return ErrOffBoard
	}

	result := g.board.Execute(g.turn.IsBlackTurn(), move.From, move.To, &g.lastMove)
	if !result.Applied {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalMove, move.From, move.To)
	}
	ply := makePly(result)
	log.Printf("game %s: %s played %s", g.ID, seat, ply.Notation)

	if g.turn.IsBlackTurn() {
		if len(g.moveHistory) == 0 {
			g.moveHistory = append(g.moveHistory, Move{})
		}
		g.moveHistory[len(g.moveHistory)-1].BlackPly = &ply
		if ply.CapturedPiece != nil {
			g.captured.Black = append(g.captured.Black, *ply.CapturedPiece)
		}
		g.blackClock.Stop()
		g.whiteClock.Start()
	} else {
		g.moveHistory = append(g.moveHistory, Move{WhitePly: ply})
		if ply.CapturedPiece != nil {
			g.captured.White = append(g.captured.White, *ply.CapturedPiece)
		}
		g.whiteClock.Stop()
		g.blackClock.Start()
	}
	g.turn.Advance(true)
	g.updatedAt = time.Now()
	g.version++

	go g.connections.broadcast(g.version, g.snapshot())
	return nil
}

// RegisterConnection adds client as playerID's observer and sends it the
// current state. A second connection for the same player is refused with
// ErrAlreadyConnected and the first one is kept.
func (g *Game) RegisterConnection(playerID string, client *ws.Client) error {
	if !g.canObserve(playerID) {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrAlreadyConnected
	}
	g.connections.connections[playerID] = client
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)

	// Snapshot after registering: any later move is broadcast to client.
	g.mu.Lock()
	version, state := g.version, g.snapshot()
	g.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := client.SendState(version, payload); err != nil {
		g.UnregisterConnection(playerID, client)
		return fmt.Errorf("sending state: %w", err)
	}
	return nil
}

// UnregisterConnection forgets client. A newer connection registered for the
// same player is left alone.
func (g *Game) UnregisterConnection(playerID string, client *ws.Client) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == client {
		log.Printf("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// ConnectionCount is the number of live websocket observers.
func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// broadcast sends state to every client, dropping the ones that fail. Clients
// discard states older than one they already hold.
func (gc *GameConnections) broadcast(version uint64, state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("failed to marshal state for game %s: %v", state.ID, err)
		return
	}

	gc.mu.RLock()
	active := make(map[string]*ws.Client, len(gc.connections))
	for playerID, client := range gc.connections {
		active[playerID] = client
	}
	gc.mu.RUnlock()

	for playerID, client := range active {
		if err := client.SendState(version, payload); err != nil {
			log.Printf("failed to send state to player %s: %v", playerID, err)
			gc.mu.Lock()
			if gc.connections[playerID] == client {
				delete(gc.connections, playerID)
			}
			gc.mu.Unlock()
		}
	}
}

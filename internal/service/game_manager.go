// service/game_manager.go
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/storage"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	store            *storage.Storage
	clockTime        time.Duration
	mu               sync.RWMutex
	done             chan struct{}
	closeOnce        sync.Once
}

// NewGameManager loads the stored games and starts the matchmaking loop,
// which runs until Close.
func NewGameManager(store *storage.Storage, clockTime time.Duration, tick time.Duration) (*GameManager, error) {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		store:            store,
		clockTime:        clockTime,
		done:             make(chan struct{}),
	}

	records, err := store.ListGames()
	if err != nil {
		return nil, fmt.Errorf("loading stored games: %w", err)
	}
	for _, record := range records {
		gm.games[record.ID] = model.RestoreGame(record)
	}
	log.Printf("restored %d games", len(records))

	go gm.processMatchmaking(tick)
	return gm, nil
}

func (gm *GameManager) Close() {
	gm.closeOnce.Do(func() { close(gm.done) })
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		// The old waiter is gone; drop its queue entry so the player can
		// queue again on the new channel.
		delete(gm.matchingChannels, playerID)
		close(existingCh)
		gm.queue.Remove(playerID)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel forgets the channel and takes the player out
// of the queue. The channel itself belongs to its creator.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
		gm.queue.Remove(playerID)
	}
}

func (gm *GameManager) processMatchmaking(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-gm.done:
			return
		case <-ticker.C:
			for gm.matchPlayers() {
			}
		}
	}
}

// matchPlayers pairs the two longest waiting players into a new game and
// reports whether it made a match.
func (gm *GameManager) matchPlayers() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	player1, player2, err := gm.queue.GetNextPair()
	if err != nil {
		return false
	}

	gameID := uuid.New().String()
	game := model.NewGame(gameID, gm.clockTime)
	p1Color, err := game.AddPlayer(player1.ID)
	if err != nil {
		log.Printf("error adding player %s to game %s: %v", player1.ID, gameID, err)
		return false
	}
	p2Color, err := game.AddPlayer(player2.ID)
	if err != nil {
		log.Printf("error adding player %s to game %s: %v", player2.ID, gameID, err)
		return false
	}
	gm.games[gameID] = game
	gm.persist(game)

	sendEventAndCleanup := func(playerID string, event model.MatchFoundEvent) bool {
		ch, ok := gm.matchingChannels[playerID]
		if !ok {
			return false
		}
		delete(gm.matchingChannels, playerID)
		defer close(ch)
		select {
		case ch <- mustJSON(event):
			return true
		default:
			return false
		}
	}

	sent1 := sendEventAndCleanup(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
	sent2 := sendEventAndCleanup(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	if !sent1 || !sent2 {
		log.Printf("game %s: failed to notify all matched players", gameID)
	}
	return true
}

// Helper function for JSON marshaling
func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

// persist saves the game's record. A failed save is logged and the game
// carries on in memory.
func (gm *GameManager) persist(game *model.Game) {
	if err := gm.store.SaveGame(game.Record()); err != nil {
		log.Printf("game %s: failed to save record: %v", game.ID, err)
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	game := model.NewGame(gameID, gm.clockTime)
	gm.games[gameID] = game
	gm.persist(game)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}

	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	gm.persist(game)
	return color, nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return fmt.Errorf("joining matchmaking: %w", err)
	}
	return nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	if err := game.MakeMove(playerID, move); err != nil {
		return err
	}
	gm.persist(game)
	return nil
}

func (gm *GameManager) GetHistory(gameID string) (model.GameRecord, error) {
	record, err := gm.store.LoadGame(gameID)
	if errors.Is(err, storage.ErrNotFound) {
		return model.GameRecord{}, ErrGameNotFound
	}
	return record, err
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, client *ws.Client) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, client)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, client *ws.Client) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, client)
}

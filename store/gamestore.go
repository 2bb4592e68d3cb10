package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/pesten"
	"github.com/minaorangina/pesten/protocol"
)

var (
	ErrUnknownGameID           = errors.New("unknown game ID")
	ErrUnknownPlayerID         = errors.New("unknown player ID")
	ErrFnUnknownInactiveGameID = func(gameID string) error {
		return fmt.Errorf("pending game with id %q does not exist", gameID)
	}
	ErrGameAlreadyStarted = errors.New("game has already started")
)

// GameStore holds games and the players waiting to connect to them
type GameStore interface {
	FindGame(gameID string) pesten.GameEngine
	FindActiveGame(gameID string) pesten.GameEngine
	FindInactiveGame(gameID string) pesten.GameEngine
	FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo
	AddInactiveGame(engine pesten.GameEngine) error
	AddPendingPlayer(gameID, playerID, name string) error
	AddPlayerToGame(gameID string, player pesten.Player) error
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu             sync.RWMutex
	games          map[string]pesten.GameEngine
	pendingPlayers map[string][]protocol.PlayerInfo
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games:          map[string]pesten.GameEngine{},
		pendingPlayers: map[string][]protocol.PlayerInfo{},
	}
}

func (s *InMemoryGameStore) FindGame(ID string) pesten.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[ID]
	if !ok {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) FindActiveGame(ID string) pesten.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[ID]
	if !ok {
		return nil
	}
	if game.PlayState() == pesten.Idle {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) FindInactiveGame(ID string) pesten.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findInactiveGame(ID)
}

// findInactiveGame requires the caller to hold the lock
func (s *InMemoryGameStore) findInactiveGame(ID string) pesten.GameEngine {
	game, ok := s.games[ID]
	if !ok {
		return nil
	}
	if game.PlayState() != pesten.Idle {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pendingPlayers, ok := s.pendingPlayers[gameID]
	if !ok {
		return nil
	}

	for i, info := range pendingPlayers {
		if info.PlayerID == playerID {
			return &pendingPlayers[i]
		}
	}

	return nil
}

func (s *InMemoryGameStore) AddInactiveGame(game pesten.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[game.ID()]; exists {
		return fmt.Errorf("game with id %s already exists", game.ID())
	}

	s.games[game.ID()] = game
	return nil
}

// AddPendingPlayer adds the information from which to construct a
// Player when they connect. If the target game does not exist or has
// already started, it fails.
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.findInactiveGame(gameID)
	if game == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}

	s.pendingPlayers[gameID] = append(s.pendingPlayers[gameID], protocol.PlayerInfo{PlayerID: playerID, Name: name})

	return nil
}

func (s *InMemoryGameStore) AddPlayerToGame(gameID string, player pesten.Player) error {
	game := s.FindInactiveGame(gameID)
	if game == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}

	return game.AddPlayer(player)
}

package protocol

import (
	"github.com/minaorangina/pesten/deck"
)

// PlayerInfo identifies a player occupying a seat
type PlayerInfo struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// InboundMessage is a message from Player to GameEngine
type InboundMessage struct {
	PlayerID  string `json:"playerID"`
	Command   Cmd    `json:"command"`
	HandIndex int    `json:"handIndex"`
}

// OutboundMessage is a message from GameEngine to Player
type OutboundMessage struct {
	PlayerID      string      `json:"playerID"`
	Command       Cmd         `json:"command"`
	Message       string      `json:"message"`
	Hand          []deck.Card `json:"hand"`
	TopCard       deck.Card   `json:"topCard"`
	PileCount     int         `json:"pileCount"`
	DeckCount     int         `json:"deckCount"`
	Seat          int         `json:"seat"`
	CurrentTurn   PlayerInfo  `json:"currentTurn,omitempty"`
	Direction     int         `json:"direction"`
	ShouldRespond bool        `json:"shouldRespond"`
	Joiner        PlayerInfo  `json:"joiner,omitempty"`
	Moves         []int       `json:"moves,omitempty"`
	Opponents     []Opponent  `json:"opponents,omitempty"`
	Winner        PlayerInfo  `json:"winner,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// Opponent is a representation of an opponent player.
// Hands are hidden in Pesten, so only the count travels.
type Opponent struct {
	PlayerID  string `json:"playerID"`
	Name      string `json:"name"`
	Seat      int    `json:"seat"`
	HandCount int    `json:"handCount"`
}

package game

import (
	"math/rand"

	"github.com/minaorangina/pesten/deck"
)

// Hand holds the cards of one seat
type Hand struct {
	Cards []deck.Card
}

// NewHand constructs a hand
func NewHand(cards ...deck.Card) *Hand {
	if cards == nil {
		cards = []deck.Card{}
	}
	return &Hand{Cards: cards}
}

func (h *Hand) Len() int {
	return len(h.Cards)
}

func (h *Hand) Empty() bool {
	return len(h.Cards) == 0
}

// Receive appends a card to the hand
func (h *Hand) Receive(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// Play removes and returns the card at index, preserving the order
// of the remaining cards
func (h *Hand) Play(index int) (deck.Card, error) {
	if index < 0 || index >= len(h.Cards) {
		return deck.Card{}, ErrOutOfRange
	}
	card := h.Cards[index]
	h.Cards = append(h.Cards[:index], h.Cards[index+1:]...)
	return card, nil
}

// RemoveRandom removes and returns a uniformly random card.
// An empty hand contributes nothing, hence the false return.
func (h *Hand) RemoveRandom(rng *rand.Rand) (deck.Card, bool) {
	if len(h.Cards) == 0 {
		return deck.Card{}, false
	}
	card, err := h.Play(rng.Intn(len(h.Cards)))
	if err != nil {
		return deck.Card{}, false
	}
	return card, true
}

package deck

import (
	"errors"
	"math/rand"
)

// ErrEmptyDeck means a draw was attempted on an empty deck.
// The caller is expected to recycle the pile before retrying.
var ErrEmptyDeck = errors.New("deck is empty")

const numJokers = 2

// Deck represents a deck of cards
type Deck []Card

// New creates a full deck of 52 standard cards plus two Jokers,
// in a fixed base order
func New() Deck {
	cards := []Card{}
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	for i := 0; i < numJokers; i++ {
		cards = append(cards, NewJoker())
	}
	return cards
}

// Shuffle performs an in-place Fisher-Yates shuffle using the
// supplied random source
func (d Deck) Shuffle(rng *rand.Rand) {
	for i := len(d) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Draw removes and returns the last card of the deck
func (d *Deck) Draw() (Card, error) {
	cards := *d
	if len(cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := cards[len(cards)-1]
	*d = cards[:len(cards)-1]
	return card, nil
}

// Add appends cards to the deck. Order is unimportant: every call
// site shuffles immediately afterwards.
func (d *Deck) Add(cards ...Card) {
	*d = append(*d, cards...)
}

// Deal deals n cards from the end of the deck, or none if n is out of range
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	subSlice := (*d)[startingIndex:numCardsInDeck]
	*d = (*d)[:startingIndex]
	return subSlice
}

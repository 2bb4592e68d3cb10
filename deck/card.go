package deck

import "fmt"

// Rank represents a rank in a deck of cards
type Rank int

var rankNames = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King", "Joker"}

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Joker
)

func (r Rank) String() string {
	return rankNames[r]
}

// Suit represents a suit in a deck of cards.
// Jokers belong to no suit; they get a pseudo-suit of their own
// so that a Card remains a simple value type.
type Suit int

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades", "Jokers"}

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
	Jokers
)

func (s Suit) String() string {
	return suitNames[s]
}

// Card represents a playing card.
// It is a comparable value type, so it can be a map key.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard constructs a card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// NewJoker constructs a Joker card
func NewJoker() Card {
	return Card{Rank: Joker, Suit: Jokers}
}

// IsJoker reports whether the card is one of the two Jokers
func (c Card) IsJoker() bool {
	return c.Rank == Joker
}

func (c Card) String() string {
	if c.IsJoker() {
		return "Joker"
	}
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

package game

import (
	"github.com/minaorangina/pesten/deck"
)

// Strategy decides a move for an AI-controlled seat. It is consulted
// exactly once per turn of that seat. Implementations must be
// stateless with respect to the game: they see only their own hand
// and the top of the pile.
type Strategy interface {
	// ChooseAction returns the hand index to play, or play == false
	// to draw a card instead.
	ChooseAction(hand []deck.Card, topCard deck.Card) (handIndex int, play bool)
}

// FirstLegal plays the first legal card in hand order, otherwise
// draws. A placeholder strategy: no lookahead, no hand valuation.
type FirstLegal struct{}

func (FirstLegal) ChooseAction(hand []deck.Card, topCard deck.Card) (int, bool) {
	moves := legalMoves(topCard, hand)
	if len(moves) == 0 {
		return 0, false
	}
	return moves[0], true
}

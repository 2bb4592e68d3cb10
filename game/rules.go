package game

import (
	"github.com/minaorangina/pesten/deck"
)

// IsValidMove reports whether candidate may be played on topCard.
// Jokers and Jacks open the board: any card may follow them, and
// they may be played on anything. Otherwise rank or suit must match.
func IsValidMove(topCard, candidate deck.Card) bool {
	if topCard.Rank == deck.Joker || topCard.Rank == deck.Jack {
		return true
	}
	if candidate.Rank == deck.Joker || candidate.Rank == deck.Jack {
		return true
	}
	if candidate.Rank == topCard.Rank {
		return true
	}
	if candidate.Suit == topCard.Suit {
		return true
	}
	return false
}

// legalMoves returns the indices of every playable card, in hand order
func legalMoves(topCard deck.Card, hand []deck.Card) []int {
	moves := []int{}
	for i, c := range hand {
		if IsValidMove(topCard, c) {
			moves = append(moves, i)
		}
	}
	return moves
}

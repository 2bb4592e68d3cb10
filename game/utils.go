package game

import (
	"math/rand"

	"github.com/minaorangina/pesten/deck"
)

func someDeck(num int) deck.Deck {
	d := deck.New()
	d.Shuffle(rand.New(rand.NewSource(rand.Int63())))
	return deck.Deck(d.Deal(num))
}

func someCards(num int) []deck.Card {
	return []deck.Card(someDeck(num))
}

func containsCard(s []deck.Card, targets ...deck.Card) bool {
	for _, c := range s {
		for _, tg := range targets {
			if c == tg {
				return true
			}
		}
	}
	return false
}

// cardMultiset counts cards across any number of collections
func cardMultiset(collections ...[]deck.Card) map[deck.Card]int {
	counts := map[deck.Card]int{}
	for _, cards := range collections {
		for _, c := range cards {
			counts[c]++
		}
	}
	return counts
}

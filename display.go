package pesten

import (
	"fmt"
	"io"

	"github.com/minaorangina/pesten/deck"
	"github.com/minaorangina/pesten/protocol"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

func buildBoardDisplayText(msg protocol.OutboundMessage) string {
	directionText := "clockwise ↻"
	if msg.Direction < 0 {
		directionText = "anticlockwise ↺"
	}

	text := fmt.Sprintf("Top of the pile: %s (deck: %d cards, direction: %s)\n",
		msg.TopCard, msg.DeckCount, directionText)

	for _, o := range msg.Opponents {
		text += fmt.Sprintf("- %s holds %d cards\n", o.Name, o.HandCount)
	}

	return text
}

func buildHandDisplayText(hand []deck.Card, moves []int) string {
	playable := map[int]struct{}{}
	for _, m := range moves {
		playable[m] = struct{}{}
	}

	text := "\nYour hand 🤲\n"
	for i, card := range hand {
		marker := " "
		if _, ok := playable[i]; ok {
			marker = "*"
		}
		text += fmt.Sprintf("%s %d - %s\n", marker, i+1, card)
	}

	return text
}

func movePromptText() string {
	return "\nEnter the number of the card to play (* = playable), or \"d\" to draw: "
}

package game

import (
	"fmt"

	"github.com/minaorangina/pesten/protocol"
)

func (s *pesten) buildBaseMessage(seat int) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID:    s.PlayerInfo[seat].PlayerID,
		Seat:        seat,
		Hand:        s.HandOf(seat),
		TopCard:     s.TopCard(),
		PileCount:   len(s.Pile),
		DeckCount:   len(s.Deck),
		CurrentTurn: s.PlayerInfo[s.CurrentTurn],
		Direction:   s.direction,
		Opponents:   s.buildOpponents(seat),
	}
}

func (s *pesten) buildOpponents(seat int) []protocol.Opponent {
	opponents := []protocol.Opponent{}

	for other, info := range s.PlayerInfo {
		if other == seat {
			continue
		}
		opponents = append(opponents, protocol.Opponent{
			PlayerID:  info.PlayerID,
			Name:      info.Name,
			Seat:      other,
			HandCount: s.Hands[other].Len(),
		})
	}

	return opponents
}

// buildHasStartedMessages announces the deal to every seat
func (s *pesten) buildHasStartedMessages() []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{}

	for seat := range s.PlayerInfo {
		m := s.buildBaseMessage(seat)
		m.Command = protocol.HasStarted
		m.Message = fmt.Sprintf("The game has started! %s goes first.", s.nameOf(s.CurrentTurn))
		if seat == s.CurrentTurn {
			m.Moves = legalMoves(s.TopCard(), s.Hands[seat].Cards)
			m.ShouldRespond = true
		}
		msgs = append(msgs, m)
	}

	return msgs
}

// buildTurnMessages reflects the state at the start of a turn. The
// current seat gets its legal moves and a prompt to respond.
func (s *pesten) buildTurnMessages(event string) []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{}

	for seat := range s.PlayerInfo {
		m := s.buildBaseMessage(seat)
		m.Command = protocol.Turn
		if seat == s.CurrentTurn {
			m.Message = event + " It's your turn!"
			m.Moves = legalMoves(s.TopCard(), s.Hands[seat].Cards)
			m.ShouldRespond = true
		} else {
			m.Message = fmt.Sprintf("%s It's %s's turn!", event, s.nameOf(s.CurrentTurn))
		}
		msgs = append(msgs, m)
	}

	return msgs
}

func (s *pesten) buildGameOverMessages() []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{}

	for seat := range s.PlayerInfo {
		m := s.buildBaseMessage(seat)
		m.Command = protocol.GameOver
		m.Winner = s.PlayerInfo[s.winner]
		if seat == s.winner {
			m.Message = "You win!"
		} else {
			m.Message = fmt.Sprintf("%s wins!", s.nameOf(s.winner))
		}
		msgs = append(msgs, m)
	}

	return msgs
}

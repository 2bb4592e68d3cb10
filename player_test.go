package pesten

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/pesten/deck"
	"github.com/minaorangina/pesten/game"
	utils "github.com/minaorangina/pesten/internal"
	"github.com/minaorangina/pesten/protocol"
)

// spyEngine records inbound messages from a player under test
type spyEngine struct {
	received chan protocol.InboundMessage
}

func newSpyEngine() *spyEngine {
	return &spyEngine{received: make(chan protocol.InboundMessage, 1)}
}

func (s *spyEngine) ID() string                           { return "spy" }
func (s *spyEngine) CreatorID() string                    { return "" }
func (s *spyEngine) PlayState() PlayState                 { return InProgress }
func (s *spyEngine) Players() Players                     { return nil }
func (s *spyEngine) Game() game.Game                      { return nil }
func (s *spyEngine) AddPlayer(p Player) error             { return nil }
func (s *spyEngine) Receive(msg protocol.InboundMessage)  { s.received <- msg }
func (s *spyEngine) Listen()                              {}

func aTurnMessage(shouldRespond bool) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID:      "cli-id",
		Command:       protocol.Turn,
		Message:       "It's your turn!",
		Hand:          []deck.Card{deck.NewCard(deck.Five, deck.Hearts), deck.NewCard(deck.Nine, deck.Clubs)},
		TopCard:       deck.NewCard(deck.Five, deck.Spades),
		Moves:         []int{0},
		Direction:     1,
		ShouldRespond: shouldRespond,
	}
}

func TestPlayersFind(t *testing.T) {
	ada := APlayer("id-1", "Ada")
	ps := NewPlayers(ada, APlayer("id-2", "Ben"))

	got, ok := ps.Find("id-1")
	utils.AssertTrue(t, ok)
	utils.AssertEqual(t, got, ada)

	_, ok = ps.Find("id-3")
	utils.AssertEqual(t, ok, false)

	t.Run("AddPlayer ignores duplicates", func(t *testing.T) {
		ps = AddPlayer(ps, APlayer("id-1", "Ada again"))
		utils.AssertEqual(t, len(ps), 2)
	})
}

func TestCLIPlayerRendersTurn(t *testing.T) {
	out := NewTestBuffer()
	p := NewCLIPlayer("cli-id", "Nora", strings.NewReader(""), out, newSpyEngine())

	utils.AssertNoError(t, p.Send(aTurnMessage(false)))

	rendered := out.String()
	utils.AssertTrue(t, strings.Contains(rendered, "It's your turn!"))
	utils.AssertTrue(t, strings.Contains(rendered, "Five of Spades"))
}

func TestCLIPlayerPromptsForMove(t *testing.T) {
	t.Run("a card number becomes a play", func(t *testing.T) {
		engine := newSpyEngine()
		p := NewCLIPlayer("cli-id", "Nora", strings.NewReader("2\n"), NewTestBuffer(), engine)

		utils.AssertNoError(t, p.Send(aTurnMessage(true)))

		utils.Within(t, time.Second, func() {
			msg := <-engine.received
			utils.AssertEqual(t, msg.Command, protocol.PlayCard)
			utils.AssertEqual(t, msg.HandIndex, 1)
			utils.AssertEqual(t, msg.PlayerID, "cli-id")
		})
	})

	t.Run("d becomes a draw", func(t *testing.T) {
		engine := newSpyEngine()
		p := NewCLIPlayer("cli-id", "Nora", strings.NewReader("d\n"), NewTestBuffer(), engine)

		utils.AssertNoError(t, p.Send(aTurnMessage(true)))

		utils.Within(t, time.Second, func() {
			msg := <-engine.received
			utils.AssertEqual(t, msg.Command, protocol.DrawCard)
		})
	})

	t.Run("nonsense is re-prompted", func(t *testing.T) {
		engine := newSpyEngine()
		out := NewTestBuffer()
		p := NewCLIPlayer("cli-id", "Nora", strings.NewReader("potato\n99\n1\n"), out, engine)

		utils.AssertNoError(t, p.Send(aTurnMessage(true)))

		utils.Within(t, time.Second, func() {
			msg := <-engine.received
			utils.AssertEqual(t, msg.Command, protocol.PlayCard)
			utils.AssertEqual(t, msg.HandIndex, 0)
		})
		utils.AssertTrue(t, strings.Contains(out.String(), "Sorry"))
	})
}

func TestCLIPlayerGameOver(t *testing.T) {
	out := NewTestBuffer()
	p := NewCLIPlayer("cli-id", "Nora", strings.NewReader(""), out, newSpyEngine())

	select {
	case <-p.Done():
		t.Fatal("Done closed before the game ended")
	default:
	}

	utils.AssertNoError(t, p.Send(protocol.OutboundMessage{
		PlayerID: "cli-id",
		Command:  protocol.GameOver,
		Message:  "You win!",
		Winner:   protocol.PlayerInfo{PlayerID: "cli-id", Name: "Nora"},
	}))

	utils.AssertTrue(t, strings.Contains(out.String(), "You win!"))

	utils.Within(t, time.Second, func() {
		<-p.Done()
	})
}

// TestWSPlayerSendNeverBlocks covers the contract that Send must not
// stall the engine loop, even when the client has gone away and its
// buffer is full.
func TestWSPlayerSendNeverBlocks(t *testing.T) {
	playerCh := make(chan *WSPlayer, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		playerCh <- NewWSPlayer("ws-id", "Nora", conn, nil, newSpyEngine())
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	utils.AssertNoError(t, err)

	var player *WSPlayer
	utils.Within(t, time.Second, func() {
		player = <-playerCh
	})

	// the client disconnects; nothing drains the send buffer any more
	conn.Close()

	// far more messages than the buffer holds; each call must return
	utils.Within(t, 2*time.Second, func() {
		for i := 0; i < 40; i++ {
			player.Send(aTurnMessage(false))
		}
	})
}

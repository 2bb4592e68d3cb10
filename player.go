package pesten

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/pesten/protocol"
	uuid "github.com/satori/go.uuid"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Player represents a player in the game
type Player interface {
	ID() string
	Name() string
	Send(msg protocol.OutboundMessage) error
}

// Players represents all players in the game
type Players []Player

// NewPlayers returns a set of Players
func NewPlayers(p ...Player) Players {
	return Players(p)
}

// AddPlayer adds a player to a set of Players
func AddPlayer(ps Players, p Player) Players {
	if _, ok := ps.Find(p.ID()); !ok {
		return Players(append(ps, p))
	}
	return ps
}

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	for _, p := range ps {
		if got := p.ID(); got == id {
			return p, true
		}
	}
	return nil, false
}

// WSPlayer represents a player connected over a websocket
type WSPlayer struct {
	id     string
	name   string
	conn   *websocket.Conn
	send   chan []byte
	engine GameEngine
}

// NewWSPlayer constructs a new player and starts its read and write pumps
func NewWSPlayer(id, name string, ws *websocket.Conn, sendCh chan []byte, engine GameEngine) *WSPlayer {
	if sendCh == nil {
		sendCh = make(chan []byte, 16)
	}
	player := &WSPlayer{id: id, name: name, conn: ws, send: sendCh, engine: engine}
	go player.writePump()
	go player.readPump()
	return player
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

// Send queues a message for the write pump. It must never block: the
// engine's Listen goroutine calls it for every seat, so a client that
// stops draining its buffer gets disconnected instead of stalling the
// whole game.
func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	bytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case p.send <- bytes:
		return nil
	default:
		p.conn.Close()
		return fmt.Errorf("player %s is not receiving messages", p.id)
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := p.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(msg)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (p *WSPlayer) readPump() {
	defer p.conn.Close()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws error for player %s: %v", p.id, err)
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("bad message from player %s: %v", p.id, err)
			continue
		}

		// a client cannot speak for anyone else
		msg.PlayerID = p.id
		p.engine.Receive(msg)
	}
}

// CLIPlayer represents a player playing on the command line
type CLIPlayer struct {
	id     string
	name   string
	out    io.Writer
	in     *bufio.Reader
	engine GameEngine
	done   chan struct{}
	finish sync.Once
}

// NewCLIPlayer constructs a player reading intents from in and
// rendering state to out
func NewCLIPlayer(id, name string, in io.Reader, out io.Writer, engine GameEngine) *CLIPlayer {
	return &CLIPlayer{
		id:     id,
		name:   name,
		out:    out,
		in:     bufio.NewReader(in),
		engine: engine,
		done:   make(chan struct{}),
	}
}

// Done is closed once the player has been told the game is over
func (p *CLIPlayer) Done() <-chan struct{} {
	return p.done
}

func (p *CLIPlayer) ID() string {
	return p.id
}

func (p *CLIPlayer) Name() string {
	return p.name
}

func (p *CLIPlayer) Send(msg protocol.OutboundMessage) error {
	switch msg.Command {
	case protocol.NewJoiner:
		SendText(p.out, "%s\n", msg.Message)

	case protocol.HasStarted, protocol.Turn:
		SendText(p.out, "\n%s\n", msg.Message)
		SendText(p.out, buildBoardDisplayText(msg))
		if msg.ShouldRespond {
			SendText(p.out, buildHandDisplayText(msg.Hand, msg.Moves))
			// reading the intent must not block message delivery
			go p.promptForMove(msg)
		}

	case protocol.GameOver:
		SendText(p.out, "\n%s\n", msg.Message)
		p.finish.Do(func() { close(p.done) })

	case protocol.Error:
		SendText(p.out, "Oops: %s\n", msg.Error)
	}

	return nil
}

// promptForMove reads one move from the player: a card number to
// play, or "d" to draw. It keeps asking until the input parses.
func (p *CLIPlayer) promptForMove(msg protocol.OutboundMessage) {
	for {
		SendText(p.out, movePromptText())

		line, err := p.in.ReadString('\n')
		if err != nil {
			return
		}

		input := strings.TrimSpace(line)
		if strings.EqualFold(input, "d") {
			p.engine.Receive(protocol.InboundMessage{
				PlayerID: p.id,
				Command:  protocol.DrawCard,
			})
			return
		}

		if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(msg.Hand) {
			p.engine.Receive(protocol.InboundMessage{
				PlayerID:  p.id,
				Command:   protocol.PlayCard,
				HandIndex: idx - 1,
			})
			return
		}

		SendText(p.out, "Sorry, I didn't catch that.\n")
	}
}

// AIPlayer occupies a seat played by the engine itself. It has no
// outside connection, so messages to it go nowhere.
type AIPlayer struct {
	id   string
	name string
}

// NewAIPlayer constructs an AI player
func NewAIPlayer(id, name string) *AIPlayer {
	return &AIPlayer{id: id, name: name}
}

func (p *AIPlayer) ID() string {
	return p.id
}

func (p *AIPlayer) Name() string {
	return p.name
}

func (p *AIPlayer) Send(msg protocol.OutboundMessage) error {
	return nil
}

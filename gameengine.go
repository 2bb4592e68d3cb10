package pesten

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/minaorangina/pesten/game"
	"github.com/minaorangina/pesten/protocol"
)

// PlayState represents the state of the current game
// Idle -> no game play (pre game)
// InProgress -> game in progress
type PlayState int

const (
	Idle PlayState = iota
	InProgress
)

func (ps PlayState) String() string {
	if ps == 0 {
		return "idle"
	} else if ps == 1 {
		return "inProgress"
	}
	return ""
}

const (
	maxHumanPlayers = 4
	defaultAIDelay  = 500 * time.Millisecond
)

var (
	ErrNoPlayers          = errors.New("game has no players")
	ErrTooManyPlayers     = fmt.Errorf("maximum of %d players allowed", maxHumanPlayers)
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrNotCreator         = errors.New("only the game's creator can start it")
	ErrUnknownPlayer      = errors.New("unknown player ID")
)

// GameEngine represents the engine of one game: it owns the wrapped
// rule engine and serialises every mutation through its Listen loop.
type GameEngine interface {
	ID() string
	CreatorID() string
	PlayState() PlayState
	Players() Players
	Game() game.Game
	AddPlayer(Player) error
	Receive(protocol.InboundMessage)
	Listen()
}

// GameEngineOpts configures a game engine. Zero values get sensible
// defaults: a fresh game, the placeholder strategy and a half-second
// AI delay.
type GameEngineOpts struct {
	GameID     string
	CreatorID  string
	Players    Players
	Game       game.Game
	Strategy   game.Strategy
	AIDelay    time.Duration
	RegisterCh chan Player
	InboundCh  chan protocol.InboundMessage
}

type aiTurn struct {
	seat int
}

type gameEngine struct {
	id         string
	creatorID  string
	playState  PlayState
	players    Players
	registerCh chan Player
	inboundCh  chan protocol.InboundMessage
	aiCh       chan aiTurn
	game       game.Game
	strategy   game.Strategy
	strategies map[int]game.Strategy
	seats      map[string]int
	aiDelay    time.Duration
	aiTimer    *time.Timer
}

// NewGameEngine constructs a new GameEngine. The caller is expected
// to run Listen in its own goroutine.
func NewGameEngine(opts GameEngineOpts) (*gameEngine, error) {
	if opts.Game == nil {
		opts.Game = game.NewPesten(game.PestenOpts{})
	}
	if opts.Strategy == nil {
		opts.Strategy = game.FirstLegal{}
	}
	if opts.AIDelay == 0 {
		opts.AIDelay = defaultAIDelay
	}
	if opts.RegisterCh == nil {
		opts.RegisterCh = make(chan Player)
	}
	if opts.InboundCh == nil {
		opts.InboundCh = make(chan protocol.InboundMessage)
	}

	engine := &gameEngine{
		id:         opts.GameID,
		creatorID:  opts.CreatorID,
		players:    opts.Players,
		registerCh: opts.RegisterCh,
		inboundCh:  opts.InboundCh,
		aiCh:       make(chan aiTurn),
		game:       opts.Game,
		strategy:   opts.Strategy,
		strategies: map[int]game.Strategy{},
		seats:      map[string]int{},
		aiDelay:    opts.AIDelay,
	}

	return engine, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) CreatorID() string {
	return ge.creatorID
}

func (ge *gameEngine) PlayState() PlayState {
	return ge.playState
}

func (ge *gameEngine) Players() Players {
	return ge.players
}

func (ge *gameEngine) Game() game.Game {
	return ge.game
}

// AddPlayer registers a player with the engine
func (ge *gameEngine) AddPlayer(p Player) error {
	ge.registerCh <- p
	return nil
}

// Receive forwards a message from a Player onto the engine's loop
func (ge *gameEngine) Receive(msg protocol.InboundMessage) {
	ge.inboundCh <- msg
}

// Listen is the engine's single goroutine. All game state mutation
// happens here: registrations, player intents and deferred AI turns
// are serialised through its channels.
func (ge *gameEngine) Listen() {
	for {
		select {
		case joiner := <-ge.registerCh:
			ge.handleJoiner(joiner)

		case msg := <-ge.inboundCh:
			ge.handleMessage(msg)

		case turn := <-ge.aiCh:
			ge.handleAITurn(turn)
		}
	}
}

func (ge *gameEngine) handleJoiner(joiner Player) {
	if ge.playState != Idle {
		joiner.Send(buildErrorMessage(joiner.ID(), ErrGameAlreadyStarted))
		return
	}
	if len(ge.players) >= maxHumanPlayers {
		joiner.Send(buildErrorMessage(joiner.ID(), ErrTooManyPlayers))
		return
	}

	ge.players = AddPlayer(ge.players, joiner)
	for _, p := range ge.players {
		p.Send(buildNewJoinerMessage(joiner, p))
	}
}

func (ge *gameEngine) handleMessage(msg protocol.InboundMessage) {
	switch msg.Command {
	case protocol.Start:
		if msg.PlayerID != ge.creatorID {
			ge.sendErrorTo(msg.PlayerID, ErrNotCreator)
			return
		}
		if err := ge.start(); err != nil {
			ge.sendErrorTo(msg.PlayerID, err)
		}

	case protocol.PlayCard:
		seat, ok := ge.seats[msg.PlayerID]
		if !ok {
			ge.sendErrorTo(msg.PlayerID, ErrUnknownPlayer)
			return
		}
		msgs, err := ge.game.Play(seat, msg.HandIndex)
		ge.finishMutation(msg.PlayerID, msgs, err)

	case protocol.DrawCard:
		seat, ok := ge.seats[msg.PlayerID]
		if !ok {
			ge.sendErrorTo(msg.PlayerID, ErrUnknownPlayer)
			return
		}
		msgs, err := ge.game.Draw(seat)
		ge.finishMutation(msg.PlayerID, msgs, err)
	}
}

// start fills the empty seats with AI players and deals
func (ge *gameEngine) start() error {
	if ge.playState != Idle {
		return ErrGameAlreadyStarted
	}
	if len(ge.players) == 0 {
		return ErrNoPlayers
	}
	if len(ge.players) > maxHumanPlayers {
		return ErrTooManyPlayers
	}

	// seats go in join order; unclaimed seats get an AI player
	for i := len(ge.players); i < maxHumanPlayers; i++ {
		ai := NewAIPlayer(NewID(), fmt.Sprintf("Bot %d", i))
		ge.players = AddPlayer(ge.players, ai)
		ge.strategies[i] = ge.strategy
	}

	playerInfo := make([]protocol.PlayerInfo, len(ge.players))
	for seat, p := range ge.players {
		playerInfo[seat] = protocol.PlayerInfo{PlayerID: p.ID(), Name: p.Name()}
		ge.seats[p.ID()] = seat
	}

	msgs, err := ge.game.Start(playerInfo)
	if err != nil {
		return err
	}

	ge.playState = InProgress
	ge.messagePlayers(msgs)
	ge.scheduleAITurn()
	return nil
}

// finishMutation delivers the outcome of a play or draw: rule
// violations go back to the offender only, successes go to everyone
func (ge *gameEngine) finishMutation(playerID string, msgs []protocol.OutboundMessage, err error) {
	if err != nil {
		ge.sendErrorTo(playerID, err)
		return
	}

	ge.messagePlayers(msgs)

	if ge.game.GameOver() {
		ge.stopAITimer()
		return
	}
	ge.scheduleAITurn()
}

// scheduleAITurn arms the deferred AI move if the seat the turn
// landed on is AI-controlled. Re-arming stops the previous timer, so
// at most one AI turn is ever pending.
func (ge *gameEngine) scheduleAITurn() {
	seat := ge.game.CurrentSeat()
	if ge.strategies[seat] == nil {
		return
	}

	ge.stopAITimer()
	ge.aiTimer = time.AfterFunc(ge.aiDelay, func() {
		ge.aiCh <- aiTurn{seat: seat}
	})
}

func (ge *gameEngine) stopAITimer() {
	if ge.aiTimer != nil {
		ge.aiTimer.Stop()
		ge.aiTimer = nil
	}
}

// handleAITurn performs a scheduled AI move. The game may have moved
// on between scheduling and firing, so game over and the acting seat
// are rechecked here.
func (ge *gameEngine) handleAITurn(turn aiTurn) {
	if ge.game.GameOver() || turn.seat != ge.game.CurrentSeat() {
		return
	}

	strategy := ge.strategies[turn.seat]
	if strategy == nil {
		return
	}

	var (
		msgs []protocol.OutboundMessage
		err  error
	)
	if idx, play := strategy.ChooseAction(ge.game.HandOf(turn.seat), ge.game.TopCard()); play {
		msgs, err = ge.game.Play(turn.seat, idx)
	} else {
		msgs, err = ge.game.Draw(turn.seat)
	}

	if err != nil {
		// nothing to play and nothing left to draw: the game stalls
		log.Printf("game %s: AI seat %d cannot move: %v", ge.id, turn.seat, err)
		return
	}

	ge.messagePlayers(msgs)

	if ge.game.GameOver() {
		ge.stopAITimer()
		return
	}
	ge.scheduleAITurn()
}

func (ge *gameEngine) messagePlayers(msgs []protocol.OutboundMessage) {
	for _, m := range msgs {
		if p, ok := ge.players.Find(m.PlayerID); ok {
			if err := p.Send(m); err != nil {
				log.Printf("game %s: could not message player %s: %v", ge.id, m.PlayerID, err)
			}
		}
	}
}

func (ge *gameEngine) sendErrorTo(playerID string, err error) {
	if p, ok := ge.players.Find(playerID); ok {
		p.Send(buildErrorMessage(playerID, err))
	}
}

func buildErrorMessage(playerID string, err error) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: playerID,
		Command:  protocol.Error,
		Error:    err.Error(),
		Message:  err.Error(),
	}
}

func buildNewJoinerMessage(joiner, recipient Player) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: recipient.ID(),
		Command:  protocol.NewJoiner,
		Message:  fmt.Sprintf("%s has joined the game!", joiner.Name()),
		Joiner:   protocol.PlayerInfo{PlayerID: joiner.ID(), Name: joiner.Name()},
	}
}

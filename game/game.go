package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/minaorangina/pesten/deck"
	"github.com/minaorangina/pesten/protocol"
)

var (
	ErrNilGame            = errors.New("game is nil")
	ErrWrongNumberPlayers = fmt.Errorf("exactly %d players required", numSeats)
	ErrGameNotStarted     = errors.New("game has not started")
	ErrGameOver           = errors.New("game is already over")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrOutOfRange         = errors.New("no card at that index")
	ErrInvalidMove        = errors.New("invalid move")
	ErrDeckExhausted      = errors.New("deck exhausted and pile too small to recycle")
)

const (
	numSeats        = 4
	initialHandSize = 7
	twoDrawCount    = 2
	jokerDrawCount  = 5
)

// Game is the Pesten rule engine. All methods that mutate state
// return the outbound messages describing the new state, one per
// seat. Callers (the game engine) own delivery.
type Game interface {
	Start(playerInfo []protocol.PlayerInfo) ([]protocol.OutboundMessage, error)
	Play(seat, handIndex int) ([]protocol.OutboundMessage, error)
	Draw(seat int) ([]protocol.OutboundMessage, error)
	CurrentSeat() int
	Direction() int
	HandOf(seat int) []deck.Card
	TopCard() deck.Card
	GameOver() bool
	Winner() int
}

type pesten struct {
	Deck        deck.Deck
	Pile        []deck.Card
	Hands       []*Hand
	PlayerInfo  []protocol.PlayerInfo
	CurrentTurn int
	direction   int
	gamePlay    GamePlayState
	winner      int
	rng         *rand.Rand
}

// PestenOpts is a mid-game snapshot from which to construct a game.
// The zero value means a fresh game. A caller-supplied deck is used
// as-is (no shuffle), which is how tests fix the deal.
type PestenOpts struct {
	Deck        deck.Deck
	Pile        []deck.Card
	Hands       []*Hand
	PlayerInfo  []protocol.PlayerInfo
	CurrentTurn int
	Direction   int
	Seed        int64
}

// NewPesten constructs a game of Pesten
func NewPesten(opts PestenOpts) *pesten {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &pesten{
		Deck:        opts.Deck,
		Pile:        opts.Pile,
		Hands:       opts.Hands,
		PlayerInfo:  opts.PlayerInfo,
		CurrentTurn: opts.CurrentTurn,
		direction:   opts.Direction,
		winner:      -1,
		rng:         rand.New(rand.NewSource(seed)),
	}

	if s.Pile == nil {
		s.Pile = []deck.Card{}
	}
	if s.direction == 0 {
		s.direction = 1
	}

	// A snapshot with hands is a game already in progress
	if s.Hands != nil {
		s.gamePlay = gameInProgress
	}

	return s
}

func (s *pesten) GameOver() bool {
	return s.gamePlay == gameOver
}

// Winner returns the winning seat, or -1 if the game is still going
func (s *pesten) Winner() int {
	return s.winner
}

func (s *pesten) CurrentSeat() int {
	return s.CurrentTurn
}

func (s *pesten) Direction() int {
	return s.direction
}

// TopCard returns the last card played onto the pile
func (s *pesten) TopCard() deck.Card {
	if len(s.Pile) == 0 {
		return deck.Card{}
	}
	return s.Pile[len(s.Pile)-1]
}

// HandOf returns a copy of a seat's hand
func (s *pesten) HandOf(seat int) []deck.Card {
	if seat < 0 || seat >= len(s.Hands) {
		return nil
	}
	cards := make([]deck.Card, len(s.Hands[seat].Cards))
	copy(cards, s.Hands[seat].Cards)
	return cards
}

// Start shuffles (unless a deck was injected), deals seven cards to
// each seat round-robin, flips one card to seed the pile and picks a
// random starting seat.
func (s *pesten) Start(playerInfo []protocol.PlayerInfo) ([]protocol.OutboundMessage, error) {
	if s == nil {
		return nil, ErrNilGame
	}
	if len(playerInfo) != numSeats {
		return nil, ErrWrongNumberPlayers
	}

	s.PlayerInfo = playerInfo

	if s.Deck == nil {
		s.Deck = deck.New()
		s.Deck.Shuffle(s.rng)
	}

	s.Hands = make([]*Hand, numSeats)
	for seat := range s.Hands {
		s.Hands[seat] = NewHand()
	}

	// one card at a time, round the table
	for i := 0; i < initialHandSize; i++ {
		for seat := 0; seat < numSeats; seat++ {
			card, err := s.Deck.Draw()
			if err != nil {
				return nil, err
			}
			s.Hands[seat].Receive(card)
		}
	}

	// flip one card to open the pile
	card, err := s.Deck.Draw()
	if err != nil {
		return nil, err
	}
	s.Pile = append(s.Pile, card)

	s.CurrentTurn = s.rng.Intn(numSeats)
	s.direction = 1
	s.winner = -1
	s.gamePlay = gameInProgress

	return s.buildHasStartedMessages(), nil
}

// Play plays the card at handIndex from the given seat's hand.
// Validation order: game state, turn, index, legality. On a rule
// violation the game state is unchanged and the caller receives the
// typed error to surface to the offending player.
func (s *pesten) Play(seat, handIndex int) ([]protocol.OutboundMessage, error) {
	if s == nil {
		return nil, ErrNilGame
	}
	if err := s.checkTurn(seat); err != nil {
		return nil, err
	}

	hand := s.Hands[seat]
	if handIndex < 0 || handIndex >= hand.Len() {
		return nil, ErrOutOfRange
	}
	if !IsValidMove(s.TopCard(), hand.Cards[handIndex]) {
		return nil, ErrInvalidMove
	}

	played, err := hand.Play(handIndex)
	if err != nil {
		return nil, err
	}
	s.Pile = append(s.Pile, played)

	event := fmt.Sprintf("%s plays %s.", s.nameOf(seat), played)

	// The win check precedes the effect switch: a winning Two, Eight,
	// Ten, Ace or Joker ends the game without its effect firing.
	if hand.Empty() {
		return s.endGame(seat), nil
	}

	switch played.Rank {
	case deck.Two:
		s.movePointer()
		event += s.forceDraw(twoDrawCount)
	case deck.Joker:
		s.movePointer()
		event += s.forceDraw(jokerDrawCount)
	case deck.Eight:
		// burn the next seat's turn; the generic advance below lands
		// on the seat after that
		event += fmt.Sprintf(" %s is skipped!", s.nameOf(s.nextSeat(seat)))
		s.movePointer()
	case deck.Ace:
		s.direction = -s.direction
		event += " Direction reverses!"
	case deck.Ten:
		s.passCardsAlong()
		event += " Everyone passes a card along."
	case deck.King:
		// same seat plays again; no generic advance
		event += fmt.Sprintf(" %s plays again!", s.nameOf(seat))
		return s.buildTurnMessages(event), nil
	}

	return s.advanceTurn(event), nil
}

// Draw draws a single card into the given seat's hand and ends the
// turn, recycling the pile into the deck first if the deck is empty.
func (s *pesten) Draw(seat int) ([]protocol.OutboundMessage, error) {
	if s == nil {
		return nil, ErrNilGame
	}
	if err := s.checkTurn(seat); err != nil {
		return nil, err
	}
	if err := s.drawOne(seat); err != nil {
		return nil, err
	}

	event := fmt.Sprintf("%s draws a card.", s.nameOf(seat))
	return s.advanceTurn(event), nil
}

func (s *pesten) checkTurn(seat int) error {
	switch s.gamePlay {
	case gameNotStarted:
		return ErrGameNotStarted
	case gameOver:
		return ErrGameOver
	}
	if seat != s.CurrentTurn {
		return ErrNotYourTurn
	}
	return nil
}

// advanceTurn ends the current turn: win check on the seat the
// pointer rests on, then one step in the current direction.
func (s *pesten) advanceTurn(event string) []protocol.OutboundMessage {
	// Defensive: no effect adds cards back to the acting seat, so an
	// empty hand here should already have been caught after the play.
	if s.Hands[s.CurrentTurn].Empty() {
		return s.endGame(s.CurrentTurn)
	}
	s.movePointer()
	return s.buildTurnMessages(event)
}

// movePointer moves the turn pointer one step in the current
// direction, wrapping 0..3 in both directions
func (s *pesten) movePointer() {
	s.CurrentTurn = s.nextSeat(s.CurrentTurn)
}

func (s *pesten) nextSeat(seat int) int {
	return (seat + s.direction + numSeats) % numSeats
}

// forceDraw makes the current seat draw up to n cards, recycling as
// needed. If the deck genuinely runs dry mid-effect the remaining
// draws are abandoned; the played card already stands.
func (s *pesten) forceDraw(n int) string {
	drawn := 0
	for i := 0; i < n; i++ {
		if err := s.drawOne(s.CurrentTurn); err != nil {
			break
		}
		drawn++
	}
	return fmt.Sprintf(" %s draws %d cards!", s.nameOf(s.CurrentTurn), drawn)
}

func (s *pesten) drawOne(seat int) error {
	if len(s.Deck) == 0 {
		s.recycle()
	}
	card, err := s.Deck.Draw()
	if err != nil {
		return ErrDeckExhausted
	}
	s.Hands[seat].Receive(card)
	return nil
}

// recycle shuffles all but the top pile card back into the deck.
// Needs at least two pile cards so one can remain as the new top;
// with fewer it is a no-op and the next draw fails as exhausted.
func (s *pesten) recycle() {
	if len(s.Pile) < 2 {
		return
	}
	top := s.Pile[len(s.Pile)-1]
	s.Deck.Add(s.Pile[:len(s.Pile)-1]...)
	s.Deck.Shuffle(s.rng)
	s.Pile = []deck.Card{top}
}

// passCardsAlong implements the Ten: every seat simultaneously gives
// one random card to its next neighbour in the current direction.
// Removals all happen before any seat receives, so a card cannot be
// passed twice. Empty hands contribute nothing.
func (s *pesten) passCardsAlong() {
	passed := make([]deck.Card, numSeats)
	contributed := make([]bool, numSeats)

	for seat, hand := range s.Hands {
		passed[seat], contributed[seat] = hand.RemoveRandom(s.rng)
	}
	for seat := range s.Hands {
		if !contributed[seat] {
			continue
		}
		s.Hands[s.nextSeat(seat)].Receive(passed[seat])
	}
}

func (s *pesten) endGame(winner int) []protocol.OutboundMessage {
	s.gamePlay = gameOver
	s.winner = winner
	return s.buildGameOverMessages()
}

func (s *pesten) nameOf(seat int) string {
	if seat < 0 || seat >= len(s.PlayerInfo) {
		return fmt.Sprintf("seat %d", seat)
	}
	info := s.PlayerInfo[seat]
	if info.Name == "" {
		return info.PlayerID
	}
	return info.Name
}

package pesten

import (
	"bytes"
	"sync"

	"github.com/minaorangina/pesten/protocol"
)

// TestPlayer records every message it is sent
type TestPlayer struct {
	id   string
	name string
	m    sync.Mutex
	msgs []protocol.OutboundMessage
}

func NewTestPlayer(id, name string) *TestPlayer {
	return &TestPlayer{id: id, name: name}
}

func (tp *TestPlayer) ID() string {
	return tp.id
}

func (tp *TestPlayer) Name() string {
	return tp.name
}

func (tp *TestPlayer) Send(msg protocol.OutboundMessage) error {
	tp.m.Lock()
	defer tp.m.Unlock()
	tp.msgs = append(tp.msgs, msg)
	return nil
}

// Messages returns a copy of everything received so far
func (tp *TestPlayer) Messages() []protocol.OutboundMessage {
	tp.m.Lock()
	defer tp.m.Unlock()
	msgs := make([]protocol.OutboundMessage, len(tp.msgs))
	copy(msgs, tp.msgs)
	return msgs
}

// LastMessage returns the most recent message, if any
func (tp *TestPlayer) LastMessage() (protocol.OutboundMessage, bool) {
	tp.m.Lock()
	defer tp.m.Unlock()
	if len(tp.msgs) == 0 {
		return protocol.OutboundMessage{}, false
	}
	return tp.msgs[len(tp.msgs)-1], true
}

func APlayer(id, name string) Player {
	return NewTestPlayer(id, name)
}

func SomePlayers() Players {
	return NewPlayers(
		NewTestPlayer(NewID(), "Harry"),
		NewTestPlayer(NewID(), "Sally"),
	)
}

// TestBuffer is a goroutine-safe buffer for CLI display tests
type TestBuffer struct {
	buf bytes.Buffer
	m   sync.Mutex
}

func NewTestBuffer() *TestBuffer {
	return &TestBuffer{}
}

func (tb *TestBuffer) Read(p []byte) (int, error) {
	tb.m.Lock()
	defer tb.m.Unlock()
	return tb.buf.Read(p)
}

func (tb *TestBuffer) Write(p []byte) (int, error) {
	tb.m.Lock()
	defer tb.m.Unlock()
	return tb.buf.Write(p)
}

func (tb *TestBuffer) String() string {
	tb.m.Lock()
	defer tb.m.Unlock()
	return tb.buf.String()
}

package protocol

import (
	"encoding/json"
	"fmt"
)

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	Start
	HasStarted
	PlayCard // when a player plays a card from their hand
	DrawCard // when a player draws instead of playing
	Turn
	GameOver
	Error
)

var CmdNames = map[Cmd]string{
	Null:       "Null",
	NewJoiner:  "NewJoiner",
	Start:      "Start",
	HasStarted: "HasStarted",
	PlayCard:   "PlayCard",
	DrawCard:   "DrawCard",
	Turn:       "Turn",
	GameOver:   "GameOver",
	Error:      "Error",
}

var NameToCmd = map[string]Cmd{
	"Null":       Null,
	"NewJoiner":  NewJoiner,
	"Start":      Start,
	"HasStarted": HasStarted,
	"PlayCard":   PlayCard,
	"DrawCard":   DrawCard,
	"Turn":       Turn,
	"GameOver":   GameOver,
	"Error":      Error,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// MarshalJSON serialises a Cmd as its name
func (c Cmd) MarshalJSON() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return json.Marshal(name)
}

// UnmarshalJSON deserialises a Cmd from its name
func (c *Cmd) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	cmd, ok := NameToCmd[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	*c = cmd
	return nil
}

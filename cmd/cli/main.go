package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/minaorangina/pesten"
	"github.com/minaorangina/pesten/protocol"
)

func main() {
	fmt.Print("What's your name? ")
	reader := bufio.NewReader(os.Stdin)
	name, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal(err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "You"
	}

	playerID := pesten.NewID()
	engine, err := pesten.NewGameEngine(pesten.GameEngineOpts{
		GameID:    "local",
		CreatorID: playerID,
		AIDelay:   800 * time.Millisecond,
	})
	if err != nil {
		log.Fatal(err)
	}
	go engine.Listen()

	player := pesten.NewCLIPlayer(playerID, name, reader, os.Stdout, engine)
	if err := engine.AddPlayer(player); err != nil {
		log.Fatal(err)
	}

	engine.Receive(protocol.InboundMessage{PlayerID: playerID, Command: protocol.Start})

	<-player.Done()
}

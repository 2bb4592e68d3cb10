package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/minaorangina/pesten"
	"github.com/minaorangina/pesten/server"
	"github.com/minaorangina/pesten/store"
)

func main() {
	// a missing .env is fine; the environment takes over
	godotenv.Load()

	conf, err := pesten.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	s := server.NewServer(store.NewInMemoryGameStore(), conf)

	log.Printf("Listening on %s...", conf.Addr)
	log.Fatal(http.ListenAndServe(conf.Addr, s))
}

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/minaorangina/pesten"
	utils "github.com/minaorangina/pesten/internal"
	"github.com/minaorangina/pesten/store"
)

func newBasicStore() store.GameStore {
	return store.NewInMemoryGameStore()
}

// newTestConfig parks the AI so handler tests stay deterministic
func newTestConfig() pesten.Config {
	return pesten.Config{Addr: ":0", AIDelay: time.Hour}
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newJoinGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/join", bytes.NewBuffer(data))
	return request
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()

	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func mustParsePendingGameRes(t *testing.T, body *bytes.Buffer) PendingGameRes {
	t.Helper()

	var res PendingGameRes
	utils.AssertNoError(t, json.NewDecoder(body).Decode(&res))

	return res
}

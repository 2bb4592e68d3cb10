package game

// GamePlayState represents the lifecycle of a game
type GamePlayState int

const (
	gameNotStarted GamePlayState = iota
	gameInProgress
	gameOver
)

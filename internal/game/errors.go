package game

// GameError is a rejected request. Rejections never change the table.
type GameError string

func (e GameError) Error() string {
	return string(e)
}

const (
	ErrGameFull         GameError = "game is full"
	ErrEmptyName        GameError = "player name is required"
	ErrAlreadyJoined    GameError = "session already joined the game"
	ErrNotYourTurn      GameError = "not your turn"
	ErrGameNotPlaying   GameError = "game is not in progress"
	ErrTurnLimitReached GameError = "no rolls left"
)

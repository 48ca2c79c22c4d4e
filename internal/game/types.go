package game

// Status is the lifecycle phase of the table.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

const (
	// MaxPlayers is the table size; the match starts when it is reached.
	MaxPlayers = 2
	// RollsPerPlayer is how many rolls each player gets in a match.
	RollsPerPlayer = 3
)

// Player is one seated session. TurnsTaken is 1-indexed: it is
// RollsPerPlayer+1 once the player has used all rolls.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Seat        int    `json:"seat"` // 1 = joined first, 2 = joined second
	TurnsTaken  int    `json:"turnsTaken"`
	TotalScore  int    `json:"totalScore"`
	DiceHistory []int  `json:"diceHistory"`
}

func (p *Player) done() bool {
	return p.TurnsTaken > RollsPerPlayer
}

func (p *Player) resetScore() {
	p.TurnsTaken = 1
	p.TotalScore = 0
	p.DiceHistory = []int{}
}

// RollOutcome describes one accepted roll.
type RollOutcome struct {
	PlayerID        string
	PlayerName      string
	DiceValue       int
	NewTotalScore   int
	TurnsTakenAfter int
}

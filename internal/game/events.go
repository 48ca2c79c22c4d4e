package game

// EventType is the wire name of a broadcast event.
type EventType string

// Broadcast events, in the order Table emits them.
const (
	EventGameStateUpdate    EventType = "game_state_update"
	EventGameStart          EventType = "game_start"
	EventDiceRolled         EventType = "dice_rolled"
	EventTurnChange         EventType = "turn_change"
	EventGameEnd            EventType = "game_end"
	EventGameReset          EventType = "game_reset"
	EventPlayerDisconnected EventType = "player_disconnected"
)

// Event is one state change notification. Payload is one of the *Payload
// types below, or nil for game_reset.
type Event struct {
	Type    EventType
	Payload any
}

// Publisher delivers events to every connected session in call order.
// Table calls Publish while holding its lock, so implementations must not
// block on slow receivers or call back into the Table.
type Publisher interface {
	Publish(ev Event)
}

type PublisherFunc func(ev Event)

func (f PublisherFunc) Publish(ev Event) { f(ev) }

type StatePayload struct {
	Players     map[string]Player `json:"players"`
	Status      Status            `json:"status"`
	CurrentTurn *string           `json:"currentTurn"`
}

type GameStartPayload struct {
	Players     map[string]Player `json:"players"`
	CurrentTurn *string           `json:"currentTurn"`
}

type DiceRolledPayload struct {
	PlayerID        string `json:"playerId"`
	PlayerName      string `json:"playerName"`
	DiceResult      int    `json:"diceResult"`
	TotalScore      int    `json:"totalScore"`
	TurnsTakenAfter int    `json:"turnsTakenAfter"`
}

type TurnChangePayload struct {
	CurrentTurn *string           `json:"currentTurn"`
	Players     map[string]Player `json:"players"`
}

type GameEndPayload struct {
	Players map[string]Player `json:"players"`
	Result  Result            `json:"result"`
}

type PlayerDisconnectedPayload struct {
	PlayerID string            `json:"playerId"`
	Players  map[string]Player `json:"players"`
	Status   Status            `json:"status"`
}

package transport

import (
	"encoding/json"

	"example.com/dice-duel/internal/game"
)

// Envelope WS envelope: {"type":"...","payload":{...}}
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// inbound
const (
	msgJoinGame = "join_game"
	msgRollDice = "roll_dice"
	msgNewGame  = "new_game"
)

// outbound, direct to one session
const (
	msgConnected = "connected"
	msgGameFull  = "game_full"
	msgError     = "error"
)

type JoinGamePayload struct {
	PlayerName string `json:"playerName"`
}

type ConnectedPayload struct {
	SessionID string `json:"sessionId"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func envelope(typ string, payload any) Envelope {
	return Envelope{Type: typ, Payload: mustJSON(payload)}
}

// encodeEvent renders a table event in wire form.
func encodeEvent(ev game.Event) ([]byte, error) {
	return json.Marshal(envelope(string(ev.Type), ev.Payload))
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

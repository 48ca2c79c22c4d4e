package transport

import (
	"encoding/json"
	"testing"

	"example.com/dice-duel/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConn(id string, buffer int) *ClientConn {
	return newClientConn(id, nil, buffer)
}

func readEnvelopesNonBlocking(c *ClientConn) []Envelope {
	var envs []Envelope
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return envs
			}
			var env Envelope
			if json.Unmarshal(msg, &env) == nil {
				envs = append(envs, env)
			}
		default:
			return envs
		}
	}
}

func TestHub_PublishReachesEveryConnection(t *testing.T) {
	hub := NewHub(nil)
	c1 := newTestConn("s1", 8)
	c2 := newTestConn("s2", 8)
	hub.register(c1)
	hub.register(c2)

	hub.Publish(game.Event{Type: game.EventGameReset})
	hub.Publish(game.Event{Type: game.EventDiceRolled, Payload: game.DiceRolledPayload{PlayerID: "s1", DiceResult: 4}})

	for _, c := range []*ClientConn{c1, c2} {
		envs := readEnvelopesNonBlocking(c)
		require.Len(t, envs, 2)
		assert.Equal(t, "game_reset", envs[0].Type)
		assert.JSONEq(t, "null", string(envs[0].Payload))
		assert.Equal(t, "dice_rolled", envs[1].Type)

		var p game.DiceRolledPayload
		require.NoError(t, json.Unmarshal(envs[1].Payload, &p))
		assert.Equal(t, 4, p.DiceResult)
	}
}

func TestHub_EvictsSlowClientInsteadOfSkipping(t *testing.T) {
	hub := NewHub(nil)
	fast := newTestConn("fast", 8)
	slow := newTestConn("slow", 1)
	hub.register(fast)
	hub.register(slow)

	hub.Publish(game.Event{Type: game.EventGameReset})
	hub.Publish(game.Event{Type: game.EventGameReset})

	assert.Equal(t, 1, hub.Len())
	assert.Len(t, readEnvelopesNonBlocking(fast), 2)

	// the slow client got the first event, then its queue was closed
	assert.Len(t, readEnvelopesNonBlocking(slow), 1)
	_, ok := <-slow.send
	assert.False(t, ok)
}

func TestHub_SendToTargetsOneSession(t *testing.T) {
	hub := NewHub(nil)
	c1 := newTestConn("s1", 4)
	c2 := newTestConn("s2", 4)
	hub.register(c1)
	hub.register(c2)

	hub.SendTo("s2", envelope(msgGameFull, nil))
	hub.SendTo("nobody", envelope(msgGameFull, nil))

	assert.Empty(t, readEnvelopesNonBlocking(c1))
	envs := readEnvelopesNonBlocking(c2)
	require.Len(t, envs, 1)
	assert.Equal(t, "game_full", envs[0].Type)
}

func TestHub_UnregisterAndCloseAll(t *testing.T) {
	hub := NewHub(nil)
	c1 := newTestConn("s1", 4)
	c2 := newTestConn("s2", 4)
	hub.register(c1)
	hub.register(c2)

	hub.unregister("s1")
	hub.unregister("s1")
	assert.Equal(t, 1, hub.Len())

	hub.CloseAll()
	assert.Zero(t, hub.Len())
	_, ok := <-c2.send
	assert.False(t, ok)
}

func TestErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{game.ErrEmptyName, "empty_name"},
		{game.ErrAlreadyJoined, "already_joined"},
		{game.ErrNotYourTurn, "not_your_turn"},
		{game.ErrGameNotPlaying, "game_not_playing"},
		{game.ErrTurnLimitReached, "turn_limit_reached"},
		{game.ErrGameFull, "game_full"},
		{assert.AnError, "internal"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, errorCode(tc.err), tc.err.Error())
	}
}

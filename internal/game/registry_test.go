package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AdmitAndRemove(t *testing.T) {
	s := newGameState()

	require.NoError(t, s.admit("a", "Alice"))
	require.NoError(t, s.admit("b", "Bob"))
	assert.ErrorIs(t, s.admit("c", "Carol"), ErrGameFull)
	assert.Equal(t, []string{"a", "b"}, s.order)
	assert.Len(t, s.players, 2)

	assert.True(t, s.remove("a"))
	assert.False(t, s.remove("a"), "second remove is a no-op")
	assert.Equal(t, []string{"b"}, s.order)
	assert.Len(t, s.players, 1)
}

func TestRegistry_RemoveKeepsCurrentPlayer(t *testing.T) {
	s := newGameState()
	require.NoError(t, s.admit("a", "Alice"))
	require.NoError(t, s.admit("b", "Bob"))
	s.current = 1 // b's turn

	s.remove("a")
	turn, ok := s.currentTurn()
	require.True(t, ok)
	assert.Equal(t, "b", turn)

	s.remove("b")
	_, ok = s.currentTurn()
	assert.False(t, ok)
	assert.Equal(t, 0, s.current)
}

func TestRegistry_AdmitStartsFreshPlayer(t *testing.T) {
	s := newGameState()
	require.NoError(t, s.admit("a", "Alice"))

	p := s.players["a"]
	assert.Equal(t, 1, p.TurnsTaken)
	assert.Zero(t, p.TotalScore)
	assert.NotNil(t, p.DiceHistory)
	assert.Empty(t, p.DiceHistory)
}

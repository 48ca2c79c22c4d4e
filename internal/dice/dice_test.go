package dice

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomRoller_Range(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		v := r.Roll(Sides)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, Sides)
		seen[v] = true
	}
	assert.Len(t, seen, Sides, "every face should show up in 2000 rolls")
}

func TestRandomRoller_SeedIsReproducible(t *testing.T) {
	a, err := New(&Config{Seed: 42})
	require.NoError(t, err)
	b, err := New(&Config{Seed: 42})
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Roll(Sides), b.Roll(Sides))
	}
}

func TestRandomRoller_NonPositiveSidesFallsBackToD6(t *testing.T) {
	r, err := New(&Config{Seed: 7})
	require.NoError(t, err)

	for _, sides := range []int{0, -3} {
		v := r.Roll(sides)
		assert.True(t, v >= 1 && v <= Sides, "got %d", v)
	}
}

func TestRandomRoller_ConcurrentUse(t *testing.T) {
	r, err := New(&Config{Seed: 1})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = r.Roll(Sides)
			}
		}()
	}
	wg.Wait()
}

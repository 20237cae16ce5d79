package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSource(t *testing.T) {
	t.Run("same seed same sequence", func(t *testing.T) {
		a, b := NewRandomSource(42), NewRandomSource(42)
		for range 100 {
			assert.Equal(t, a.Next(), b.Next())
		}
	})

	t.Run("every shape shows up", func(t *testing.T) {
		src := NewRandomSource(7)
		seen := map[Shape]int{}
		for range 700 {
			s := src.Next()
			require.Contains(t, Shapes, s)
			seen[s]++
		}
		assert.Len(t, seen, len(Shapes))
	})
}

func TestSequenceSource(t *testing.T) {
	src := NewSequenceSource(I, O, T)
	got := make([]Shape, 0, 6)
	for range 6 {
		got = append(got, src.Next())
	}
	assert.Equal(t, []Shape{I, O, T, I, O, T}, got)

	all := NewSequenceSource()
	assert.Equal(t, I, all.Next())
	assert.Equal(t, O, all.Next())
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSequencedGame(t *testing.T) {
	tetris, err := New(DefaultRules(), NewSequenceSource(I, O))
	require.NoError(t, err)
	require.Equal(t, I, tetris.Tetromino.Shape)
	tetris.HardDrop()
	assert.Equal(t, O, tetris.Tetromino.Shape)
	assert.Equal(t, 4, tetris.Tetromino.X)
}

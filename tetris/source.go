package tetris

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// ShapeSource decides which tetromino spawns next.
type ShapeSource interface {
	Next() Shape
}

type randomSource struct {
	r *rand.Rand
}

// NewRandomSource draws every shape uniformly and independently of any
// previous draw. The same seed always yields the same sequence.
func NewRandomSource(seed uint64) ShapeSource {
	return &randomSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *randomSource) Next() Shape {
	return Shapes[s.r.IntN(len(Shapes))]
}

// SequenceSource replays a fixed list of shapes in a loop.
type SequenceSource struct {
	shapes []Shape
	next   int
}

func NewSequenceSource(shapes ...Shape) *SequenceSource {
	if len(shapes) == 0 {
		shapes = Shapes[:]
	}
	return &SequenceSource{shapes: shapes}
}

func (s *SequenceSource) Next() Shape {
	shape := s.shapes[s.next]
	s.next = (s.next + 1) % len(s.shapes)
	return shape
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

package tetris

import (
	"errors"
	"fmt"
	"time"
)

// Rules is the immutable configuration a Tetris is built with.
type Rules struct {
	Width  int // columns of the stack
	Height int // rows of the stack

	// BaseInterval is the fall interval at level 1. Every level shortens it
	// by IntervalStep down to MinInterval.
	BaseInterval time.Duration
	MinInterval  time.Duration
	IntervalStep time.Duration

	LinesPerLevel  int
	LinePoints     int // per line, multiplied by the level
	SoftDropPoints int // per down-key press
	HardDropPoints int // per row travelled
}

// DefaultRules returns the classic 10x20 setup.
func DefaultRules() Rules {
	return Rules{
		Width:          10,
		Height:         20,
		BaseInterval:   500 * time.Millisecond,
		MinInterval:    50 * time.Millisecond,
		IntervalStep:   50 * time.Millisecond,
		LinesPerLevel:  10,
		LinePoints:     100,
		SoftDropPoints: 1,
		HardDropPoints: 2,
	}
}

// Validate reports whether the rules can host every tetromino.
func (r Rules) Validate() error {
	if r.Width < 4 || r.Height < 2 {
		return fmt.Errorf("stack %dx%d is too small, minimum is 4x2", r.Width, r.Height)
	}
	if r.BaseInterval <= 0 || r.MinInterval <= 0 {
		return errors.New("fall intervals must be positive")
	}
	if r.MinInterval > r.BaseInterval {
		return fmt.Errorf("min interval %v is above base interval %v", r.MinInterval, r.BaseInterval)
	}
	if r.IntervalStep < 0 {
		return errors.New("interval step can't be negative")
	}
	if r.LinesPerLevel <= 0 {
		return errors.New("lines per level must be positive")
	}
	if r.LinePoints < 0 || r.SoftDropPoints < 0 || r.HardDropPoints < 0 {
		return errors.New("points can't be negative")
	}
	return nil
}

// FallInterval returns the time between automatic one-row descents for the
// level: max(MinInterval, BaseInterval - (level-1)*IntervalStep).
func (r Rules) FallInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	return max(r.MinInterval, r.BaseInterval-time.Duration(level-1)*r.IntervalStep)
}

func (r Rules) level(lines int) int {
	return lines/r.LinesPerLevel + 1
}

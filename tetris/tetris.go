// Package tetris contains the logic of the game: the stack, the active
// tetromino, and the score, level and speed progression.
package tetris

import (
	"fmt"
	"time"
)

// Tetris is the game state. It is not safe for concurrent use; a single
// driver owns it and hands out copies made with Read.
type Tetris struct {
	// Stack is the playfield, Height rows x Width columns.
	// Columns are 0 > Width-1 left to right and represent the X axis.
	// Rows are 0 > Height-1 top to bottom and represent the Y axis.
	// An Empty cell is free, otherwise it holds the color it will be rendered with.
	Stack [][]Color

	Tetromino  *Tetromino
	Score      int
	Level      int
	LinesClear int
	GameOver   bool

	rules        Rules
	source       ShapeSource
	fallInterval time.Duration
	fallTime     time.Duration
}

// New returns a game with an empty stack and its first tetromino spawned.
// It fails when the rules cannot host a game.
func New(r Rules, s ShapeSource) (*Tetris, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	t := &Tetris{rules: r, source: s}
	t.Reset()
	return t, nil
}

// Reset starts a fresh game: empty stack, zeroed progression and a new piece.
func (t *Tetris) Reset() {
	t.Stack = emptyStack(t.rules.Width, t.rules.Height)
	t.Tetromino = nil
	t.Score = 0
	t.Level = 1
	t.LinesClear = 0
	t.GameOver = false
	t.fallInterval = t.rules.FallInterval(1)
	t.fallTime = 0
	t.Spawn()
}

// Rules returns the configuration the game was built with.
func (t *Tetris) Rules() Rules { return t.rules }

// FallInterval is the current time between automatic descents.
func (t *Tetris) FallInterval() time.Duration { return t.fallInterval }

// Spawn places the next tetromino centered on the top row. When that spot
// is already taken the game is over and the piece stays where it is.
func (t *Tetris) Spawn() {
	tm := newTetromino(t.source.Next())
	tm.X = t.rules.Width/2 - tm.Width()/2
	tm.Y = 0
	t.Tetromino = tm
	if t.IsCollision(tm.Grid, tm.X, tm.Y) {
		t.GameOver = true
	}
}

// IsCollision reports whether the grid placed with its origin at column x
// and row y would leave the stack sideways, go below the bottom, or overlap
// a locked cell. Cells above the top row only collide with the side walls.
//
//	. 0 1 2 3 4 5 6 7 8 9		. 0 1 2
//	0 X X X O X X X X X X		0 O X X
//	1 X X X O O O X X X X		1 O O O
//	2 X X X X X C X X X X
func (t *Tetris) IsCollision(grid [][]bool, x, y int) bool {
	for ir, r := range grid {
		for ic, c := range r {
			if !c {
				continue
			}
			col := x + ic
			row := y + ir
			if col < 0 || col >= t.rules.Width || row >= t.rules.Height {
				return true
			}
			if row >= 0 && t.Stack[row][col] != Empty {
				return true
			}
		}
	}
	return false
}

// Move shifts the tetromino by dx columns and dy rows if the target is free.
// It is the only way a piece translates, gravity and drops included.
func (t *Tetris) Move(dx, dy int) bool {
	if t.GameOver || t.Tetromino == nil {
		return false
	}
	x, y := t.Tetromino.X+dx, t.Tetromino.Y+dy
	if t.IsCollision(t.Tetromino.Grid, x, y) {
		return false
	}
	t.Tetromino.X = x
	t.Tetromino.Y = y
	return true
}

// Rotate turns the tetromino clockwise in place. If the rotated piece does
// not fit at the same origin the rotation is rejected; there are no kicks.
func (t *Tetris) Rotate() bool {
	if t.GameOver || t.Tetromino == nil {
		return false
	}
	rotated := rotate(t.Tetromino.Grid)
	if t.IsCollision(rotated, t.Tetromino.X, t.Tetromino.Y) {
		return false
	}
	t.Tetromino.Grid = rotated
	return true
}

// Lock writes the tetromino into the stack, clears full lines and spawns
// the next piece. Cells still above the top row are dropped.
func (t *Tetris) Lock() {
	if t.GameOver || t.Tetromino == nil {
		return
	}
	tm := t.Tetromino
	for ir, r := range tm.Grid {
		for ic, c := range r {
			row := tm.Y + ir
			if c && row >= 0 {
				t.Stack[row][tm.X+ic] = tm.Color
			}
		}
	}
	t.Tetromino = nil
	t.ClearLines()
	t.Spawn()
}

// ClearLines removes every full row, shifts the rows above down and scores
// the lines at the level they were made on. It returns the lines removed.
func (t *Tetris) ClearLines() int {
	var full []int
	for i, r := range t.Stack {
		if isFull(r) {
			full = append(full, i)
		}
	}
	if len(full) == 0 {
		return 0
	}

	// rows are removed top to bottom, each one pushing an empty row on top,
	// so the indexes of the rows still to be removed don't shift.
	for _, i := range full {
		copy(t.Stack[1:i+1], t.Stack[:i])
		t.Stack[0] = make([]Color, t.rules.Width)
	}

	t.LinesClear += len(full)
	t.Score += len(full) * t.rules.LinePoints * t.Level
	t.Level = t.rules.level(t.LinesClear)
	t.fallInterval = t.rules.FallInterval(t.Level)
	return len(full)
}

// Drop moves the tetromino one row down, locking it when it has landed.
func (t *Tetris) Drop() {
	if t.GameOver {
		return
	}
	if !t.Move(0, 1) {
		t.Lock()
	}
}

// SoftDrop is the player's down key: a Drop that is worth points.
func (t *Tetris) SoftDrop() {
	if t.GameOver {
		return
	}
	t.Drop()
	t.Score += t.rules.SoftDropPoints
}

// HardDrop lets the tetromino fall to the bottom, scoring every row, and
// locks it.
func (t *Tetris) HardDrop() {
	if t.GameOver {
		return
	}
	for t.Move(0, 1) {
		t.Score += t.rules.HardDropPoints
	}
	t.Lock()
}

// Update advances the fall timer by dt. Once the timer reaches the fall
// interval the tetromino drops one row and the timer restarts from zero;
// time beyond the interval is not carried over.
func (t *Tetris) Update(dt time.Duration) {
	if t.GameOver {
		return
	}
	t.fallTime += dt
	if t.fallTime >= t.fallInterval {
		t.Drop()
		t.fallTime = 0
	}
}

// Read returns a deep copy of the state a renderer needs.
func (t *Tetris) Read() *Tetris {
	stack := make([][]Color, len(t.Stack))
	for i := range t.Stack {
		stack[i] = make([]Color, len(t.Stack[i]))
		copy(stack[i], t.Stack[i])
	}
	return &Tetris{
		Stack:        stack,
		Tetromino:    t.Tetromino.copy(),
		Score:        t.Score,
		Level:        t.Level,
		LinesClear:   t.LinesClear,
		GameOver:     t.GameOver,
		rules:        t.rules,
		fallInterval: t.fallInterval,
	}
}

func emptyStack(width, height int) [][]Color {
	s := make([][]Color, height)
	for i := range s {
		s[i] = make([]Color, width)
	}
	return s
}

func isFull(row []Color) bool {
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return true
}

//go:build ebiten

package gui

import (
	"blockfall/tetris"
	"testing"
)

func TestKeyActions(t *testing.T) {
	want := []tetris.Action{
		tetris.MoveLeft,
		tetris.MoveRight,
		tetris.MoveDown,
		tetris.RotateRight,
		tetris.DropDown,
		tetris.Restart,
	}
	bound := map[tetris.Action]bool{}
	for _, ka := range keyActions {
		if bound[ka.action] {
			t.Errorf("action %q is bound twice", ka.action)
		}
		bound[ka.action] = true
	}
	for _, a := range want {
		if !bound[a] {
			t.Errorf("action %q has no key", a)
		}
	}
}

func TestPalette(t *testing.T) {
	for _, s := range tetris.Shapes {
		tm := tetris.NewTestTetris(s).Tetromino
		if _, ok := palette[tm.Color]; !ok {
			t.Errorf("no color for shape %v", s)
		}
	}
}

func TestSize(t *testing.T) {
	g := New(tetris.NewTestTetris(tetris.I), nil)
	w, h := g.Size()
	if w != 10*CellSize+2*offset+infoW || h != 20*CellSize+2*offset {
		t.Errorf("unexpected window size %dx%d", w, h)
	}
}

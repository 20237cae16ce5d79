//go:build ebiten

// Package gui is a windowed shell around the engine. Every frame it applies
// the keys pressed since the previous frame, advances the fall timer by one
// tick and draws the state.
package gui

import (
	"blockfall/tetris"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	CellSize = 30
	offset   = 50
	infoW    = 200
)

var (
	background = color.Black
	gridLine   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

var palette = map[tetris.Color]color.Color{
	tetris.Cyan:   color.RGBA{R: 0, G: 255, B: 255, A: 255},
	tetris.Yellow: color.RGBA{R: 255, G: 255, B: 0, A: 255},
	tetris.Purple: color.RGBA{R: 128, G: 0, B: 128, A: 255},
	tetris.Green:  color.RGBA{R: 0, G: 255, B: 0, A: 255},
	tetris.Red:    color.RGBA{R: 255, G: 0, B: 0, A: 255},
	tetris.Blue:   color.RGBA{R: 0, G: 0, B: 255, A: 255},
	tetris.Orange: color.RGBA{R: 255, G: 165, B: 0, A: 255},
}

// keyActions binds keys to engine actions, one action per key press.
var keyActions = []struct {
	key    ebiten.Key
	action tetris.Action
}{
	{ebiten.KeyArrowLeft, tetris.MoveLeft},
	{ebiten.KeyArrowRight, tetris.MoveRight},
	{ebiten.KeyArrowDown, tetris.MoveDown},
	{ebiten.KeyArrowUp, tetris.RotateRight},
	{ebiten.KeySpace, tetris.DropDown},
	{ebiten.KeyR, tetris.Restart},
}

// Game adapts a Tetris to the ebiten.Game interface.
type Game struct {
	tetris *tetris.Tetris
	logger *slog.Logger
	over   bool
}

// New constructs a Game for the provided engine.
func New(t *tetris.Tetris, l *slog.Logger) *Game {
	return &Game{tetris: t, logger: l}
}

// Size is the window size needed for the stack and the info panel.
func (g *Game) Size() (int, int) {
	r := g.tetris.Rules()
	return r.Width*CellSize + offset*2 + infoW, r.Height*CellSize + offset*2
}

// Update applies the pressed keys and advances the fall timer by a tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			g.tetris.Apply(ka.action)
		}
	}
	g.tetris.Update(time.Second / time.Duration(ebiten.TPS()))

	if g.tetris.GameOver != g.over {
		g.over = g.tetris.GameOver
		if g.over {
			g.logger.Info("game over",
				slog.Int("score", g.tetris.Score),
				slog.Int("level", g.tetris.Level),
				slog.Int("lines", g.tetris.LinesClear),
			)
		}
	}
	return nil
}

// Draw renders the stack, the active piece and the info panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	r := g.tetris.Rules()

	for y, row := range g.tetris.Stack {
		for x, c := range row {
			if c == tetris.Empty {
				vector.StrokeRect(screen, cellX(x), cellY(y), CellSize-1, CellSize-1, 1, gridLine, false)
				continue
			}
			fillCell(screen, x, y, c)
		}
	}

	if tm := g.tetris.Tetromino; tm != nil && !g.tetris.GameOver {
		for iy, row := range tm.Grid {
			for ix, c := range row {
				if c && tm.Y+iy >= 0 {
					fillCell(screen, tm.X+ix, tm.Y+iy, tm.Color)
				}
			}
		}
	}

	infoX := offset + r.Width*CellSize + 20
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", g.tetris.Score), infoX, offset)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level: %d", g.tetris.Level), infoX, offset+30)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Lines: %d", g.tetris.LinesClear), infoX, offset+60)
	for i, l := range []string{
		"Controls:",
		"left/right: move",
		"up: rotate",
		"down: soft drop",
		"space: hard drop",
		"R: restart",
	} {
		ebitenutil.DebugPrintAt(screen, l, infoX, offset+120+i*25)
	}

	if g.tetris.GameOver {
		w, h := g.Size()
		ebitenutil.DebugPrintAt(screen, "GAME OVER", w/2-27, h/2-20)
		ebitenutil.DebugPrintAt(screen, "press R to restart", w/2-54, h/2+20)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(int, int) (int, int) {
	return g.Size()
}

func fillCell(screen *ebiten.Image, x, y int, c tetris.Color) {
	vector.DrawFilledRect(screen, cellX(x), cellY(y), CellSize-1, CellSize-1, palette[c], false)
}

func cellX(x int) float32 { return float32(offset + x*CellSize) }
func cellY(y int) float32 { return float32(offset + y*CellSize) }

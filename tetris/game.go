package tetris

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	MoveLeft    Action = "left"    // Moves the Tetromino one step to the left.
	MoveRight   Action = "right"   // Moves the Tetromino one step to the right.
	MoveDown    Action = "down"    // Moves the Tetromino one step down, worth a soft drop bonus.
	DropDown    Action = "drop"    // Drops the Tetromino down the stack.
	RotateRight Action = "rotate"  // Rotates the Tetromino clockwise.
	Restart     Action = "restart" // Throws the current game away and starts a new one.
)

// Apply runs the engine operation bound to the action.
func (t *Tetris) Apply(a Action) {
	switch a {
	case MoveLeft:
		t.Move(-1, 0)
	case MoveRight:
		t.Move(1, 0)
	case MoveDown:
		t.SoftDrop()
	case DropDown:
		t.HardDrop()
	case RotateRight:
		t.Rotate()
	case Restart:
		t.Reset()
	}
}

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game runs a Tetris in its own goroutine. Every ticker tick advances the
// fall timer by the time elapsed since the previous tick (one frame for the
// first tick), actions are applied
// one at a time between ticks, and after each of them a copy of the state
// is published on the update channel.
type Game struct {
	tetris   *Tetris
	ticker   Ticker
	frame    time.Duration
	logger   *slog.Logger
	session  string
	lastTick time.Time

	updateCh chan *Tetris
	actionCh chan Action
	doneCh   chan bool
}

// Options configures a Game.
type Options struct {
	Rules  Rules
	Source ShapeSource
	FPS    int
	Logger *slog.Logger
}

func NewGame(o *Options) (*Game, error) {
	fps := o.FPS
	if fps <= 0 {
		fps = 60
	}
	frame := time.Second / time.Duration(fps)
	return NewConfigurableGame(o, newWrappedTicker(frame), frame)
}

// NewConfigurableGame builds a Game on a ticker of its choosing. The ticker
// is reset to frame when the game starts. Zero Rules mean DefaultRules, any
// other set is validated as is.
func NewConfigurableGame(o *Options, ticker Ticker, frame time.Duration) (*Game, error) {
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	rules := o.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	src := o.Source
	if src == nil {
		src = NewRandomSource(uint64(time.Now().UnixNano())) //nolint:gosec
	}
	t, err := New(rules, src)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return &Game{
		tetris:   t,
		ticker:   ticker,
		frame:    frame,
		logger:   l,
		updateCh: make(chan *Tetris),
		actionCh: make(chan Action),
		doneCh:   make(chan bool, 1),
	}, nil
}

// Start resets the game and blocks running it until Stop is called. The
// update channel is closed once it returns, so a Game runs only once.
func (g *Game) Start() {
	defer close(g.updateCh)
	g.tetris.Reset()
	g.newSession()
	g.lastTick = time.Time{}
	g.ticker.Reset(g.frame)
	g.publish()
	g.listen()
}

func (g *Game) Stop() {
	g.ticker.Stop()
	g.doneCh <- true
}

func (g *Game) Action(a Action) {
	g.actionCh <- a
}

func (g *Game) GetUpdate() <-chan *Tetris {
	return g.updateCh
}

func (g *Game) listen() {
	for {
		select {
		case now := <-g.ticker.C():
			dt := g.frame
			if !g.lastTick.IsZero() {
				dt = now.Sub(g.lastTick)
			}
			g.lastTick = now
			if g.tetris.GameOver {
				// nothing moves until the player restarts.
				continue
			}
			g.step(func() { g.tetris.Update(dt) })
		case a := <-g.actionCh:
			if a == Restart {
				g.tetris.Reset()
				g.newSession()
				g.publish()
				continue
			}
			g.step(func() { g.tetris.Apply(a) })
		case <-g.doneCh:
			return
		}
	}
}

func (g *Game) step(fn func()) {
	wasOver := g.tetris.GameOver
	fn()
	if !wasOver && g.tetris.GameOver {
		g.logger.Info("game over",
			slog.String("session", g.session),
			slog.Int("score", g.tetris.Score),
			slog.Int("level", g.tetris.Level),
			slog.Int("lines", g.tetris.LinesClear),
		)
	}
	g.publish()
}

func (g *Game) publish() {
	select {
	case g.updateCh <- g.tetris.Read():
	case <-g.doneCh:
		// keep the stop signal for the listen loop.
		g.doneCh <- true
	}
}

func (g *Game) newSession() {
	g.session = uuid.NewString()
	g.logger.Info("new game", slog.String("session", g.session))
}

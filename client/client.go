package client

import (
	"blockfall/tetris"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eiannone/keyboard"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

// swap moves the state from one value to another and reports whether it did.
func (s *state) swap(from, to clientState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != from {
		return false
	}
	s.current = to
	return true
}

type tetrisGame interface {
	Start()
	GetUpdate() <-chan *tetris.Tetris
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	local(*tetris.Tetris)
	lobby([]string)
}

type Client struct {
	tetris  tetrisGame
	render  renderer
	logger  *slog.Logger
	kbCh    <-chan keyboard.KeyEvent
	state   *state
	started bool
}

type Options struct {
	Game *tetris.Options
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	r, err := newRender(l)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	if o.Game.Logger == nil {
		o.Game.Logger = l
	}
	game, err := tetris.NewGame(o.Game)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		tetris: game,
		render: r,
		logger: l,
		kbCh:   kb,
		state:  &state{current: lobby},
	}, nil
}

// Close releases the keyboard and restores the terminal.
func (c *Client) Close() error {
	return keyboard.Close()
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.local(nil)
	c.render.lobby(defaultLobby())
	var wg sync.WaitGroup
	wg.Add(1)
	go c.listenKB(&wg)
	wg.Wait()
	if c.started {
		c.tetris.Stop()
	}
}

func (c *Client) listenKB(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC || event.Key == keyboard.KeyEsc {
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p', 'r':
				c.play()
			case 'q':
				return
			}
		case playing:
			if a, ok := keyAction(event); ok {
				c.tetris.Action(a)
			}
		}
	}
}

// play starts the game loop the first time and restarts it afterwards.
func (c *Client) play() {
	c.state.set(playing)
	if !c.started {
		c.started = true
		go c.tetris.Start()
		go c.listenTetris()
		return
	}
	c.tetris.Action(tetris.Restart)
}

// listenTetris renders every update until the game stops. A live update
// seen from the lobby means a restart got in right behind a game over, so
// the client goes back to playing.
func (c *Client) listenTetris() {
	for u := range c.tetris.GetUpdate() {
		c.render.local(u)
		switch {
		case u.GameOver && c.state.swap(playing, lobby):
			c.logger.Debug("game over", slog.Int("score", u.Score))
			c.render.lobby(gameOver(u.Score))
		case !u.GameOver && c.state.swap(lobby, playing):
			c.logger.Debug("game restarted")
		}
	}
}

func keyAction(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w':
		return tetris.RotateRight, true
	case event.Key == keyboard.KeySpace:
		return tetris.DropDown, true
	case event.Rune == 'r':
		return tetris.Restart, true
	}
	return "", false
}

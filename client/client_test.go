package client

import (
	"blockfall/tetris"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/eiannone/keyboard"
)

type mockTetris struct {
	updateCh chan *tetris.Tetris
	actionCh chan tetris.Action
	startCh  chan struct{}
	stop     bool
	mu       sync.Mutex
}

func newMockTetris() *mockTetris {
	return &mockTetris{
		updateCh: make(chan *tetris.Tetris),
		actionCh: make(chan tetris.Action, 10),
		startCh:  make(chan struct{}, 1),
	}
}

func (m *mockTetris) Start()                           { m.startCh <- struct{}{} }
func (m *mockTetris) GetUpdate() <-chan *tetris.Tetris { return m.updateCh }
func (m *mockTetris) Action(a tetris.Action)           { m.actionCh <- a }
func (m *mockTetris) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

type mockRender struct {
	mu         sync.Mutex
	localCount int
	lobbies    [][]string
}

func (m *mockRender) local(*tetris.Tetris) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.localCount++
}

func (m *mockRender) lobby(l []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbies = append(m.lobbies, l)
}

func (m *mockRender) lastLobby() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.lobbies) == 0 {
		return nil
	}
	return m.lobbies[len(m.lobbies)-1]
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClient(t *testing.T) {
	render := &mockRender{}
	tts := newMockTetris()
	kCh := make(chan keyboard.KeyEvent)
	cl := &Client{
		tetris: tts,
		render: render,
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		kbCh:   kCh,
		state:  &state{current: lobby},
	}

	doneCh := make(chan struct{})
	go func() { cl.Start(); close(doneCh) }()

	// keys other than p, r and q are ignored in the lobby.
	kCh <- keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}
	if len(tts.actionCh) != 0 {
		t.Errorf("wanted no action from the lobby")
	}

	// 'p' starts the game.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	select {
	case <-tts.startCh:
	case <-time.After(time.Second):
		t.Fatal("wanted tetris.Start() to be called")
	}
	if cl.state.get() != playing {
		t.Errorf("wanted state to be playing")
	}

	// while in game, keys should direct to tetris actions.
	actions := []struct {
		key    keyboard.KeyEvent
		action tetris.Action
	}{
		{keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, tetris.MoveLeft},
		{keyboard.KeyEvent{Rune: 'd'}, tetris.MoveRight},
		{keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, tetris.MoveDown},
		{keyboard.KeyEvent{Rune: 'w'}, tetris.RotateRight},
		{keyboard.KeyEvent{Key: keyboard.KeySpace}, tetris.DropDown},
	}
	for _, a := range actions {
		kCh <- a.key
		select {
		case got := <-tts.actionCh:
			if got != a.action {
				t.Errorf("wanted action %q, got %q", a.action, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for action %q", a.action)
		}
	}

	// a game over update sends the client back to the lobby.
	tts.updateCh <- &tetris.Tetris{Score: 42}
	tts.updateCh <- &tetris.Tetris{Score: 42, GameOver: true}
	waitFor(t, "lobby", func() bool { return cl.state.get() == lobby })
	if want := gameOver(42); !slices.Equal(render.lastLobby(), want) {
		t.Errorf("wanted game over lobby %v, got %v", want, render.lastLobby())
	}

	// playing again restarts the running game.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	select {
	case got := <-tts.actionCh:
		if got != tetris.Restart {
			t.Errorf("wanted restart, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for restart")
	}

	kCh <- keyboard.KeyEvent{Key: keyboard.KeyCtrlC}
	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("wanted the client to quit")
	}
	tts.mu.Lock()
	defer tts.mu.Unlock()
	if !tts.stop {
		t.Errorf("wanted tetris.Stop() to be called")
	}
}

func TestGameOverRacedByRestart(t *testing.T) {
	render := &mockRender{}
	tts := newMockTetris()
	cl := &Client{
		tetris:  tts,
		render:  render,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		state:   &state{current: playing},
		started: true,
	}
	listenDone := make(chan struct{})
	go func() { cl.listenTetris(); close(listenDone) }()

	// the player hit 'r' in game while the game over was on its way: the
	// game over shows up first, then the fresh game.
	tts.updateCh <- &tetris.Tetris{Score: 7, GameOver: true}
	tts.updateCh <- &tetris.Tetris{}
	waitFor(t, "playing", func() bool { return cl.state.get() == playing })

	render.mu.Lock()
	lobbies := len(render.lobbies)
	render.mu.Unlock()
	if lobbies != 1 {
		t.Errorf("wanted the game over lobby once, got %d lobbies", lobbies)
	}

	// keys drive the new game instead of the lobby.
	if a, ok := keyAction(keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}); ok && cl.state.get() == playing {
		cl.tetris.Action(a)
	}
	if got := <-tts.actionCh; got != tetris.MoveLeft {
		t.Errorf("wanted %q, got %q", tetris.MoveLeft, got)
	}

	// a second game over lands in the lobby again.
	tts.updateCh <- &tetris.Tetris{Score: 9, GameOver: true}
	waitFor(t, "lobby", func() bool { return cl.state.get() == lobby })
	if want := gameOver(9); !slices.Equal(render.lastLobby(), want) {
		t.Errorf("wanted game over lobby %v, got %v", want, render.lastLobby())
	}

	// the listener ends with the game's update channel.
	close(tts.updateCh)
	select {
	case <-listenDone:
	case <-time.After(time.Second):
		t.Fatal("wanted listenTetris to return once updates are closed")
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name   string
		event  keyboard.KeyEvent
		want   tetris.Action
		wantOK bool
	}{
		{"arrow left", keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, tetris.MoveLeft, true},
		{"a", keyboard.KeyEvent{Rune: 'a'}, tetris.MoveLeft, true},
		{"arrow right", keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, tetris.MoveRight, true},
		{"s", keyboard.KeyEvent{Rune: 's'}, tetris.MoveDown, true},
		{"arrow up", keyboard.KeyEvent{Key: keyboard.KeyArrowUp}, tetris.RotateRight, true},
		{"space", keyboard.KeyEvent{Key: keyboard.KeySpace}, tetris.DropDown, true},
		{"r", keyboard.KeyEvent{Rune: 'r'}, tetris.Restart, true},
		{"x", keyboard.KeyEvent{Rune: 'x'}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyAction(tt.event)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("wanted (%q, %t), got (%q, %t)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}


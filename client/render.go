package client

import (
	"blockfall/tetris"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/template"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos   = "\033[H" // Reset cursor position to 0,0
	emptyCell  = "  "
	sidebarLen = 20
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Color]string{
	tetris.Cyan:   Cyan,
	tetris.Blue:   Blue,
	tetris.Orange: Orange,
	tetris.Yellow: Yellow,
	tetris.Green:  Green,
	tetris.Red:    Red,
	tetris.Purple: Magenta,
}

type templateData struct {
	Local *tetris.Tetris
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	*templateData
}

func newRender(l *slog.Logger) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:       os.Stdout,
		logger:       l,
		template:     tmp,
		templateData: &templateData{},
	}, nil
}

func (r *render) local(t *tetris.Tetris) {
	r.templateData.Local = t
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template in local()", slog.String("error", err.Error()))
	}
}

// lobby draws a message box on top of the stack.
func (r *render) lobby(lines []string) {
	for i, l := range lines {
		fmt.Fprintf(r.writer, "\033[%d;3H%s", 10+i, l)
	}
}

func defaultLobby() []string {
	return []string{
		"+------------------+",
		"|  Terminal Tetris |",
		"|                  |",
		"| (p)lay   (q)uit  |",
		"+------------------+",
	}
}

// gameOver drops the label when the score doesn't fit the box, and cuts
// whatever still overflows.
func gameOver(score int) []string {
	s := fmt.Sprintf("score %d", score)
	if len(s) > 16 {
		s = strconv.Itoa(score)
	}
	return []string{
		"+------------------+",
		"|    Game Over :)  |",
		fmt.Sprintf("| %-16.16s |", s),
		"| (p)lay   (q)uit  |",
		"+------------------+",
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"localStack": localStack,
		"sidebar":    sidebar,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func cell(c tetris.Color) string {
	code, ok := colorMap[c]
	if !ok {
		return emptyCell
	}
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", code)
}

func localStack(t *templateData) [][]string {
	rules := tetris.DefaultRules()
	if t.Local != nil {
		rules = t.Local.Rules()
	}
	rendered := make([][]string, rules.Height)
	for y := range rendered {
		rendered[y] = make([]string, rules.Width)
		for x := range rendered[y] {
			rendered[y][x] = emptyCell
		}
	}
	if t.Local == nil {
		return rendered
	}

	// renders the stack
	for y, row := range t.Local.Stack {
		for x, c := range row {
			rendered[y][x] = cell(c)
		}
	}

	// renders the current tetromino unless the game is over.
	tm := t.Local.Tetromino
	if tm != nil && !t.Local.GameOver {
		for iy, row := range tm.Grid {
			for ix, c := range row {
				y, x := tm.Y+iy, tm.X+ix
				if c && y >= 0 && y < rules.Height && x >= 0 && x < rules.Width {
					rendered[y][x] = cell(tm.Color)
				}
			}
		}
	}
	return rendered
}

// sidebar returns the text printed to the right of row i.
func sidebar(t *templateData, i int) string {
	var s string
	switch i {
	case 1:
		if t.Local != nil {
			s = fmt.Sprintf("Score: %d", t.Local.Score)
		}
	case 3:
		if t.Local != nil {
			s = fmt.Sprintf("Level: %d", t.Local.Level)
		}
	case 5:
		if t.Local != nil {
			s = fmt.Sprintf("Lines: %d", t.Local.LinesClear)
		}
	case 8:
		s = "left/right  move"
	case 9:
		s = "down   soft drop"
	case 10:
		s = "up     rotate"
	case 11:
		s = "space  hard drop"
	case 12:
		s = "r      restart"
	case 13:
		s = "esc    quit"
	}
	return fmt.Sprintf("%-*s", sidebarLen, s)
}

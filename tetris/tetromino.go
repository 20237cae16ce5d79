package tetris

// Shape identifies one of the seven tetromino templates.
type Shape uint8

const (
	I Shape = iota
	O
	T
	S
	Z
	J
	L
)

// Shapes lists every template in spawn-table order.
var Shapes = [...]Shape{I, O, T, S, Z, J, L}

func (s Shape) String() string {
	switch s {
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	}
	return "?"
}

// Color is the content of a stack cell. Empty is the zero value; every
// other value is the display color of the tetromino that was locked there.
type Color uint8

const (
	Empty Color = iota
	Cyan
	Yellow
	Purple
	Green
	Red
	Blue
	Orange
)

// Tetromino is the active piece. Grid is indexed [row][col] relative to the
// piece origin, X is the origin column and Y the origin row (0 is the top).
type Tetromino struct {
	Grid  [][]bool
	X     int
	Y     int
	Shape Shape
	Color Color
}

// Width is the number of columns of the piece grid.
func (t *Tetromino) Width() int {
	if len(t.Grid) == 0 {
		return 0
	}
	return len(t.Grid[0])
}

func (t *Tetromino) copy() *Tetromino {
	if t == nil {
		return nil
	}
	return &Tetromino{
		Grid:  copyGrid(t.Grid),
		X:     t.X,
		Y:     t.Y,
		Shape: t.Shape,
		Color: t.Color,
	}
}

func copyGrid(g [][]bool) [][]bool {
	c := make([][]bool, len(g))
	for i := range g {
		c[i] = make([]bool, len(g[i]))
		copy(c[i], g[i])
	}
	return c
}

// rotate returns the grid turned 90 degrees clockwise. A grid of R rows and
// C columns becomes C rows and R columns with rotated[i][j] = g[R-1-j][i].
//
//	. 0 1 2         . 0 1
//	0 O X X         0 O O
//	1 O O O   >     1 O X
//	                2 O X
func rotate(g [][]bool) [][]bool {
	rows := len(g)
	if rows == 0 {
		return [][]bool{}
	}
	cols := len(g[0])
	rotated := make([][]bool, cols)
	for i := range cols {
		rotated[i] = make([]bool, rows)
		for j := range rows {
			rotated[i][j] = g[rows-1-j][i]
		}
	}
	return rotated
}

// newTetromino builds a fresh piece for the shape. Every call allocates its
// own grid so active pieces never share memory with each other.
func newTetromino(s Shape) *Tetromino {
	switch s {
	case O:
		return newO()
	case T:
		return newT()
	case S:
		return newS()
	case Z:
		return newZ()
	case J:
		return newJ()
	case L:
		return newL()
	}
	return newI()
}

/*
.	Shape

.	0 1 2 3

0	O O O O
*/
func newI() *Tetromino {
	return &Tetromino{
		Grid: [][]bool{
			{true, true, true, true},
		},
		Shape: I,
		Color: Cyan,
	}
}

/*
.	Shape

.	0 1

0	O O

1	O O
*/
func newO() *Tetromino {
	return &Tetromino{
		Grid: [][]bool{
			{true, true},
			{true, true},
		},
		Shape: O,
		Color: Yellow,
	}
}

/*
.	Shape

.	0 1 2

0	X O X

1	O O O
*/
func newT() *Tetromino {
	return &Tetromino{
		Grid: [][]bool{
			{false, true, false},
			{true, true, true},
		},
		Shape: T,
		Color: Purple,
	}
}

/*
.	Shape

.	0 1 2

0	X O O

1	O O X
*/
func newS() *Tetromino {
	return &Tetromino{
		Grid: [][]bool{
			{false, true, true},
			{true, true, false},
		},
		Shape: S,
		Color: Green,
	}
}

/*
.	Shape

.	0 1 2

0	O O X

1	X O O
*/
func newZ() *Tetromino {
	return &Tetromino{
		Grid: [][]bool{
			{true, true, false},
			{false, true, true},
		},
		Shape: Z,
		Color: Red,
	}
}

/*
.	Shape

.	0 1 2

0	O X X

1	O O O
*/
func newJ() *Tetromino {
	return &Tetromino{
		Grid: [][]bool{
			{true, false, false},
			{true, true, true},
		},
		Shape: J,
		Color: Blue,
	}
}

/*
.	Shape

.	0 1 2

0	X X O

1	O O O
*/
func newL() *Tetromino {
	return &Tetromino{
		Grid: [][]bool{
			{false, false, true},
			{true, true, true},
		},
		Shape: L,
		Color: Orange,
	}
}

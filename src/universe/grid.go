package universe

import "strings"

//Cell is the state of one grid position
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

func (c Cell) String() string {
	if c == Alive {
		return "Alive"
	}
	return "Dead"
}

//Grid is a fixed size field of cells stored in row-major order
//the dimensions never change after the grid is created
//the zero Grid is a valid empty grid, other grids are created by NewGrid
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

//NewGrid allocates the all-dead grid with rows x cols cells
func NewGrid(rows int, cols int) Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

//Rows returns the number of rows
func (g Grid) Rows() int {
	return g.rows
}

//Cols returns the number of columns
func (g Grid) Cols() int {
	return g.cols
}

//InBounds reports whether r, c addresses a cell inside the grid
func (g Grid) InBounds(r int, c int) bool {
	return r >= 0 && c >= 0 && r < g.rows && c < g.cols
}

//At returns the cell at r, c; positions outside the grid are Dead
func (g Grid) At(r int, c int) Cell {
	if !g.InBounds(r, c) {
		return Dead
	}
	return g.cells[r*g.cols+c]
}

//Set places the cell at r, c, positions outside the grid are ignored
func (g Grid) Set(r int, c int, cell Cell) {
	if !g.InBounds(r, c) {
		return
	}
	g.cells[r*g.cols+c] = cell
}

//Row returns a copy of row r
func (g Grid) Row(r int) []Cell {
	if r < 0 || r >= g.rows {
		return nil
	}
	row := make([]Cell, g.cols)
	copy(row, g.cells[r*g.cols:(r+1)*g.cols])
	return row
}

//Clone returns a deep copy of the grid
func (g Grid) Clone() Grid {
	n := Grid{rows: g.rows, cols: g.cols, cells: make([]Cell, len(g.cells))}
	copy(n.cells, g.cells)
	return n
}

//LiveCells calculates the count of live cells
func (g Grid) LiveCells() int {
	liveCells := 0
	g.walk(func(r int, c int, e Cell) {
		if e == Alive {
			liveCells++
		}
	})
	return liveCells
}

//String draws the grid with 'X' for live and '.' for dead cells, one line per row
func (g Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] == Alive {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

//walk walks the entire grid in row-major order and calls the cb function for each cell
func (g Grid) walk(cb func(r int, c int, e Cell)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cb(r, c, g.cells[r*g.cols+c])
		}
	}
}

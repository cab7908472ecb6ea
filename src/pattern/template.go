package pattern

import (
	"gridlife/src/universe"
)

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string   //template name
	Descr       string   //template descr
	Coordinates [][2]int //array of [row, col] coordinates of the live cells
}

var (
	gosperGliderGun = Template{
		"Gosper Glider Gun",
		"the gun emitting a new glider every 30 generations",
		[][2]int{
			{5, 1}, {5, 2}, {6, 1}, {6, 2},
			{3, 13}, {3, 14}, {4, 12}, {4, 16}, {5, 11}, {5, 17},
			{6, 11}, {6, 15}, {6, 17}, {6, 18}, {7, 11}, {7, 17},
			{8, 12}, {8, 16}, {9, 13}, {9, 14},
			{1, 25}, {2, 23}, {2, 25}, {3, 21}, {3, 22}, {4, 21},
			{4, 22}, {5, 21}, {5, 22}, {6, 23}, {6, 25}, {7, 25},
		},
	}

	pulsar = Template{
		"Pulsar",
		"period 3 oscillator",
		[][2]int{
			{2, 4}, {2, 5}, {2, 6}, {2, 10}, {2, 11}, {2, 12},
			{4, 2}, {4, 7}, {4, 9}, {4, 14},
			{5, 2}, {5, 7}, {5, 9}, {5, 14},
			{6, 2}, {6, 7}, {6, 9}, {6, 14},
			{7, 4}, {7, 5}, {7, 6}, {7, 10}, {7, 11}, {7, 12},
			{9, 4}, {9, 5}, {9, 6}, {9, 10}, {9, 11}, {9, 12},
			{10, 2}, {10, 7}, {10, 9}, {10, 14},
			{11, 2}, {11, 7}, {11, 9}, {11, 14},
			{12, 2}, {12, 7}, {12, 9}, {12, 14},
			{14, 4}, {14, 5}, {14, 6}, {14, 10}, {14, 11}, {14, 12},
		},
	}

	staticSquare = Template{
		"Static Square",
		"2x2 block, stable from the first generation",
		[][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}
)

//Presets returns the built-in templates in menu order
func Presets() []Template {
	return []Template{gosperGliderGun, pulsar, staticSquare}
}

//Load settles a new rows x cols grid with the template, all other cells are dead
//coordinates outside the grid are skipped
func Load(t Template, rows int, cols int) universe.Grid {
	g := universe.NewGrid(rows, cols)
	for _, v := range t.Coordinates {
		g.Set(v[0], v[1], universe.Alive)
	}
	return g
}

//Fits reports whether every coordinate of the template lies inside a rows x cols grid
func (t Template) Fits(rows int, cols int) bool {
	for _, v := range t.Coordinates {
		if v[0] < 0 || v[1] < 0 || v[0] >= rows || v[1] >= cols {
			return false
		}
	}
	return true
}

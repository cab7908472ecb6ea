package universe

import (
	"sort"
	"testing"
)

func engineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(Engines))
	for k := range Engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}

func forEachEngine(t *testing.T, f func(t *testing.T, e Engine)) {
	for _, name := range engineNames() {
		t.Run(name, func(t *testing.T) {
			o := DefaultUniverseOptions
			o.Workers = 4
			f(t, Engines[name](o))
		})
	}
}

func expectCells(t *testing.T, g Grid, live ...[2]int) {
	t.Helper()
	expects := map[[2]int]bool{}
	for _, v := range live {
		expects[v] = true
	}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			alive := g.At(r, c) == Alive
			if expects[[2]int{r, c}] != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v\n%v", r, c, alive, expects[[2]int{r, c}], g)
			}
		}
	}
}

func TestNextGenerationDoesNotMutate(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		for seed := int64(1); seed <= 5; seed++ {
			g := randomGrid(DefRows, DefCols, seed)
			before := g.Clone()
			next := e.NextGeneration(g)
			if !IsStable(g, before) {
				t.Fatalf("seed %d: input grid was mutated", seed)
			}
			if next.rows != g.rows || next.cols != g.cols {
				t.Fatalf("seed %d: dimension changed to %v x %v", seed, next.rows, next.cols)
			}
			next.Set(0, 0, Alive)
			next.Set(0, 0, Dead)
			if !IsStable(g, before) {
				t.Fatalf("seed %d: output shares memory with the input", seed)
			}
		}
	})
}

func TestAllDeadStaysDead(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		next := e.NextGeneration(NewGrid(DefRows, DefCols))
		expectCells(t, next)
	})
}

func TestIsolatedCellDies(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		next := e.NextGeneration(gridOf(DefRows, DefCols, [2]int{5, 5}))
		expectCells(t, next)
	})
}

func TestStaticSquareIsFixedPoint(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		g := gridOf(DefRows, DefCols, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1})
		next := e.NextGeneration(g)
		expectCells(t, next, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1})
		if !IsStable(g, next) {
			t.Fatal("static square is not stable")
		}
	})
}

func TestBlinkerIsNotStable(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		g0 := gridOf(DefRows, DefCols, [2]int{5, 4}, [2]int{5, 5}, [2]int{5, 6})
		g1 := e.NextGeneration(g0)
		expectCells(t, g1, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})
		if IsStable(g0, g1) {
			t.Fatal("blinker reported stable after one step")
		}
		g2 := e.NextGeneration(g1)
		expectCells(t, g2, [2]int{5, 4}, [2]int{5, 5}, [2]int{5, 6})
		if IsStable(g1, g2) {
			t.Fatal("blinker reported stable after two steps")
		}
	})
}

func TestCornerCell(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		//three live cells in the corner complete the block
		g := gridOf(DefRows, DefCols, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0})
		next := e.NextGeneration(g)
		expectCells(t, next, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1})

		//the opposite corner of a small grid, the edge is hard
		g = gridOf(3, 3, [2]int{2, 2}, [2]int{0, 0})
		expectCells(t, e.NextGeneration(g))
	})
}

func TestLiveNeighboursRespectBounds(t *testing.T) {
	g := NewGrid(3, 3)
	for i := range g.cells {
		g.cells[i] = Alive
	}
	cases := []struct {
		r, c, expected int
	}{
		{0, 0, 3},
		{0, 2, 3},
		{2, 0, 3},
		{2, 2, 3},
		{0, 1, 5},
		{1, 0, 5},
		{1, 1, 8},
	}
	for _, tc := range cases {
		if n := liveNeighbours(g, tc.r, tc.c); n != tc.expected {
			t.Errorf("liveNeighbours(%d,%d) = %d, expected %d", tc.r, tc.c, n, tc.expected)
		}
	}
}

func TestRule(t *testing.T) {
	for n := 0; n <= 8; n++ {
		//the centre of a 3x3 grid with n live neighbours
		neighbours := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}[:n]
		dead := gridOf(3, 3, neighbours...)
		alive := gridOf(3, 3, append([][2]int{{1, 1}}, neighbours...)...)

		born := Dead
		if n == 3 {
			born = Alive
		}
		if got := cellNextState(dead, 1, 1); got != born {
			t.Errorf("dead cell with %d neighbours became %v, expected %v", n, got, born)
		}

		want := Dead
		if n == 2 || n == 3 {
			want = Alive
		}
		if got := cellNextState(alive, 1, 1); got != want {
			t.Errorf("live cell with %d neighbours became %v, expected %v", n, got, want)
		}
	}
}

func TestMultithreadedMatchesBase(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 17}, {17, 1}, {5, 5}, {17, 23}, {DefRows, DefCols}, {101, 37}}
	for _, workers := range []int{1, 2, 3, 7, 64} {
		e := NewMultithreadedEngine(workers)
		for i, s := range sizes {
			g := randomGrid(s[0], s[1], int64(i+1))
			for gen := 0; gen < 20; gen++ {
				want := NextGeneration(g)
				got := e.NextGeneration(g)
				if !IsStable(want, got) {
					t.Fatalf("workers %d, size %v, generation %d: multithreaded differs from base", workers, s, gen)
				}
				g = want
			}
		}
	}
}

func TestMultithreadedDefaultsWorkers(t *testing.T) {
	if NewMultithreadedEngine(0).Workers() < 1 {
		t.Fatal("no workers by default")
	}
	e := NewMultithreadedEngine(10)
	cases := []struct{ rows, expected int }{
		{0, DefMinRowsPerWorker},
		{15, DefMinRowsPerWorker},
		{40, 4},
		{45, 5},
		{100, 10},
	}
	for _, tc := range cases {
		if n := e.rowsPerWorker(tc.rows); n != tc.expected {
			t.Errorf("rowsPerWorker(%d) = %d, expected %d", tc.rows, n, tc.expected)
		}
	}
}

func TestZeroGrid(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		var g Grid
		next := e.NextGeneration(g)
		if next.Rows() != 0 || next.Cols() != 0 || next.LiveCells() != 0 {
			t.Fatalf("zero grid became %v x %v", next.Rows(), next.Cols())
		}
		if !IsStable(g, next) {
			t.Fatal("zero grid is not stable")
		}
		//rows without columns
		next = e.NextGeneration(NewGrid(3, 0))
		if next.Rows() != 3 || next.Cols() != 0 {
			t.Fatalf("3 x 0 grid became %v x %v", next.Rows(), next.Cols())
		}
	})
}

package universe

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

/*
	Engine with multithreaded computation algorithm
	the grid is splitted into the row bands each of which is computed by individual goroutine
	the bands read the immutable prior grid and write disjoint rows of the new one
*/

const (
	DefMinRowsPerWorker = 3 //minimum rows for one worker
)

type MultithreadedEngine struct {
	workers int
}

//NewMultithreadedEngine creates the engine, workers <= 0 means runtime.NumCPU
func NewMultithreadedEngine(workers int) MultithreadedEngine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return MultithreadedEngine{workers: workers}
}

func (e MultithreadedEngine) Name() string {
	return "multithreaded"
}

//Workers returns the maximum number of goroutines used for one generation
func (e MultithreadedEngine) Workers() int {
	return e.workers
}

//NextGeneration calculates the next generation
//starts goroutines per row band and waits for finishing
func (e MultithreadedEngine) NextGeneration(g Grid) Grid {
	next := NewGrid(g.rows, g.cols)
	rowsPerWorker := e.rowsPerWorker(g.rows)
	var eg errgroup.Group
	for r1 := 0; r1 < g.rows; r1 += rowsPerWorker {
		r1 := r1
		r2 := min(r1+rowsPerWorker, g.rows)
		eg.Go(func() error {
			calcRows(g, next, r1, r2)
			return nil
		})
	}
	//the bands never fail
	_ = eg.Wait()
	return next
}

func (e MultithreadedEngine) rowsPerWorker(rows int) int {
	workers := e.workers
	if workers <= 0 {
		workers = 1
	}
	linesPerWorker := rows / workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	} else if linesPerWorker*workers < rows {
		linesPerWorker++
	}
	return linesPerWorker
}

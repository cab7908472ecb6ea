package universe

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

//BaseEngine is the sequential engine, it walks the grid in row-major order
type BaseEngine struct{}

func (BaseEngine) Name() string {
	return "base"
}

func (BaseEngine) NextGeneration(g Grid) Grid {
	return NextGeneration(g)
}

//NextGeneration calculates the next generation of g
//the new state of every cell is written to a newly allocated grid, g is only read
func NextGeneration(g Grid) Grid {
	next := NewGrid(g.rows, g.cols)
	calcRows(g, next, 0, g.rows)
	return next
}

//calcRows calculates next states for the rows [r1, r2) of g and stores them to next
func calcRows(g Grid, next Grid, r1 int, r2 int) {
	for r := r1; r < r2; r++ {
		for c := 0; c < g.cols; c++ {
			next.cells[r*g.cols+c] = cellNextState(g, r, c)
		}
	}
}

//liveNeighbours counts live cells around r, c
//the grid has hard edges: positions outside the grid are not counted
func liveNeighbours(g Grid, r int, c int) int {
	n := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			nr := r + i
			nc := c + j
			if nr < 0 || nc < 0 || nr >= g.rows || nc >= g.cols {
				continue
			}
			if g.cells[nr*g.cols+nc] == Alive {
				n++
			}
		}
	}
	return n
}

//cellNextState calculates the next state for the cell
func cellNextState(g Grid, r int, c int) Cell {
	n := liveNeighbours(g, r, c)
	if n == 3 || (n == 2 && g.cells[r*g.cols+c] == Alive) {
		return Alive
	}
	return Dead
}

//Universe drives the simulation: compute the next generation, render the current one,
//stop on the fixed point or adopt the next generation and wait for the next frame
type Universe struct {
	options  Options
	engine   Engine
	renderer Renderer
	views    []Viewer

	stepMu   sync.Mutex //serializes steps
	mu       sync.Mutex
	status   Status
	current  Grid
	resumeCh chan struct{} //not nil while the universe is paused
}

//NewUniverse creates the Universe seeded with the seed grid
//nil options fall back to DefaultUniverseOptions, nil engine to BaseEngine
//the seed dimensions take precedence over o.Rows and o.Cols
func NewUniverse(o *Options, e Engine, r Renderer, seed Grid) *Universe {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	if e == nil {
		e = BaseEngine{}
	}
	if r == nil {
		r = nopRenderer{}
	}
	if seed.rows == 0 && seed.cols == 0 {
		seed = NewGrid(o.Rows, o.Cols)
	}
	u := &Universe{
		options:  *o,
		engine:   e,
		renderer: r,
		current:  seed.Clone(),
	}
	u.options.Rows = seed.rows
	u.options.Cols = seed.cols
	u.status.LiveCells = u.current.LiveCells()
	return u
}

//RegisterViewer registers the viewer - the universe will call the viewer when the status is changed
func (u *Universe) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
}

//Status returns current universe status represented by Status struct
func (u *Universe) Status() Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}

//Options returns the universe configuration
func (u *Universe) Options() Options {
	return u.options
}

//Engine returns the engine computing the generations
func (u *Universe) Engine() Engine {
	return u.engine
}

//Current returns a copy of the current generation
func (u *Universe) Current() Grid {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.current.Clone()
}

//Step does one frame: calculates the next generation, renders the current one
//and either finishes on the fixed point or adopts the next generation
func (u *Universe) Step() (finished bool, err error) {
	u.stepMu.Lock()
	defer u.stepMu.Unlock()

	u.mu.Lock()
	if u.status.RunningMode == RunningStateFinished {
		u.mu.Unlock()
		return true, nil
	}
	cur := u.current
	u.mu.Unlock()

	start := time.Now()
	next := u.engine.NextGeneration(cur)
	elapsed := time.Since(start)

	if err = u.renderer.Render(cur); err != nil {
		return false, errors.Wrap(err, "[Step] failed to render the generation")
	}

	stable := IsStable(cur, next)

	u.mu.Lock()
	u.status.IterationNum++
	u.status.IterationTime = elapsed
	if stable {
		u.finishLocked(StopReasonStable)
	} else {
		u.current = next
		u.status.LiveCells = next.LiveCells()
		if u.options.MaxSteps != 0 && u.status.IterationNum >= u.options.MaxSteps {
			u.finishLocked(StopReasonMaxSteps)
		}
	}
	st := u.status
	u.mu.Unlock()

	u.refreshView(st)
	return st.RunningMode == RunningStateFinished, nil
}

//Run runs the simulation until the fixed point, the MaxSteps limit or ctx cancellation
//cancellation is a normal finish; the returned error comes from the renderer only
func (u *Universe) Run(ctx context.Context) (Status, error) {
	u.switchRunningState(RunningStateRun)
	for {
		if err := u.waitResumed(ctx); err != nil {
			return u.finish(StopReasonCancelled), nil
		}
		finished, err := u.Step()
		if err != nil {
			return u.Status(), err
		}
		if finished {
			return u.Status(), nil
		}
		if err := sleep(ctx, u.options.Interval); err != nil {
			return u.finish(StopReasonCancelled), nil
		}
	}
}

//Pause suspends Run before the next step
func (u *Universe) Pause() {
	u.mu.Lock()
	if u.resumeCh != nil || u.status.RunningMode == RunningStateFinished {
		u.mu.Unlock()
		return
	}
	u.resumeCh = make(chan struct{})
	u.status.RunningMode = RunningStatePaused
	st := u.status
	u.mu.Unlock()
	u.refreshView(st)
}

//Resume continues the paused simulation
func (u *Universe) Resume() {
	u.mu.Lock()
	if u.resumeCh == nil {
		u.mu.Unlock()
		return
	}
	close(u.resumeCh)
	u.resumeCh = nil
	u.status.RunningMode = RunningStateRun
	st := u.status
	u.mu.Unlock()
	u.refreshView(st)
}

//Paused reports whether the universe is paused
func (u *Universe) Paused() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.resumeCh != nil
}

//waitResumed blocks while the universe is paused
func (u *Universe) waitResumed(ctx context.Context) error {
	u.mu.Lock()
	ch := u.resumeCh
	u.mu.Unlock()
	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
		}
	}
	return ctx.Err()
}

//switchRunningState switches the state of the universe to RunningState and notifies the viewers
func (u *Universe) switchRunningState(to RunningState) {
	u.mu.Lock()
	if u.status.RunningMode == RunningStateFinished || u.resumeCh != nil {
		u.mu.Unlock()
		return
	}
	u.status.RunningMode = to
	st := u.status
	u.mu.Unlock()
	u.refreshView(st)
}

//finish marks the universe finished, the first reason wins
func (u *Universe) finish(reason StopReason) Status {
	u.mu.Lock()
	changed := u.status.RunningMode != RunningStateFinished
	u.finishLocked(reason)
	st := u.status
	u.mu.Unlock()
	if changed {
		u.refreshView(st)
	}
	return st
}

func (u *Universe) finishLocked(reason StopReason) {
	if u.status.RunningMode == RunningStateFinished {
		return
	}
	u.status.RunningMode = RunningStateFinished
	u.status.Reason = reason
	if u.resumeCh != nil {
		close(u.resumeCh)
		u.resumeCh = nil
	}
}

//refreshView calls Refresh event for all registered views
func (u *Universe) refreshView(st Status) {
	for _, v := range u.views {
		v.Refresh(st)
	}
}

//sleep waits for d or ctx cancellation
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type nopRenderer struct{}

func (nopRenderer) Render(Grid) error {
	return nil
}

package universe

import "time"

//Engine computes the next generation from the current one
//implementations must not mutate the input grid and must return a freshly allocated grid
type Engine interface {
	Name() string
	NextGeneration(g Grid) Grid
}

//Renderer draws a generation snapshot
type Renderer interface {
	Render(g Grid) error
}

//Viewer is the object who displays the simulation status, it is called after every step
type Viewer interface {
	Refresh(st Status)
}

//Options represents the Universe's configurable options
type Options struct {
	Rows     int
	Cols     int
	Interval time.Duration //delay between the frames, zero disables the delay
	MaxSteps int           //zero means no limit, the simulation runs until the fixed point
	Workers  int           //multithreaded engine only, zero means runtime.NumCPU
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Reason        StopReason
}

//The universe running status at the concrete moment
type RunningState int

const (
	RunningStateManual RunningState = iota
	RunningStateRun
	RunningStatePaused
	RunningStateFinished
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "waiting"
	case RunningStateRun:
		return "running"
	case RunningStatePaused:
		return "paused"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

//StopReason tells why the simulation finished
type StopReason int

const (
	StopReasonNone StopReason = iota
	StopReasonStable
	StopReasonMaxSteps
	StopReasonCancelled
)

func (r StopReason) String() string {
	switch r {
	case StopReasonStable:
		return "stable"
	case StopReasonMaxSteps:
		return "max steps reached"
	case StopReasonCancelled:
		return "cancelled"
	}
	return ""
}

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 0
	DefRows               = 40
	DefCols               = 40
)

var DefaultUniverseOptions = Options{
	Rows:     DefRows,
	Cols:     DefCols,
	Interval: DefSimulationInterval,
	MaxSteps: DefMaxSteps,
}

//Engines is the registry of the available engines
var Engines = map[string]func(o Options) Engine{
	"base": func(o Options) Engine {
		return BaseEngine{}
	},
	"multithreaded": func(o Options) Engine {
		return NewMultithreadedEngine(o.Workers)
	},
}

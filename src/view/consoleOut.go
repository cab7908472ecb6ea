package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"gridlife/src/universe"
)

const progressEvery = 10

//ConsoleOut prints the headless run progress and the final summary
type ConsoleOut struct {
	w         io.Writer
	startTime time.Time
}

func NewConsoleOut(w io.Writer) *ConsoleOut {
	return &ConsoleOut{w: w, startTime: time.Now()}
}

//Start prints the running configuration and resets the timer
func (c *ConsoleOut) Start(o universe.Options, engine string, pattern string) {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Rows, o.Cols),
		"Interval":       o.Interval,
		"Max iterations": maxStepsDescr(o.MaxSteps),
		"Engine":         engine,
		"Pattern":        pattern,
	})
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) Refresh(st universe.Status) {
	switch st.RunningMode {
	case universe.RunningStateFinished:
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		_, _ = fmt.Fprintln(c.w, "\nFinished:")
		c.printHashData(map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
			"Reason":         st.Reason,
		})
	case universe.RunningStateRun:
		if st.IterationNum > 0 && st.IterationNum%progressEvery == 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}

func maxStepsDescr(n int) string {
	if n == 0 {
		return "until stable"
	}
	return fmt.Sprintf("%v steps", n)
}

package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"

	"gridlife/src/universe"
)

func TestConsoleRendererOutput(t *testing.T) {
	g := universe.NewGrid(2, 3)
	g.Set(0, 0, universe.Alive)
	g.Set(1, 2, universe.Alive)

	var out bytes.Buffer
	r := NewConsoleRenderer(&out, "", false)
	if err := r.Render(g); err != nil {
		t.Fatalf("Render: %v", err)
	}
	expected := clearScreen + "X  \n  X\n"
	if out.String() != expected {
		t.Fatalf("got %q, expected %q", out.String(), expected)
	}

	out.Reset()
	r = NewConsoleRenderer(&out, "#", false)
	if err := r.Render(universe.NewGrid(1, 2)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.String() != clearScreen+"  \n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestConsoleRendererColors(t *testing.T) {
	g := universe.NewGrid(1, 1)
	g.Set(0, 0, universe.Alive)
	var out bytes.Buffer
	if err := NewConsoleRenderer(&out, "X", true).Render(g); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out.String(), "\x1b[32mX") {
		t.Fatalf("live glyph is not green: %q", out.String())
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestConsoleRendererFlushError(t *testing.T) {
	err := NewConsoleRenderer(failingWriter{}, "X", false).Render(universe.NewGrid(2, 2))
	if errors.Cause(err) != errWrite {
		t.Fatalf("error %v, expected the write error", err)
	}
}

func TestDiscard(t *testing.T) {
	if err := Discard.Render(universe.NewGrid(3, 3)); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestConsoleOut(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleOut(&out)
	c.Start(universe.DefaultUniverseOptions, "base", "Pulsar")
	for _, s := range []string{"Dimension: 40 x 40", "Engine: base", "Pattern: Pulsar", "Max iterations: until stable", "Simulation started"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("configuration lacks %q\n%s", s, out.String())
		}
	}

	out.Reset()
	c.Refresh(universe.Status{RunningMode: universe.RunningStateRun, IterationNum: 0})
	c.Refresh(universe.Status{RunningMode: universe.RunningStateRun, IterationNum: 7})
	c.Refresh(universe.Status{RunningMode: universe.RunningStatePaused, IterationNum: 10})
	if out.Len() != 0 {
		t.Fatalf("unexpected progress %q", out.String())
	}
	c.Refresh(universe.Status{RunningMode: universe.RunningStateRun, IterationNum: 20})
	if out.String() != "  Iterations done: 20\n" {
		t.Fatalf("progress %q", out.String())
	}

	out.Reset()
	c.Refresh(universe.Status{
		RunningMode:  universe.RunningStateFinished,
		IterationNum: 42,
		LiveCells:    4,
		Reason:       universe.StopReasonStable,
	})
	for _, s := range []string{"Finished:", "Last iteration: 42", "Live cells: 4", "Reason: stable", "Total time:"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("summary lacks %q\n%s", s, out.String())
		}
	}
}

func TestConsoleUICoalescesRedraws(t *testing.T) {
	var queued []func(*gocui.Gui) error
	ui := &ConsoleUI{update: func(f func(*gocui.Gui) error) { queued = append(queued, f) }}

	for i := 0; i < 100; i++ {
		g := universe.NewGrid(2, 2)
		if err := ui.Render(g); err != nil {
			t.Fatalf("Render: %v", err)
		}
		ui.Refresh(universe.Status{IterationNum: i})
	}
	if len(queued) != 1 {
		t.Fatalf("%d redraws queued, expected 1", len(queued))
	}

	//the gui loop took the redraw, the next frame queues a new one
	ui.clearDirty()
	ui.Refresh(universe.Status{IterationNum: 100})
	if len(queued) != 2 {
		t.Fatalf("%d redraws queued, expected 2", len(queued))
	}
	if st := ui.status; st.IterationNum != 100 {
		t.Fatalf("latest status lost: %+v", st)
	}
}

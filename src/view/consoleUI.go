package view

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"gridlife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the full screen terminal view of the simulation
//it is the Renderer and the Viewer of the universe at once
type ConsoleUI struct {
	u       *universe.Universe
	cancel  context.CancelFunc
	g       *gocui.Gui
	k       []keyBindings
	pattern string

	mu     sync.Mutex
	grid   universe.Grid
	status universe.Status
	dirty  bool //a redraw is queued in the gui loop

	update func(func(*gocui.Gui) error)

	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStatePaused:   aurora.Colorize("paused", aurora.YellowFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewConsoleUI initializes the terminal, the caller must call Start to run and release it
func NewConsoleUI(glyph string, pattern string) (*ConsoleUI, error) {
	if glyph == "" {
		glyph = DefLiveGlyph
	}
	t := ConsoleUI{
		pattern:    pattern,
		liveFiller: aurora.Green(glyph).String(),
		deadFiller: " ",
	}

	var err error
	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to initialize the terminal")
	}

	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{'p', "P", "Pause/Resume", t.cmdPause, ""},
		{'n', "N", "Next step (paused)", t.cmdNextStep, ""},
	}
	t.update = t.g.Update
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return errors.Wrapf(err, "[initKeyBindings] failed to bind %s", kb.name)
		}
	}
	return nil
}

//Register attaches the universe, cancel stops the simulation when the user quits
func (t *ConsoleUI) Register(u *universe.Universe, cancel context.CancelFunc) {
	t.u = u
	t.cancel = cancel
	t.mu.Lock()
	t.grid = u.Current()
	t.status = u.Status()
	t.mu.Unlock()
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] terminal main loop failed")
	}
	return nil
}

//Render is called from the simulation goroutine, the drawing happens in the gui loop
func (t *ConsoleUI) Render(g universe.Grid) error {
	t.mu.Lock()
	t.grid = g
	t.mu.Unlock()
	t.scheduleRedraw()
	return nil
}

func (t *ConsoleUI) Refresh(st universe.Status) {
	t.mu.Lock()
	t.status = st
	t.mu.Unlock()
	t.scheduleRedraw()
}

//scheduleRedraw queues one redraw at most, the frames produced before the gui loop gets to it are dropped
func (t *ConsoleUI) scheduleRedraw() {
	t.mu.Lock()
	if t.dirty {
		t.mu.Unlock()
		return
	}
	t.dirty = true
	t.mu.Unlock()
	t.update(func(gui *gocui.Gui) error {
		t.clearDirty()
		t.renderField(gui)
		t.renderStatus(gui)
		return nil
	})
}

func (t *ConsoleUI) clearDirty() {
	t.mu.Lock()
	t.dirty = false
	t.mu.Unlock()
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, e := g.View("field")
	if e != nil {
		return
	}
	t.mu.Lock()
	a := t.grid
	t.mu.Unlock()

	v.Clear()
	maxW, maxH := v.Size()
	crop := a.Cols() > maxW || a.Rows() > maxH

	var b bytes.Buffer
	for r := 0; r < a.Rows() && r < maxH; r++ {
		if r != 0 {
			b.WriteByte('\n')
		}
		if crop && r == maxH-1 {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for c := 0; c < a.Cols() && c < maxW; c++ {
			if a.At(r, c) == universe.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, e := g.View("status")
	if e != nil {
		return
	}
	t.mu.Lock()
	s := t.status
	t.mu.Unlock()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.IterationNum))
	_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
	_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
	if s.Reason != universe.StopReasonNone {
		_, _ = fmt.Fprintln(v, t.renderProp("Reason", "%v", s.Reason))
	}
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	v, e := g.View("configuration")
	if e != nil || t.u == nil {
		return
	}
	c := t.u.Options()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Rows, c.Cols))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
	_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v", maxStepsDescr(c.MaxSteps)))
	_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", t.u.Engine().Name()))
	_, _ = fmt.Fprintln(v, t.renderProp("Pattern", "%v", t.pattern))
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 32
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			return err
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		return nil
	}
	if err := t.headerLayout(g, 3, "Conway's Game of Life"); err != nil {
		return err
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
	}
	t.renderConfiguration(g)

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}
	t.renderStatus(g)

	if v, err := g.SetView("field", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Field"
		v.Frame = true
	}
	t.renderField(g)

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView("header", -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	pad := 0
	if maxX > len(text) {
		pad = (maxX - len(text)) / 2
	}
	_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	return nil
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	if t.cancel != nil {
		t.cancel()
	}
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdPause(_ *gocui.View) error {
	if t.u == nil {
		return nil
	}
	if t.u.Paused() {
		t.u.Resume()
	} else {
		t.u.Pause()
	}
	return nil
}

func (t *ConsoleUI) cmdNextStep(_ *gocui.View) error {
	if t.u == nil || !t.u.Paused() {
		return nil
	}
	_, err := t.u.Step()
	return err
}

package view

import (
	"bufio"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"gridlife/src/universe"
)

//clearScreen clears the terminal and moves the cursor home
const clearScreen = "\x1b[2J\x1b[1;1H"

const DefLiveGlyph = "X"

//ConsoleRenderer redraws the whole grid on every frame:
//one line per row, the live glyph for live cells and a space for dead ones
type ConsoleRenderer struct {
	w          *bufio.Writer
	liveFiller string
	deadFiller string
}

//NewConsoleRenderer creates the renderer writing to w
//the live glyph is painted green when colors is set
func NewConsoleRenderer(w io.Writer, glyph string, colors bool) *ConsoleRenderer {
	if glyph == "" {
		glyph = DefLiveGlyph
	}
	return &ConsoleRenderer{
		w:          bufio.NewWriter(w),
		liveFiller: aurora.NewAurora(colors).Green(glyph).String(),
		deadFiller: " ",
	}
}

//Render writes the grid and flushes the output so the frame is visible before the delay
func (c *ConsoleRenderer) Render(g universe.Grid) error {
	_, _ = c.w.WriteString(clearScreen)
	for r := 0; r < g.Rows(); r++ {
		for col := 0; col < g.Cols(); col++ {
			if g.At(r, col) == universe.Alive {
				_, _ = c.w.WriteString(c.liveFiller)
			} else {
				_, _ = c.w.WriteString(c.deadFiller)
			}
		}
		_ = c.w.WriteByte('\n')
	}
	return errors.Wrap(c.w.Flush(), "[Render] failed to flush the console")
}

//Discard is the renderer for headless runs, it draws nothing
var Discard universe.Renderer = discard{}

type discard struct{}

func (discard) Render(universe.Grid) error {
	return nil
}

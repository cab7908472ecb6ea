package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/integrii/flaggy"

	"gridlife/src/config"
	"gridlife/src/pattern"
	"gridlife/src/universe"
	"gridlife/src/view"
)

type EnvOptions struct {
	interactive bool
	headless    bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("gridlife: ")
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

//run returns the process exit code so the deferred calls run before the exit
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	cfg, eo, err := initOptions(args)
	if err != nil {
		log.Printf("%v", err)
		return 2
	}

	tmpl, err := pattern.Choose(cfg.Pattern, stdin, stdout, pattern.Presets())
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	if !tmpl.Fits(cfg.Rows, cfg.Cols) {
		log.Printf("pattern %q does not fit %v x %v, cells outside the grid are dropped", tmpl.Name, cfg.Rows, cfg.Cols)
	}

	engine, err := cfg.NewEngine()
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	uo := cfg.UniverseOptions()
	seed := pattern.Load(tmpl, cfg.Rows, cfg.Cols)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch {
	case eo.interactive:
		err = runInteractive(ctx, cfg, uo, engine, seed, tmpl.Name)
	case eo.headless:
		err = runHeadless(ctx, stdout, uo, engine, seed, tmpl.Name)
	default:
		u := universe.NewUniverse(&uo, engine, view.NewConsoleRenderer(stdout, cfg.Glyph, cfg.Color), seed)
		var st universe.Status
		st, err = u.Run(ctx)
		if err == nil {
			_, _ = fmt.Fprintf(stdout, "\nFinished after %v generations: %v\n", st.IterationNum, st.Reason)
		}
	}
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	return 0
}

func runHeadless(ctx context.Context, stdout io.Writer, uo universe.Options, engine universe.Engine, seed universe.Grid, name string) error {
	out := view.NewConsoleOut(stdout)
	u := universe.NewUniverse(&uo, engine, view.Discard, seed)
	u.RegisterViewer(out)
	out.Start(u.Options(), engine.Name(), name)
	_, err := u.Run(ctx)
	return err
}

func runInteractive(ctx context.Context, cfg config.Config, uo universe.Options, engine universe.Engine, seed universe.Grid, name string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui, err := view.NewConsoleUI(cfg.Glyph, name)
	if err != nil {
		return err
	}
	u := universe.NewUniverse(&uo, engine, ui, seed)
	u.RegisterViewer(ui)
	ui.Register(u, cancel)

	runErr := make(chan error, 1)
	go func() {
		_, err := u.Run(ctx)
		runErr <- err
	}()

	if err := ui.Start(); err != nil {
		cancel()
		<-runErr
		return err
	}
	cancel()
	return <-runErr
}

//initOptions reads the environment and overrides it with the command line flags
func initOptions(args []string) (cfg config.Config, eo *EnvOptions, err error) {
	cfg, err = config.Load()
	if err != nil {
		return
	}
	eo = &EnvOptions{}

	p := flaggy.NewParser("gridlife")
	p.Description = "Conway's Game of Life on a fixed size console grid"
	p.ShowHelpOnUnexpected = true
	p.Int(&cfg.Rows, "r", "rows", "Number of grid rows")
	p.Int(&cfg.Cols, "c", "cols", "Number of grid columns")
	p.Duration(&cfg.Interval, "i", "interval", "Delay between the frames, for example 150ms; 0 disables the delay")
	p.Int(&cfg.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 runs until the grid is stable")
	p.Int(&cfg.Workers, "w", "workers", "Workers of the multithreaded engine, 0 uses all CPUs")
	p.String(&cfg.Engine, "e", "engine", "Engine to use ["+strings.Join(config.EngineNames(), "|")+"]")
	p.String(&cfg.Pattern, "p", "pattern", "Starting preset by number or name, prompts when empty or invalid")
	p.String(&cfg.Glyph, "g", "glyph", "Character drawn for live cells")
	p.Bool(&cfg.Color, "", "color", "Paint live cells")
	p.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	p.Bool(&eo.headless, "H", "headless", "Print progress only, no grid rendering")

	if err = p.ParseArgs(args); err != nil {
		return
	}
	if err = cfg.Validate(); err != nil {
		p.ShowHelpWithMessage(err.Error())
		return
	}
	if eo.interactive && eo.headless {
		err = fmt.Errorf("interactive and headless modes are exclusive")
		p.ShowHelpWithMessage(err.Error())
	}
	return
}

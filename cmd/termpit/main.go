package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/kinetic/internal/logging"
	"github.com/plus3/kinetic/scenario"
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/sim/canvas/termcanvas"
	"github.com/plus3/kinetic/vec"
	"go.uber.org/zap"
)

var clickImpulse = vec.New(0, -400)

func main() {
	scenarioPath := flag.String("scenario", "", "Scenario file. Empty uses the built-in ball pit.")
	fps := flag.Int("fps", 30, "Ticks per second.")
	logFile := flag.String("log-file", "", "Write JSON logs to this file. Empty disables logging.")
	logLevel := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	if err := run(*scenarioPath, *fps, *logFile, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(scenarioPath string, fps int, logFile, logLevel string) error {
	logger := zap.NewNop()
	if logFile != "" {
		var err error
		if logger, err = logging.File(logLevel, logFile); err != nil {
			return err
		}
		defer logger.Sync()
	}

	s := scenario.Default()
	if scenarioPath != "" {
		var err error
		if s, err = scenario.LoadFile(scenarioPath); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	canvas := termcanvas.New(screen, 1, 2)
	fit(canvas, screen, s)
	pointer := termcanvas.NewPointer(canvas)

	world := s.NewWorld(sim.WithLogger(logger))
	if _, err := s.Build(world, scenario.BuildOptions{
		Pointer: pointer,
		OnClick: func(e *sim.Entity) {
			if mover := e.Movement(); mover != nil {
				mover.Impulse(clickImpulse)
			}
		},
	}); err != nil {
		return err
	}

	// Fini makes PollEvent return nil; done releases a poller blocked on send.
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	interval := time.Second / time.Duration(max(fps, 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("termpit started", zap.String("scenario", s.Name), zap.Int("entities", world.Len()))
	paused := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					return nil
				case ev.Rune() == ' ':
					paused = !paused
				}
			case *tcell.EventResize:
				fit(canvas, screen, s)
				screen.Sync()
			default:
				pointer.HandleEvent(ev)
			}
		case <-ticker.C:
			if !paused {
				if err := world.Once(interval.Seconds()); err != nil {
					logger.Error("tick failed", zap.Error(err))
					return err
				}
				pointer.Reset()
			}
			canvas.Clear()
			world.Draw(canvas)
			stats := world.Stats()
			drawStatus(screen, fmt.Sprintf(" %s  entities:%d  collisions:%d  tick:%s  [space] pause  [q] quit ",
				s.Name, world.Len(), stats.Collisions, stats.LastDuration.Round(time.Microsecond)))
			screen.Show()
		}
	}
}

// fit scales cells so the whole scenario fills the terminal.
func fit(canvas *termcanvas.Canvas, screen tcell.Screen, s *scenario.Scenario) {
	cols, rows := screen.Size()
	canvas.CellWidth = s.Width / float64(max(cols, 1))
	canvas.CellHeight = s.Height / float64(max(rows, 1))
}

func drawStatus(screen tcell.Screen, text string) {
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range text {
		screen.SetContent(i, 0, r, nil, style)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/kinetic/internal/logging"
	"github.com/plus3/kinetic/scenario"
	"github.com/plus3/kinetic/sim"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 2000, "The number of random bodies to spawn on top of the scenario.")
	layerCount := flag.Int("layers", 4, "The number of collision layers random bodies are spread over.")
	seed := flag.Uint64("seed", 1, "Seed for body placement.")
	step := flag.Duration("step", 0, "Fixed tick length. Zero uses wall time between ticks.")
	scenarioPath := flag.String("scenario", "", "Scenario file to load first. Empty uses the built-in scenario.")
	logLevel := flag.String("log-level", "info", "Log level.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger, err := logging.New(*logLevel, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(logger, config{
		duration:       *duration,
		entities:       *entityCount,
		layers:         *layerCount,
		seed:           *seed,
		step:           *step,
		scenarioPath:   *scenarioPath,
		gcPauseMetrics: *gcPauseMetrics,
	}); err != nil {
		logger.Fatal("stress test failed", zap.Error(err))
	}
}

type config struct {
	duration       time.Duration
	entities       int
	layers         int
	seed           uint64
	step           time.Duration
	scenarioPath   string
	gcPauseMetrics bool
}

func run(logger *zap.Logger, cfg config) error {
	logger.Info("starting simulation stress test")

	s := scenario.Default()
	if cfg.scenarioPath != "" {
		var err error
		if s, err = scenario.LoadFile(cfg.scenarioPath); err != nil {
			return err
		}
	}

	world := s.NewWorld(sim.WithLogger(logger))
	if _, err := s.Build(world, scenario.BuildOptions{Pointer: idlePointer{}}); err != nil {
		return err
	}

	logger.Info("populating world", zap.Int("bodies", cfg.entities), zap.Int("layers", cfg.layers))
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	for i := range cfg.entities {
		if err := world.Add(spawnBody(rng, world.Registry(), s.Viewport(), i, cfg.layers)); err != nil {
			return err
		}
	}
	logger.Info("population complete", zap.Int("entities", world.Len()))

	report := &Report{
		Scenario:       s.Name,
		Duration:       cfg.duration,
		Entities:       world.Len(),
		Layers:         cfg.layers,
		FixedStep:      cfg.step,
		GCPauseMetrics: cfg.gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", cfg.duration))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			dt := cfg.step
			if dt == 0 {
				dt = time.Since(lastFrameTime)
				lastFrameTime = time.Now()
			}

			updateStart := time.Now()
			if err := world.Once(dt.Seconds()); err != nil {
				return err
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.World = world.Stats()
	report.Census = world.CollectStats()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		zap.Int64("ticks", report.World.Ticks),
		zap.Uint64("collisions", report.World.Collisions))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

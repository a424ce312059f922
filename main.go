package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vehicles/config"
	"github.com/pthm-cable/vehicles/game"
	"github.com/pthm-cable/vehicles/renderer"
	"github.com/pthm-cable/vehicles/telemetry"
)

// runFlags holds the parsed command line.
type runFlags struct {
	configPath     string
	headless       bool
	logStats       bool
	outputDir      string
	seed           int64
	maxTicks       int
	stepsPerUpdate int
}

func main() {
	var f runFlags
	flag.StringVar(&f.configPath, "config", "", "Path to a scenario YAML (empty = use defaults)")
	flag.BoolVar(&f.headless, "headless", false, "Run without graphics")
	flag.BoolVar(&f.logStats, "log-stats", false, "Output stats and events via slog")
	flag.StringVar(&f.outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.Int64Var(&f.seed, "seed", 0, "RNG seed for jitter (0 = use config)")
	flag.IntVar(&f.maxTicks, "max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flag.IntVar(&f.stepsPerUpdate, "steps-per-update", 0, "Ticks per rendered frame (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// run returns before exiting so its deferred closes flush output files.
	if err := run(f); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(f runFlags) error {
	if err := config.Init(f.configPath); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := config.Cfg()
	if f.stepsPerUpdate > 0 {
		cfg.Physics.StepsPerUpdate = f.stepsPerUpdate
	}

	opts := game.Options{
		Seed:     f.seed,
		LogStats: f.logStats,
	}

	if f.outputDir != "" {
		out, err := telemetry.NewOutputManager(f.outputDir)
		if err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		defer func() {
			if err := out.Close(); err != nil {
				slog.Warn("failed to close output files", "error", err)
			}
		}()
		if err := out.WriteConfig(cfg); err != nil {
			slog.Warn("failed to write config snapshot", "error", err)
		}
		slog.Info("writing output", "dir", out.Dir(), "run_id", out.RunID())
		opts.Output = out
	}

	if f.headless {
		return runHeadless(cfg, opts, f.maxTicks)
	}
	return runWindow(cfg, opts, f.maxTicks)
}

// runHeadless steps the arena at the fixed tick until max ticks or an
// interrupt, without touching raylib.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) error {
	arena, err := game.NewArena(cfg, opts)
	if err != nil {
		return fmt.Errorf("build arena: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting headless simulation",
		"agents", arena.AgentCount(),
		"stimuli", len(arena.Stimuli()),
		"max_ticks", maxTicks,
	)

	start := time.Now()
	for ctx.Err() == nil {
		arena.Step(cfg.Physics.DT)
		if maxTicks > 0 && int(arena.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", arena.Tick())
			break
		}
	}

	elapsed := time.Since(start)
	rate := float64(arena.Tick()) / max(elapsed.Seconds(), 1e-9)
	slog.Info("headless run finished",
		"ticks", humanize.Comma(int64(arena.Tick())),
		"sim_time", humanize.FormatFloat("#,###.##", arena.Time()),
		"wall_time", elapsed.Round(time.Millisecond).String(),
		"ticks_per_sec", humanize.SIWithDigits(rate, 1, ""),
	)
	return nil
}

func runWindow(cfg *config.Config, opts game.Options, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	var viewer *renderer.Viewer
	opts.StatsCallback = func(s telemetry.WindowStats) {
		if viewer != nil {
			viewer.OnStats(s)
		}
	}
	arena, err := game.NewArena(cfg, opts)
	if err != nil {
		return fmt.Errorf("build arena: %w", err)
	}
	viewer = renderer.NewViewer(arena, int32(cfg.Screen.Width), int32(cfg.Screen.Height))

	for !rl.WindowShouldClose() {
		viewer.Update()
		viewer.Draw()

		if maxTicks > 0 && int(arena.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}

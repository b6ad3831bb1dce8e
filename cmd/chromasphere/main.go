package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chromasphere/audio"
	"github.com/lixenwraith/chromasphere/camera"
	"github.com/lixenwraith/chromasphere/config"
	"github.com/lixenwraith/chromasphere/engine"
	"github.com/lixenwraith/chromasphere/export"
	"github.com/lixenwraith/chromasphere/interaction"
	"github.com/lixenwraith/chromasphere/parameter"
	"github.com/lixenwraith/chromasphere/render"
	"github.com/lixenwraith/chromasphere/scene"
	"github.com/lixenwraith/chromasphere/store"
	"github.com/lixenwraith/chromasphere/telemetry"
	"github.com/lixenwraith/chromasphere/transition"
)

var (
	configFlag    = flag.String("config", "", "TOML configuration file")
	debugFlag     = flag.Bool("debug", false, "Write debug log to logs/chromasphere.log")
	exportFlag    = flag.String("export", "", "Write the instance table to stdout and exit: yaml, json")
	countFlag     = flag.Int("count", -1, "Override instance count")
	colorModeFlag = flag.String("color", "", "Color mode: auto, truecolor, 256")
	metricsFlag   = flag.String("metrics", "", "Serve /metrics on this address, e.g. 127.0.0.1:9464")
	muteFlag      = flag.Bool("mute", false, "Disable audio cues")
	watchFlag     = flag.Bool("watch", true, "Reload transition timing when the config file changes")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)

	code := 0
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chromasphere: %v\n", err)
		code = 1
	}
	if logFile != nil {
		logFile.Close()
	}
	os.Exit(code)
}

// loadConfig reads the file if given, applies flag overrides, then validates
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *countFlag >= 0 {
		cfg.Count = *countFlag
	}
	if *colorModeFlag != "" {
		cfg.Render.ColorMode = *colorModeFlag
	}
	if *metricsFlag != "" {
		cfg.Telemetry.Listen = *metricsFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

// applyColorMode maps the configured mode onto tcell's environment switches
func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor":
		os.Setenv("COLORTERM", "truecolor")
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Build(cfg.Count, cfg.Radius, cfg.Palette, store.WithMeshRotation(cfg.Rotation()))
	if err != nil {
		return err
	}
	slog.Info("instances generated", "count", st.Len(), "radius", cfg.Radius)

	if *exportFlag != "" {
		return writeExport(st, cfg.Radius, *exportFlag)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := telemetry.New()
	if cfg.Telemetry.Listen != "" {
		if _, _, err := telemetry.Serve(ctx, cfg.Telemetry.Listen, metrics, slog.Default()); err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
	}

	player := audio.NewPlayer(cfg.Audio, audio.WithLogger(slog.Default()))
	if err := player.Initialize(); err != nil {
		slog.Warn("audio initialization failed, continuing without audio", "error", err)
	}
	defer player.Cleanup()

	applyColorMode(cfg.Render.ColorMode)
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	defer screen.Fini()

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCHROMASPHERE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	surface := render.NewSurface(screen, st, render.WithLogger(slog.Default()))
	tracker := interaction.NewTracker(st.Len(), surface)

	timing := cfg.Timing()
	ctrl := transition.New(st, tracker, nil, timing, transition.WithLogger(slog.Default()))
	ctrl.OnPhaseChange(metrics.PhaseChanged)
	ctrl.OnPhaseChange(player.PhaseChanged)
	ctrl.OnReject(metrics.Rejected)
	ctrl.OnPhaseChange(func(from, to transition.Phase, token transition.Token) {
		slog.Debug("phase changed", "from", from, "to", to, "token", token)
	})

	handles := &scene.Handles{
		Camera:   camera.New(timing.Home, parameter.CameraFOV, parameter.CameraNear),
		Mesh:     scene.NewMesh(st.Rotation()),
		Crowd:    scene.NewCrowdMaterial(),
		Focus:    scene.NewFocusMaterial(),
		Controls: camera.NewControls(timing.Home.LookAt),
		Options:  &scene.Panel{},
	}

	runner := engine.NewRunner(tracker, ctrl, handles, surface,
		engine.WithInterval(cfg.FrameInterval()),
		engine.WithFrameObserver(metrics.ObserveFrame),
		engine.WithLogger(slog.Default()),
	)

	metrics.RegisterDropped(runner.Dropped)

	if *configFlag != "" && *watchFlag {
		err := config.Watch(ctx, *configFlag, func(c *config.Config) {
			runner.Push(c.ReloadEvent())
		}, config.WithWatchLogger(slog.Default()))
		if err != nil {
			slog.Warn("config watch unavailable", "error", err)
		}
	}

	input := render.NewInput(surface, runner)
	go func() {
		// Panic recovery for input polling goroutine to ensure terminal cleanup
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		input.Run(screen)
		stop()
	}()

	err = runner.Run(ctx)
	slog.Info("frame loop stopped", "frames", runner.Frames(), "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func writeExport(st *store.Store, radius float64, format string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	table, err := export.Build(st, radius)
	if err != nil {
		return err
	}
	return export.Write(os.Stdout, table, f)
}

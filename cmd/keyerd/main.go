// keyerd - chord keyboard engine on a desktop keyboard
//
// keyerd runs the chord input engine against an ordinary Linux
// keyboard, so a layout can be practiced (or simply used) without the
// hand-held hardware: ten host keys stand in for the ten buttons, and
// the recognized chords are typed back through a virtual keyboard.
//
//	keyerd run        Run the engine on the configured input device
//	keyerd devices    List candidate input devices
//	keyerd layout     Dump the active chord table
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"keyer/internal/action"
	"keyer/internal/battery"
	"keyer/internal/chord"
	"keyer/internal/clock"
	"keyer/internal/config"
	"keyer/internal/engine"
	"keyer/internal/gpio"
	"keyer/internal/layout"
	"keyer/internal/logging"
)

// eventSource feeds button edges from a host input device.
type eventSource interface {
	Feed(ctx context.Context, e *engine.Engine, clk clock.Clock)
	Path() string
	Close() error
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		cmdRun(os.Args[2:])
	case "devices":
		cmdDevices()
	case "layout":
		cmdLayout()
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`keyerd - chord keyboard engine

USAGE:
    keyerd <command> [options]

COMMANDS:
    run         Run the engine on the configured input device
    devices     List candidate input devices
    layout      Dump the active chord table
    help        Show this help message

Ten keys of the host keyboard act as the ten chord buttons (see
input.keys in the config file, button order THUMB_0..RING_9). Chords
resolve through the same debouncer and gesture recognizer as the
hand-held firmware and are emitted through a virtual keyboard.`)
}

func cmdRun(args []string) {
	flags := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := flags.StringP("config", "c", config.ConfigPath(), "config file location")
	device := flags.String("device", "", "input device path (overrides config)")
	dryRun := flags.Bool("dry-run", false, "log output keys instead of typing them")
	flags.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *device != "" {
		cfg.Input.Device = *device
	}

	log, closeLog, err := logging.Setup(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Output:    cfg.Logging.Output,
		Component: "keyerd",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	sink, closeSink, err := newSink(*dryRun, log)
	if err != nil {
		log.Error("virtual keyboard unavailable", "error", err)
		os.Exit(1)
	}
	defer closeSink()

	layer, arps := layout.Default()
	sched := clock.NewSystem()
	pins := &gpio.SimBank{}

	e := engine.New(engine.Config{
		DebounceWindow:     time.Duration(cfg.Engine.DebounceMicros) * time.Microsecond,
		ArpeggioMinSpacing: time.Duration(cfg.Engine.ArpeggioMinSpacingMs) * time.Millisecond,
		ArpeggioMaxHold:    time.Duration(cfg.Engine.ArpeggioMaxHoldMs) * time.Millisecond,
		ChordAutostart:     cfg.Engine.AutostartDelay(),
		QueueCapacity:      cfg.Engine.QueueCapacity,
		PasskeyTimeout:     time.Duration(cfg.Engine.PasskeyTimeoutSec) * time.Second,
	}, sched, pins, sink, layer, arps, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(cfg.Input, pins, log)
	if err != nil {
		log.Error("input device unavailable", "error", err)
		os.Exit(1)
	}
	defer src.Close()
	go src.Feed(ctx, e, sched)

	if cfg.Battery.IntervalSec > 0 {
		if sample := hostBatterySampler(); sample != nil {
			mon := battery.NewMonitor(sched, sample, sink, log)
			mon.Start(time.Duration(cfg.Battery.IntervalSec) * time.Second)
			defer mon.Stop()
		} else {
			log.Debug("no host battery, reporting disabled")
		}
	}

	log.Info("engine running", "device", src.Path())
	if err := e.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("engine stopped", "error", err)
		os.Exit(1)
	}
	log.Info("shutting down", "dropped_edges", e.Dropped())
}

func cmdLayout() {
	layer, _ := layout.Default()
	count := 0
	layer.Walk(func(c chord.Chord, a *action.Action) {
		fmt.Printf("%s -> %s\n", c, a)
		count++
	})
	fmt.Printf("\n%d chords bound\n", count)
}

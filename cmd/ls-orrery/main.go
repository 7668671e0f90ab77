// Command ls-orrery is an animated 3D solar system orrery for the terminal,
// with a headless summary mode and a WebSocket frame stream.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/report"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/stream"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

const (
	defaultTicks    = 600
	shutdownTimeout = 5 * time.Second
	eventLimit      = 10
)

// options holds the parsed command line.
type options struct {
	configPath   string
	summary      bool
	events       bool
	snapshotPath string
	ticks        int
	focus        string
	showVersion  bool
	cfg          config.Config
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, so tests can drive it.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "ls-orrery v%s\n", version.Version)
		return 0
	}

	cfg := opts.cfg
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	logger.SetOutput(stderr)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	cat := catalog.Default()
	engineOpts := []sim.Option{sim.WithSettings(cfg.Speed, cfg.Scale, sim.ParseTheme(cfg.Theme))}
	engine := sim.New(cat, engineOpts...)

	stateCfg := state.DefaultConfig()
	stateCfg.FrameInterval = time.Second / time.Duration(cfg.FPS)
	store := state.NewManager(stateCfg)

	if opts.focus != "" {
		if err := engine.Apply(sim.FocusOn(catalog.ParseID(opts.focus))); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Headless mode: no TUI
	if opts.summary || opts.events || opts.snapshotPath != "" {
		if err := runHeadless(engine, store, opts, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if cfg.Serve.Addr != "" {
		if err := runServe(ctx, engine, store, cfg, logger); err != nil {
			logger.Error("serve: %v", err)
			return 1
		}
		return 0
	}
	if cfg.Metrics.Addr != "" {
		logger.Warn("metrics address ignored without --serve")
	}

	if f, ok := stdout.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(stderr, "Error: stdout is not a terminal; use --summary or --serve")
		return 1
	}

	// The TUI owns the screen; only a log file may receive output.
	if cfg.LogFile == "" {
		logger.SetOutput(io.Discard)
	}

	// Create Bubble Tea program
	model := ui.New(engine, store, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(stderr, "Error running TUI: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("ls-orrery", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "Config file (json, yaml or toml)")
	fs.BoolVar(&opts.summary, "summary", false, "Print a text summary instead of the TUI")
	fs.BoolVar(&opts.events, "events", false, "Print the event log after a headless run")
	fs.StringVar(&opts.snapshotPath, "snapshot-path", "", "Export a JSON snapshot to file (use - for stdout)")
	fs.IntVar(&opts.ticks, "ticks", defaultTicks, "Ticks to simulate in headless mode")
	fs.StringVar(&opts.focus, "focus", "", "Body to focus on at start (e.g. mars, earth.moon)")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	speed := fs.Float64("speed", config.DefaultSpeed, "Global speed multiplier")
	scale := fs.Float64("scale", config.DefaultScale, "Planet size multiplier")
	theme := fs.String("theme", "dark", "Colour theme (dark, light)")
	fps := fs.Int("fps", config.DefaultFPS, "Frames per second")
	logLevel := fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "Write logs to this file")
	serveAddr := fs.String("serve", "", "Serve the WebSocket frame stream on this address (e.g. :8080)")
	metricsAddr := fs.String("metrics", "", "Expose Prometheus metrics on this address (with --serve)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return options{}, err
	}

	// Flags set on the command line win over the file and environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "speed":
			cfg.Speed = *speed
		case "scale":
			cfg.Scale = *scale
		case "theme":
			cfg.Theme = *theme
		case "fps":
			cfg.FPS = *fps
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		case "serve":
			cfg.Serve.Addr = *serveAddr
		case "metrics":
			cfg.Metrics.Addr = *metricsAddr
		}
	})
	cfg.Normalize()
	opts.cfg = cfg

	if opts.ticks < 0 {
		opts.ticks = 0
	}
	return opts, nil
}

// runHeadless simulates a fixed number of ticks at the configured frame rate
// and prints what was asked for.
func runHeadless(engine *sim.Engine, store *state.Manager, opts options, stdout io.Writer) error {
	dt := store.FrameInterval()
	frame := engine.Frame()
	for i := 0; i < opts.ticks; i++ {
		start := time.Now()
		frame = engine.Tick(dt)
		store.Update(frame, time.Since(start), nil)
		store.Record(engine.Drain()...)
	}
	store.Record(engine.Drain()...)
	snap := store.Snapshot()

	// Export JSON if requested
	if opts.snapshotPath != "" {
		export := report.ExportSnapshot(frame, engine.Catalog(), snap.Events, time.Now())
		if opts.snapshotPath == "-" {
			if err := export.WriteJSON(stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(opts.snapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	// Print summary table if requested
	if opts.summary {
		report.WriteSummaryTable(stdout, frame, engine.Catalog())
	}

	// Events log
	if opts.events {
		if opts.summary {
			fmt.Fprintln(stdout)
		}
		report.WriteEvents(stdout, snap.Events, eventLimit)
	}
	return nil
}

// runServe drives the engine from the stream loop and serves it, plus
// metrics when configured, until ctx is cancelled.
func runServe(ctx context.Context, engine *sim.Engine, store *state.Manager, cfg config.Config, logger *logging.Logger) error {
	var collector *metrics.Collector
	if cfg.Metrics.Addr != "" {
		collector = metrics.NewCollector()
	}

	srv := stream.NewServer(engine, stream.Options{
		Interval:     store.FrameInterval(),
		CommandRate:  cfg.Stream.CommandRate,
		CommandBurst: cfg.Stream.CommandBurst,
		Store:        store,
		Metrics:      collector,
		Logger:       logger,
	})

	servers := []*http.Server{{
		Addr:              cfg.Serve.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}}
	if collector != nil {
		servers = append(servers, collector.NewServer(cfg.Metrics.Addr))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	for _, hs := range servers {
		hs := hs
		g.Go(func() error {
			logger.Info("listening on %s", hs.Addr)
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", hs.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, hs := range servers {
			if err := hs.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown %s: %v", hs.Addr, err)
			}
		}
		return nil
	})

	return g.Wait()
}

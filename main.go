package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"d3console/internal/api"
	"d3console/internal/config"
	"d3console/internal/console"
	"d3console/internal/console/database"
	"d3console/internal/log"
	"d3console/internal/metrics"
	"d3console/internal/theme"
	"d3console/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const shutdownWait = 2 * time.Second

func main() {
	// Set up global panic handler first
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "d3console crashed. See the log file for details.\n")
			os.Exit(1)
		}
	}()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "d3console: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "d3console.yaml", "path to the YAML config file")
	host := flag.String("host", "", "server host (overrides the config file)")
	port := flag.Int("port", 0, "server remote console port (overrides the config file)")
	password := flag.String("password", "", "remote console password (overrides the config file)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("d3console %s (%s, %s)\n", version, commit, date)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *password != "" {
		cfg.Server.Password = *password
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Log.File != "" {
		if err := log.SetFileOutput(cfg.Log.File); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not log to %s: %v\n", cfg.Log.File, err)
		}
	}
	defer log.Close()
	if cfg.Log.Level != "" {
		if err := log.SetLevel(cfg.Log.Level); err != nil {
			return err
		}
	}
	log.SetCaptureFile(cfg.Log.RawCapture)
	if err := theme.GetThemeManager().SetTheme(cfg.UI.Theme); err != nil {
		return err
	}
	log.Info("Starting d3console", "version", version, "address", cfg.Server.Address())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := metrics.New()
	c, err := console.New(cfg.Server, console.WithObserver(m))
	if err != nil {
		return err
	}
	c.SubscribeAll(m.Observe)

	// history stays a nil interface when the journal is off
	var history api.HistoryAPI
	if cfg.Journal.Driver != "" {
		j, err := database.Open(ctx, cfg.Journal.Driver, cfg.Journal.DSN)
		if err != nil {
			return err
		}
		defer j.Close()
		// the final close event is recorded after ctx is cancelled
		c.SubscribeAll(j.Handler(context.WithoutCancel(ctx)))
		history = j
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			app := tui.NewApplication(gctx, c, history)
			if err := app.SetShortcuts(cfg.UI.Shortcuts); err != nil {
				return err
			}
			return app.Run()
		}
		return tui.NewLineUI(gctx, c, history, os.Stdout).Run(os.Stdin)
	})

	if cfg.Metrics.Listen != "" {
		g.Go(func() error {
			return m.Serve(gctx, cfg.Metrics.Listen)
		})
	}

	err = g.Wait()
	shutdown(c)
	return err
}

// shutdown closes a connection left open and waits briefly for its reader
// so the close event reaches the journal.
func shutdown(c *console.Console) {
	if c.IsConnected() {
		if err := c.Close(); err != nil {
			log.Warn("Close on shutdown failed", "error", err)
		}
	}
	select {
	case <-c.Done():
	case <-time.After(shutdownWait):
		log.Warn("Connection reader did not stop in time")
	}
}

// ottotimer — a countdown timer for the terminal.
//
// Usage:
//
//	ottotimer [-config file] [-verbose] [-quiet] [-log-file path] [-headless]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/hammamikhairi/ottotimer/internal/config"
	"github.com/hammamikhairi/ottotimer/internal/display"
	"github.com/hammamikhairi/ottotimer/internal/headless"
	"github.com/hammamikhairi/ottotimer/internal/logger"
	"github.com/hammamikhairi/ottotimer/internal/timer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ottotimer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file (default $"+config.EnvConfigFile+")")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	forceHeadless := flag.Bool("headless", false, "print plain lines instead of drawing the UI")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *verbose {
		cfg.LogLevel = logger.LevelVerbose
	}
	if *quiet {
		cfg.LogLevel = logger.LevelOff
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	// Direct logs to a file by default so the UI stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		dir := filepath.Dir(cfg.LogFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(cfg.LogLevel, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := !*forceHeadless && term.IsTerminal(os.Stdout.Fd())
	log.Info("ottotimer starting (default=%ds, interactive=%v)", cfg.DefaultSeconds, interactive)

	if !interactive {
		runner := headless.NewRunner(log, headless.NewPrinter(log, os.Stdout))
		w := timer.New(log,
			timer.WithDefaultSeconds(cfg.DefaultSeconds),
			timer.WithOnChange(runner.Notify),
		)
		defer w.Close()

		err := runner.Run(ctx, w, os.Stdin)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	ui := display.NewUI(log, display.WithAltScreen(cfg.AltScreen))
	w := timer.New(log,
		timer.WithDefaultSeconds(cfg.DefaultSeconds),
		timer.WithOnChange(ui.Notify),
	)
	defer w.Close()

	if err := ui.Run(ctx, w); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running display: %w", err)
	}
	log.Info("ottotimer exiting at %s", w.State())
	return nil
}

package headless

import (
	"bufio"
	"context"
	"io"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// Runner starts a countdown and echoes every change until it runs out,
// the input says quit, or the context ends.
type Runner struct {
	log     *logger.Logger
	printer *Printer
	parser  *KeywordParser
	done    chan struct{}
}

// NewRunner creates a runner. Pass [Runner.Notify] to the timer as its
// change callback.
func NewRunner(log *logger.Logger, printer *Printer) *Runner {
	return &Runner{
		log:     log,
		printer: printer,
		parser:  NewKeywordParser(log),
		done:    make(chan struct{}, 1),
	}
}

// Notify prints s and ends the run once nothing is left on the clock.
func (r *Runner) Notify(s domain.TimerState) {
	r.printer.Print(s)
	if s.Expired() {
		select {
		case r.done <- struct{}{}:
		default:
		}
	}
}

// Run prints the initial state, starts ctrl and processes commands from
// in, which may be nil. Returns nil when the countdown reaches zero, a
// quit command arrives, or in is exhausted while the timer is paused, and
// ctx.Err() when ctx ends first.
func (r *Runner) Run(ctx context.Context, ctrl domain.Controller, in io.Reader) error {
	r.printer.Print(ctrl.State())
	ctrl.Start()
	if ctrl.State().Expired() {
		return nil
	}

	// The reader goroutine lives only as long as this call.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lines <-chan string
	if in != nil {
		lines = r.readLines(ctx, in)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.done:
			r.log.Info("headless: countdown finished")
			return nil
		case line, ok := <-lines:
			if !ok {
				// Input is gone; a paused timer can never be resumed.
				if !ctrl.State().IsRunning {
					r.log.Info("headless: input closed with the timer paused")
					return nil
				}
				lines = nil
				continue
			}
			cmd := r.parser.Parse(line)
			switch {
			case cmd.Quit:
				return nil
			case cmd.Status:
				r.printer.Print(ctrl.State())
			case cmd.Action != domain.ActionNone:
				if !cmd.Action.Enabled(ctrl.State()) {
					r.printer.Hint("%s is unavailable at %s", cmd.Action.Label(), ctrl.State().Display())
					continue
				}
				domain.Do(ctrl, cmd.Action)
			case cmd.Raw != "":
				r.printer.Hint("unknown command %q (start, pause, stop, reset, +1, +5, status, quit)", cmd.Raw)
			}
		}
	}
}

// readLines streams lines from in until EOF or ctx ends.
func (r *Runner) readLines(ctx context.Context, in io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			r.log.Debug("headless: reading input: %v", err)
		}
	}()
	return out
}

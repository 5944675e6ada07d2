// Package timer runs a single countdown: it owns the timer state and the
// one-second tick loop that drains it.
package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// Compile-time interface check.
var _ domain.Controller = (*Widget)(nil)

// Option configures the widget.
type Option func(*Widget)

// WithTickInterval sets how long one tick lasts. Production code keeps the
// one-second default; tests shorten it.
func WithTickInterval(d time.Duration) Option {
	return func(w *Widget) {
		if d > 0 {
			w.tickInterval = d
		}
	}
}

// WithDefaultSeconds sets the value the widget starts at and Reset restores.
func WithDefaultSeconds(n int) Option {
	return func(w *Widget) {
		if n > 0 {
			w.defaultSeconds = n
		}
	}
}

// WithOnChange registers a callback that receives a snapshot after every
// state change. Callbacks run outside the widget lock, one at a time and in
// change order; they must not block or call back into the widget.
func WithOnChange(fn func(domain.TimerState)) Option {
	return func(w *Widget) {
		if fn != nil {
			w.onChange = append(w.onChange, fn)
		}
	}
}

// Widget owns one countdown and at most one tick loop.
//
// The loop is cancelled whenever the timer stops being runnable (pause,
// stop, reset, expiry) and a fresh one is spawned on the next start. Each
// loop carries the generation it was spawned with; a tick whose
// generation is no longer current is dropped.
type Widget struct {
	log            *logger.Logger
	tickInterval   time.Duration
	defaultSeconds int
	onChange       []func(domain.TimerState)

	mu     sync.Mutex
	state  domain.TimerState
	gen    uint64
	cancel context.CancelFunc
	closed bool
	seq    uint64 // bumped on every change, under mu

	notifyMu  sync.Mutex
	delivered uint64 // seq of the last snapshot handed to subscribers

	loops atomic.Int32 // live tick goroutines
}

// New creates a paused widget at the default value.
func New(log *logger.Logger, opts ...Option) *Widget {
	w := &Widget{
		log:            log,
		tickInterval:   1 * time.Second,
		defaultSeconds: domain.DefaultSeconds,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.state = domain.NewTimerState(w.defaultSeconds)
	return w
}

// State returns a snapshot of the countdown.
func (w *Widget) State() domain.TimerState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start begins counting down. Ignored at zero or when already running.
func (w *Widget) Start() {
	w.apply("start", domain.TimerState.Start)
}

// Pause halts the countdown, keeping the remaining time.
func (w *Widget) Pause() {
	w.apply("pause", domain.TimerState.Pause)
}

// Stop halts the countdown and zeroes it.
func (w *Widget) Stop() {
	w.apply("stop", domain.TimerState.Stop)
}

// Reset restores the default value, paused.
func (w *Widget) Reset() {
	w.apply("reset", func(domain.TimerState) domain.TimerState {
		return domain.NewTimerState(w.defaultSeconds)
	})
}

// AddMinutes extends the countdown by n minutes. The running flag is left
// alone, so adding time to an expired timer needs a fresh Start.
func (w *Widget) AddMinutes(n int) {
	w.apply("add", func(s domain.TimerState) domain.TimerState {
		return s.AddMinutes(n)
	})
}

// Close cancels the tick loop. Later calls to any operation are ignored.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	w.cancelLoop()
	w.log.Debug("timer widget closed at %s", w.state.Display())
}

// apply runs one user transition and keeps the tick loop in step with it.
func (w *Widget) apply(op string, fn func(domain.TimerState) domain.TimerState) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}

	prev := w.state
	w.state = fn(prev)
	w.schedule()
	next := w.state
	if next == prev {
		w.mu.Unlock()
		w.log.Debug("%s: no change (%s)", op, next)
		return
	}
	w.seq++
	seq := w.seq
	w.mu.Unlock()

	w.log.Debug("%s: %s -> %s", op, prev, next)
	w.notify(seq, next)
}

// schedule starts or cancels the tick loop to match the current state.
// Caller must hold mu.
func (w *Widget) schedule() {
	want := w.state.IsRunning && w.state.TotalSeconds > 0
	have := w.cancel != nil

	switch {
	case want && !have:
		w.gen++
		ctx, cancel := context.WithCancel(context.Background())
		w.cancel = cancel
		w.loops.Add(1)
		go w.loop(ctx, w.gen)
	case !want && have:
		w.cancelLoop()
	}
}

// cancelLoop tears down the current loop, if any. Caller must hold mu.
func (w *Widget) cancelLoop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.cancel = nil
	w.gen++
}

// loop is the tick loop for one generation.
func (w *Widget) loop(ctx context.Context, gen uint64) {
	defer w.loops.Add(-1)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !w.tick(gen) {
				return
			}
		}
	}
}

// tick applies one second of countdown if gen is still current. Returns
// false when the loop should exit.
func (w *Widget) tick(gen uint64) bool {
	w.mu.Lock()
	if w.closed || gen != w.gen {
		w.mu.Unlock()
		return false
	}

	w.state = w.state.Tick()
	next := w.state
	alive := next.IsRunning && next.TotalSeconds > 0
	if !alive {
		w.cancelLoop()
	}
	w.seq++
	seq := w.seq
	w.mu.Unlock()

	if next.Expired() {
		w.log.Info("timer expired")
	}
	w.notify(seq, next)
	return alive
}

// notify hands snapshot seq to the subscribers. Deliveries are serialized,
// and a snapshot older than one already delivered is dropped, so the last
// snapshot a subscriber sees is always the latest state.
func (w *Widget) notify(seq uint64, s domain.TimerState) {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	if seq <= w.delivered {
		w.log.Debug("dropping stale snapshot %d (%s)", seq, s)
		return
	}
	w.delivered = seq
	for _, fn := range w.onChange {
		fn(s)
	}
}

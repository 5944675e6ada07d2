package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// recorder collects state snapshots for testing.
type recorder struct {
	mu     sync.Mutex
	states []domain.TimerState
}

func (r *recorder) record(s domain.TimerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) last() (domain.TimerState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return domain.TimerState{}, false
	}
	return r.states[len(r.states)-1], true
}

// newManualWidget returns a widget whose real ticker never fires during a
// test, so ticks are driven by hand through advance.
func newManualWidget(t *testing.T, opts ...Option) *Widget {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	opts = append([]Option{WithTickInterval(time.Hour)}, opts...)
	w := New(log, opts...)
	t.Cleanup(w.Close)
	return w
}

func currentGen(w *Widget) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gen
}

func advance(w *Widget, n int) {
	for i := 0; i < n; i++ {
		w.tick(currentGen(w))
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestNewWidgetDefaults(t *testing.T) {
	w := newManualWidget(t)
	if got := w.State(); got != domain.DefaultTimerState() {
		t.Fatalf("expected default state, got %+v", got)
	}
	if w.loops.Load() != 0 {
		t.Fatal("expected no tick loop before start")
	}
}

func TestWidgetRunsToExpiry(t *testing.T) {
	w := newManualWidget(t)
	w.Start()
	advance(w, 300)

	s := w.State()
	if s.TotalSeconds != 0 || s.IsRunning {
		t.Fatalf("expected expired stopped timer, got %+v", s)
	}
	waitFor(t, "tick loop exit", func() bool { return w.loops.Load() == 0 })
}

func TestWidgetScenario(t *testing.T) {
	w := newManualWidget(t)
	w.Start()
	advance(w, 65)

	s := w.State()
	if s.TotalSeconds != 235 || s.Display() != "03:55" || s.Class() != "timer-time" {
		t.Fatalf("unexpected state after 65 ticks: %+v (%s)", s, s.Class())
	}

	advance(w, 175)
	if s = w.State(); s.TotalSeconds != 60 || s.Class() != "timer-time warning" {
		t.Fatalf("expected warning at 60s, got %+v (%s)", s, s.Class())
	}

	advance(w, 60)
	s = w.State()
	if s.IsRunning || s.Class() != "timer-time danger" || domain.ActionStart.Enabled(s) {
		t.Fatalf("expected expired danger state, got %+v (%s)", s, s.Class())
	}

	// Start at zero is ignored and spawns nothing.
	w.Start()
	if w.State().IsRunning {
		t.Fatal("start at zero should be a no-op")
	}
}

func TestWidgetPausePreservesTime(t *testing.T) {
	w := newManualWidget(t)
	w.Start()
	advance(w, 7)
	w.Pause()

	before := w.State()
	if before.TotalSeconds != 293 || before.IsRunning {
		t.Fatalf("unexpected paused state %+v", before)
	}

	advance(w, 5)
	if after := w.State(); after != before {
		t.Fatalf("paused widget changed: %+v -> %+v", before, after)
	}

	w.Start()
	advance(w, 1)
	if got := w.State().TotalSeconds; got != 292 {
		t.Fatalf("expected 292 after resume, got %d", got)
	}
}

func TestWidgetDropsStaleTicks(t *testing.T) {
	w := newManualWidget(t)
	w.Start()
	stale := currentGen(w)
	w.Pause()
	w.Start()

	if currentGen(w) == stale {
		t.Fatal("expected a new generation after restart")
	}
	if w.tick(stale) {
		t.Fatal("stale tick should stop its loop")
	}
	if got := w.State().TotalSeconds; got != 300 {
		t.Fatalf("stale tick mutated state: %d", got)
	}
}

func TestWidgetSingleLoop(t *testing.T) {
	w := newManualWidget(t)
	w.Start()
	w.Start()
	w.AddMinutes(1)
	w.Start()

	if got := w.loops.Load(); got != 1 {
		t.Fatalf("expected 1 tick loop, got %d", got)
	}

	w.Pause()
	w.Start()
	w.Stop()
	waitFor(t, "all loops to exit", func() bool { return w.loops.Load() == 0 })
}

func TestWidgetStopAndReset(t *testing.T) {
	w := newManualWidget(t)
	w.Start()
	advance(w, 30)
	w.Stop()
	if got := w.State(); got != (domain.TimerState{}) {
		t.Fatalf("stop: expected zero state, got %+v", got)
	}

	w.Start()
	advance(w, 3)
	w.Reset()
	if got := w.State(); got != domain.DefaultTimerState() {
		t.Fatalf("reset: expected default, got %+v", got)
	}
}

func TestWidgetResetUsesConfiguredDefault(t *testing.T) {
	w := newManualWidget(t, WithDefaultSeconds(90))
	if got := w.State().TotalSeconds; got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}
	w.Stop()
	w.Reset()
	if got := w.State(); got.TotalSeconds != 90 || got.Display() != "01:30" {
		t.Fatalf("expected 01:30, got %+v", got)
	}
}

func TestWidgetAddTimeAfterExpiry(t *testing.T) {
	w := newManualWidget(t)
	w.Stop()
	w.AddMinutes(1)
	w.AddMinutes(5)

	s := w.State()
	if s.TotalSeconds != 360 || s.IsRunning {
		t.Fatalf("expected 360 paused, got %+v", s)
	}
	if w.loops.Load() != 0 {
		t.Fatal("adding time must not start the countdown")
	}
}

func TestWidgetNotifiesChanges(t *testing.T) {
	rec := &recorder{}
	w := newManualWidget(t, WithOnChange(rec.record))

	w.Start()
	w.Start() // no change, no notification
	advance(w, 2)
	w.Pause()

	rec.mu.Lock()
	n := len(rec.states)
	rec.mu.Unlock()
	if n != 4 {
		t.Fatalf("expected 4 notifications, got %d", n)
	}
	last, _ := rec.last()
	if last.TotalSeconds != 298 || last.IsRunning {
		t.Fatalf("unexpected last snapshot %+v", last)
	}
}

func TestWidgetClose(t *testing.T) {
	w := newManualWidget(t)
	w.Start()
	w.Close()
	w.Close()

	waitFor(t, "loop exit after close", func() bool { return w.loops.Load() == 0 })

	w.Reset()
	if !w.State().IsRunning {
		t.Fatal("operations after close should be ignored")
	}
}

func TestWidgetRealTimeExpiry(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	rec := &recorder{}
	w := New(log,
		WithTickInterval(5*time.Millisecond),
		WithDefaultSeconds(3),
		WithOnChange(rec.record),
	)
	defer w.Close()

	w.Start()
	waitFor(t, "expiry", func() bool {
		last, ok := rec.last()
		return ok && last.Expired()
	})

	if s := w.State(); s.IsRunning || s.TotalSeconds != 0 {
		t.Fatalf("expected expired widget, got %+v", s)
	}
	waitFor(t, "loop exit", func() bool { return w.loops.Load() == 0 })

	// A fresh start from a nonzero value counts down again.
	w.AddMinutes(1)
	w.Start()
	waitFor(t, "restart tick", func() bool { return w.State().TotalSeconds < 60 })
	w.Pause()
}

func TestWidgetDeliversLatestSnapshotLast(t *testing.T) {
	slowed := make(chan struct{})
	slow := func(s domain.TimerState) {
		if s.IsRunning && s.TotalSeconds == 299 {
			close(slowed)
			time.Sleep(50 * time.Millisecond)
		}
	}
	rec := &recorder{}
	w := newManualWidget(t, WithOnChange(slow), WithOnChange(rec.record))
	w.Start()

	ticked := make(chan struct{})
	go func() {
		defer close(ticked)
		w.tick(currentGen(w))
	}()

	// Stop while the tick snapshot is still being delivered.
	<-slowed
	w.Stop()
	<-ticked

	last, ok := rec.last()
	if !ok {
		t.Fatal("expected notifications")
	}
	if last != w.State() {
		t.Fatalf("last notified %s, state is %s", last, w.State())
	}
	if last != (domain.TimerState{}) {
		t.Fatalf("expected stopped snapshot last, got %+v", last)
	}
}

func TestWidgetResetFromAnyState(t *testing.T) {
	setups := map[string]func(*Widget){
		"default": func(*Widget) {},
		"running": func(w *Widget) { w.Start(); advance(w, 5) },
		"expired": func(w *Widget) { w.Stop() },
		"large":   func(w *Widget) { w.AddMinutes(120); w.Start() },
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			w := newManualWidget(t, WithDefaultSeconds(150))
			setup(w)
			w.Reset()

			want := domain.NewTimerState(150)
			if got := w.State(); got != want {
				t.Fatalf("expected %+v, got %+v", want, got)
			}
			waitFor(t, "loop exit after reset", func() bool { return w.loops.Load() == 0 })
		})
	}
}

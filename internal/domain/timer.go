// Package domain defines the countdown state and the pure transitions
// applied to it. All other packages depend on domain; domain depends on nothing.
package domain

import "fmt"

// DefaultSeconds is the countdown value a fresh or reset timer starts at.
const DefaultSeconds = 300

// WarningSeconds is the remaining time at or below which the display
// switches to the warning style.
const WarningSeconds = 60

// TimerState is a snapshot of a countdown. Minutes and Seconds are derived
// from TotalSeconds and always agree with it.
type TimerState struct {
	Minutes      int
	Seconds      int
	TotalSeconds int
	IsRunning    bool
}

// NewTimerState returns a stopped timer holding total seconds.
// Negative values are clamped to zero.
func NewTimerState(total int) TimerState {
	return TimerState{}.withTotal(total)
}

// DefaultTimerState returns the 5:00 paused state.
func DefaultTimerState() TimerState {
	return NewTimerState(DefaultSeconds)
}

func (t TimerState) withTotal(total int) TimerState {
	if total < 0 {
		total = 0
	}
	t.TotalSeconds = total
	t.Minutes = total / 60
	t.Seconds = total % 60
	return t
}

// CanStart reports whether Start would have any effect.
func (t TimerState) CanStart() bool {
	return !t.IsRunning && t.TotalSeconds > 0
}

// Start marks the timer running. An expired timer stays put.
func (t TimerState) Start() TimerState {
	if t.TotalSeconds > 0 {
		t.IsRunning = true
	}
	return t
}

// Pause halts the countdown and keeps the remaining time.
func (t TimerState) Pause() TimerState {
	t.IsRunning = false
	return t
}

// Stop halts the countdown and zeroes it. Unlike Reset it does not
// restore the default.
func (t TimerState) Stop() TimerState {
	t.IsRunning = false
	return t.withTotal(0)
}

// AddMinutes extends the countdown by n minutes without touching the
// running flag, so an expired timer is re-armed but not resumed.
func (t TimerState) AddMinutes(n int) TimerState {
	return t.withTotal(t.TotalSeconds + n*60)
}

// Tick applies one second of countdown. It is a no-op unless the timer
// is running with time left. Reaching zero stops the timer.
func (t TimerState) Tick() TimerState {
	if !t.IsRunning || t.TotalSeconds <= 0 {
		return t
	}
	next := t.TotalSeconds - 1
	if next <= 0 {
		t.IsRunning = false
		return t.withTotal(0)
	}
	return t.withTotal(next)
}

// Expired reports whether the countdown has nothing left.
func (t TimerState) Expired() bool {
	return t.TotalSeconds == 0
}

// Display returns the remaining time as MM:SS.
func (t TimerState) Display() string {
	return fmt.Sprintf("%02d:%02d", t.Minutes, t.Seconds)
}

// Status returns the status label shown under the time.
func (t TimerState) Status() string {
	if t.IsRunning {
		return "Running"
	}
	return "Paused"
}

// Severity returns how close the countdown is to expiry.
func (t TimerState) Severity() Severity {
	switch {
	case t.TotalSeconds == 0:
		return SeverityDanger
	case t.TotalSeconds <= WarningSeconds:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// Class returns the style class for the time display.
func (t TimerState) Class() string {
	return t.Severity().Class()
}

// String implements fmt.Stringer.
func (t TimerState) String() string {
	return t.Display() + " " + t.Status()
}

// Severity selects the cosmetic style of the time display.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityDanger
)

// String returns a human-readable severity.
func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityWarning:
		return "warning"
	case SeverityDanger:
		return "danger"
	default:
		return "unknown"
	}
}

// Class returns the display class name for the severity.
func (s Severity) Class() string {
	switch s {
	case SeverityWarning:
		return "timer-time warning"
	case SeverityDanger:
		return "timer-time danger"
	default:
		return "timer-time"
	}
}

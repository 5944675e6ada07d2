package domain

// Controller drives a single countdown. The display talks to the timer
// only through this interface, so tests can substitute a recorder.
type Controller interface {
	Start()
	Pause()
	Stop()
	Reset()
	AddMinutes(n int)
	State() TimerState
}

// Do routes an action to the matching controller method.
func Do(c Controller, a Action) {
	switch a {
	case ActionStart:
		c.Start()
	case ActionPause:
		c.Pause()
	case ActionStop:
		c.Stop()
	case ActionReset:
		c.Reset()
	case ActionAddOne:
		c.AddMinutes(1)
	case ActionAddFive:
		c.AddMinutes(5)
	}
}

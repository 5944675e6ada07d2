package domain

// Action is a user operation on the timer.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionPause
	ActionStop
	ActionReset
	ActionAddOne  // +1 min
	ActionAddFive // +5 min
)

// String returns a human-readable action.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionPause:
		return "pause"
	case ActionStop:
		return "stop"
	case ActionReset:
		return "reset"
	case ActionAddOne:
		return "add_1"
	case ActionAddFive:
		return "add_5"
	default:
		return "none"
	}
}

// Label is the text printed on the action's button.
func (a Action) Label() string {
	switch a {
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionStop:
		return "Stop"
	case ActionReset:
		return "Reset"
	case ActionAddOne:
		return "+1 min"
	case ActionAddFive:
		return "+5 min"
	default:
		return ""
	}
}

// Enabled reports whether the action's control can be activated in state t.
// Start is the only guarded control.
func (a Action) Enabled(t TimerState) bool {
	switch a {
	case ActionNone:
		return false
	case ActionStart:
		return t.TotalSeconds > 0
	default:
		return true
	}
}

// actionNames maps snake_case names to Action values.
var actionNames = map[string]Action{
	"start": ActionStart,
	"pause": ActionPause,
	"stop":  ActionStop,
	"reset": ActionReset,
	"add_1": ActionAddOne,
	"add_5": ActionAddFive,
	"none":  ActionNone,
}

// ActionFromString converts a snake_case action name to an Action.
// Returns ActionNone for unrecognized names.
func ActionFromString(name string) Action {
	if a, ok := actionNames[name]; ok {
		return a
	}
	return ActionNone
}

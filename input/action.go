package input

import (
	"sort"

	"github.com/lixenwraith/toyball/vmath"
)

// Action is what a key does in the sandbox
type Action uint8

const (
	ActionNone Action = iota

	// System
	ActionQuit
	ActionPause
	ActionMute

	// Hand motion, applied to one side
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMoveForward
	ActionMoveBack

	// Buttons, toggled since terminals report no key release
	ActionToggleGrab
	ActionToggleSpawn
)

// KeyEntry binds a key to an action, hand actions carry their side
type KeyEntry struct {
	Action Action
	Side   Side
}

// IsHand reports whether the entry drives a hand
func (e KeyEntry) IsHand() bool {
	return e.Action >= ActionMoveLeft
}

// Direction is the unit motion of a move action, zero otherwise
// Forward is -Z, the way the palms face
func (e KeyEntry) Direction() vmath.Vec3 {
	switch e.Action {
	case ActionMoveLeft:
		return vmath.V3(-1, 0, 0)
	case ActionMoveRight:
		return vmath.V3(1, 0, 0)
	case ActionMoveUp:
		return vmath.V3(0, 1, 0)
	case ActionMoveDown:
		return vmath.V3(0, -1, 0)
	case ActionMoveForward:
		return vmath.V3(0, 0, -1)
	case ActionMoveBack:
		return vmath.V3(0, 0, 1)
	default:
		return vmath.Vec3{}
	}
}

// actionRegistry maps canonical action names to entries
// Used by the keymap loader to resolve config strings to bindings
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	reg := map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		"quit":  {Action: ActionQuit},
		"pause": {Action: ActionPause},
		"mute":  {Action: ActionMute},
	}

	hand := []struct {
		name   string
		action Action
	}{
		{"move_left", ActionMoveLeft},
		{"move_right", ActionMoveRight},
		{"move_up", ActionMoveUp},
		{"move_down", ActionMoveDown},
		{"move_forward", ActionMoveForward},
		{"move_back", ActionMoveBack},
		{"grab", ActionToggleGrab},
		{"spawn", ActionToggleSpawn},
	}
	for _, side := range Sides {
		prefix := "left_"
		if side == Right {
			prefix = "right_"
		}
		for _, h := range hand {
			reg[prefix+h.name] = KeyEntry{Action: h.action, Side: side}
		}
	}
	return reg
}

// ActionEntry resolves a canonical action name to its KeyEntry
// Returns zero KeyEntry and false if name is unknown
func ActionEntry(name string) (KeyEntry, bool) {
	entry, ok := actionRegistry[name]
	return entry, ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

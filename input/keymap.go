package input

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrInvalidKey    = errors.New("invalid key")
)

// Rune aliases for keys that are awkward as bare config keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// KeyMap binds runes to sandbox actions
type KeyMap map[rune]KeyEntry

// DefaultKeyMap returns the stock bindings
// Left hand on wasd/rf/e/c, right hand on ijkl/yh/u/n
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		'q': {Action: ActionQuit},
		'p': {Action: ActionPause},
		'm': {Action: ActionMute},
	}

	layout := []struct {
		side Side
		keys string // left right up down forward back grab spawn
	}{
		{Left, "adrfwsec"},
		{Right, "jlyhikun"},
	}
	actions := []Action{
		ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionMoveForward, ActionMoveBack, ActionToggleGrab, ActionToggleSpawn,
	}
	for _, l := range layout {
		for i, r := range l.keys {
			km[r] = KeyEntry{Action: actions[i], Side: l.side}
		}
	}
	return km
}

// Lookup returns the binding for r
func (km KeyMap) Lookup(r rune) (KeyEntry, bool) {
	e, ok := km[r]
	return e, ok
}

// Clone returns an independent copy
func (km KeyMap) Clone() KeyMap {
	out := make(KeyMap, len(km))
	for k, v := range km {
		out[k] = v
	}
	return out
}

// WithOverrides returns a copy of km with key to action-name overrides applied
// The "none" action unbinds a key
func (km KeyMap) WithOverrides(overrides map[string]string) (KeyMap, error) {
	out := km.Clone()
	for keyStr, name := range overrides {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyStr, err)
		}
		entry, err := resolveAction(name)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyStr, err)
		}

		if entry.Action == ActionNone {
			delete(out, r)
		} else {
			out[r] = entry
		}
	}
	return out, nil
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, fmt.Errorf("%w: %q (expected single character or alias)", ErrInvalidKey, s)
}

func resolveAction(name string) (KeyEntry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	entry, ok := ActionEntry(name)
	if !ok {
		return KeyEntry{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return entry, nil
}

package input

import (
	"errors"
	"testing"

	"github.com/lixenwraith/toyball/vmath"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key  rune
		want KeyEntry
	}{
		{'q', KeyEntry{Action: ActionQuit}},
		{'w', KeyEntry{Action: ActionMoveForward, Side: Left}},
		{'c', KeyEntry{Action: ActionToggleSpawn, Side: Left}},
		{'l', KeyEntry{Action: ActionMoveRight, Side: Right}},
		{'u', KeyEntry{Action: ActionToggleGrab, Side: Right}},
	}
	for _, tt := range tests {
		got, ok := km.Lookup(tt.key)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q) = %+v, %v, want %+v", tt.key, got, ok, tt.want)
		}
	}

	if _, ok := km.Lookup('z'); ok {
		t.Error("unbound key resolved")
	}
}

func TestKeyMapOverrides(t *testing.T) {
	base := DefaultKeyMap()
	km, err := base.WithOverrides(map[string]string{
		"z":     "Left_Spawn",
		"q":     "none",
		"space": "pause",
	})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}

	if e, _ := km.Lookup('z'); e != (KeyEntry{Action: ActionToggleSpawn, Side: Left}) {
		t.Errorf("z = %+v", e)
	}
	if _, ok := km.Lookup('q'); ok {
		t.Error("none should unbind q")
	}
	if e, _ := km.Lookup(' '); e.Action != ActionPause {
		t.Errorf("space = %+v", e)
	}
	if _, ok := base.Lookup('z'); ok {
		t.Error("overrides leaked into the base map")
	}
}

func TestKeyMapOverrideErrors(t *testing.T) {
	if _, err := DefaultKeyMap().WithOverrides(map[string]string{"x": "juggle"}); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action err = %v", err)
	}
	if _, err := DefaultKeyMap().WithOverrides(map[string]string{"ctrl": "quit"}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("invalid key err = %v", err)
	}
}

func TestKeyEntryDirection(t *testing.T) {
	if d := (KeyEntry{Action: ActionMoveForward}).Direction(); d != vmath.V3(0, 0, -1) {
		t.Errorf("forward = %v", d)
	}
	if d := (KeyEntry{Action: ActionToggleGrab}).Direction(); !d.IsZero() {
		t.Errorf("grab direction = %v, want zero", d)
	}
	if (KeyEntry{Action: ActionQuit}).IsHand() || !(KeyEntry{Action: ActionToggleSpawn}).IsHand() {
		t.Error("IsHand misclassified")
	}
}

func TestActionNamesSorted(t *testing.T) {
	names := ActionNames()
	if len(names) != 4+2*8 {
		t.Fatalf("len = %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted at %d: %v", i, names)
		}
	}
}

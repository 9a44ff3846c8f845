package config

import (
	"slices"
	"strings"
)

// Input actions.
const (
	ActionFocusNext = "focus_next"
	ActionFocusPrev = "focus_prev"
	ActionSelect    = "select"
	ActionQuit      = "quit"
)

// Actions lists every bindable action in help order.
var Actions = []string{ActionFocusNext, ActionFocusPrev, ActionSelect, ActionQuit}

// KeybindingsConfig maps an action to the keys that trigger it.
type KeybindingsConfig map[string][]string

// DefaultKeybindings returns the stock bindings.
func DefaultKeybindings() KeybindingsConfig {
	return KeybindingsConfig{
		ActionFocusNext: {"tab", "right", "l"},
		ActionFocusPrev: {"shift+tab", "left", "h"},
		ActionSelect:    {"enter", "space"},
		ActionQuit:      {"q", "ctrl+c"},
	}
}

// KeybindRegistry resolves key presses to actions.
type KeybindRegistry struct {
	byKey    map[string]string
	byAction KeybindingsConfig
}

// NewKeybindRegistry indexes cfg. When two actions claim a key the one
// earlier in Actions wins. Unknown actions are ignored.
func NewKeybindRegistry(cfg KeybindingsConfig) *KeybindRegistry {
	r := &KeybindRegistry{byKey: make(map[string]string), byAction: make(KeybindingsConfig)}
	for _, action := range Actions {
		keys := cfg[action]
		r.byAction[action] = slices.Clone(keys)
		for _, k := range keys {
			k = strings.ToLower(strings.TrimSpace(k))
			if _, taken := r.byKey[k]; !taken && k != "" {
				r.byKey[k] = action
			}
		}
	}
	return r
}

// Action returns the action bound to key, or "".
func (r *KeybindRegistry) Action(key string) string {
	return r.byKey[strings.ToLower(key)]
}

// GetKeysForDisplay returns the keys of action joined for help text.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	return strings.Join(r.byAction[action], "/")
}

// HelpLine returns a one-line summary of the primary binding of each action.
func (r *KeybindRegistry) HelpLine() string {
	labels := map[string]string{
		ActionFocusNext: "next",
		ActionFocusPrev: "prev",
		ActionSelect:    "select",
		ActionQuit:      "quit",
	}
	parts := make([]string, 0, len(Actions))
	for _, action := range Actions {
		if keys := r.byAction[action]; len(keys) > 0 {
			parts = append(parts, keys[0]+" "+labels[action])
		}
	}
	return strings.Join(parts, " • ")
}

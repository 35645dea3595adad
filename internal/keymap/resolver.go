package keymap

import "strings"

// Resolver turns key presses into actions, and actions back into the key
// shown in status line hints.
type Resolver struct {
	actions map[string]Action
	primary map[Action]string // first key of the first binding
}

// NewResolver indexes bindings. When a key appears in several bindings the
// earliest one wins, so the order of Bindings is also their priority.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		primary: make(map[Action]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if _, taken := r.actions[key]; !taken {
				r.actions[key] = b.Action
			}
		}
		if _, ok := r.primary[b.Action]; !ok && len(b.Keys) > 0 {
			r.primary[b.Action] = b.Keys[0]
		}
	}
	return r
}

// Resolve returns the action bound to a bubbletea key string, or "".
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// Hint formats the primary key of action for the status line, e.g.
// "?:help". It returns "" when the action is unbound.
func (r *Resolver) Hint(action Action, label string) string {
	key, ok := r.primary[action]
	if !ok {
		return ""
	}
	return KeyName(key) + ":" + label
}

// HintItem pairs an action with its status line label.
type HintItem struct {
	Action Action
	Label  string
}

// Hints renders several hints separated by two spaces, skipping unbound
// actions.
func (r *Resolver) Hints(items ...HintItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if h := r.Hint(it.Action, it.Label); h != "" {
			parts = append(parts, h)
		}
	}
	return strings.Join(parts, "  ")
}

// KeyName is the printable name of a bubbletea key string.
func KeyName(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

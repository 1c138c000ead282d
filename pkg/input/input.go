// Package input resolves raw key events into Actions using a configurable
// keybind table, gated by input mode (spec.md §4.6). The string-to-key
// label convention (single runes vs "<c-c>"-style special keys) follows
// the keybinding label scheme used across the example pack's terminal UIs.
package input

import "strings"

// Mode is the input-mode gate (spec.md §4.6).
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeHelp
)

// Action is one resolved user action (spec.md §4.6).
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionEnterFilter
	ActionFilterInput
	ActionFilterBackspace
	ActionCommitFilter
	ActionCancelFilter
	ActionKillSoft
	ActionKillForce
	ActionCycleColor
	ActionCycleTheme
	ActionToggleDetail
	ActionCycleSort
	ActionZoomIn
	ActionZoomOut
	ActionRefresh
	ActionToggleHelp
	ActionNavigateUp
	ActionNavigateDown
	ActionNavigateLeft
	ActionNavigateRight
)

// Direction is the argument to Navigate (spec.md §4.7).
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Key is a normalized representation of a key event: either a printable
// rune (Rune != 0) or a named special key (Name, e.g. "enter", "esc",
// "backspace", "c-c").
type Key struct {
	Rune rune
	Name string
}

func RuneKey(r rune) Key   { return Key{Rune: r} }
func NamedKey(n string) Key { return Key{Name: strings.ToLower(n)} }

// Event is one resolved key event from the terminal backend.
type Event struct {
	Key Key
}

// hardwired chords are recognized regardless of keybind configuration
// (spec.md §4.6: "arrow keys and the universal-quit chord (Ctrl+C)
// are hardwired and not configurable"); the arrow keys are not resolved in
// Filter mode.
var hardwiredNav = map[string]Action{
	"up":    ActionNavigateUp,
	"down":  ActionNavigateDown,
	"left":  ActionNavigateLeft,
	"right": ActionNavigateRight,
}

const quitChord = "c-c"

// Keybinds is the user-configurable action->key table (spec.md §6: "12
// remappable action->key strings"). Each entry holds the Key a
// configuration file assigned to that action.
type Keybinds struct {
	EnterFilter  Key
	CommitFilter Key
	CancelFilter Key
	KillSoft     Key
	KillForce    Key
	CycleColor   Key
	CycleTheme   Key
	ToggleDetail Key
	CycleSort    Key
	ZoomIn       Key
	ZoomOut      Key
	Refresh      Key
	ToggleHelp   Key
	Quit         Key
}

// DefaultKeybinds mirrors the conventional key choices of terminal process
// monitors in the example pack (q to quit, / to filter, c/t to cycle
// color/theme, etc).
func DefaultKeybinds() Keybinds {
	return Keybinds{
		EnterFilter:  RuneKey('/'),
		CommitFilter: NamedKey("enter"),
		CancelFilter: NamedKey("esc"),
		KillSoft:     RuneKey('k'),
		KillForce:    RuneKey('K'),
		CycleColor:   RuneKey('c'),
		CycleTheme:   RuneKey('t'),
		ToggleDetail: RuneKey('d'),
		CycleSort:    RuneKey('s'),
		ZoomIn:       NamedKey("enter"),
		ZoomOut:      NamedKey("esc"),
		Refresh:      RuneKey('r'),
		ToggleHelp:   RuneKey('?'),
		Quit:         RuneKey('q'),
	}
}

// Resolver converts key events into actions, gated by mode.
type Resolver struct {
	Binds Keybinds
}

func NewResolver(binds Keybinds) *Resolver {
	return &Resolver{Binds: binds}
}

// Resolve maps ev to an Action given the current mode.
func (r *Resolver) Resolve(ev Event, mode Mode) Action {
	if ev.Key.Name == quitChord {
		return ActionQuit
	}
	if ev.Key.Name != "" {
		if act, ok := hardwiredNav[ev.Key.Name]; ok && mode != ModeFilter {
			return act
		}
	}

	switch mode {
	case ModeFilter:
		return r.resolveFilter(ev)
	case ModeHelp:
		return r.resolveHelp(ev)
	default:
		return r.resolveNormal(ev)
	}
}

func (r *Resolver) resolveFilter(ev Event) Action {
	switch {
	case ev.Key == r.Binds.CommitFilter:
		return ActionCommitFilter
	case ev.Key == r.Binds.CancelFilter:
		return ActionCancelFilter
	case ev.Key.Name == "backspace":
		return ActionFilterBackspace
	case ev.Key.Rune != 0:
		return ActionFilterInput
	default:
		return ActionNone
	}
}

func (r *Resolver) resolveHelp(ev Event) Action {
	if ev.Key == r.Binds.ToggleHelp {
		return ActionToggleHelp
	}
	return ActionNone
}

func (r *Resolver) resolveNormal(ev Event) Action {
	switch ev.Key {
	case r.Binds.Quit:
		return ActionQuit
	case r.Binds.EnterFilter:
		return ActionEnterFilter
	case r.Binds.KillSoft:
		return ActionKillSoft
	case r.Binds.KillForce:
		return ActionKillForce
	case r.Binds.CycleColor:
		return ActionCycleColor
	case r.Binds.CycleTheme:
		return ActionCycleTheme
	case r.Binds.ToggleDetail:
		return ActionToggleDetail
	case r.Binds.CycleSort:
		return ActionCycleSort
	case r.Binds.ZoomIn:
		return ActionZoomIn
	case r.Binds.ZoomOut:
		return ActionZoomOut
	case r.Binds.Refresh:
		return ActionRefresh
	case r.Binds.ToggleHelp:
		return ActionToggleHelp
	default:
		return ActionNone
	}
}

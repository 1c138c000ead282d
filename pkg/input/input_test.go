package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuitChordIsHardwiredInAnyMode(t *testing.T) {
	r := NewResolver(DefaultKeybinds())
	ev := Event{Key: NamedKey("c-c")}
	assert.Equal(t, ActionQuit, r.Resolve(ev, ModeNormal))
	assert.Equal(t, ActionQuit, r.Resolve(ev, ModeFilter))
	assert.Equal(t, ActionQuit, r.Resolve(ev, ModeHelp))
}

func TestArrowKeysHardwiredInNormalMode(t *testing.T) {
	r := NewResolver(DefaultKeybinds())
	assert.Equal(t, ActionNavigateUp, r.Resolve(Event{Key: NamedKey("up")}, ModeNormal))
	assert.Equal(t, ActionNavigateLeft, r.Resolve(Event{Key: NamedKey("left")}, ModeNormal))
}

func TestArrowKeysNotHardwiredInFilterMode(t *testing.T) {
	r := NewResolver(DefaultKeybinds())
	// "up" has no rune and isn't a filter binding, so it resolves to none.
	assert.Equal(t, ActionNone, r.Resolve(Event{Key: NamedKey("up")}, ModeFilter))
}

func TestNormalModeResolvesConfiguredActions(t *testing.T) {
	r := NewResolver(DefaultKeybinds())
	assert.Equal(t, ActionEnterFilter, r.Resolve(Event{Key: RuneKey('/')}, ModeNormal))
	assert.Equal(t, ActionKillSoft, r.Resolve(Event{Key: RuneKey('k')}, ModeNormal))
	assert.Equal(t, ActionCycleSort, r.Resolve(Event{Key: RuneKey('s')}, ModeNormal))
	assert.Equal(t, ActionNone, r.Resolve(Event{Key: RuneKey('x')}, ModeNormal))
}

func TestFilterModeInputAndControlKeys(t *testing.T) {
	r := NewResolver(DefaultKeybinds())
	assert.Equal(t, ActionFilterInput, r.Resolve(Event{Key: RuneKey('f')}, ModeFilter))
	assert.Equal(t, ActionCommitFilter, r.Resolve(Event{Key: NamedKey("enter")}, ModeFilter))
	assert.Equal(t, ActionCancelFilter, r.Resolve(Event{Key: NamedKey("esc")}, ModeFilter))
	assert.Equal(t, ActionFilterBackspace, r.Resolve(Event{Key: NamedKey("backspace")}, ModeFilter))
}

func TestHelpModeOnlyTogglesHelp(t *testing.T) {
	r := NewResolver(DefaultKeybinds())
	assert.Equal(t, ActionToggleHelp, r.Resolve(Event{Key: RuneKey('?')}, ModeHelp))
	assert.Equal(t, ActionNone, r.Resolve(Event{Key: RuneKey('k')}, ModeHelp))
}

func TestKeybindsAreRemappable(t *testing.T) {
	binds := DefaultKeybinds()
	binds.Quit = RuneKey('Q')
	r := NewResolver(binds)
	assert.Equal(t, ActionNone, r.Resolve(Event{Key: RuneKey('q')}, ModeNormal))
	assert.Equal(t, ActionQuit, r.Resolve(Event{Key: RuneKey('Q')}, ModeNormal))
}

package navigation

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"vselect/internal/domain"
	"vselect/internal/eventbus"
	"vselect/internal/ui/options"
	"vselect/internal/ui/scheduler"
	"vselect/internal/ui/scheduler/schedtest"
)

type fixture struct {
	list  *options.QueryList[string]
	sched *scheduler.Scheduler
	bus   eventbus.EventBus
	nav   *Service[string]
	views []*options.View[string]
	open  bool
}

func newFixture(t *testing.T, cfg Config, labels ...string) *fixture {
	t.Helper()
	f := &fixture{
		list:  options.NewQueryList[string](),
		sched: scheduler.New(),
		bus:   eventbus.New(),
		open:  true,
	}
	f.nav = NewService(f.list, f.sched, f.bus, cfg)
	f.nav.SetPanelQuery(func() bool { return f.open })
	f.mount(0, labels...)
	return f
}

// mount binds fresh views to labels starting at option index first.
// Labels prefixed with "!" are disabled.
func (f *fixture) mount(first int, labels ...string) {
	f.views = nil
	for i, l := range labels {
		disabled := len(l) > 0 && l[0] == '!'
		if disabled {
			l = l[1:]
		}
		v := options.NewView[string](fmt.Sprintf("row-%d", i), nil)
		v.Bind(first+i, domain.Option[string]{Value: l, Label: l, Disabled: disabled})
		f.views = append(f.views, v)
	}
	f.list.Reset(f.views)
}

func (f *fixture) press(msgs ...tea.KeyMsg) {
	for _, m := range msgs {
		f.nav.HandleKey(m)
	}
}

func (f *fixture) activeLabel() string {
	if a := f.nav.ActiveItem(); a != nil {
		return a.Label()
	}
	return ""
}

func keyOf(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) []tea.KeyMsg {
	var out []tea.KeyMsg
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.TypeaheadInterval = time.Millisecond
	return cfg
}

func TestArrowNavigation(t *testing.T) {
	tests := []struct {
		name   string
		wrap   bool
		labels []string
		keys   []tea.KeyType
		want   string
	}{
		{name: "down from none picks first", wrap: true, labels: []string{"a", "b"}, keys: []tea.KeyType{tea.KeyDown}, want: "a"},
		{name: "up from none picks last", wrap: true, labels: []string{"a", "b"}, keys: []tea.KeyType{tea.KeyUp}, want: "b"},
		{name: "down wraps", wrap: true, labels: []string{"a", "b"}, keys: []tea.KeyType{tea.KeyDown, tea.KeyDown, tea.KeyDown}, want: "a"},
		{name: "up wraps", wrap: true, labels: []string{"a", "b", "c"}, keys: []tea.KeyType{tea.KeyDown, tea.KeyUp}, want: "c"},
		{name: "no wrap stops at end", wrap: false, labels: []string{"a", "b"}, keys: []tea.KeyType{tea.KeyDown, tea.KeyDown, tea.KeyDown}, want: "b"},
		{name: "skips disabled", wrap: true, labels: []string{"a", "!b", "c"}, keys: []tea.KeyType{tea.KeyDown, tea.KeyDown}, want: "c"},
		{name: "first enabled from none", wrap: true, labels: []string{"!a", "b"}, keys: []tea.KeyType{tea.KeyDown}, want: "b"},
		{name: "shift is allowed", wrap: true, labels: []string{"a", "b"}, keys: []tea.KeyType{tea.KeyShiftDown, tea.KeyShiftDown}, want: "b"},
		{name: "home", wrap: true, labels: []string{"!a", "b", "c"}, keys: []tea.KeyType{tea.KeyEnd, tea.KeyHome}, want: "b"},
		{name: "end", wrap: true, labels: []string{"a", "b", "!c"}, keys: []tea.KeyType{tea.KeyEnd}, want: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fastConfig()
			cfg.Wrap = tt.wrap
			f := newFixture(t, cfg, tt.labels...)
			for _, k := range tt.keys {
				require.True(t, f.nav.HandleKey(keyOf(k)))
			}
			require.Equal(t, tt.want, f.activeLabel())
		})
	}
}

func TestPageKeys(t *testing.T) {
	labels := make([]string, 25)
	for i := range labels {
		labels[i] = fmt.Sprintf("item-%02d", i)
	}
	cfg := fastConfig()
	cfg.PageStride = 10
	f := newFixture(t, cfg, labels...)

	f.press(keyOf(tea.KeyDown), keyOf(tea.KeyPgDown))
	require.Equal(t, 10, f.nav.ActiveIndex())

	f.press(keyOf(tea.KeyPgDown), keyOf(tea.KeyPgDown))
	require.Equal(t, 24, f.nav.ActiveIndex(), "clamped to the last item")

	f.press(keyOf(tea.KeyPgUp))
	require.Equal(t, 14, f.nav.ActiveIndex())

	f.press(keyOf(tea.KeyPgUp), keyOf(tea.KeyPgUp))
	require.Equal(t, 0, f.nav.ActiveIndex(), "clamped to the first item")
}

func TestShiftKeepsArrowAndEdgeKeys(t *testing.T) {
	f := newFixture(t, fastConfig(), "a", "b", "c")

	f.press(keyOf(tea.KeyShiftDown), keyOf(tea.KeyShiftDown))
	require.Equal(t, "b", f.activeLabel())
	f.press(keyOf(tea.KeyShiftUp))
	require.Equal(t, "a", f.activeLabel())
	f.press(keyOf(tea.KeyShiftEnd))
	require.Equal(t, "c", f.activeLabel())
	f.press(keyOf(tea.KeyShiftHome))
	require.Equal(t, "a", f.activeLabel())

	require.Equal(t, []string{"pgup"}, f.nav.KeyMap().PageUp.Keys())
	require.Equal(t, []string{"pgdown"}, f.nav.KeyMap().PageDown.Keys())
}

func TestEmptyWindowIsNoop(t *testing.T) {
	f := newFixture(t, fastConfig())
	for _, k := range []tea.KeyType{tea.KeyDown, tea.KeyUp, tea.KeyHome, tea.KeyEnd, tea.KeyPgUp, tea.KeyPgDown} {
		f.nav.HandleKey(keyOf(k))
	}
	require.Nil(t, f.nav.ActiveItem())
	require.Equal(t, -1, f.nav.ActiveIndex())
}

func TestTypeaheadPrefixMatch(t *testing.T) {
	f := newFixture(t, fastConfig(), "Apple", "Apricot", "Banana")

	f.press(runes("ap")...)
	require.True(t, f.nav.TypeaheadPending())
	require.Nil(t, f.nav.ActiveItem(), "nothing moves before the buffer settles")

	schedtest.Drain(f.sched)

	require.Equal(t, "Apple", f.activeLabel())
	require.False(t, f.nav.TypeaheadPending())
}

func TestTypeaheadAcceptsRuneBurst(t *testing.T) {
	f := newFixture(t, fastConfig(), "Apple", "Apricot", "Banana")

	require.True(t, f.nav.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("apr")}))
	schedtest.Drain(f.sched)

	require.Equal(t, "Apricot", f.activeLabel())
}

func TestTypeaheadCaseInsensitiveAndSkipsDisabled(t *testing.T) {
	f := newFixture(t, fastConfig(), "!banana", "Bandana", "cherry")

	f.press(runes("BAN")...)
	schedtest.Drain(f.sched)

	require.Equal(t, "Bandana", f.activeLabel())
}

func TestTypeaheadSpaceOnlyWhilePending(t *testing.T) {
	f := newFixture(t, fastConfig(), "New York", "Newark")

	require.False(t, f.nav.HandleKey(keyOf(tea.KeySpace)), "space alone is left to the host")

	f.press(runes("new")...)
	require.True(t, f.nav.HandleKey(keyOf(tea.KeySpace)))
	f.press(runes("y")...)
	schedtest.Drain(f.sched)

	require.Equal(t, "New York", f.activeLabel())
}

func TestTabOutLeavesActiveAlone(t *testing.T) {
	f := newFixture(t, fastConfig(), "a", "b")
	tabs := 0
	f.nav.OnTabOut(func() { tabs++ })

	f.press(keyOf(tea.KeyDown))
	require.True(t, f.nav.HandleKey(keyOf(tea.KeyTab)))
	require.True(t, f.nav.HandleKey(keyOf(tea.KeyShiftTab)))

	require.Equal(t, 2, tabs)
	require.Equal(t, "a", f.activeLabel())
}

func TestDisallowedModifiersIgnored(t *testing.T) {
	f := newFixture(t, fastConfig(), "a", "b")

	require.False(t, f.nav.HandleKey(tea.KeyMsg{Type: tea.KeyDown, Alt: true}))
	require.False(t, f.nav.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}))
	require.False(t, f.nav.HandleKey(keyOf(tea.KeyCtrlA)))
	require.False(t, f.nav.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab"), Paste: true}))

	require.Nil(t, f.nav.ActiveItem())
	require.False(t, f.nav.TypeaheadPending())
}

func TestClosedPanelIgnoresKeys(t *testing.T) {
	f := newFixture(t, fastConfig(), "a")
	f.open = false

	require.False(t, f.nav.HandleKey(keyOf(tea.KeyDown)))
	require.Nil(t, f.nav.ActiveItem())
}

func TestActiveFollowsOptionThroughRecycling(t *testing.T) {
	f := newFixture(t, fastConfig(), "a", "b", "c")
	f.press(keyOf(tea.KeyDown), keyOf(tea.KeyDown))
	require.Equal(t, 1, f.nav.ActiveOption())

	// window scrolls by one: option 1 is now the first mounted row
	f.mount(1, "b", "c", "d")
	require.Equal(t, "b", f.activeLabel())
	require.Equal(t, 0, f.nav.ActiveIndex())

	// option 1 scrolls out: the active item is cleared
	f.mount(2, "c", "d", "e")
	require.Nil(t, f.nav.ActiveItem())
	for _, v := range f.views {
		require.False(t, v.Active())
	}
}

func TestRecycledViewLosesActiveOnScrollEvent(t *testing.T) {
	f := newFixture(t, fastConfig(), "a", "b")
	f.press(keyOf(tea.KeyDown))
	active := f.nav.ActiveItem()

	// same views, rebound to other options without membership change
	f.views[0].Bind(2, domain.Option[string]{Value: "c", Label: "c"})
	f.views[1].Bind(3, domain.Option[string]{Value: "d", Label: "d"})
	f.bus.Publish(domain.ScrolledIndexChangedEvent{Offset: 2})

	require.Nil(t, f.nav.ActiveItem())
	require.False(t, active.Active())
}

func TestCloseStopsEverything(t *testing.T) {
	f := newFixture(t, fastConfig(), "apple")
	f.press(runes("a")...)
	f.nav.Close()
	schedtest.Drain(f.sched)

	require.Nil(t, f.nav.ActiveItem())
	require.False(t, f.nav.HandleKey(keyOf(tea.KeyDown)))
}

package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"vselect/internal/domain"
	"vselect/internal/ui/options"
	"vselect/internal/ui/scheduler"
)

type single struct{}

func (single) Multiple() bool { return false }

func mount(t *testing.T, list *options.QueryList[string], values ...string) []*options.View[string] {
	t.Helper()
	views := make([]*options.View[string], len(values))
	for i, v := range values {
		views[i] = options.NewView[string](fmt.Sprintf("row-%d", i), single{})
		views[i].Bind(i, domain.Option[string]{Value: v, Label: v})
	}
	list.Reset(views)
	return views
}

func TestDeferredStartDeliversExactlyOnce(t *testing.T) {
	list := options.NewQueryList[string]()
	sched := scheduler.New()
	svc := NewService(list, sched)

	var got []string
	svc.Subscribe(func(ev options.SelectionChange[string]) { got = append(got, ev.Value) })
	require.Equal(t, 1, sched.PendingStable(), "one retry is queued while views are unknown")

	// a checkpoint with nothing mounted yet keeps waiting, still one retry
	sched.Settle()
	require.Equal(t, 1, sched.PendingStable())

	views := mount(t, list, "a", "b")
	sched.Settle()
	require.Zero(t, sched.PendingStable())

	views[1].SelectViaInteraction()
	require.Equal(t, []string{"b"}, got)
}

func TestKnownListSubscribesImmediately(t *testing.T) {
	list := options.NewQueryList[string]()
	sched := scheduler.New()
	views := mount(t, list, "a")

	var got []string
	NewService(list, sched).Subscribe(func(ev options.SelectionChange[string]) { got = append(got, ev.Value) })

	require.Zero(t, sched.PendingStable())
	views[0].SelectViaInteraction()
	require.Equal(t, []string{"a"}, got)
}

func TestRemergeFollowsMountedSet(t *testing.T) {
	list := options.NewQueryList[string]()
	sched := scheduler.New()
	old := mount(t, list, "a", "b")

	var got []string
	NewService(list, sched).Subscribe(func(ev options.SelectionChange[string]) { got = append(got, ev.Value) })

	fresh := mount(t, list, "c")
	old[0].SelectViaInteraction()
	fresh[0].SelectViaInteraction()

	require.Equal(t, []string{"c"}, got, "unmounted views are no longer merged")
}

func TestEmptyMountedSetIsSilent(t *testing.T) {
	list := options.NewQueryList[string]()
	sched := scheduler.New()
	list.Reset(nil)

	calls := 0
	NewService(list, sched).Subscribe(func(options.SelectionChange[string]) { calls++ })
	require.Zero(t, sched.PendingStable())

	views := mount(t, list, "a")
	views[0].SelectViaInteraction()
	require.Equal(t, 1, calls)
}

func TestUnsubscribeTearsDown(t *testing.T) {
	list := options.NewQueryList[string]()
	sched := scheduler.New()
	svc := NewService(list, sched)

	calls := 0
	unsub := svc.Subscribe(func(options.SelectionChange[string]) { calls++ })
	unsub()
	require.Zero(t, sched.PendingStable(), "pending retry is cancelled")

	views := mount(t, list, "a")
	sched.Settle()
	views[0].SelectViaInteraction()
	require.Zero(t, calls)
}

func TestSubscriptionsAreIndependent(t *testing.T) {
	list := options.NewQueryList[string]()
	sched := scheduler.New()
	svc := NewService(list, sched)
	views := mount(t, list, "a")

	first, second := 0, 0
	unsubFirst := svc.Subscribe(func(options.SelectionChange[string]) { first++ })
	svc.Subscribe(func(options.SelectionChange[string]) { second++ })

	views[0].SelectViaInteraction()
	unsubFirst()
	svc.Subscribe(func(options.SelectionChange[string]) { first++ })
	views[0].SelectViaInteraction()

	require.Equal(t, 2, first, "resubscribing restarts the stream")
	require.Equal(t, 2, second)
}

package runtime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================================================
// FAKE SCHEDULER
// =====================================================

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler records timers and fires them on demand, making timing
// deterministic.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// fire runs every timer with the given delay pending at the moment of
// the call. Callbacks may schedule new timers; those wait for the next
// fire. Selecting by delay keeps animation completions and autoplay
// ticks independently controllable.
func (s *fakeScheduler) fire(delay time.Duration) {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.delay == delay {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

func (s *fakeScheduler) pendingWithDelay(d time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.delay == d {
			n++
		}
	}
	return n
}

const testAutoplayDelay = 2 * time.Second

func newTestCarousel(sched *fakeScheduler, autoplay bool) *Carousel {
	return New(Config{
		SlideCount:    3,
		ActionLinks:   []string{"/deal-0", "/deal-1", "/deal-2"},
		Autoplay:      autoplay,
		AutoplayDelay: testAutoplayDelay,
		Scheduler:     sched,
	})
}

// settle completes the in-flight slide animation.
func settle(s *fakeScheduler) { s.fire(TransitionDuration) }

// =====================================================
// NAVIGATION
// =====================================================

func TestNavigateWrapsAround(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, false)

	for i := 0; i < 3; i++ {
		c.Navigate(+1)
		settle(sched)
	}
	assert.Equal(t, 0, c.CurrentIndex(), "3 steps over 3 slides returns to start")

	c.Navigate(-1)
	settle(sched)
	assert.Equal(t, 2, c.CurrentIndex(), "previous from the first slide wraps to the last")
}

func TestNavigateIgnoredWhileAnimating(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, false)

	c.Navigate(+1)
	require.Equal(t, StateAnimating, c.State())

	c.Navigate(+1)
	c.Navigate(+1)
	assert.Equal(t, 1, c.CurrentIndex(), "input during animation is dropped")

	settle(sched)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 1, c.CurrentIndex())
}

func TestGoTo(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, false)

	c.GoTo(2)
	settle(sched)
	assert.Equal(t, 2, c.CurrentIndex())

	// Out of range and same-index jumps are no-ops.
	c.GoTo(7)
	c.GoTo(-1)
	c.GoTo(2)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 2, c.CurrentIndex())
}

func TestOnSlideChangeObserved(t *testing.T) {
	sched := &fakeScheduler{}
	var seen []int
	c := New(Config{
		SlideCount:    3,
		Scheduler:     sched,
		OnSlideChange: func(i int) { seen = append(seen, i) },
	})

	c.Navigate(+1)
	settle(sched)
	c.GoTo(0)
	settle(sched)

	assert.Equal(t, []int{1, 0}, seen)
}

func TestSlotWindow(t *testing.T) {
	sched := &fakeScheduler{}
	c := New(Config{SlideCount: 5, Scheduler: sched})

	c.GoTo(2)
	settle(sched)

	assert.Equal(t, SlotActive, c.SlotFor(2))
	assert.Equal(t, SlotPrev, c.SlotFor(1))
	assert.Equal(t, SlotNext, c.SlotFor(3))
	assert.Equal(t, SlotHidden, c.SlotFor(0))
	assert.Equal(t, SlotHidden, c.SlotFor(4))
}

func TestSlotWindowWrapsAtEdges(t *testing.T) {
	sched := &fakeScheduler{}
	c := New(Config{SlideCount: 4, Scheduler: sched})

	assert.Equal(t, SlotActive, c.SlotFor(0))
	assert.Equal(t, SlotPrev, c.SlotFor(3))
	assert.Equal(t, SlotNext, c.SlotFor(1))
	assert.Equal(t, SlotHidden, c.SlotFor(2))
}

// =====================================================
// DRAG / SWIPE
// =====================================================

func TestDragBeyondThresholdNavigates(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, false)

	// Leftward drag pulls the next slide in.
	c.DragStart(200)
	c.DragMove(160)
	c.DragEnd(140)
	settle(sched)
	assert.Equal(t, 1, c.CurrentIndex())

	// Rightward drag goes back.
	c.DragStart(200)
	c.DragEnd(260)
	settle(sched)
	assert.Equal(t, 0, c.CurrentIndex())
}

func TestDragBelowThresholdSnapsBack(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, false)

	c.DragStart(200)
	c.DragMove(230)
	assert.Equal(t, StateDragging, c.State())
	assert.InDelta(t, 30, c.DragOffset(), 0.01)

	c.DragEnd(230)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Zero(t, c.DragOffset())
}

func TestDragExactlyAtThresholdSnapsBack(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, false)

	c.DragStart(0)
	c.DragEnd(DragThresholdPx)
	assert.Equal(t, 0, c.CurrentIndex())
}

func TestDragIgnoredWhileAnimating(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, false)

	c.Navigate(+1)
	c.DragStart(200)
	assert.Equal(t, StateAnimating, c.State())

	// Stray move/end events without an active drag are no-ops.
	c.DragMove(100)
	c.DragEnd(100)
	settle(sched)
	assert.Equal(t, 1, c.CurrentIndex())
}

// =====================================================
// AUTOPLAY
// =====================================================

func TestAutoplayRequiresEveryGate(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, true)

	// Page visible by default, but not yet in the viewport.
	assert.False(t, c.AutoplayPending())

	c.SetIntersecting(true)
	assert.True(t, c.AutoplayPending())

	c.SetHovering(true)
	assert.False(t, c.AutoplayPending())
	c.SetHovering(false)
	assert.True(t, c.AutoplayPending())

	c.SetPageVisible(false)
	assert.False(t, c.AutoplayPending())
	c.SetPageVisible(true)
	assert.True(t, c.AutoplayPending())

	c.SetIntersecting(false)
	assert.False(t, c.AutoplayPending())
}

func TestAutoplayDisabledNeverSchedules(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, false)

	c.SetIntersecting(true)
	assert.False(t, c.AutoplayPending())
}

func TestAutoplayTickAdvancesAndReschedules(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, true)
	c.SetIntersecting(true)

	sched.fire(testAutoplayDelay) // tick
	assert.Equal(t, 1, c.CurrentIndex())

	settle(sched) // animation completes, next tick already pending
	assert.Equal(t, StateIdle, c.State())
	assert.True(t, c.AutoplayPending())

	sched.fire(testAutoplayDelay)
	assert.Equal(t, 2, c.CurrentIndex())
}

func TestAutoplaySingleTimerInvariant(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, true)

	// Repeated gate flaps must never stack timers.
	c.SetIntersecting(true)
	c.SetPageVisible(true)
	c.SetHovering(false)
	c.SetIntersecting(true)

	assert.Equal(t, 1, sched.pendingWithDelay(testAutoplayDelay))
}

func TestDragSuspendsAutoplay(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, true)
	c.SetIntersecting(true)
	require.True(t, c.AutoplayPending())

	c.DragStart(200)
	assert.False(t, c.AutoplayPending())

	// Snap-back resumes it.
	c.DragEnd(210)
	assert.True(t, c.AutoplayPending())
}

// =====================================================
// SLIDE ACTION
// =====================================================

func TestActivateSlideActionIsTerminal(t *testing.T) {
	sched := &fakeScheduler{}
	var navigated []string
	c := New(Config{
		SlideCount:    3,
		ActionLinks:   []string{"/deal-0", "/deal-1", "/deal-2"},
		Autoplay:      true,
		AutoplayDelay: testAutoplayDelay,
		Scheduler:     sched,
		Navigate:      func(link string) { navigated = append(navigated, link) },
	})
	c.SetIntersecting(true)

	c.ActivateSlideAction(1)
	assert.Equal(t, []string{"/deal-1"}, navigated)
	assert.Equal(t, StateNavigating, c.State())
	assert.False(t, c.AutoplayPending())

	// Every further input is dropped.
	c.Navigate(+1)
	c.GoTo(2)
	c.DragStart(200)
	c.SetIntersecting(true)
	c.ActivateSlideAction(0)
	sched.fire(testAutoplayDelay)
	settle(sched)

	assert.Equal(t, StateNavigating, c.State())
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Len(t, navigated, 1)
}

func TestActivateSlideActionMidAnimation(t *testing.T) {
	sched := &fakeScheduler{}
	c := newTestCarousel(sched, false)

	c.Navigate(+1)
	require.Equal(t, StateAnimating, c.State())

	c.ActivateSlideAction(1)
	assert.Equal(t, StateNavigating, c.State())

	// The pending animation completion must not revive the machine.
	settle(sched)
	assert.Equal(t, StateNavigating, c.State())
}

func TestActivateSlideActionUnknownIndex(t *testing.T) {
	sched := &fakeScheduler{}
	var got string
	called := false
	c := New(Config{
		SlideCount:  3,
		ActionLinks: []string{"/deal-0"},
		Scheduler:   sched,
		Navigate: func(link string) {
			called = true
			got = link
		},
	})

	c.ActivateSlideAction(9)
	assert.True(t, called, "action still commits, with an empty link")
	assert.Empty(t, got)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "animating", StateAnimating.String())
	assert.Equal(t, "dragging", StateDragging.String())
	assert.Equal(t, "navigating", StateNavigating.String())
}

// =====================================================
// LAZY LOADER
// =====================================================

func TestLazyLoaderFirstSlideEager(t *testing.T) {
	l := NewLazyLoader([]string{"a.jpg", "b.jpg", "c.jpg"}, nil, nil)

	assert.Equal(t, ImageLoaded, l.StateOf(0))
	assert.Equal(t, ImageDeferred, l.StateOf(1))
	assert.Equal(t, ImageDeferred, l.StateOf(2))
}

func TestLazyLoaderPreloadThenSwap(t *testing.T) {
	var pending func()
	var preloaded []string
	var swapped []string

	l := NewLazyLoader(
		[]string{"a.jpg", "b.jpg"},
		func(src string, done func()) {
			preloaded = append(preloaded, src)
			pending = done
		},
		func(index int, src string) {
			swapped = append(swapped, src)
		},
	)

	l.SlideApproaching(1)
	assert.Equal(t, ImageLoading, l.StateOf(1))
	assert.Equal(t, []string{"b.jpg"}, preloaded)
	assert.Empty(t, swapped, "swap waits for the preload to finish")

	// Repeated proximity signals do not restart the preload.
	l.SlideApproaching(1)
	assert.Len(t, preloaded, 1)

	pending()
	assert.Equal(t, ImageLoaded, l.StateOf(1))
	assert.Equal(t, []string{"b.jpg"}, swapped)

	// A late duplicate completion is ignored.
	pending()
	assert.Len(t, swapped, 1)
}

func TestLazyLoaderIgnoresOutOfRange(t *testing.T) {
	l := NewLazyLoader([]string{"a.jpg"}, func(string, func()) {
		t.Fatal("preload must not run for out-of-range slides")
	}, nil)

	l.SlideApproaching(-1)
	l.SlideApproaching(5)
	l.SlideApproaching(0) // already loaded
	assert.Equal(t, ImageDeferred, l.StateOf(9))
}

package runtime

import (
	"sync"
	"time"
)

// State of the carousel widget.
type State int

const (
	// StateIdle: resting on the current slide, all inputs accepted.
	StateIdle State = iota
	// StateAnimating: a slide transition is in flight; navigation input
	// is ignored until it completes.
	StateAnimating
	// StateDragging: a pointer/touch drag is in progress.
	StateDragging
	// StateNavigating: a slide action button committed to leaving the
	// page. Terminal; every further input is a no-op.
	StateNavigating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateDragging:
		return "dragging"
	case StateNavigating:
		return "navigating"
	default:
		return "unknown"
	}
}

// Slot is a slide's place in the fixed 3-slot visible window.
type Slot int

const (
	SlotHidden Slot = iota
	SlotActive
	SlotPrev
	SlotNext
)

// Timer is a cancellable single-shot timer.
type Timer interface {
	Stop() bool
}

// Scheduler abstracts timer creation so autoplay and animation
// completion are deterministic under test.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// NewScheduler returns the wall-clock scheduler used outside tests.
func NewScheduler() Scheduler { return realScheduler{} }

// Drag displacement below this threshold snaps back instead of
// navigating.
const DragThresholdPx = 50.0

// TransitionDuration is how long a slide animation occupies the state
// machine before it settles back to idle.
const TransitionDuration = 300 * time.Millisecond

// Config describes the widget being hydrated.
type Config struct {
	// SlideCount is the number of visible slides; must be > 0.
	SlideCount int
	// ActionLinks holds each slide's button target, indexed by slide.
	ActionLinks []string
	// Autoplay settings from the carousel record.
	Autoplay      bool
	AutoplayDelay time.Duration

	Scheduler Scheduler
	// Navigate commits the page navigation when a slide action fires.
	Navigate func(link string)
	// OnSlideChange observes index changes (pagination repaint).
	OnSlideChange func(index int)
}

// Carousel is the widget state machine. Callbacks (timers, pointer
// events, visibility signals) may interleave arbitrarily; the mutex
// serializes them the way the browser's single thread would.
type Carousel struct {
	mu sync.Mutex

	state      State
	current    int
	slideCount int

	dragStartX float64
	dragX      float64

	autoplayOn    bool
	autoplayDelay time.Duration
	hovering      bool
	pageVisible   bool
	intersecting  bool

	scheduler      Scheduler
	autoplayTimer  Timer
	animationTimer Timer

	actionLinks   []string
	navigate      func(link string)
	onSlideChange func(index int)
}

func New(cfg Config) *Carousel {
	scheduler := cfg.Scheduler
	if scheduler == nil {
		scheduler = NewScheduler()
	}

	delay := cfg.AutoplayDelay
	if delay <= 0 {
		delay = 3 * time.Second
	}

	return &Carousel{
		state:         StateIdle,
		slideCount:    cfg.SlideCount,
		autoplayOn:    cfg.Autoplay,
		autoplayDelay: delay,
		pageVisible:   true,
		scheduler:     scheduler,
		actionLinks:   cfg.ActionLinks,
		navigate:      cfg.Navigate,
		onSlideChange: cfg.OnSlideChange,
	}
}

// =====================================================
// ACCESSORS
// =====================================================

func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Carousel) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// SlotFor places a slide in the 3-slot visible window: the active slide,
// its circular predecessor and successor; everything else is hidden.
// The window is fixed at 3 slots regardless of the slides-per-view
// setting, which is carried as a data attribute only.
func (c *Carousel) SlotFor(index int) Slot {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch index {
	case c.current:
		return SlotActive
	case c.mod(c.current - 1):
		return SlotPrev
	case c.mod(c.current + 1):
		return SlotNext
	default:
		return SlotHidden
	}
}

func (c *Carousel) mod(i int) int {
	n := c.slideCount
	return ((i % n) + n) % n
}

// =====================================================
// NAVIGATION
// =====================================================

// Navigate steps by direction (+1 next, -1 previous) with circular
// wraparound. Ignored while animating, dragging or navigating.
func (c *Carousel) Navigate(direction int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigateLocked(direction)
}

func (c *Carousel) navigateLocked(direction int) {
	if c.state != StateIdle {
		return
	}
	c.beginTransitionLocked(c.mod(c.current + direction))
}

// GoTo jumps straight to a pagination target. Same guard as Navigate.
func (c *Carousel) GoTo(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle || index < 0 || index >= c.slideCount {
		return
	}
	if index == c.current {
		return
	}
	c.beginTransitionLocked(index)
}

func (c *Carousel) beginTransitionLocked(to int) {
	c.state = StateAnimating
	c.current = to

	if c.onSlideChange != nil {
		c.onSlideChange(to)
	}

	c.animationTimer = c.scheduler.AfterFunc(TransitionDuration, c.completeAnimation)
}

func (c *Carousel) completeAnimation() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAnimating {
		// A slide action fired mid-animation; stay terminal.
		return
	}
	c.state = StateIdle
	c.animationTimer = nil
	c.reconcileAutoplayLocked()
}

// =====================================================
// DRAG / SWIPE
// =====================================================

// DragStart begins gesture tracking. Only valid from idle.
func (c *Carousel) DragStart(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return
	}
	c.state = StateDragging
	c.dragStartX = x
	c.dragX = x
	// Dragging suspends autoplay.
	c.stopAutoplayLocked()
}

// DragMove tracks the pointer while dragging.
func (c *Carousel) DragMove(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return
	}
	c.dragX = x
}

// DragEnd interprets the gesture: beyond the threshold a rightward drag
// goes to the previous slide and a leftward drag to the next, matching
// the natural swipe direction. Below it the carousel snaps back.
func (c *Carousel) DragEnd(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return
	}
	c.dragX = x
	displacement := c.dragX - c.dragStartX
	c.state = StateIdle

	if displacement > DragThresholdPx {
		c.navigateLocked(-1)
	} else if displacement < -DragThresholdPx {
		c.navigateLocked(+1)
	} else {
		c.reconcileAutoplayLocked()
	}
}

// DragOffset reports the live displacement; the view uses it to track
// the pointer mid-gesture.
func (c *Carousel) DragOffset() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return 0
	}
	return c.dragX - c.dragStartX
}

// =====================================================
// SLIDE ACTION
// =====================================================

// ActivateSlideAction commits to leaving the page via the slide's button
// link. Allowed from any state except navigating; afterwards the machine
// is terminal and every input is ignored.
func (c *Carousel) ActivateSlideAction(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateNavigating {
		return
	}

	c.state = StateNavigating
	c.stopAutoplayLocked()
	if c.animationTimer != nil {
		c.animationTimer.Stop()
		c.animationTimer = nil
	}

	var link string
	if index >= 0 && index < len(c.actionLinks) {
		link = c.actionLinks[index]
	}
	if c.navigate != nil {
		c.navigate(link)
	}
}

// =====================================================
// AUTOPLAY
// =====================================================

// SetHovering gates autoplay on pointer hover.
func (c *Carousel) SetHovering(hovering bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hovering = hovering
	c.reconcileAutoplayLocked()
}

// SetPageVisible gates autoplay on tab visibility.
func (c *Carousel) SetPageVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageVisible = visible
	c.reconcileAutoplayLocked()
}

// SetIntersecting gates autoplay on the widget being in the viewport.
func (c *Carousel) SetIntersecting(intersecting bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.intersecting = intersecting
	c.reconcileAutoplayLocked()
}

// AutoplayPending reports whether a tick is scheduled; used by tests.
func (c *Carousel) AutoplayPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoplayTimer != nil
}

// reconcileAutoplayLocked enforces the autoplay invariant: a single
// pending timer exists exactly while every condition holds. The timer is
// always cleared before a new one is scheduled, so ticks never overlap.
func (c *Carousel) reconcileAutoplayLocked() {
	c.stopAutoplayLocked()

	if !c.autoplayOn || c.hovering || !c.pageVisible || !c.intersecting {
		return
	}
	if c.state == StateDragging || c.state == StateNavigating {
		return
	}

	c.autoplayTimer = c.scheduler.AfterFunc(c.autoplayDelay, c.autoplayTick)
}

func (c *Carousel) stopAutoplayLocked() {
	if c.autoplayTimer != nil {
		c.autoplayTimer.Stop()
		c.autoplayTimer = nil
	}
}

func (c *Carousel) autoplayTick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.autoplayTimer = nil
	c.navigateLocked(+1)
	c.reconcileAutoplayLocked()
}

package runtime

import (
	"sync"
)

// ImageState tracks a deferred slide image through its lazy-load
// lifecycle.
type ImageState int

const (
	// ImageDeferred: only a placeholder is mounted.
	ImageDeferred ImageState = iota
	// ImageLoading: the full-resolution image is preloading off-screen.
	ImageLoading
	// ImageLoaded: the visible source has been swapped in.
	ImageLoaded
)

// ViewportMarginPx is how far ahead of the viewport a slide starts
// preloading.
const ViewportMarginPx = 50

// PreloadFunc fetches src off-screen and calls done once the bytes are
// ready, so the visible swap never shows a blank or broken image.
type PreloadFunc func(src string, done func())

// LazyLoader defers every slide image except the first, swapping in the
// full source once the slide approaches the viewport.
type LazyLoader struct {
	mu      sync.Mutex
	sources []string
	states  []ImageState
	preload PreloadFunc
	onSwap  func(index int, src string)
}

// NewLazyLoader sets up per-slide states: index 0 is loaded eagerly,
// the rest start deferred.
func NewLazyLoader(sources []string, preload PreloadFunc, onSwap func(index int, src string)) *LazyLoader {
	states := make([]ImageState, len(sources))
	if len(states) > 0 {
		states[0] = ImageLoaded
	}
	return &LazyLoader{
		sources: sources,
		states:  states,
		preload: preload,
		onSwap:  onSwap,
	}
}

// SlideApproaching is the viewport-proximity signal for one slide
// (intersection within ViewportMarginPx). The first signal starts the
// off-screen preload; repeats are no-ops.
func (l *LazyLoader) SlideApproaching(index int) {
	l.mu.Lock()

	if index < 0 || index >= len(l.states) || l.states[index] != ImageDeferred {
		l.mu.Unlock()
		return
	}
	l.states[index] = ImageLoading
	src := l.sources[index]
	l.mu.Unlock()

	l.preload(src, func() {
		l.commit(index, src)
	})
}

func (l *LazyLoader) commit(index int, src string) {
	l.mu.Lock()
	if l.states[index] != ImageLoading {
		l.mu.Unlock()
		return
	}
	l.states[index] = ImageLoaded
	l.mu.Unlock()

	if l.onSwap != nil {
		l.onSwap(index, src)
	}
}

// StateOf reports a slide image's lifecycle state.
func (l *LazyLoader) StateOf(index int) ImageState {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.states) {
		return ImageDeferred
	}
	return l.states[index]
}

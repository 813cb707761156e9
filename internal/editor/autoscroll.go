package editor

import (
	"math"
	"sync"
	"time"
)

// Auto-scroll tuning. The loop ticks at roughly 60 Hz while a drag
// hovers near a viewport edge; the scroll rate grows as the pointer
// closes in on the edge, bounded to [MinScrollRate, MaxScrollRate]
// pixels per tick.
const (
	ScrollTickInterval   = 16 * time.Millisecond
	DefaultEdgeThreshold = 48.0
	MinScrollRate        = 2.0
	MaxScrollRate        = 16.0
)

// Viewport describes the scrollable list area in pointer coordinates.
type Viewport struct {
	Top    float64
	Height float64
}

// AutoScroller runs the edge-proximity scroll loop for a drag gesture.
// It must be stopped on every gesture exit path and closed on surface
// teardown; a leaked loop keeps scrolling after the interaction ends.
type AutoScroller struct {
	viewport  Viewport
	threshold float64
	scrollBy  func(delta float64)

	mu      sync.Mutex
	delta   float64
	stopCh  chan struct{}
	running bool
}

// NewAutoScroller creates a scroller that reports scroll deltas through
// scrollBy. A threshold <= 0 uses the default.
func NewAutoScroller(viewport Viewport, threshold float64, scrollBy func(delta float64)) *AutoScroller {
	if threshold <= 0 {
		threshold = DefaultEdgeThreshold
	}
	return &AutoScroller{
		viewport:  viewport,
		threshold: threshold,
		scrollBy:  scrollBy,
	}
}

// Update adjusts the loop for the current pointer position: inside the
// edge threshold the loop starts (or retunes its rate and direction),
// outside it the loop stops.
func (a *AutoScroller) Update(pointerY float64) {
	delta := a.deltaFor(pointerY)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.delta = delta
	if delta == 0 {
		a.stopLocked()
		return
	}
	if !a.running {
		a.stopCh = make(chan struct{})
		a.running = true
		go a.loop(a.stopCh)
	}
}

// Stop halts the scroll loop. Idempotent.
func (a *AutoScroller) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *AutoScroller) stopLocked() {
	if !a.running {
		return
	}
	close(a.stopCh)
	a.running = false
	a.delta = 0
}

// loop ticks at ~60 Hz, emitting the current delta until stopped.
func (a *AutoScroller) loop(stop chan struct{}) {
	ticker := time.NewTicker(ScrollTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.mu.Lock()
			delta := a.delta
			a.mu.Unlock()
			if delta != 0 && a.scrollBy != nil {
				a.scrollBy(delta)
			}
		}
	}
}

// deltaFor computes the per-tick scroll delta for a pointer position:
// negative near the top edge, positive near the bottom, zero outside
// the threshold. Rate scales inversely with edge distance.
func (a *AutoScroller) deltaFor(pointerY float64) float64 {
	top := a.viewport.Top
	bottom := a.viewport.Top + a.viewport.Height

	if pointerY < top || pointerY > bottom {
		return 0
	}

	if d := pointerY - top; d < a.threshold {
		return -a.rateFor(d)
	}
	if d := bottom - pointerY; d < a.threshold {
		return a.rateFor(d)
	}
	return 0
}

// rateFor maps an edge distance in [0, threshold) to a bounded rate:
// distance 0 scrolls at MaxScrollRate, distances near the threshold
// approach MinScrollRate.
func (a *AutoScroller) rateFor(distance float64) float64 {
	rate := MaxScrollRate * (1 - distance/a.threshold)
	return math.Min(MaxScrollRate, math.Max(MinScrollRate, rate))
}

package editor

import (
	"sync"

	"github.com/curio-cms/curio/internal/post"
)

// DragPhase is the tagged drag state. Keeping one value (rather than
// independent "dragging" / "over" / "scrolling" flags) makes impossible
// combinations unrepresentable.
type DragPhase int

const (
	PhaseNone DragPhase = iota
	PhaseDragging
	PhaseDraggingOver
)

// DragState is the surface's current gesture state. Source and Target
// are only meaningful in the phases that define them.
type DragState struct {
	Phase  DragPhase
	Source int
	Target int
}

// Surface is the interactive reorder surface for one editing session:
// a displayed sequence of candidates plus the drag gesture over it.
// One gesture is processed at a time; methods are safe for concurrent
// event delivery.
type Surface struct {
	mu        sync.Mutex
	items     []post.Summary
	state     DragState
	scroller  *AutoScroller
	onReorder func(ids []int64)
}

// NewSurface creates a Surface over the loaded candidates. onReorder
// is notified with the full ordered-ID sequence after every completed
// drop. scroller may be nil when the host has no scrollable viewport.
func NewSurface(items []post.Summary, scroller *AutoScroller, onReorder func(ids []int64)) *Surface {
	return &Surface{
		items:     items,
		scroller:  scroller,
		onReorder: onReorder,
	}
}

// Items returns the current display order.
func (s *Surface) Items() []post.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]post.Summary, len(s.items))
	copy(out, s.items)
	return out
}

// State returns the current drag state.
func (s *Surface) State() DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OrderedIDs returns the full ordered-ID sequence for the current
// display order.
func (s *Surface) OrderedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderedIDsLocked()
}

func (s *Surface) orderedIDsLocked() []int64 {
	ids := make([]int64, len(s.items))
	for i, item := range s.items {
		ids[i] = item.ID
	}
	return ids
}

// DragStart begins a gesture at index. Out-of-range indexes are ignored.
func (s *Surface) DragStart(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return
	}
	s.state = DragState{Phase: PhaseDragging, Source: index}
}

// DragOver records the item currently hovered and, via pointerY, keeps
// the auto-scroll loop tuned to the pointer's distance from the
// viewport edges. No-op when no drag is active.
func (s *Surface) DragOver(index int, pointerY float64) {
	s.mu.Lock()
	if s.state.Phase == PhaseNone {
		s.mu.Unlock()
		return
	}
	s.state = DragState{Phase: PhaseDraggingOver, Source: s.state.Source, Target: index}
	s.mu.Unlock()

	if s.scroller != nil {
		s.scroller.Update(pointerY)
	}
}

// Drop completes the gesture at index: the dragged item is removed and
// re-inserted so it lands at the drop position (removal already shifts
// later items left, which cancels the off-by-one when dragging
// downward). The owner is notified with the new ordered-ID sequence.
// Dropping on the source index, or with no active drag, is a no-op.
func (s *Surface) Drop(index int) {
	s.mu.Lock()

	if s.state.Phase == PhaseNone || index == s.state.Source {
		s.state = DragState{}
		s.mu.Unlock()
		s.stopScroll()
		return
	}

	source := s.state.Source
	s.state = DragState{}

	if source < 0 || source >= len(s.items) {
		s.mu.Unlock()
		s.stopScroll()
		return
	}

	item := s.items[source]
	s.items = append(s.items[:source], s.items[source+1:]...)

	if index < 0 {
		index = 0
	}
	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items[:index], append([]post.Summary{item}, s.items[index:]...)...)

	ids := s.orderedIDsLocked()
	notify := s.onReorder
	s.mu.Unlock()

	s.stopScroll()
	if notify != nil {
		notify(ids)
	}
}

// DragEnd aborts the gesture without reordering.
func (s *Surface) DragEnd() {
	s.mu.Lock()
	s.state = DragState{}
	s.mu.Unlock()
	s.stopScroll()
}

// DragLeave aborts the gesture when the pointer leaves the surface.
func (s *Surface) DragLeave() {
	s.DragEnd()
}

// Close tears the surface down, stopping any running scroll loop.
func (s *Surface) Close() {
	s.DragEnd()
}

func (s *Surface) stopScroll() {
	if s.scroller != nil {
		s.scroller.Stop()
	}
}

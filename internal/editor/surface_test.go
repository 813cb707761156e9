package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curio-cms/curio/internal/post"
)

func candidates(titles ...string) []post.Summary {
	out := make([]post.Summary, len(titles))
	for i, title := range titles {
		out[i] = post.Summary{ID: int64(i + 1), Title: title}
	}
	return out
}

func titles(items []post.Summary) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func TestSurface_DragFirstToLast(t *testing.T) {
	var reordered []int64
	s := NewSurface(candidates("A", "B", "C", "D"), nil, func(ids []int64) { reordered = ids })

	s.DragStart(0)
	s.DragOver(3, 0)
	s.Drop(3)

	assert.Equal(t, []string{"B", "C", "D", "A"}, titles(s.Items()))
	assert.Equal(t, []int64{2, 3, 4, 1}, reordered)
	assert.Equal(t, PhaseNone, s.State().Phase)
}

func TestSurface_DragLastToFirst(t *testing.T) {
	var reordered []int64
	s := NewSurface(candidates("A", "B", "C", "D"), nil, func(ids []int64) { reordered = ids })

	s.DragStart(3)
	s.Drop(0)

	assert.Equal(t, []string{"D", "A", "B", "C"}, titles(s.Items()))
	assert.Equal(t, []int64{4, 1, 2, 3}, reordered)
}

func TestSurface_DragMiddle(t *testing.T) {
	s := NewSurface(candidates("A", "B", "C", "D"), nil, nil)

	s.DragStart(1)
	s.Drop(2)

	assert.Equal(t, []string{"A", "C", "B", "D"}, titles(s.Items()))
}

func TestSurface_DropOnSourceIsNoop(t *testing.T) {
	called := false
	s := NewSurface(candidates("A", "B"), nil, func([]int64) { called = true })

	s.DragStart(1)
	s.Drop(1)

	assert.Equal(t, []string{"A", "B"}, titles(s.Items()))
	assert.False(t, called)
	assert.Equal(t, PhaseNone, s.State().Phase)
}

func TestSurface_DropWithoutDragIsNoop(t *testing.T) {
	called := false
	s := NewSurface(candidates("A", "B"), nil, func([]int64) { called = true })

	s.Drop(0)

	assert.Equal(t, []string{"A", "B"}, titles(s.Items()))
	assert.False(t, called)
}

func TestSurface_StateTransitions(t *testing.T) {
	s := NewSurface(candidates("A", "B", "C"), nil, nil)

	require.Equal(t, PhaseNone, s.State().Phase)

	s.DragStart(1)
	state := s.State()
	assert.Equal(t, PhaseDragging, state.Phase)
	assert.Equal(t, 1, state.Source)

	s.DragOver(2, 0)
	state = s.State()
	assert.Equal(t, PhaseDraggingOver, state.Phase)
	assert.Equal(t, 1, state.Source)
	assert.Equal(t, 2, state.Target)

	s.DragEnd()
	assert.Equal(t, PhaseNone, s.State().Phase)
	assert.Equal(t, []string{"A", "B", "C"}, titles(s.Items()), "abort must not reorder")
}

func TestSurface_DragOverWithoutDragIsNoop(t *testing.T) {
	s := NewSurface(candidates("A", "B"), nil, nil)

	s.DragOver(1, 0)

	assert.Equal(t, PhaseNone, s.State().Phase)
}

func TestSurface_DragStartOutOfRange(t *testing.T) {
	s := NewSurface(candidates("A"), nil, nil)

	s.DragStart(5)
	assert.Equal(t, PhaseNone, s.State().Phase)

	s.DragStart(-1)
	assert.Equal(t, PhaseNone, s.State().Phase)
}

func TestSurface_DropIndexClamped(t *testing.T) {
	s := NewSurface(candidates("A", "B", "C"), nil, nil)

	s.DragStart(0)
	s.Drop(99)

	assert.Equal(t, []string{"B", "C", "A"}, titles(s.Items()))
}

func TestSurface_DragLeaveStopsGesture(t *testing.T) {
	s := NewSurface(candidates("A", "B"), nil, nil)

	s.DragStart(0)
	s.DragLeave()

	assert.Equal(t, PhaseNone, s.State().Phase)
}

func TestSurface_SequentialGestures(t *testing.T) {
	s := NewSurface(candidates("A", "B", "C"), nil, nil)

	s.DragStart(0)
	s.Drop(2)
	assert.Equal(t, []string{"B", "C", "A"}, titles(s.Items()))

	s.DragStart(2)
	s.Drop(0)
	assert.Equal(t, []string{"A", "B", "C"}, titles(s.Items()))
}

func TestSurface_OrderedIDs(t *testing.T) {
	s := NewSurface(candidates("A", "B", "C"), nil, nil)

	assert.Equal(t, []int64{1, 2, 3}, s.OrderedIDs())
}

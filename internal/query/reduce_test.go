package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curio-cms/curio/internal/post"
)

// rawPosts builds posts with the given IDs, in that (fetch) order.
func rawPosts(ids ...int64) []post.Post {
	out := make([]post.Post, len(ids))
	for i, id := range ids {
		out[i] = post.Post{ID: id, Title: fmt.Sprintf("post %d", id)}
	}
	return out
}

func postIDs(posts []post.Post) []int64 {
	out := make([]int64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestMerge_CuratedFirstThenRawOrder(t *testing.T) {
	merged := Merge(rawPosts(1, 2, 3, 4, 5), []int64{3, 1})

	assert.Equal(t, []int64{3, 1, 2, 4, 5}, postIDs(merged))
}

func TestMerge_UnknownIDsSkipped(t *testing.T) {
	merged := Merge(rawPosts(1, 2, 3, 4, 5), []int64{9, 3})

	assert.Equal(t, []int64{3, 1, 2, 4, 5}, postIDs(merged))
}

func TestMerge_DuplicateIDsEmitOnce(t *testing.T) {
	merged := Merge(rawPosts(1, 2, 3), []int64{3, 3, 2, 3})

	assert.Equal(t, []int64{3, 2, 1}, postIDs(merged))
}

func TestMerge_EmptyRaw(t *testing.T) {
	merged := Merge(nil, []int64{5, 6})

	assert.Empty(t, merged)
}

func TestMerge_EmptyOrder(t *testing.T) {
	merged := Merge(rawPosts(1, 2, 3), nil)

	assert.Equal(t, []int64{1, 2, 3}, postIDs(merged))
}

// Coverage invariant: every raw post appears exactly once in the merged
// sequence, regardless of what the ordered list contains.
func TestMerge_CoverageInvariant(t *testing.T) {
	orders := [][]int64{
		nil,
		{1},
		{5, 4, 3, 2, 1},
		{9, 9, 1, 1, 7},
		{2, 2, 2},
	}

	for _, order := range orders {
		t.Run(fmt.Sprintf("order=%v", order), func(t *testing.T) {
			raw := rawPosts(1, 2, 3, 4, 5)
			merged := Merge(raw, order)

			require.Len(t, merged, len(raw))
			seen := make(map[int64]int)
			for _, p := range merged {
				seen[p.ID]++
			}
			for _, p := range raw {
				assert.Equal(t, 1, seen[p.ID], "post %d should appear exactly once", p.ID)
			}
		})
	}
}

// Order invariant: posts present in both lists keep their relative
// order from the curated list.
func TestMerge_OrderInvariant(t *testing.T) {
	merged := Merge(rawPosts(1, 2, 3, 4, 5), []int64{9, 4, 8, 2, 5})

	assert.Equal(t, []int64{4, 2, 5, 1, 3}, postIDs(merged))
}

func TestReduce_ScenarioA(t *testing.T) {
	// R=[1..5], L=[3,1], pageSize=10, offset=0 → page=[3,1,2,4,5]
	page := Reduce(rawPosts(1, 2, 3, 4, 5), []int64{3, 1}, 10, 0)

	assert.Equal(t, []int64{3, 1, 2, 4, 5}, postIDs(page))
}

func TestReduce_ScenarioB(t *testing.T) {
	// R=[1..5], L=[9,3], pageSize=2, offset=1 → merged=[3,1,2,4,5] → page=[1,2]
	page := Reduce(rawPosts(1, 2, 3, 4, 5), []int64{9, 3}, 2, 1)

	assert.Equal(t, []int64{1, 2}, postIDs(page))
}

func TestReduce_ScenarioC(t *testing.T) {
	// R=[], L=[5,6] → page=[]
	page := Reduce(nil, []int64{5, 6}, 10, 0)

	assert.Empty(t, page)
}

func TestReduce_Idempotent(t *testing.T) {
	raw := rawPosts(1, 2, 3, 4, 5)
	ids := []int64{4, 2}

	first := Reduce(raw, ids, 3, 1)
	second := Reduce(raw, ids, 3, 1)

	assert.Equal(t, first, second)
}

func TestReduce_Pagination(t *testing.T) {
	raw := rawPosts(1, 2, 3, 4, 5)

	tests := []struct {
		name     string
		pageSize int
		offset   int
		want     []int64
	}{
		{"full window", 10, 0, []int64{1, 2, 3, 4, 5}},
		{"short final page", 2, 4, []int64{5}},
		{"offset past end", 3, 7, []int64{}},
		{"negative offset clamped", 2, -3, []int64{1, 2}},
		{"zero page size means rest", 0, 2, []int64{3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Reduce(raw, nil, tt.pageSize, tt.offset)
			assert.Equal(t, tt.want, postIDs(page))
		})
	}
}

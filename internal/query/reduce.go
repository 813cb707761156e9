package query

import "github.com/curio-cms/curio/internal/post"

// Merge produces the full curated sequence before pagination: posts
// named in ids come first, in ids order; everything else follows in raw
// order. The saved order is a suggestion, never a filter: IDs missing
// from raw are skipped, and each post appears exactly once no matter
// how often ids repeats it.
func Merge(raw []post.Post, ids []int64) []post.Post {
	byID := make(map[int64]post.Post, len(raw))
	for _, p := range raw {
		byID[p.ID] = p
	}

	merged := make([]post.Post, 0, len(raw))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		merged = append(merged, p)
		// Consume so duplicates in ids can't emit the post twice.
		delete(byID, id)
	}

	for _, p := range raw {
		if _, ok := byID[p.ID]; !ok {
			continue
		}
		merged = append(merged, p)
		delete(byID, p.ID)
	}

	return merged
}

// Reduce merges raw posts with the saved order and slices out the
// original page window [offset, offset+pageSize). Pure function; a
// pageSize <= 0 means "everything from offset on".
func Reduce(raw []post.Post, ids []int64, pageSize, offset int) []post.Post {
	merged := Merge(raw, ids)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(merged) {
		return []post.Post{}
	}

	end := len(merged)
	if pageSize > 0 && offset+pageSize < end {
		end = offset + pageSize
	}

	return merged[offset:end]
}

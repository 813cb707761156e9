package block

import "math"

// Attribute accessors. Block attributes come from JSON, so numbers
// arrive as float64 and lists as []any regardless of their logical type.

// StringAttr returns the named attribute as a string, or "" if absent
// or not a string.
func StringAttr(b *Block, name string) string {
	if b == nil || b.Attrs == nil {
		return ""
	}
	s, _ := b.Attrs[name].(string)
	return s
}

// IntAttr returns the named attribute as an int, or def if absent or
// not numeric.
func IntAttr(b *Block, name string, def int) int {
	if b == nil || b.Attrs == nil {
		return def
	}
	switch v := b.Attrs[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return def
}

// IDListAttr returns the named attribute as a list of positive integer
// IDs. Non-numeric, fractional, and non-positive entries are dropped.
func IDListAttr(b *Block, name string) []int64 {
	if b == nil || b.Attrs == nil {
		return nil
	}
	raw, ok := b.Attrs[name].([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		var id int64
		switch n := v.(type) {
		case float64:
			if n != math.Trunc(n) {
				continue
			}
			id = int64(n)
		case int:
			id = int64(n)
		case int64:
			id = n
		default:
			continue
		}
		if id > 0 {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StringListAttr returns the named attribute as a list of strings,
// skipping non-string entries.
func StringListAttr(b *Block, name string) []string {
	if b == nil || b.Attrs == nil {
		return nil
	}
	raw, ok := b.Attrs[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CustomOrder returns the block's saved ordered-ID list, filtered to
// positive integers.
func CustomOrder(b *Block) []int64 {
	return IDListAttr(b, "customOrder")
}

// SetCustomOrder replaces the block's saved ordered-ID list wholesale.
func SetCustomOrder(b *Block, ids []int64) {
	if b.Attrs == nil {
		b.Attrs = make(map[string]any)
	}
	list := make([]any, len(ids))
	for i, id := range ids {
		list[i] = float64(id)
	}
	b.Attrs["customOrder"] = list
}

// ClearCustomOrder removes the saved order from the block.
func ClearCustomOrder(b *Block) {
	if b.Attrs != nil {
		delete(b.Attrs, "customOrder")
	}
}

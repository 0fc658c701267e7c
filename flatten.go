package databag

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Leaf is one value found by Leaves, with the path leading to it.
type Leaf struct {
	Path  PropertyPath
	Value any
	// Sequence[i] reports whether Path[i] indexes a sequence rather than a
	// mapping.
	Sequence []bool
}

// Flatten converts a nested tree into a flat mapping from bracket path to
// leaf value, for example:
//
//	{"server": {"host": "localhost", "ports": [80, 443]}}
//
// becomes
//
//	[server][host]     = localhost
//	[server][ports][0] = 80
//	[server][ports][1] = 443
//
// The result preserves traversal order: depth first, mapping keys sorted,
// sequences in index order. Scalars and empty collections are leaves;
// intermediate collections never appear as keys. A tree that is not a
// collection flattens to an empty map. The input is not modified.
//
// Bracket paths cannot spell empty keys or keys containing brackets, and
// they do not say whether "0" was a mapping key or an index. Leaves keeps
// both.
func Flatten(tree any) *orderedmap.OrderedMap[string, any] {
	flat := orderedmap.New[string, any]()
	for _, leaf := range Leaves(tree) {
		flat.Set(leaf.Path.String(), leaf.Value)
	}
	return flat
}

// Leaves returns the leaves of tree in the same order as Flatten.
func Leaves(tree any) []Leaf {
	var leaves []Leaf
	collectLeaves(&leaves, tree, nil, nil, 0)
	return leaves
}

func collectLeaves(leaves *[]Leaf, v any, path PropertyPath, seq []bool, depth int) {
	switch val := v.(type) {
	case map[string]any:
		if len(path) > 0 && (len(val) == 0 || depth >= MaxDepth) {
			*leaves = append(*leaves, Leaf{Path: path, Value: val, Sequence: seq})
			return
		}
		for _, k := range sortedKeys(val) {
			collectLeaves(leaves, val[k], extend(path, k), extend(seq, false), depth+1)
		}
	case []any:
		if len(path) > 0 && (len(val) == 0 || depth >= MaxDepth) {
			*leaves = append(*leaves, Leaf{Path: path, Value: val, Sequence: seq})
			return
		}
		for i, item := range val {
			collectLeaves(leaves, item, extend(path, strconv.Itoa(i)), extend(seq, true), depth+1)
		}
	default:
		if len(path) > 0 {
			*leaves = append(*leaves, Leaf{Path: path, Value: v, Sequence: seq})
		}
	}
}

// extend appends to a copy of s, so sibling leaves never share backing
// arrays.
func extend[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

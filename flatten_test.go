package databag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() map[string]any {
	return map[string]any{
		"server": map[string]any{
			"host":  "localhost",
			"ports": []any{80, 443},
		},
		"debug": false,
		"empty": map[string]any{},
		"tags":  []any{},
	}
}

func TestFlatten(t *testing.T) {
	flat := Flatten(sampleTree())

	var keys []string
	for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{
		"[debug]",
		"[empty]",
		"[server][host]",
		"[server][ports][0]",
		"[server][ports][1]",
		"[tags]",
	}, keys)

	v, ok := flat.Get("[server][ports][1]")
	require.True(t, ok)
	assert.Equal(t, 443, v)

	v, ok = flat.Get("[debug]")
	require.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = flat.Get("[server]")
	assert.False(t, ok, "intermediate mappings must not be emitted")
}

func TestFlattenRoundTrip(t *testing.T) {
	tree := sampleTree()
	flat := Flatten(tree)

	var rebuilt any = map[string]any{}
	for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
		var err error
		rebuilt, err = SetPath(rebuilt, pair.Key, pair.Value)
		require.NoError(t, err, "path %s", pair.Key)
	}
	assert.Equal(t, tree, rebuilt, "rebuilt from %d paths", flat.Len())
}

func TestFlattenDoesNotModifyInput(t *testing.T) {
	tree := sampleTree()
	Flatten(tree)
	assert.Equal(t, sampleTree(), tree)
}

func TestFlattenScalars(t *testing.T) {
	assert.Equal(t, 0, Flatten("scalar").Len())
	assert.Equal(t, 0, Flatten(nil).Len())
	assert.Equal(t, 0, Flatten(map[string]any{}).Len())
}

func TestFlattenTopLevelSequence(t *testing.T) {
	flat := Flatten([]any{"a", []any{"b"}})

	v, ok := flat.Get("[0]")
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = flat.Get("[1][0]")
	require.True(t, ok)
	assert.Equal(t, "b", v)
}

func rebuildFromLeaves(t *testing.T, tree any) any {
	t.Helper()
	var rebuilt any
	for _, leaf := range Leaves(tree) {
		var err error
		rebuilt, err = SetLeaf(rebuilt, leaf)
		require.NoError(t, err, "path %s", leaf.Path)
	}
	return rebuilt
}

func TestLeavesRoundTrip(t *testing.T) {
	for name, tree := range map[string]map[string]any{
		"sample":       sampleTree(),
		"index keys":   {"m": map[string]any{"0": "a"}},
		"sparse index": {"codes": map[string]any{"0": "a", "2": "c", "x": "other"}},
		"odd keys":     {"": "v", "a]b": "w", "[c]": map[string]any{"": []any{"x"}}},
		"mixed":        {"list": []any{map[string]any{"0": []any{"a"}}}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tree, rebuildFromLeaves(t, tree))
		})
	}
}

func TestLeaves(t *testing.T) {
	leaves := Leaves(map[string]any{
		"m": map[string]any{"0": "a"},
		"s": []any{"b"},
	})

	require.Len(t, leaves, 2)
	assert.Equal(t, Leaf{Path: PropertyPath{"m", "0"}, Value: "a", Sequence: []bool{false, false}}, leaves[0])
	assert.Equal(t, Leaf{Path: PropertyPath{"s", "0"}, Value: "b", Sequence: []bool{false, true}}, leaves[1])
}

func TestLeavesDoNotShareSegments(t *testing.T) {
	leaves := Leaves(map[string]any{"a": map[string]any{"x": 1, "y": 2, "z": 3}})

	require.Len(t, leaves, 3)
	leaves[0].Path[1] = "changed"
	assert.Equal(t, PropertyPath{"a", "y"}, leaves[1].Path)
	assert.Equal(t, PropertyPath{"a", "z"}, leaves[2].Path)
}

func TestFlattenUnparseableKeys(t *testing.T) {
	flat := Flatten(map[string]any{"": "v", "a]b": "w"})

	v, ok := flat.Get("[]")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	_, err := ParsePropertyPath("[]")
	assert.ErrorIs(t, err, ErrInvalidPath)

	v, ok = flat.Get("[a]b]")
	require.True(t, ok)
	assert.Equal(t, "w", v)
	_, err = ParsePropertyPath("[a]b]")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestFlattenDepthLimit(t *testing.T) {
	var tree any = "leaf"
	for i := 0; i < MaxDepth+10; i++ {
		tree = map[string]any{"k": tree}
	}

	flat := Flatten(tree)
	require.Equal(t, 1, flat.Len())

	pair := flat.Oldest()
	assert.Equal(t, MaxDepth, strings.Count(pair.Key, "["))
	assert.IsType(t, map[string]any{}, pair.Value)
}

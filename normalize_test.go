package databag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type normalizeCase struct {
	In   string `yaml:"in"`
	Want string `yaml:"want"`
}

func TestNormalizeString(t *testing.T) {
	var cases []normalizeCase
	loadFixture(t, "normalize", "keys", &cases)
	require.NotEmpty(t, cases)

	for _, tt := range cases {
		t.Run(tt.In, func(t *testing.T) {
			assert.Equal(t, tt.Want, NormalizeString(tt.In))
		})
	}
}

func TestNormalizeStringIdempotent(t *testing.T) {
	var cases []normalizeCase
	loadFixture(t, "normalize", "keys", &cases)

	for _, tt := range cases {
		once := NormalizeString(tt.In)
		assert.Equal(t, once, NormalizeString(once), "input %q", tt.In)
	}
}

func TestNormalizeStringLeavesNonASCII(t *testing.T) {
	assert.Equal(t, "überCool", NormalizeString("über cool"))
	assert.Equal(t, "ÜberCool", NormalizeString("ÜberCool"))
}

func TestNormalizeKeys(t *testing.T) {
	input := map[string]any{
		"server name": "web",
		"listen-on": []any{
			map[string]any{"host_name": "a", "port": 80},
			"plain",
		},
		"nested.map": map[string]any{
			"deep key": map[string]any{"deeper-key": true},
		},
	}

	got := NormalizeKeys(input)

	want := map[string]any{
		"serverName": "web",
		"listenOn": []any{
			map[string]any{"hostName": "a", "port": 80},
			"plain",
		},
		"nestedMap": map[string]any{
			"deepKey": map[string]any{"deeperKey": true},
		},
	}
	assert.Equal(t, want, got)

	// The input is left alone.
	assert.Contains(t, input, "server name")
	assert.Contains(t, input["nested.map"], "deep key")
}

func TestNormalizeKeysRemovesDelimiters(t *testing.T) {
	input := keyData()
	got, ok := NormalizeKeys(input).(map[string]any)
	require.True(t, ok)

	for k := range got {
		assert.False(t, strings.ContainsAny(k, ` _-\/.`), "key %q still has a delimiter", k)
	}
	for raw, want := range input {
		assert.Contains(t, got, want, "raw key %q", raw)
	}
	assert.Equal(t, got, NormalizeKeys(got))
}

func TestNormalizeKeysScalars(t *testing.T) {
	assert.Equal(t, "a b", NormalizeKeys("a b"))
	assert.Equal(t, 42, NormalizeKeys(42))
	assert.Nil(t, NormalizeKeys(nil))
}

func TestNormalizeKeysCollision(t *testing.T) {
	// "test-one" sorts after "test one", so its value wins.
	got := NormalizeKeys(map[string]any{"test-one": "first", "test one": "second"})
	assert.Equal(t, map[string]any{"testOne": "first"}, got)
}

func TestNormalizeKeysDepthLimit(t *testing.T) {
	var tree any = "leaf"
	for i := 0; i < MaxDepth+10; i++ {
		tree = map[string]any{"some key": tree}
	}

	got := NormalizeKeys(tree)
	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "someKey")
}

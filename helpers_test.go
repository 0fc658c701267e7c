package databag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// loadFixture decodes testdata/<dir>/<name>.yaml into v.
func loadFixture(t *testing.T, dir, name string, v any) {
	t.Helper()
	path := filepath.Join("testdata", dir, name+".yaml")

	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)
	require.NoError(t, yaml.Unmarshal(data, v), "failed to parse %s", path)
}

// sampleData is the input used by most store tests.
func sampleData() map[string]any {
	return map[string]any{
		"test one":  "1",
		"test-two":  "2",
		"testThree": "3",
		"test four": map[string]any{
			"nested one": "4-1",
		},
	}
}

// keyData maps raw keys to the key each normalizes to.
func keyData() map[string]any {
	return map[string]any{
		"test one":    "testOne",
		"test-two":    "testTwo",
		"testThree":   "testThree",
		" test four ": "testFour",
		"Test five":   "testFive",
		"test SIX":    "testSIX",
		"test.seven":  "testSeven",
	}
}

package databag

import (
	"reflect"
	"sort"
)

// MaxDepth bounds every recursive walk over a tree. Subtrees nested deeper
// than this are treated as opaque values.
const MaxDepth = 512

// copyTree returns a deep copy of mappings and sequences in v.
// Scalars and any other values are shared.
func copyTree(v any) any {
	return copyValue(v, 0)
}

func copyValue(v any, depth int) any {
	if depth >= MaxDepth {
		return v
	}
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val, depth)
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = copyValue(item, depth+1)
		}
		return result
	default:
		return v
	}
}

func copyMap(m map[string]any, depth int) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = copyValue(v, depth+1)
	}
	return result
}

// isEmpty reports whether v counts as missing when applying defaults:
// nil, false, numeric zero, and empty strings, slices and maps.
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

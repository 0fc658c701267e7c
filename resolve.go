package databag

import "strings"

// Resolve looks up key in haystack. Three strategies are tried in order and
// the first that succeeds wins:
//
//  1. key is a literal key of the haystack mapping, even if it contains
//     dots or brackets;
//  2. key contains a dot: each dot-separated segment must name a key of the
//     mapping reached so far;
//  3. key contains a bracket: key is read as a property path, see GetPath.
//
// A key with no dot and no bracket is only ever matched literally.
func Resolve(haystack any, key string) (any, bool) {
	if m, ok := haystack.(map[string]any); ok {
		if v, ok := m[key]; ok {
			return v, true
		}
	}

	if strings.Contains(key, ".") {
		if v, ok := resolveDotted(haystack, key); ok {
			return v, true
		}
	}

	if strings.Contains(key, "[") {
		if v, err := GetPath(haystack, key); err == nil {
			return v, true
		}
	}

	return nil, false
}

// resolveDotted walks mapping keys separated by dots. Any missing segment
// fails the whole lookup.
func resolveDotted(haystack any, key string) (any, bool) {
	cur := haystack
	for _, seg := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

package databag

import "strings"

// NormalizeKeys returns a copy of tree with every mapping key converted by
// NormalizeString. Sequences are walked element by element; their indices
// are left alone. Any other value is returned unchanged.
//
// Keys are visited in sorted order, so when two keys normalize to the same
// name the value of the later one wins.
func NormalizeKeys(tree any) any {
	return normalizeValue(tree, 0)
}

func normalizeValue(v any, depth int) any {
	if depth >= MaxDepth {
		return v
	}
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for _, k := range sortedKeys(val) {
			result[NormalizeString(k)] = normalizeValue(val[k], depth+1)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = normalizeValue(item, depth+1)
		}
		return result
	default:
		return v
	}
}

// NormalizeString converts s to camelCase.
//
// Every word following a delimiter (space, underscore, hyphen, slash,
// backslash or period) is capitalized and the delimiters are removed. The
// first letter is then lowercased, unless s opens with two capital letters
// (or is a single capital letter) and the result still reads as an acronym:
//
//	"test one"  -> "testOne"
//	"test-two"  -> "testTwo"
//	"URLPath"   -> "URLPath"
//	"ID"        -> "ID"
//	"A"         -> "A"
//
// Only ASCII letters change case.
func NormalizeString(s string) string {
	acronym := allUpper(s[:min(2, len(s))])

	var b strings.Builder
	b.Grow(len(s))
	capNext := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDelimiter(c) {
			capNext = true
			continue
		}
		if capNext {
			c = toUpper(c)
			capNext = false
		}
		b.WriteByte(c)
	}

	out := b.String()
	if out == "" {
		return out
	}
	if !acronym || (!allUpper(out) && !(len(out) > 1 && isUpper(out[1]))) {
		out = string(toLower(out[0])) + out[1:]
	}
	return out
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '_', '-', '\\', '/', '.':
		return true
	}
	return false
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// allUpper reports whether s is made only of capital letters.
func allUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isUpper(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}

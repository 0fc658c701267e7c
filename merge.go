package databag

// Merge returns the top-level union of a and b. On a key collision the value
// from b replaces the one from a whole; nested mappings are not combined.
// Neither input is modified.
func Merge(a, b map[string]any) map[string]any {
	result := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		result[k] = v
	}
	for k, v := range b {
		result[k] = v
	}
	return result
}

// MergeDeep merges b into a recursively:
//   - Both mappings: keys are merged, recursively
//   - Otherwise: the value from b wins
//
// MergeDeep(MergeDeep(A, B), C) == MergeDeep(A, MergeDeep(B, C))
func MergeDeep(a, b map[string]any) map[string]any {
	return mergeMap(a, b, 0)
}

func mergeMap(a, b map[string]any, depth int) map[string]any {
	result := make(map[string]any, len(a)+len(b))

	for k, v := range a {
		result[k] = v
	}

	for k, v := range b {
		if existing, ok := result[k]; ok {
			result[k] = mergeValues(existing, v, depth+1)
		} else {
			result[k] = v
		}
	}

	return result
}

func mergeValues(a, b any, depth int) any {
	aMap, aOk := a.(map[string]any)
	bMap, bOk := b.(map[string]any)

	if aOk && bOk && depth < MaxDepth {
		return mergeMap(aMap, bMap, depth)
	}

	return b
}

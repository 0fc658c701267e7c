package databag

// SkippedDefault is a default value that could not be written, usually
// because a scalar sits where the path needs a mapping or sequence.
type SkippedDefault struct {
	Path  string
	Value any
	Err   error
}

// ApplyDefaults returns a copy of data in which every leaf of defaults is
// filled in wherever data has no value or an empty one (nil, false, zero,
// empty string or empty collection). Paths that cannot be written are
// skipped; use ApplyDefaultsReport to see them.
func ApplyDefaults(data, defaults map[string]any) map[string]any {
	result, _ := ApplyDefaultsReport(data, defaults)
	return result
}

// ApplyDefaultsReport is ApplyDefaults that also returns the defaults it had
// to skip, in the order they were tried.
func ApplyDefaultsReport(data, defaults map[string]any) (map[string]any, []SkippedDefault) {
	return applyDefaults(copyMap(data, 0), defaults)
}

// applyDefaults writes into data in place. Containers it has to create
// take the kind they have in defaults.
func applyDefaults(data, defaults map[string]any) (map[string]any, []SkippedDefault) {
	if data == nil {
		data = map[string]any{}
	}
	var skipped []SkippedDefault
	for _, leaf := range Leaves(defaults) {
		path := leaf.Path.String()
		if current, err := leaf.Path.get(data, path); err == nil && !isEmpty(current) {
			continue
		}
		fill := Leaf{Path: leaf.Path, Value: copyTree(leaf.Value), Sequence: leaf.Sequence}
		if _, err := SetLeaf(data, fill); err != nil {
			skipped = append(skipped, SkippedDefault{Path: path, Value: leaf.Value, Err: err})
		}
	}
	return data, skipped
}

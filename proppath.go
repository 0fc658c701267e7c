package databag

import (
	"strconv"
	"strings"
)

// PropertyPath is a parsed bracket path such as "[server][ports][0]".
// Each segment is a mapping key, or a non-negative index when the value
// being read is a sequence.
type PropertyPath []string

// ParsePropertyPath parses a bracket path. Every segment must be wrapped in
// brackets, must not be empty and must not contain brackets itself; no text
// may appear between or around the segments.
func ParsePropertyPath(path string) (PropertyPath, error) {
	if path == "" {
		return nil, &PathError{Path: path, Err: ErrInvalidPath}
	}

	var segments PropertyPath
	rest := path
	for rest != "" {
		if rest[0] != '[' {
			return nil, &PathError{Path: path, Segment: rest, Err: ErrInvalidPath}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, &PathError{Path: path, Segment: rest, Err: ErrInvalidPath}
		}
		seg := rest[1:end]
		if seg == "" || strings.IndexByte(seg, '[') >= 0 {
			return nil, &PathError{Path: path, Segment: rest[:end+1], Err: ErrInvalidPath}
		}
		segments = append(segments, seg)
		rest = rest[end+1:]
	}
	return segments, nil
}

// String formats the path back into bracket notation.
func (p PropertyPath) String() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('[')
		b.WriteString(seg)
		b.WriteByte(']')
	}
	return b.String()
}

// GetPath reads the value at a bracket path. Missing keys, bad or
// out-of-range indices and scalars in the middle of the path are errors.
func GetPath(tree any, path string) (any, error) {
	segments, err := ParsePropertyPath(path)
	if err != nil {
		return nil, err
	}
	return segments.get(tree, path)
}

// IsReadable reports whether GetPath would succeed.
func IsReadable(tree any, path string) bool {
	_, err := GetPath(tree, path)
	return err == nil
}

func (p PropertyPath) get(tree any, path string) (any, error) {
	cur := tree
	for _, seg := range p {
		switch c := cur.(type) {
		case map[string]any:
			v, ok := c[seg]
			if !ok {
				return nil, &PathError{Path: path, Segment: seg, Err: ErrPathNotFound}
			}
			cur = v
		case []any:
			idx, ok := parseIndex(seg)
			if !ok {
				return nil, &PathError{Path: path, Segment: seg, Err: ErrInvalidIndex}
			}
			if idx >= len(c) {
				return nil, &PathError{Path: path, Segment: seg, Err: ErrIndexOutOfRange}
			}
			cur = c[idx]
		default:
			return nil, &PathError{Path: path, Segment: seg, Err: ErrNotIndexable}
		}
	}
	return cur, nil
}

// SetPath writes value at a bracket path and returns the updated tree.
//
// Missing containers along the way are created: a sequence when the segment
// is index 0, a mapping otherwise. Writing one past the end of a sequence
// appends to it. Mappings are updated in place; the returned tree must be
// used because sequences may be reallocated and a nil tree is replaced.
func SetPath(tree any, path string, value any) (any, error) {
	segments, err := ParsePropertyPath(path)
	if err != nil {
		return tree, err
	}
	return setSegments(tree, segments, nil, value, path)
}

// SetLeaf writes leaf.Value at leaf.Path and returns the updated tree. It
// behaves like SetPath, except that missing containers take their kind from
// leaf.Sequence, and segments need no bracket escaping. When leaf.Sequence
// does not match the length of leaf.Path, SetPath's rule applies.
func SetLeaf(tree any, leaf Leaf) (any, error) {
	kinds := leaf.Sequence
	if len(kinds) != len(leaf.Path) {
		kinds = nil
	}
	return setSegments(tree, leaf.Path, kinds, leaf.Value, leaf.Path.String())
}

// setSegments walks segments, creating missing containers. kinds, when not
// nil, holds one entry per segment telling whether it indexes a sequence.
func setSegments(node any, segments PropertyPath, kinds []bool, value any, path string) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	seg, rest := segments[0], segments[1:]
	var restKinds []bool
	if kinds != nil {
		restKinds = kinds[1:]
	}

	switch c := node.(type) {
	case nil:
		if startsSequence(seg, kinds) {
			return setSegments([]any{}, segments, kinds, value, path)
		}
		return setSegments(map[string]any{}, segments, kinds, value, path)

	case map[string]any:
		child, err := setSegments(c[seg], rest, restKinds, value, path)
		if err != nil {
			return c, err
		}
		c[seg] = child
		return c, nil

	case []any:
		idx, ok := parseIndex(seg)
		if !ok {
			return c, &PathError{Path: path, Segment: seg, Err: ErrInvalidIndex}
		}
		switch {
		case idx < len(c):
			child, err := setSegments(c[idx], rest, restKinds, value, path)
			if err != nil {
				return c, err
			}
			c[idx] = child
			return c, nil
		case idx == len(c):
			child, err := setSegments(nil, rest, restKinds, value, path)
			if err != nil {
				return c, err
			}
			return append(c, child), nil
		default:
			return c, &PathError{Path: path, Segment: seg, Err: ErrIndexOutOfRange}
		}

	default:
		return node, &PathError{Path: path, Segment: seg, Err: ErrNotIndexable}
	}
}

// startsSequence decides the kind of a container created for seg.
func startsSequence(seg string, kinds []bool) bool {
	if kinds != nil {
		return kinds[0]
	}
	idx, ok := parseIndex(seg)
	return ok && idx == 0
}

// parseIndex accepts canonical non-negative decimal integers only, so "01"
// and "+1" stay mapping keys.
func parseIndex(seg string) (int, bool) {
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 || strconv.Itoa(idx) != seg {
		return 0, false
	}
	return idx, true
}

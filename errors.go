package databag

import (
	"errors"
	"fmt"
)

// ErrDataNotFound matches every *DataNotFoundError.
var ErrDataNotFound = errors.New("data not found")

// Property path errors.
var (
	ErrInvalidPath     = errors.New("invalid property path")
	ErrPathNotFound    = errors.New("key not found")
	ErrInvalidIndex    = errors.New("invalid sequence index")
	ErrIndexOutOfRange = errors.New("sequence index out of range")
	ErrNotIndexable    = errors.New("value is not a mapping or sequence")
)

// DataNotFoundError is returned when a key cannot be resolved and the caller
// did not supply a default.
type DataNotFoundError struct {
	Key   string
	Owner string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("no data item with the key %q can be found in %s; check your key name or provide a default value", e.Key, e.Owner)
}

// Is makes errors.Is(err, ErrDataNotFound) hold.
func (e *DataNotFoundError) Is(target error) bool {
	return target == ErrDataNotFound
}

// PathError reports where a property path could not be read or written.
type PathError struct {
	Path    string
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("property path %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("property path %q at %q: %v", e.Path, e.Segment, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

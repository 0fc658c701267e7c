// Package databag gives structured access to a nested bag of key/value data,
// such as decoded configuration or request input.
//
// A Store keeps two copies of the data it is given:
//
//   - raw: the input exactly as supplied
//   - normalized: the input with defaults filled in and every mapping key
//     converted to camelCase
//
// Values are read by literal key, dot path ("server.host") or bracket path
// ("[server][ports][0]"), with or without a default:
//
//	s := databag.New(databag.WithOwner(cfg))
//	s.SetData(map[string]any{"log level": "debug"})
//	lvl, err := s.GetData(databag.Path("logLevel"))
//	port := s.GetDataOr(databag.Path("server.port"), 8080)
//
// Trees are built from map[string]any, []any and scalar values. The engine
// underneath the Store (NormalizeKeys, Flatten, Resolve, ApplyDefaults,
// Merge) is exported for use on plain trees.
package databag

// Key selects what GetData and friends return. It is either a Path or a
// Paths.
type Key interface {
	isKey()
}

// Path addresses a single value by literal key, dot path or bracket path.
type Path string

// Paths maps output keys to the paths whose values they receive. Reading a
// Paths yields a map[string]any with the same output keys.
type Paths map[string]string

func (Path) isKey()  {}
func (Paths) isKey() {}

// Accessor is the read side of a Store. Types that own a Store can expose
// it, or embed *Store, to satisfy Accessor.
type Accessor interface {
	Data() map[string]any
	RawData() map[string]any
	GetData(key Key) (any, error)
	GetDataOr(key Key, def any) any
	GetRawData(key Key) (any, error)
	GetRawDataOr(key Key, def any) any
	HasData(key string) bool
	HasRawData(key string) bool
}

var _ Accessor = (*Store)(nil)

package databag

import (
	"fmt"
	"log/slog"
)

// Store holds a raw and a normalized copy of a data tree.
//
// A Store is not safe for concurrent use.
type Store struct {
	raw      map[string]any
	data     map[string]any
	defaults func() map[string]any
	owner    string
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithDefaults sets the function supplying default values. It is called on
// every SetData and MergeData that applies defaults. Default leaves are
// addressed with the input's own key names, before normalization.
func WithDefaults(fn func() map[string]any) Option {
	return func(s *Store) {
		if fn != nil {
			s.defaults = fn
		}
	}
}

// WithOwner names the value owning the store in DataNotFoundError, using
// its type name.
func WithOwner(owner any) Option {
	return func(s *Store) {
		s.owner = fmt.Sprintf("%T", owner)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		raw:      map[string]any{},
		data:     map[string]any{},
		defaults: noDefaults,
		logger:   slog.New(slog.DiscardHandler),
	}
	s.owner = fmt.Sprintf("%T", s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func noDefaults() map[string]any {
	return nil
}

// ProcessOption controls how SetData and MergeData process their input.
type ProcessOption func(*processConfig)

type processConfig struct {
	normalizeKeys bool
	applyDefaults bool
	deepMerge     bool
}

// SkipKeyNormalization keeps the input's key names in the normalized copy.
func SkipKeyNormalization() ProcessOption {
	return func(c *processConfig) { c.normalizeKeys = false }
}

// SkipDefaults leaves missing values missing.
func SkipDefaults() ProcessOption {
	return func(c *processConfig) { c.applyDefaults = false }
}

// DeepMerge makes MergeData combine nested mappings recursively instead of
// replacing colliding top-level values. SetData ignores it.
func DeepMerge() ProcessOption {
	return func(c *processConfig) { c.deepMerge = true }
}

func newProcessConfig(opts []ProcessOption) processConfig {
	cfg := processConfig{normalizeKeys: true, applyDefaults: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// SetData replaces the store's contents with input.
func (s *Store) SetData(input map[string]any, opts ...ProcessOption) *Store {
	cfg := newProcessConfig(opts)
	s.raw = copyMap(input, 0)
	s.data = s.process(input, cfg)
	s.logger.Debug("databag: data set", "owner", s.owner, "keys", len(s.raw))
	return s
}

// MergeData adds input to the store's contents. Top-level keys in input
// replace the existing ones, unless DeepMerge is given.
func (s *Store) MergeData(input map[string]any, opts ...ProcessOption) *Store {
	cfg := newProcessConfig(opts)
	merge := Merge
	if cfg.deepMerge {
		merge = MergeDeep
	}
	s.raw = merge(s.raw, copyMap(input, 0))
	s.data = merge(s.data, s.process(input, cfg))
	s.logger.Debug("databag: data merged", "owner", s.owner, "keys", len(input), "deep", cfg.deepMerge)
	return s
}

// process runs input through the defaults and normalization steps. input
// is never modified.
func (s *Store) process(input map[string]any, cfg processConfig) map[string]any {
	data := copyMap(input, 0)

	if cfg.applyDefaults {
		if defaults := s.defaults(); len(defaults) > 0 {
			var skipped []SkippedDefault
			data, skipped = applyDefaults(data, defaults)
			for _, sk := range skipped {
				s.logger.Debug("databag: default skipped", "owner", s.owner, "path", sk.Path, "err", sk.Err)
			}
		}
	}

	if cfg.normalizeKeys {
		data = normalizeValue(data, 0).(map[string]any)
	}
	return data
}

// Data returns the whole normalized tree. The map is owned by the store and
// must not be modified.
func (s *Store) Data() map[string]any {
	return s.data
}

// RawData returns the whole raw tree. The map is owned by the store and
// must not be modified.
func (s *Store) RawData() map[string]any {
	return s.raw
}

// GetData reads key from the normalized tree. A Path that cannot be
// resolved yields a *DataNotFoundError. A Paths never fails: entries that
// cannot be resolved are nil.
func (s *Store) GetData(key Key) (any, error) {
	return s.get(s.data, key, nil, false)
}

// GetDataOr reads key from the normalized tree, returning def for anything
// that cannot be resolved. With a Paths key, a map[string]any def supplies
// per-entry defaults by output key; any other def is shared by all entries.
func (s *Store) GetDataOr(key Key, def any) any {
	v, _ := s.get(s.data, key, def, true)
	return v
}

// GetRawData is GetData on the raw tree.
func (s *Store) GetRawData(key Key) (any, error) {
	return s.get(s.raw, key, nil, false)
}

// GetRawDataOr is GetDataOr on the raw tree.
func (s *Store) GetRawDataOr(key Key, def any) any {
	v, _ := s.get(s.raw, key, def, true)
	return v
}

// HasData reports whether key resolves in the normalized tree.
func (s *Store) HasData(key string) bool {
	_, ok := Resolve(s.data, key)
	return ok
}

// HasRawData reports whether key resolves in the raw tree.
func (s *Store) HasRawData(key string) bool {
	_, ok := Resolve(s.raw, key)
	return ok
}

func (s *Store) get(tree map[string]any, key Key, def any, hasDefault bool) (any, error) {
	switch k := key.(type) {
	case nil:
		return tree, nil
	case Path:
		if v, ok := Resolve(tree, string(k)); ok {
			return v, nil
		}
		if hasDefault {
			return def, nil
		}
		return nil, &DataNotFoundError{Key: string(k), Owner: s.owner}
	case Paths:
		defs, _ := def.(map[string]any)
		result := make(map[string]any, len(k))
		for outKey, p := range k {
			entryDef := def
			if d, ok := defs[outKey]; ok {
				entryDef = d
			}
			result[outKey], _ = s.get(tree, Path(p), entryDef, true)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("databag: unsupported key type %T", key)
	}
}

package tmpl

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/go-version"
)

var ErrUnknownVersion = errors.New("no templates for version")

// Set is the immutable collection of templates and flags for one target version.
type Set struct {
	name      string
	version   *version.Version
	templates map[string]*Template
	flags     map[string]bool
}

// NewSet builds a set from slot values, which must be strings (templates) or
// bools (flags). name must be a version number such as "1.15".
func NewSet(name string, slots map[string]any) (*Set, error) {
	v, err := version.NewVersion(name)
	if err != nil {
		return nil, fmt.Errorf("tmpl: set %s: %w", name, err)
	}
	s := &Set{
		name:      name,
		version:   v,
		templates: make(map[string]*Template),
		flags:     make(map[string]bool),
	}
	for slot, raw := range slots {
		switch x := raw.(type) {
		case string:
			s.templates[slot] = Compile(x)
		case bool:
			s.flags[slot] = x
		default:
			return nil, fmt.Errorf("tmpl: set %s: slot %s has unsupported type %T", name, slot, raw)
		}
	}
	return s, nil
}

// MustSet is like NewSet but panics on error. For package-level template tables.
func MustSet(name string, slots map[string]any) *Set {
	s, err := NewSet(name, slots)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the version key of the set.
func (s *Set) Name() string {
	return s.name
}

// Template returns the compiled template for slot.
func (s *Set) Template(slot string) (*Template, bool) {
	t, ok := s.templates[slot]
	return t, ok
}

// Flag returns a boolean slot. Missing flags are false.
func (s *Set) Flag(slot string) bool {
	return s.flags[slot]
}

// Registry selects template sets by project version key.
type Registry struct {
	sets []*Set // ascending by version
}

// NewRegistry returns a registry over sets.
func NewRegistry(sets ...*Set) *Registry {
	r := &Registry{sets: append([]*Set(nil), sets...)}
	sort.Slice(r.sets, func(i, j int) bool {
		return r.sets[i].version.LessThan(r.sets[j].version)
	})
	return r
}

// Resolve returns the set named key, or else the newest set whose version is not
// greater than key. An empty key resolves to the newest set.
func (r *Registry) Resolve(key string) (*Set, error) {
	if len(r.sets) == 0 {
		return nil, fmt.Errorf("tmpl: resolve %q: %w", key, ErrUnknownVersion)
	}
	if key == "" {
		return r.sets[len(r.sets)-1], nil
	}
	for _, s := range r.sets {
		if s.name == key {
			return s, nil
		}
	}
	want, err := version.NewVersion(key)
	if err != nil {
		return nil, fmt.Errorf("tmpl: resolve %q: %w", key, ErrUnknownVersion)
	}
	for i := len(r.sets) - 1; i >= 0; i-- {
		if r.sets[i].version.Compare(want) <= 0 {
			return r.sets[i], nil
		}
	}
	return nil, fmt.Errorf("tmpl: resolve %q: %w", key, ErrUnknownVersion)
}

// Versions lists the registered version keys in ascending order.
func (r *Registry) Versions() []string {
	names := make([]string, len(r.sets))
	for i, s := range r.sets {
		names[i] = s.name
	}
	return names
}

package views

import (
	_ "embed"
	"errors"
	"fmt"
	"iter"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultViewID is the view the Home breadcrumb points at
	DefaultViewID = "dashboard"

	// UnknownTitle labels any id missing from the registry
	UnknownTitle = "Unknown"
)

var (
	ErrEmptyID     = errors.New("view id must not be empty")
	ErrDuplicateID = errors.New("duplicate view id")
)

//go:embed views.yaml
var catalogYAML []byte

// Descriptor is the static metadata for one navigable destination
type Descriptor struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type catalog struct {
	Views []Descriptor `yaml:"views"`
}

// Registry is an immutable, ordered catalog of view descriptors.
// It is safe for concurrent reads.
type Registry struct {
	entries []Descriptor
	index   map[string]int
}

// New builds a registry from descriptors, keeping their order.
func New(entries []Descriptor) (*Registry, error) {
	r := &Registry{
		entries: make([]Descriptor, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, d := range entries {
		if d.ID == "" {
			return nil, ErrEmptyID
		}
		if _, dup := r.index[d.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		r.index[d.ID] = len(r.entries)
		r.entries = append(r.entries, d)
	}
	return r, nil
}

// Parse decodes a YAML catalog of the form `views: [{id, title, description}]`.
func Parse(data []byte) (*Registry, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse view catalog: %w", err)
	}
	return New(c.Views)
}

// Default returns the registry built from the embedded catalog.
func Default() *Registry {
	r, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded view catalog: %v", err))
	}
	return r
}

// Lookup returns the descriptor for id
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.entries[i], true
}

// Title returns the registered title for id, or UnknownTitle.
func (r *Registry) Title(id string) string {
	if d, ok := r.Lookup(id); ok {
		return d.Title
	}
	return UnknownTitle
}

// All returns a copy of every descriptor in registry order
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered views
func (r *Registry) Len() int {
	return len(r.entries)
}

// Matches yields, in registry order, every descriptor whose title or
// description contains query case-insensitively. The sequence is recomputed
// on every iteration.
func (r *Registry) Matches(query string) iter.Seq[Descriptor] {
	needle := strings.ToLower(query)
	return func(yield func(Descriptor) bool) {
		for _, d := range r.entries {
			if !strings.Contains(strings.ToLower(d.Title), needle) &&
				!strings.Contains(strings.ToLower(d.Description), needle) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

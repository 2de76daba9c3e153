package analyze

import (
	"errors"
	"fmt"
)

// ErrUnknownAnalyzerID is returned when registry lookup fails.
var ErrUnknownAnalyzerID = errors.New("unknown analyzer id")

// ErrDuplicateAnalyzerID is returned when registry receives duplicate IDs.
var ErrDuplicateAnalyzerID = errors.New("duplicate analyzer id")

// Descriptor contains stable analyzer metadata.
type Descriptor struct {
	ID          string
	Description string
}

// Registry stores analyzer metadata with deterministic ordering. The set of
// registered analyzers is fixed at construction; lookups are read-only.
type Registry struct {
	ordered []Descriptor
	index   map[string]Descriptor
}

// NewRegistry creates a registry from analyzer descriptors.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	ordered := make([]Descriptor, 0, len(descriptors))
	index := make(map[string]Descriptor, len(descriptors))

	for _, descriptor := range descriptors {
		if _, exists := index[descriptor.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAnalyzerID, descriptor.ID)
		}

		index[descriptor.ID] = descriptor
		ordered = append(ordered, descriptor)
	}

	return &Registry{ordered: ordered, index: index}, nil
}

// All returns all descriptors in stable order.
func (r *Registry) All() []Descriptor {
	descriptors := make([]Descriptor, len(r.ordered))
	copy(descriptors, r.ordered)

	return descriptors
}

// Descriptor returns analyzer metadata for the given ID.
func (r *Registry) Descriptor(id string) (Descriptor, bool) {
	descriptor, ok := r.index[id]

	return descriptor, ok
}

// SelectedIDs validates the requested IDs, or returns all IDs when the
// request is empty. Provided order is preserved.
func (r *Registry) SelectedIDs(ids []string) ([]string, error) {
	if len(ids) == 0 {
		all := make([]string, 0, len(r.ordered))
		for _, descriptor := range r.ordered {
			all = append(all, descriptor.ID)
		}

		return all, nil
	}

	selected := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := r.index[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAnalyzerID, id)
		}

		selected = append(selected, id)
	}

	return selected, nil
}

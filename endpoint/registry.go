package endpoint

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnrecognizedOperation is returned when no descriptor carries the operation id.
	ErrUnrecognizedOperation = errors.New("unrecognized operation")
	// ErrAmbiguousOperation is returned when more than one descriptor carries the operation id.
	ErrAmbiguousOperation = errors.New("ambiguous operation")
)

// Find resolves an operation id within a descriptor table.
func Find(endpoints []Descriptor, operationID string) (Descriptor, error) {
	var (
		found Descriptor
		count int
	)
	for _, ep := range endpoints {
		if ep.OperationID == operationID {
			found = ep
			count++
		}
	}
	switch count {
	case 0:
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnrecognizedOperation, operationID)
	case 1:
		return found, nil
	default:
		return Descriptor{}, fmt.Errorf("%w: %s matches %d endpoints", ErrAmbiguousOperation, operationID, count)
	}
}

// Registry indexes descriptor tables by operation id. Tables are added once at
// startup; lookups are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string][]Descriptor
	order []string
}

// NewRegistry creates a registry seeded with the given tables.
func NewRegistry(tables ...[]Descriptor) *Registry {
	r := &Registry{byID: make(map[string][]Descriptor)}
	for _, t := range tables {
		r.Add(t...)
	}
	return r
}

// Default returns a registry holding every table compiled into this package.
func Default() *Registry {
	return NewRegistry(All()...)
}

// All returns the compiled-in descriptor tables.
func All() [][]Descriptor {
	return [][]Descriptor{
		OAuth2Endpoints,
		ThreatGraphEndpoints,
		CSPMRegistrationEndpoints,
		EventStreamsEndpoints,
		SensorUpdatePoliciesEndpoints,
		FalconContainerEndpoints,
		SensorDownloadEndpoints,
	}
}

// Add registers descriptors. A duplicate operation id is kept so that Lookup
// reports the ambiguity instead of silently preferring one entry.
func (r *Registry) Add(descriptors ...Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range descriptors {
		if _, ok := r.byID[d.OperationID]; !ok {
			r.order = append(r.order, d.OperationID)
		}
		r.byID[d.OperationID] = append(r.byID[d.OperationID], d)
	}
}

// Lookup returns the single descriptor registered for operationID.
func (r *Registry) Lookup(operationID string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Find(r.byID[operationID], operationID)
}

// Operations lists registered operation ids in registration order, optionally
// restricted to a tag.
func (r *Registry) Operations(tag string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, id := range r.order {
		if tag == "" || r.byID[id][0].Tag == tag {
			out = append(out, id)
		}
	}
	return out
}

// Tags returns the sorted set of tags present in the registry.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uniq := map[string]struct{}{}
	for _, ds := range r.byID {
		for _, d := range ds {
			uniq[d.Tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(uniq))
	for t := range uniq {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of distinct operation ids.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

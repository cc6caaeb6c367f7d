package dfd

// Registry holds the typed DFD elements, flows, and trust boundaries of a
// single model. Insertion order is preserved so that diagram output and
// threat enumeration stay deterministic across runs.
type Registry struct {
	elements   []*Element
	flows      []*Flow
	boundaries []*Boundary

	elementIndex map[string]*Element
	flowIndex    map[string]*Flow
}

// NewRegistry creates an empty element registry.
func NewRegistry() *Registry {
	return &Registry{
		elementIndex: make(map[string]*Element),
		flowIndex:    make(map[string]*Flow),
	}
}

// AddElement registers an element. Fails with ErrDuplicateIdentifier if the
// id is already taken by another element or flow.
func (r *Registry) AddElement(e *Element) error {
	if r.hasID(e.ID) {
		return duplicateErr("AddElement", "element", e.ID)
	}
	r.elements = append(r.elements, e)
	r.elementIndex[e.ID] = e
	return nil
}

// Element looks up an element by id. Fails with ErrNotFound if absent.
func (r *Registry) Element(id string) (*Element, error) {
	e, ok := r.elementIndex[id]
	if !ok {
		return nil, notFoundErr("Element", "element", id)
	}
	return e, nil
}

// AddFlow registers a dataflow. Both endpoints must already be registered
// elements; a missing endpoint fails with ErrUnknownReference. Endpoint
// checks are eager because a flow without nodes cannot be drawn or
// enumerated, unlike threat cross-references which are validated lazily.
func (r *Registry) AddFlow(f *Flow) error {
	if r.hasID(f.ID) {
		return duplicateErr("AddFlow", "flow", f.ID)
	}
	if _, ok := r.elementIndex[f.FirstNode]; !ok {
		return unknownRefErr("AddFlow", "flow endpoint", f.FirstNode)
	}
	if _, ok := r.elementIndex[f.SecondNode]; !ok {
		return unknownRefErr("AddFlow", "flow endpoint", f.SecondNode)
	}
	r.flows = append(r.flows, f)
	r.flowIndex[f.ID] = f
	return nil
}

// Flow looks up a flow by id. Fails with ErrNotFound if absent.
func (r *Registry) Flow(id string) (*Flow, error) {
	f, ok := r.flowIndex[id]
	if !ok {
		return nil, notFoundErr("Flow", "flow", id)
	}
	return f, nil
}

// HasNode reports whether the id names a registered element or flow.
// Threat dfd_element references may point at either.
func (r *Registry) HasNode(id string) bool {
	return r.hasID(id)
}

// AddBoundary registers a trust boundary. Every member must be a registered
// element; an unregistered member fails with ErrUnknownReference.
func (r *Registry) AddBoundary(b *Boundary) error {
	for _, m := range b.Members {
		if _, ok := r.elementIndex[m]; !ok {
			return unknownRefErr("AddBoundary", "boundary member", m)
		}
	}
	r.boundaries = append(r.boundaries, b)
	return nil
}

// Elements returns the registered elements in insertion order.
func (r *Registry) Elements() []*Element {
	return r.elements
}

// Flows returns the registered flows in insertion order.
func (r *Registry) Flows() []*Flow {
	return r.flows
}

// Boundaries returns the registered boundaries in insertion order.
func (r *Registry) Boundaries() []*Boundary {
	return r.boundaries
}

// BoundariesOf returns the ids of every boundary directly containing the
// element id, in declaration order. An element may sit in several
// overlapping boundaries; an element in none is unbound. Ids are used
// rather than names because boundary names are not required to be unique.
func (r *Registry) BoundariesOf(id string) []string {
	var ids []string
	for _, b := range r.boundaries {
		if b.Contains(id) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

func (r *Registry) hasID(id string) bool {
	if _, ok := r.elementIndex[id]; ok {
		return true
	}
	_, ok := r.flowIndex[id]
	return ok
}

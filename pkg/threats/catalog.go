package threats

import (
	"fmt"

	"github.com/dd0wney/cluso-threatmap/pkg/dfd"
)

// Catalog holds the threats of one model, keyed by identifier, in
// insertion order. Threats with no identifier get the lowest unused
// sequential id of the form THREAT{n}.
type Catalog struct {
	threats []*Threat
	index   map[string]*Threat
	nextID  int
}

// NewCatalog creates an empty threat catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]*Threat), nextID: 1}
}

// Add inserts a threat. An empty id is assigned automatically; an explicit
// id that is already present fails with ErrDuplicateIdentifier and leaves
// the catalog unchanged. Child threat and mitigation references are not
// validated here; forward references are allowed until check time.
func (c *Catalog) Add(t *Threat) error {
	if t.ID == "" {
		t.ID = c.allocateID()
	} else if _, ok := c.index[t.ID]; ok {
		return &dfd.ModelError{Op: "AddThreat", Entity: "threat", ID: t.ID, Cause: dfd.ErrDuplicateIdentifier}
	}
	c.threats = append(c.threats, t)
	c.index[t.ID] = t
	return nil
}

// Get looks up a threat by id. Fails with ErrNotFound if absent.
func (c *Catalog) Get(id string) (*Threat, error) {
	t, ok := c.index[id]
	if !ok {
		return nil, &dfd.ModelError{Op: "GetThreat", Entity: "threat", ID: id, Cause: dfd.ErrNotFound}
	}
	return t, nil
}

// Has reports whether the id names a cataloged threat.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Threats returns the cataloged threats in insertion order.
func (c *Catalog) Threats() []*Threat {
	return c.threats
}

// Len returns the number of cataloged threats.
func (c *Catalog) Len() int {
	return len(c.threats)
}

// allocateID returns the lowest THREAT{n} not yet in use. Explicit ids of
// the same form are skipped over so generated ids never collide.
func (c *Catalog) allocateID() string {
	for {
		id := fmt.Sprintf("THREAT%d", c.nextID)
		c.nextID++
		if _, ok := c.index[id]; !ok {
			return id
		}
	}
}

// MitigationCatalog holds the mitigations of one model, keyed by
// identifier, in insertion order. Auto-assigned ids use the MITIG{n} form.
type MitigationCatalog struct {
	mitigations []*Mitigation
	index       map[string]*Mitigation
	nextID      int
}

// NewMitigationCatalog creates an empty mitigation catalog.
func NewMitigationCatalog() *MitigationCatalog {
	return &MitigationCatalog{index: make(map[string]*Mitigation), nextID: 1}
}

// Add inserts a mitigation, assigning an id when absent. An explicit
// duplicate fails with ErrDuplicateIdentifier.
func (c *MitigationCatalog) Add(m *Mitigation) error {
	if m.ID == "" {
		m.ID = c.allocateID()
	} else if _, ok := c.index[m.ID]; ok {
		return &dfd.ModelError{Op: "AddMitigation", Entity: "mitigation", ID: m.ID, Cause: dfd.ErrDuplicateIdentifier}
	}
	c.mitigations = append(c.mitigations, m)
	c.index[m.ID] = m
	return nil
}

// Get looks up a mitigation by id. Fails with ErrNotFound if absent.
func (c *MitigationCatalog) Get(id string) (*Mitigation, error) {
	m, ok := c.index[id]
	if !ok {
		return nil, &dfd.ModelError{Op: "GetMitigation", Entity: "mitigation", ID: id, Cause: dfd.ErrNotFound}
	}
	return m, nil
}

// Has reports whether the id names a cataloged mitigation.
func (c *MitigationCatalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Mitigations returns the cataloged mitigations in insertion order.
func (c *MitigationCatalog) Mitigations() []*Mitigation {
	return c.mitigations
}

func (c *MitigationCatalog) allocateID() string {
	for {
		id := fmt.Sprintf("MITIG%d", c.nextID)
		c.nextID++
		if _, ok := c.index[id]; !ok {
			return id
		}
	}
}

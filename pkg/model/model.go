// Package model owns a single threat model: the DFD element registry, the
// threat and mitigation catalogs, and the read-mostly operations over them
// (threat generation, lint, rendering views). There is no package-level
// state; every model instance is independent.
package model

import (
	"github.com/dd0wney/cluso-threatmap/pkg/dfd"
	"github.com/dd0wney/cluso-threatmap/pkg/enumeration"
	"github.com/dd0wney/cluso-threatmap/pkg/logging"
	"github.com/dd0wney/cluso-threatmap/pkg/threats"
)

// ThreatModel is the aggregate root.
type ThreatModel struct {
	Name        string
	Description string

	registry    *dfd.Registry
	catalog     *threats.Catalog
	mitigations *threats.MitigationCatalog
	logger      logging.Logger
}

// New creates an empty threat model.
func New(name string) *ThreatModel {
	return &ThreatModel{
		Name:        name,
		registry:    dfd.NewRegistry(),
		catalog:     threats.NewCatalog(),
		mitigations: threats.NewMitigationCatalog(),
		logger:      logging.NewNopLogger(),
	}
}

// SetLogger attaches a logger. The zero behavior is silence.
func (tm *ThreatModel) SetLogger(logger logging.Logger) {
	tm.logger = logger.With(logging.Model(tm.Name))
}

// AddElement registers a DFD element.
func (tm *ThreatModel) AddElement(e *dfd.Element) error {
	return tm.registry.AddElement(e)
}

// AddFlow registers a dataflow between existing elements.
func (tm *ThreatModel) AddFlow(f *dfd.Flow) error {
	return tm.registry.AddFlow(f)
}

// AddBoundary registers a trust boundary over existing elements.
func (tm *ThreatModel) AddBoundary(b *dfd.Boundary) error {
	return tm.registry.AddBoundary(b)
}

// AddThreat catalogs a threat, assigning a sequential id when absent.
func (tm *ThreatModel) AddThreat(t *threats.Threat) error {
	return tm.catalog.Add(t)
}

// AddMitigation catalogs a mitigation, assigning a sequential id when absent.
func (tm *ThreatModel) AddMitigation(m *threats.Mitigation) error {
	return tm.mitigations.Add(m)
}

// Element looks up a DFD element by id.
func (tm *ThreatModel) Element(id string) (*dfd.Element, error) {
	return tm.registry.Element(id)
}

// Flow looks up a dataflow by id.
func (tm *ThreatModel) Flow(id string) (*dfd.Flow, error) {
	return tm.registry.Flow(id)
}

// Threat looks up a threat by id.
func (tm *ThreatModel) Threat(id string) (*threats.Threat, error) {
	return tm.catalog.Get(id)
}

// Mitigation looks up a mitigation by id.
func (tm *ThreatModel) Mitigation(id string) (*threats.Mitigation, error) {
	return tm.mitigations.Get(id)
}

// Elements returns the DFD elements in declaration order.
func (tm *ThreatModel) Elements() []*dfd.Element { return tm.registry.Elements() }

// Flows returns the dataflows in declaration order.
func (tm *ThreatModel) Flows() []*dfd.Flow { return tm.registry.Flows() }

// Boundaries returns the trust boundaries in declaration order.
func (tm *ThreatModel) Boundaries() []*dfd.Boundary { return tm.registry.Boundaries() }

// Threats returns the cataloged threats in declaration order.
func (tm *ThreatModel) Threats() []*threats.Threat { return tm.catalog.Threats() }

// Mitigations returns the cataloged mitigations in declaration order.
func (tm *ThreatModel) Mitigations() []*threats.Mitigation { return tm.mitigations.Mitigations() }

// Registry exposes the element registry to enumeration engines.
func (tm *ThreatModel) Registry() *dfd.Registry { return tm.registry }

// GenerateThreats runs an enumeration engine and catalogs everything it
// proposes. The returned slice holds the newly added threats, with their
// assigned ids; an empty slice means the engine found nothing new.
func (tm *ThreatModel) GenerateThreats(engine enumeration.Engine) ([]*threats.Threat, error) {
	generated := engine.Generate(tm.registry, tm.catalog.Threats())
	for _, t := range generated {
		if err := tm.catalog.Add(t); err != nil {
			return nil, err
		}
		tm.logger.Debug("generated threat",
			logging.ThreatID(t.ID),
			logging.String("category", t.Category.String()),
			logging.ElementID(t.DFDElement))
	}
	tm.logger.Info("threat generation finished", logging.Count(len(generated)))
	return generated, nil
}

// AttackForest derives the attack-tree edge list from child-threat links.
func (tm *ThreatModel) AttackForest() threats.Forest {
	return threats.AttackForest(tm.catalog.Threats())
}

// Diagram is the view handed to diagram renderers: ordered nodes, flows,
// and boundaries, with no back-channel into the model.
type Diagram struct {
	Name       string
	Elements   []*dfd.Element
	Flows      []*dfd.Flow
	Boundaries []*dfd.Boundary
}

// Diagram returns the box-and-arrow view of the model.
func (tm *ThreatModel) Diagram() Diagram {
	return Diagram{
		Name:       tm.Name,
		Elements:   tm.registry.Elements(),
		Flows:      tm.registry.Flows(),
		Boundaries: tm.registry.Boundaries(),
	}
}

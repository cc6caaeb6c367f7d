package threats

import "fmt"

// Threat represents a possible attack or "thing that can go wrong".
// Each threat applies to at most one DFD element or flow; an attack that
// applies to several elements gets one threat per element. Child threats
// are attacks that become possible once this one succeeds and form the
// edges of the attack tree.
//
// ChildThreats and Mitigations hold identifiers rather than pointers.
// They may reference entries that do not exist yet; models are built
// incrementally and the checker validates references lazily.
type Threat struct {
	ID                 string
	Name               string
	Description        string
	Status             Status
	Category           Category
	BaseImpact         *Score
	BaseExploitability *Score
	DFDElement         string
	ChildThreats       []string
	Mitigations        []string
}

// BaseRisk returns impact x exploitability, or false when either score
// is unset.
func (t *Threat) BaseRisk() (int, bool) {
	if t.BaseImpact == nil || t.BaseExploitability == nil {
		return 0, false
	}
	return int(*t.BaseImpact) * int(*t.BaseExploitability), true
}

// AddChildThreat links a child threat by identifier.
func (t *Threat) AddChildThreat(id string) {
	t.ChildThreats = append(t.ChildThreats, id)
}

// AddMitigation links a mitigation by identifier.
func (t *Threat) AddMitigation(id string) {
	t.Mitigations = append(t.Mitigations, id)
}

func (t *Threat) String() string {
	return fmt.Sprintf("<Threat %s: %s>", t.ID, t.Name)
}

// Mitigation represents a countermeasure. One mitigation can be applied
// to any number of threats; it never references back.
type Mitigation struct {
	ID          string
	Name        string
	Description string
}

func (m *Mitigation) String() string {
	return fmt.Sprintf("<Mitigation %s: %s>", m.ID, m.Name)
}

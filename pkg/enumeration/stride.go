// Package enumeration proposes candidate threats for a DFD. Engines are
// pure: they read the element registry and the existing catalog and return
// new threat stubs for the caller to insert, so the same model always
// enumerates to the same result.
package enumeration

import (
	"fmt"

	"github.com/dd0wney/cluso-threatmap/pkg/dfd"
	"github.com/dd0wney/cluso-threatmap/pkg/threats"
)

// Engine generates new candidate threats from the current registry and
// the threats already on file. Implementations must not mutate either.
type Engine interface {
	Generate(reg *dfd.Registry, existing []*threats.Threat) []*threats.Threat
}

// elementCategories maps each element variant to the STRIDE categories
// that apply to it. A datastore has no identity to spoof and no privilege
// to escalate; an external entity only originates claims that can be
// forged or denied.
var elementCategories = map[dfd.ElementType][]threats.Category{
	dfd.TypeProcess: {
		threats.CategorySpoofing,
		threats.CategoryTampering,
		threats.CategoryRepudiation,
		threats.CategoryInformationDisclosure,
		threats.CategoryDenialOfService,
		threats.CategoryElevationOfPrivilege,
	},
	dfd.TypeDatastore: {
		threats.CategoryTampering,
		threats.CategoryRepudiation,
		threats.CategoryInformationDisclosure,
		threats.CategoryDenialOfService,
	},
	dfd.TypeExternalEntity: {
		threats.CategorySpoofing,
		threats.CategoryRepudiation,
	},
}

// flowCategories always apply to a dataflow. Spoofing is added separately
// when the flow crosses a trust boundary.
var flowCategories = []threats.Category{
	threats.CategoryTampering,
	threats.CategoryInformationDisclosure,
	threats.CategoryDenialOfService,
}

// NaiveSTRIDE is a data-driven STRIDE enumeration: it walks elements in
// declaration order, then flows, emitting one stub per applicable category
// not already covered by an existing threat on the same DFD element.
type NaiveSTRIDE struct{}

// NewNaiveSTRIDE creates the naive STRIDE engine.
func NewNaiveSTRIDE() *NaiveSTRIDE {
	return &NaiveSTRIDE{}
}

// Generate implements Engine.
func (n *NaiveSTRIDE) Generate(reg *dfd.Registry, existing []*threats.Threat) []*threats.Threat {
	// Deduplication is by (dfd_element, category), not by name or text.
	// Intentionally coarse: it may under- or over-generate compared to
	// manual analysis.
	seen := make(map[string]map[threats.Category]bool)
	mark := func(elementID string, cat threats.Category) bool {
		cats := seen[elementID]
		if cats == nil {
			cats = make(map[threats.Category]bool)
			seen[elementID] = cats
		}
		if cats[cat] {
			return false
		}
		cats[cat] = true
		return true
	}
	for _, t := range existing {
		if t.DFDElement != "" {
			mark(t.DFDElement, t.Category)
		}
	}

	var generated []*threats.Threat
	emit := func(elementID, name string, cat threats.Category) {
		if !mark(elementID, cat) {
			return
		}
		generated = append(generated, &threats.Threat{
			Name:       fmt.Sprintf("%s threat against %s", cat, name),
			Status:     threats.StatusUnmanaged,
			Category:   cat,
			DFDElement: elementID,
		})
	}

	for _, e := range reg.Elements() {
		for _, cat := range elementCategories[e.Type] {
			emit(e.ID, e.Name, cat)
		}
	}

	for _, f := range reg.Flows() {
		for _, cat := range flowCategories {
			emit(f.ID, f.Name, cat)
		}
		if crossesBoundary(reg, f) {
			emit(f.ID, f.Name, threats.CategorySpoofing)
		}
	}

	return generated
}

// crossesBoundary reports whether the flow's endpoints sit in different
// trust boundary sets. One bound and one unbound endpoint is a crossing;
// two unbound endpoints are not.
func crossesBoundary(reg *dfd.Registry, f *dfd.Flow) bool {
	first := reg.BoundariesOf(f.FirstNode)
	second := reg.BoundariesOf(f.SecondNode)
	if len(first) != len(second) {
		return true
	}
	set := make(map[string]bool, len(first))
	for _, id := range first {
		set[id] = true
	}
	for _, id := range second {
		if !set[id] {
			return true
		}
	}
	return false
}

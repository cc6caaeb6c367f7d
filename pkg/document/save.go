package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-threatmap/pkg/model"
	"github.com/dd0wney/cluso-threatmap/pkg/threats"
)

// Save writes the model's document to disk, overwriting the whole file.
func Save(tm *model.ThreatModel, path string) error {
	data, err := Marshal(tm)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Marshal flattens the model back to document bytes. Entities appear in
// declaration order so saved files diff cleanly under version control.
func Marshal(tm *model.ThreatModel) ([]byte, error) {
	doc := Flatten(tm)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal model %q: %w", tm.Name, err)
	}
	return data, nil
}

// Flatten converts the model to its document form.
func Flatten(tm *model.ThreatModel) *Document {
	doc := &Document{
		Name:        tm.Name,
		Description: tm.Description,
	}

	for _, e := range tm.Elements() {
		doc.Nodes = append(doc.Nodes, NodeEntry{
			ID:          e.ID,
			Name:        e.Name,
			Type:        e.Type.String(),
			Description: e.Description,
		})
	}

	for _, f := range tm.Flows() {
		doc.Dataflows = append(doc.Dataflows, DataflowEntry{
			ID:            f.ID,
			Name:          f.Name,
			FirstNode:     f.FirstNode,
			SecondNode:    f.SecondNode,
			Bidirectional: f.Bidirectional,
			Description:   f.Description,
		})
	}

	for _, b := range tm.Boundaries() {
		doc.Boundaries = append(doc.Boundaries, BoundaryEntry{
			ID:          b.ID,
			Name:        b.Name,
			Members:     b.Members,
			Parent:      b.Parent,
			Description: b.Description,
		})
	}

	for _, t := range tm.Threats() {
		doc.Threats = append(doc.Threats, flattenThreat(t))
	}

	for _, m := range tm.Mitigations() {
		doc.Mitigations = append(doc.Mitigations, MitigationEntry{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
		})
	}

	return doc
}

func flattenThreat(t *threats.Threat) ThreatEntry {
	entry := ThreatEntry{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		Status:         t.Status.String(),
		ThreatCategory: t.Category.String(),
		DFDElement:     t.DFDElement,
		ChildThreats:   t.ChildThreats,
		Mitigations:    t.Mitigations,
	}
	if t.BaseImpact != nil {
		entry.BaseImpact = t.BaseImpact.String()
	}
	if t.BaseExploitability != nil {
		entry.BaseExploitability = t.BaseExploitability.String()
	}
	return entry
}

package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-threatmap/pkg/dfd"
	"github.com/dd0wney/cluso-threatmap/pkg/model"
	"github.com/dd0wney/cluso-threatmap/pkg/threats"
)

// Load reads a threat model document from disk. Whole-file read: there is
// no partial or streaming form of the document.
func Load(path string) (*model.ThreatModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	tm, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tm, nil
}

// Parse builds a threat model from document bytes. A schema violation
// (missing required field, unknown node type, unrecognized enum value)
// fails with ErrMalformedDocument and never yields a partial model.
func Parse(data []byte) (*model.ThreatModel, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", dfd.ErrMalformedDocument, err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", dfd.ErrMalformedDocument, err)
	}
	return buildModel(&doc)
}

func buildModel(doc *Document) (*model.ThreatModel, error) {
	tm := model.New(doc.Name)
	tm.Description = doc.Description

	for _, n := range doc.Nodes {
		typ, err := dfd.ParseElementType(n.Type)
		if err != nil {
			return nil, err
		}
		e := dfd.NewElement(n.Name, typ, n.ID)
		e.Description = n.Description
		if err := tm.AddElement(e); err != nil {
			return nil, err
		}
	}

	for _, d := range doc.Dataflows {
		f, err := dfd.NewFlow(d.Name, d.FirstNode, d.SecondNode, d.Bidirectional, d.ID)
		if err != nil {
			return nil, err
		}
		f.Description = d.Description
		if err := tm.AddFlow(f); err != nil {
			return nil, err
		}
	}

	for _, b := range doc.Boundaries {
		boundary := dfd.NewBoundary(b.Name, b.Members, b.ID)
		boundary.Parent = b.Parent
		boundary.Description = b.Description
		if err := tm.AddBoundary(boundary); err != nil {
			return nil, err
		}
	}

	for _, t := range doc.Threats {
		threat, err := mapThreat(t)
		if err != nil {
			return nil, err
		}
		if err := tm.AddThreat(threat); err != nil {
			return nil, err
		}
	}

	for _, m := range doc.Mitigations {
		mit := &threats.Mitigation{ID: m.ID, Name: m.Name, Description: m.Description}
		if err := tm.AddMitigation(mit); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// mapThreat converts one document entry, applying the enum defaults
// (Unmanaged, Unknown) exactly once, here.
func mapThreat(entry ThreatEntry) (*threats.Threat, error) {
	status, err := threats.ParseStatus(entry.Status)
	if err != nil {
		return nil, err
	}
	category, err := threats.ParseCategory(entry.ThreatCategory)
	if err != nil {
		return nil, err
	}

	t := &threats.Threat{
		ID:           entry.ID,
		Name:         entry.Name,
		Description:  entry.Description,
		Status:       status,
		Category:     category,
		DFDElement:   entry.DFDElement,
		ChildThreats: append([]string(nil), entry.ChildThreats...),
		Mitigations:  append([]string(nil), entry.Mitigations...),
	}

	if impact, ok, err := threats.ParseScore(entry.BaseImpact); err != nil {
		return nil, err
	} else if ok {
		t.BaseImpact = &impact
	}
	if exploitability, ok, err := threats.ParseScore(entry.BaseExploitability); err != nil {
		return nil, err
	} else if ok {
		t.BaseExploitability = &exploitability
	}

	return t, nil
}

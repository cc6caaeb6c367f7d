// Package document maps threat models to and from their on-disk YAML form.
// All defaulting (status, category) happens here at the mapping boundary,
// so consumers of the model never see absent enum values.
package document

import "github.com/go-playground/validator/v10"

// Document is the top-level YAML schema.
type Document struct {
	Name        string            `yaml:"name" validate:"required"`
	Description string            `yaml:"description,omitempty"`
	Nodes       []NodeEntry       `yaml:"nodes,omitempty" validate:"dive"`
	Dataflows   []DataflowEntry   `yaml:"dataflows,omitempty" validate:"dive"`
	Boundaries  []BoundaryEntry   `yaml:"boundaries,omitempty" validate:"dive"`
	Threats     []ThreatEntry     `yaml:"threats,omitempty" validate:"dive"`
	Mitigations []MitigationEntry `yaml:"mitigations,omitempty" validate:"dive"`
}

// NodeEntry is one DFD element.
type NodeEntry struct {
	ID          string `yaml:"id,omitempty"`
	Name        string `yaml:"name" validate:"required"`
	Type        string `yaml:"type" validate:"required,oneof=Process Datastore ExternalEntity"`
	Description string `yaml:"description,omitempty"`
}

// DataflowEntry is one directed edge between two node ids.
type DataflowEntry struct {
	ID            string `yaml:"id,omitempty"`
	Name          string `yaml:"name" validate:"required"`
	FirstNode     string `yaml:"first_node" validate:"required"`
	SecondNode    string `yaml:"second_node" validate:"required"`
	Bidirectional bool   `yaml:"bidirectional,omitempty"`
	Description   string `yaml:"description,omitempty"`
}

// BoundaryEntry is one trust boundary.
type BoundaryEntry struct {
	ID          string   `yaml:"id,omitempty"`
	Name        string   `yaml:"name" validate:"required"`
	Members     []string `yaml:"members,omitempty"`
	Parent      string   `yaml:"parent,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// ThreatEntry is one cataloged threat. Status, category, and scores are
// free-form strings here; the mapping layer parses them and rejects
// unrecognized values as malformed.
type ThreatEntry struct {
	ID                 string   `yaml:"id,omitempty"`
	Name               string   `yaml:"name" validate:"required"`
	Description        string   `yaml:"description,omitempty"`
	Status             string   `yaml:"status,omitempty"`
	BaseImpact         string   `yaml:"base_impact,omitempty"`
	BaseExploitability string   `yaml:"base_exploitability,omitempty"`
	ThreatCategory     string   `yaml:"threat_category,omitempty"`
	DFDElement         string   `yaml:"dfd_element,omitempty"`
	ChildThreats       []string `yaml:"child_threats,omitempty"`
	Mitigations        []string `yaml:"mitigations,omitempty"`
}

// MitigationEntry is one cataloged mitigation.
type MitigationEntry struct {
	ID          string `yaml:"id,omitempty"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description,omitempty"`
}

// validate is the shared schema validator instance
var validate = validator.New()

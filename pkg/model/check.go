package model

import (
	"fmt"

	"github.com/dd0wney/cluso-threatmap/pkg/logging"
	"github.com/dd0wney/cluso-threatmap/pkg/threats"
)

// Check lints the model and returns every violation plus an all-clear
// flag. It never mutates the model and never fails on model content;
// violations are data, not errors. Exactly three rules are applied; CI
// keys its exit code off the boolean, so the rule set is part of the
// contract:
//
//  1. any threat whose status is Unmanaged requires triage;
//  2. any child_threats entry must name a cataloged threat;
//  3. any mitigations entry must name a cataloged mitigation.
func (tm *ThreatModel) Check() ([]string, bool) {
	var violations []string

	for _, t := range tm.catalog.Threats() {
		if t.Status == threats.StatusUnmanaged {
			violations = append(violations,
				fmt.Sprintf("threat %s (%s) is unmanaged and requires triage", t.ID, t.Name))
		}
		for _, child := range t.ChildThreats {
			if !tm.catalog.Has(child) {
				violations = append(violations,
					fmt.Sprintf("threat %s references unknown child threat %s", t.ID, child))
			}
		}
		for _, m := range t.Mitigations {
			if !tm.mitigations.Has(m) {
				violations = append(violations,
					fmt.Sprintf("threat %s references unknown mitigation %s", t.ID, m))
			}
		}
	}

	passed := len(violations) == 0
	tm.logger.Info("check finished",
		logging.Count(len(violations)),
		logging.Bool("passed", passed))
	return violations, passed
}

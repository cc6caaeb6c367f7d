package threats

import (
	"fmt"

	"github.com/dd0wney/cluso-threatmap/pkg/dfd"
)

// Status is the triage state of a threat
type Status uint8

const (
	// StatusUnmanaged threats have not been triaged and fail lint
	StatusUnmanaged Status = iota
	StatusManagedInform
	StatusManagedTransferred
	StatusManagedAvoided
	StatusManagedAccepted
	StatusManagedMitigated
	StatusManagedPartiallyMitigated
	StatusOutOfScope
)

var statusNames = map[Status]string{
	StatusUnmanaged:                 "Unmanaged",
	StatusManagedInform:             "Managed: Inform",
	StatusManagedTransferred:        "Managed: Transferred",
	StatusManagedAvoided:            "Managed: Avoided",
	StatusManagedAccepted:           "Managed: Accepted",
	StatusManagedMitigated:          "Managed: Mitigated",
	StatusManagedPartiallyMitigated: "Managed: Partially Mitigated",
	StatusOutOfScope:                "Out of scope",
}

// String returns the document spelling of a status
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseStatus converts a document value to a Status. The empty string
// defaults to Unmanaged; anything unrecognized is a malformed document.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return StatusUnmanaged, nil
	}
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: unrecognized threat status %q", dfd.ErrMalformedDocument, s)
}

// Category is the STRIDE classification of a threat
type Category uint8

const (
	CategoryUnknown Category = iota
	CategorySpoofing
	CategoryTampering
	CategoryRepudiation
	CategoryInformationDisclosure
	CategoryDenialOfService
	CategoryElevationOfPrivilege
)

// String returns the document spelling of a category
func (c Category) String() string {
	switch c {
	case CategorySpoofing:
		return "Spoofing"
	case CategoryTampering:
		return "Tampering"
	case CategoryRepudiation:
		return "Repudiation"
	case CategoryInformationDisclosure:
		return "Information Disclosure"
	case CategoryDenialOfService:
		return "Denial of Service"
	case CategoryElevationOfPrivilege:
		return "Elevation of Privilege"
	default:
		return "Unknown"
	}
}

// ParseCategory converts a document value to a Category. The empty string
// defaults to Unknown. "Privilege Escalation" is the legacy spelling of
// Elevation of Privilege and is still accepted on load.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "":
		return CategoryUnknown, nil
	case "Spoofing":
		return CategorySpoofing, nil
	case "Tampering":
		return CategoryTampering, nil
	case "Repudiation":
		return CategoryRepudiation, nil
	case "Information Disclosure":
		return CategoryInformationDisclosure, nil
	case "Denial of Service":
		return CategoryDenialOfService, nil
	case "Elevation of Privilege", "Privilege Escalation":
		return CategoryElevationOfPrivilege, nil
	case "Unknown":
		return CategoryUnknown, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized threat category %q", dfd.ErrMalformedDocument, s)
	}
}

// Score is an ordinal rating used for threat impact and exploitability
type Score uint8

const (
	ScoreNone Score = iota
	ScoreVeryLow
	ScoreLow
	ScoreMedium
	ScoreHigh
	ScoreCritical
)

// String returns the document spelling of a score
func (s Score) String() string {
	switch s {
	case ScoreNone:
		return "None"
	case ScoreVeryLow:
		return "Very Low"
	case ScoreLow:
		return "Low"
	case ScoreMedium:
		return "Medium"
	case ScoreHigh:
		return "High"
	case ScoreCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// ParseScore converts a document value to a Score. The boolean reports
// whether a value was present; optional scores stay unset when absent.
func ParseScore(s string) (Score, bool, error) {
	switch s {
	case "":
		return 0, false, nil
	case "None":
		return ScoreNone, true, nil
	case "Very Low":
		return ScoreVeryLow, true, nil
	case "Low":
		return ScoreLow, true, nil
	case "Medium":
		return ScoreMedium, true, nil
	case "High":
		return ScoreHigh, true, nil
	case "Critical":
		return ScoreCritical, true, nil
	default:
		return 0, false, fmt.Errorf("%w: unrecognized score %q", dfd.ErrMalformedDocument, s)
	}
}

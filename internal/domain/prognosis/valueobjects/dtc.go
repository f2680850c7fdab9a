package valueobjects

import "strings"

// Severity classifies a diagnostic trouble code by impact.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

// DTCCategory groups diagnostic trouble codes by the vehicle system
// encoded in the code prefix.
type DTCCategory string

const (
	CategoryPowertrain DTCCategory = "Powertrain"
	CategoryBody       DTCCategory = "Body"
	CategoryChassis    DTCCategory = "Chassis"
	CategoryNetwork    DTCCategory = "Network"
	CategoryUnknown    DTCCategory = "Unknown"
)

// DTCSeverity returns the severity for a diagnostic trouble code.
// Powertrain codes are treated as high impact.
func DTCSeverity(code string) Severity {
	if strings.HasPrefix(code, "P") {
		return SeverityHigh
	}
	return SeverityMedium
}

// DTCCategoryOf maps a diagnostic trouble code to its system category
// using the standard OBD-II prefix letter.
func DTCCategoryOf(code string) DTCCategory {
	if code == "" {
		return CategoryUnknown
	}
	switch code[0] {
	case 'P':
		return CategoryPowertrain
	case 'B':
		return CategoryBody
	case 'C':
		return CategoryChassis
	case 'U':
		return CategoryNetwork
	default:
		return CategoryUnknown
	}
}

package extract

import "strings"

var severityPriority = map[string]int{
	SeverityCritical: 1,
	SeverityHigh:     2,
	SeverityMedium:   3,
	SeverityLow:      4,
}

// PriorityForSeverity maps a severity label to its numeric dispatch priority.
// Unknown labels rank as 3; on the extraction path Normalize coerces severity
// into the known set before priority is computed.
func PriorityForSeverity(severity string) int {
	if p, ok := severityPriority[strings.ToLower(strings.TrimSpace(severity))]; ok {
		return p
	}
	return 3
}

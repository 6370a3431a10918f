package extract

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

const (
	defaultPatientName   = "Patient"
	defaultPatientAge    = 45
	defaultCallerName    = "Caller"
	defaultEmergencyType = "Medical Emergency"
)

// DefaultRecord is the conservative fallback used whenever the model response
// cannot be parsed. It errs on the side of urgency.
func DefaultRecord() CallRecord {
	return CallRecord{
		PatientName:         defaultPatientName,
		PatientAge:          defaultPatientAge,
		PatientGender:       "unknown",
		PatientPhone:        "",
		EmergencyType:       defaultEmergencyType,
		Symptoms:            StringList{"Emergency reported"},
		Location:            "Location to be determined",
		Severity:            SeverityHigh,
		Priority:            2,
		CallerName:          defaultCallerName,
		CallerPhone:         "",
		SpecialRequirements: StringList{"Basic Life Support"},
		Consciousness:       "unknown",
		Breathing:           "unknown",
	}
}

// Normalize completes a candidate record so that every field is present and
// valid. It is deterministic and idempotent: Normalize(Normalize(r)) equals
// Normalize(r) for any candidate r.
func Normalize(rec CallRecord) CallRecord {
	rec.PatientName = strings.TrimSpace(rec.PatientName)
	if rec.PatientName == "" {
		rec.PatientName = defaultPatientName
	}

	if rec.PatientAge <= 0 {
		rec.PatientAge = defaultPatientAge
	}

	if strings.TrimSpace(rec.PatientGender) == "" {
		rec.PatientGender = "unknown"
	}

	rec.EmergencyType = strings.TrimSpace(rec.EmergencyType)
	if rec.EmergencyType == "" || strings.EqualFold(rec.EmergencyType, "unknown") {
		rec.EmergencyType = defaultEmergencyType
	}

	if len(rec.Symptoms) == 0 {
		rec.Symptoms = StringList{"Emergency reported - details to be confirmed"}
	}

	rec.Location = strings.TrimSpace(rec.Location)
	if rec.Location == "" {
		rec.Location = "Location to be confirmed by dispatcher"
	}

	rec.Severity = strings.ToLower(strings.TrimSpace(rec.Severity))
	if _, ok := severityPriority[rec.Severity]; !ok {
		rec.Severity = SeverityHigh
	}

	rec.CallerName = strings.TrimSpace(rec.CallerName)
	if rec.CallerName == "" {
		rec.CallerName = defaultCallerName
	}

	if len(rec.SpecialRequirements) == 0 {
		rec.SpecialRequirements = InferSpecialRequirements(rec.EmergencyType)
	}

	rec.Consciousness = normalizeVital(rec.Consciousness, "yes", "no")
	rec.Breathing = normalizeVital(rec.Breathing, "yes", "no", "difficulty")

	// Priority is derived, never trusted from the model.
	rec.Priority = PriorityForSeverity(rec.Severity)

	return rec
}

func normalizeVital(value string, allowed ...string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return "unknown"
}

// InferSpecialRequirements derives the medical support needed from the
// emergency type when the model supplied none.
func InferSpecialRequirements(emergencyType string) StringList {
	t := strings.ToLower(emergencyType)

	switch {
	case matchesKeyword(t, "heart", "cardiac"):
		return StringList{"Cardiac Care", "Defibrillator"}
	case matchesKeyword(t, "breath", "respiratory"):
		return StringList{"Oxygen Support", "Respiratory Care"}
	case matchesKeyword(t, "accident", "trauma"):
		return StringList{"Trauma Care", "Multiple Units"}
	case matchesKeyword(t, "stroke"):
		return StringList{"Stroke Protocol", "Critical Care"}
	default:
		return StringList{"Basic Life Support"}
	}
}

// matchesKeyword reports whether text mentions any of the keywords, tolerating
// a single-character transcription misspelling per word.
func matchesKeyword(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	for _, word := range strings.Fields(text) {
		for _, kw := range keywords {
			if levenshtein.ComputeDistance(word, kw) <= 1 {
				return true
			}
		}
	}

	return false
}

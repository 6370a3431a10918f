package extract

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// CallRecord is the structured view of a single emergency call. Every field is
// populated after Normalize; raw model output never leaves this package unchecked.
type CallRecord struct {
	PatientName         string     `json:"patient_name"`
	PatientAge          FlexInt    `json:"patient_age"`
	PatientGender       string     `json:"patient_gender"`
	PatientPhone        string     `json:"patient_phone"`
	EmergencyType       string     `json:"emergency_type"`
	Symptoms            StringList `json:"symptoms"`
	Location            string     `json:"location"`
	Severity            string     `json:"severity"`
	Priority            int        `json:"priority"`
	CallerName          string     `json:"caller_name"`
	CallerPhone         string     `json:"caller_phone"`
	SpecialRequirements StringList `json:"special_requirements"`
	Consciousness       string     `json:"consciousness"`
	Breathing           string     `json:"breathing"`
}

// FlexInt decodes from either a JSON number or a numeric string. Anything else
// decodes to zero so Normalize can apply the default instead of failing the
// whole record.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(n)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(int(n))
	return nil
}

// StringList decodes from either a JSON array of strings or a single string,
// which is promoted to a one-element list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*l = nil
			return nil
		}
		if strings.TrimSpace(s) == "" {
			*l = nil
			return nil
		}
		*l = StringList{s}
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	*l = StringList(items)
	return nil
}

package notify

import (
	"fmt"
	"strings"
)

func formatHospitalAssignment(a HospitalAssignment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🚨 *HOSPITAL ASSIGNMENT* - %s\n\n", a.AmbulanceID)
	fmt.Fprintf(&b, "🏥 *DESTINATION:* %s\n", a.HospitalName)
	fmt.Fprintf(&b, "📍 *ADDRESS:* %s", a.HospitalAddress)

	if a.PatientInfo != "" {
		fmt.Fprintf(&b, "\n👤 *PATIENT:* %s", a.PatientInfo)
	}
	if a.ETA != "" {
		fmt.Fprintf(&b, "\n⏱️ *ETA:* %s", a.ETA)
	}

	b.WriteString("\n\n⚠️ Please acknowledge receipt and proceed to destination.")

	return b.String()
}

func formatUpdate(ambulanceID, updateType, details string) string {
	return fmt.Sprintf("🚨 *%s* - %s\n\n%s\n\nPlease acknowledge and take necessary action.", updateType, ambulanceID, details)
}

package extract

import "fmt"

const systemPrompt = `You are an expert medical AI for emergency services. Extract information from calls and intelligently fill missing details using medical knowledge. When extracting phone numbers, recognize alternative phrases like "contact number", "mobile number", "cell number", "telephone", "number to reach", etc. Always provide specific, actionable information. Return ONLY valid JSON.`

const extractionPromptFormat = `You are an AI assistant helping emergency services extract and intelligently fill critical information from emergency call transcriptions.

Analyze the following emergency call transcription and extract information. If specific details are NOT mentioned in the call, use your medical knowledge to make reasonable assumptions based on the emergency type and symptoms described.

INSTRUCTIONS:
1. Extract information that IS mentioned in the call verbatim
2. For missing non-critical information (like exact age, specific names), make reasonable assumptions:
   - If age not mentioned but context suggests elderly/young, estimate appropriately (e.g., 65, 8, 45)
   - If patient name not mentioned, use generic placeholder like "Patient" or infer from context
   - If caller name not mentioned, use "Caller" or relationship (e.g., "Family Member", "Witness")
3. Emergency type MUST be specific (e.g., "Heart Attack", "Car Accident", "Stroke", "Breathing Difficulty")
4. Symptoms should be a comprehensive list based on what is described
5. Severity MUST be assessed based on the symptoms described (critical/high/medium/low)
6. Special requirements should be inferred from emergency type and symptoms
7. IMPORTANT - Phone/Contact Number Extraction:
   - Look for ANY mention of numbers: "phone", "contact", "mobile", "cell", "telephone", "number", "reach at", "call back"
   - If ONLY ONE number is mentioned, put it in BOTH patient_phone AND caller_phone
   - If multiple numbers are mentioned, try to determine which belongs to patient vs caller
   - If no number is mentioned at all, leave both phone fields as empty strings

Extract and fill the following in JSON format:

1. patient_name: Patient's name if mentioned, otherwise use "Patient" or infer from context
2. patient_age: Age if mentioned, otherwise estimate based on context (number, e.g., 55)
3. patient_gender: Gender if mentioned or inferred from context, otherwise "unknown"
4. patient_phone: Patient's phone number if mentioned, otherwise empty string
5. emergency_type: SPECIFIC type (e.g., "Heart Attack", "Severe Car Accident", "Respiratory Failure", "Stroke")
6. symptoms: Comprehensive list of all symptoms mentioned or implied (array of strings)
7. location: Full address if mentioned, otherwise describe location from context
8. severity: Based on symptoms - "critical" (life-threatening), "high" (serious), "medium" (urgent), "low" (non-urgent)
9. caller_name: Caller's name if mentioned, otherwise use relationship (e.g., "Spouse", "Neighbor", "Witness")
10. caller_phone: Caller's phone number if mentioned, otherwise empty string
11. special_requirements: Medical equipment/support needed based on emergency type (array, e.g., ["Cardiac Care", "Oxygen Support"])
12. consciousness: Patient conscious state (yes/no/unknown) - infer from description if not explicit
13. breathing: Breathing status (yes/no/difficulty/unknown) - infer from description if not explicit

Transcription:
%q

Return ONLY valid JSON. No markdown, no explanations, just the JSON object.`

func buildExtractionPrompt(transcription string) string {
	return fmt.Sprintf(extractionPromptFormat, transcription)
}

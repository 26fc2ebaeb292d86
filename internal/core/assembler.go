package core

import (
	"fmt"
	"strings"

	"medassist/internal/health"
	"medassist/internal/llm"
	"medassist/pkg"
)

// historyWindow bounds the replayed transcript in the flattened prompt
// shape.  The structured shape is bounded by the store's history limit
// instead.  Truncation always drops the oldest turns first.
const historyWindow = 5

// BuildMessages assembles the structured message sequence: one system
// message holding the persona (and the health profile when present),
// the stored turns replayed as alternating user/assistant messages, then
// the new user message.
func BuildMessages(profile map[string]any, history []pkg.Turn, message string) []llm.Message {
	system := PersonaPrompt
	if block := profileBlock(profile); block != "" {
		system += "\n\n" + block
	}
	messages := make([]llm.Message, 0, 2*len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	for _, turn := range history {
		messages = append(messages,
			llm.Message{Role: "user", Content: turn.Message},
			llm.Message{Role: "assistant", Content: turn.Response},
		)
	}
	return append(messages, llm.Message{Role: "user", Content: message})
}

// BuildPrompt flattens the persona, the optional profile and history
// blocks, and the new query into a single prompt string.  At most the
// last historyWindow turns are replayed; both context blocks are omitted
// entirely when absent.
func BuildPrompt(profile map[string]any, history []pkg.Turn, query string) string {
	var b strings.Builder
	b.WriteString(PersonaPrompt)

	if block := profileBlock(profile); block != "" {
		b.WriteString("\n\n")
		b.WriteString(block)
	}

	if len(history) > 0 {
		if len(history) > historyWindow {
			history = history[len(history)-historyWindow:]
		}
		b.WriteString("\n\nPrevious Consultation History:\n")
		for _, turn := range history {
			b.WriteString("Patient: " + turn.Message + "\n")
			b.WriteString("Doctor: " + turn.Response + "\n\n")
		}
	}

	b.WriteString("\n\nCurrent Consultation:\nPatient Query: " + query + "\n\n")
	b.WriteString("Provide a comprehensive medical response following the response structure.")
	return b.String()
}

// SymptomAnalysisPrompt asks for guidance on described symptoms, with the
// profile folded in when present.
func SymptomAnalysisPrompt(symptoms string, profile map[string]any) string {
	var b strings.Builder
	b.WriteString(PersonaPrompt)
	b.WriteString("\n\nThe patient describes the following symptoms: " + symptoms + "\n\n")
	writeProfileOrNone(&b, profile)
	b.WriteString(`
Please provide:
1. Possible general explanations for these symptoms
2. When to seek immediate medical attention
3. General self-care recommendations
4. Important questions to ask a healthcare provider

Emphasize the importance of professional medical consultation.`)
	return b.String()
}

// RecommendationsPrompt asks for general wellness recommendations based
// on the health profile alone.
func RecommendationsPrompt(profile map[string]any) string {
	var b strings.Builder
	b.WriteString(PersonaPrompt)
	b.WriteString("\n\nBased on the following health information, provide general wellness recommendations.\n\n")
	writeProfileOrNone(&b, profile)
	b.WriteString(`
Please provide:
1. General lifestyle recommendations
2. Preventive care suggestions
3. Areas to discuss with healthcare providers
4. General wellness tips

Keep recommendations general and emphasize consulting healthcare professionals.`)
	return b.String()
}

// MedicationInfoPrompt asks for a medication profile: classification,
// indications, dosing, contraindications, interactions, side effects.
func MedicationInfoPrompt(medication string) string {
	return PersonaPrompt + "\n\nProvide a comprehensive medication profile for: " + medication + `

Include:
1. Drug classification and mechanism of action
2. Clinical indications
3. Typical adult dosing and administration details
4. Contraindications and major drug interactions
5. Common and serious side effects
6. Monitoring requirements and alternatives`
}

// FirstAidPrompt asks for step-by-step emergency first aid guidance.
func FirstAidPrompt(situation string) string {
	return PersonaPrompt + "\n\nProvide first aid guidance for: " + situation + `

Include:
1. Immediate step-by-step first aid measures
2. How to assess severity
3. Specific criteria for calling emergency services
4. What information to give emergency responders
5. Follow-up care after the immediate situation`
}

// profileBlock renders the present health-profile fields as a titled
// list, one "Field Name: value" line per field in allow-list order.  It
// returns the empty string when no field has a value, so the block is
// omitted entirely rather than rendered as placeholder text.
func profileBlock(profile map[string]any) string {
	if len(profile) == 0 {
		return ""
	}
	var lines []string
	for _, field := range health.Fields {
		value, ok := profile[field]
		if !ok {
			continue
		}
		rendered := renderValue(value)
		if rendered == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", fieldTitle(field), rendered))
	}
	if len(lines) == 0 {
		return ""
	}
	return "Patient Health Profile:\n" + strings.Join(lines, "\n")
}

func writeProfileOrNone(b *strings.Builder, profile map[string]any) {
	if block := profileBlock(profile); block != "" {
		b.WriteString(block + "\n")
	} else {
		b.WriteString("Health Information: Not provided\n")
	}
}

func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// fieldTitle turns an allow-list key like "medical_conditions" into
// "Medical Conditions".
func fieldTitle(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

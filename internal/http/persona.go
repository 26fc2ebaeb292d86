package http

// QuickAction is a canned shortcut: pressing it pre-fills the input with
// the fixed message and runs the normal turn sequence.
type QuickAction struct {
	Label   string
	Message string
}

// Persona parameterizes the single chat presentation.  The two stock
// configurations replace what used to be two near-duplicate front ends:
// same code path, different wording and shortcuts.
type Persona struct {
	Name    string
	Title   string
	Tagline string
	Actions []QuickAction
}

// StandardPersona is the general-audience configuration.
func StandardPersona() Persona {
	return Persona{
		Name:    "standard",
		Title:   "Medical Assistant",
		Tagline: "Ask general medical questions and get educational guidance.",
		Actions: []QuickAction{
			{Label: "First Aid", Message: "I need first aid advice for an emergency situation."},
			{Label: "Medication", Message: "I need information about a medication."},
			{Label: "Symptoms", Message: "I'm experiencing some symptoms and need guidance."},
			{Label: "When to See a Doctor", Message: "When should I see a doctor?"},
		},
	}
}

// ClinicalPersona is the consultation-oriented configuration.
func ClinicalPersona() Persona {
	return Persona{
		Name:    "clinical",
		Title:   "Clinical Consultation Assistant",
		Tagline: "Structured consultations with assessment, medications, and follow-up.",
		Actions: []QuickAction{
			{Label: "Comprehensive Consultation", Message: "I would like a comprehensive medical consultation for my symptoms."},
			{Label: "Medication Review", Message: "Please review a medication for indications, dosing, and interactions."},
			{Label: "Symptom Analysis", Message: "Please analyze my symptoms systematically."},
			{Label: "Treatment Options", Message: "What are the treatment options for my condition?"},
		},
	}
}

// PersonaByName resolves a configured persona name, defaulting to the
// standard configuration for anything unrecognized.
func PersonaByName(name string) Persona {
	if name == "clinical" {
		return ClinicalPersona()
	}
	return StandardPersona()
}

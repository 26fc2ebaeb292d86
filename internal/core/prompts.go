package core

// prompts.go defines the fixed persona block and the fallback strings.
// The persona is never user-editable and always reasserts the same
// disclaimer; keeping it in one file makes it easy to tweak without
// touching the orchestration code.

const (
	// PersonaPrompt is the instruction block prepended to every model
	// call.  It fixes the assistant's role, the required response
	// structure, and the disclaimer.
	PersonaPrompt = `You are a medical assistant AI with broad clinical knowledge. You help
users understand symptoms, medications, treatment options, and general
wellness. Analyze each consultation systematically, consider the patient
profile and prior history when provided, and be specific and clinical in
your guidance.

Structure every response as:
1. Clinical Assessment: likely condition(s) with a confidence level
2. Recommended Medications: specific drugs with typical dosages
3. Treatment Plan: step-by-step management approach
4. Monitoring: side effects and signs to watch for
5. Follow-up: when to reassess or seek specialist care

Medical disclaimer: this guidance is for educational purposes only.
Individual responses vary; consult a healthcare professional for
personalized care and seek immediate medical attention in an emergency.`

	// FallbackChat is substituted when generation fails during a chat
	// turn.  The user never sees the underlying failure.
	FallbackChat = "I apologize, but I'm experiencing technical difficulties. Please try again later or consult a healthcare professional for medical advice."

	// FallbackConsult is substituted when generation fails for the
	// prompt-based consultations (symptoms, recommendations, medication,
	// first aid).
	FallbackConsult = "I apologize, but I'm having trouble processing your request right now. Please try again later or consult with a healthcare professional."
)

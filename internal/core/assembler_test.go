package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"medassist/pkg"
)

func turnsFor(n int) []pkg.Turn {
	turns := make([]pkg.Turn, 0, n)
	for i := 1; i <= n; i++ {
		turns = append(turns, pkg.Turn{
			Message:  fmt.Sprintf("question %d", i),
			Response: fmt.Sprintf("answer %d", i),
		})
	}
	return turns
}

func TestBuildMessagesShape(t *testing.T) {
	history := turnsFor(2)
	msgs := BuildMessages(nil, history, "new question")

	require.Len(t, msgs, 6)
	require.Equal(t, "system", msgs[0].Role)
	require.Contains(t, msgs[0].Content, "Medical disclaimer")

	require.Equal(t, "user", msgs[1].Role)
	require.Equal(t, "question 1", msgs[1].Content)
	require.Equal(t, "assistant", msgs[2].Role)
	require.Equal(t, "answer 1", msgs[2].Content)
	require.Equal(t, "user", msgs[3].Role)
	require.Equal(t, "question 2", msgs[3].Content)
	require.Equal(t, "assistant", msgs[4].Role)

	require.Equal(t, "user", msgs[5].Role)
	require.Equal(t, "new question", msgs[5].Content)
}

func TestBuildMessagesIncludesProfileInSystem(t *testing.T) {
	profile := map[string]any{"age": 42, "medical_conditions": "hypertension"}
	msgs := BuildMessages(profile, nil, "q")
	require.Contains(t, msgs[0].Content, "Patient Health Profile:")
	require.Contains(t, msgs[0].Content, "Age: 42")
	require.Contains(t, msgs[0].Content, "Medical Conditions: hypertension")
}

func TestBuildPromptOmitsAbsentBlocks(t *testing.T) {
	prompt := BuildPrompt(nil, nil, "what causes headaches")
	require.NotContains(t, prompt, "Patient Health Profile")
	require.NotContains(t, prompt, "Previous Consultation History")
	require.Contains(t, prompt, "Patient Query: what causes headaches")
}

func TestBuildPromptRendersHistoryAsTranscript(t *testing.T) {
	prompt := BuildPrompt(nil, turnsFor(2), "q")
	require.Contains(t, prompt, "Previous Consultation History:")
	require.Contains(t, prompt, "Patient: question 1")
	require.Contains(t, prompt, "Doctor: answer 1")
	// Oldest turn renders before the newest.
	require.Less(t,
		strings.Index(prompt, "question 1"),
		strings.Index(prompt, "question 2"))
}

func TestBuildPromptDropsOldestBeyondWindow(t *testing.T) {
	prompt := BuildPrompt(nil, turnsFor(8), "q")
	// Only the last five turns survive; 1-3 are dropped.
	require.NotContains(t, prompt, "question 1\n")
	require.NotContains(t, prompt, "question 2\n")
	require.NotContains(t, prompt, "question 3\n")
	require.Contains(t, prompt, "question 4")
	require.Contains(t, prompt, "question 8")
}

func TestProfileBlockFieldOrderAndRendering(t *testing.T) {
	block := profileBlock(map[string]any{
		"symptoms":  []string{"fever", "cough"},
		"age":       30,
		"allergies": "none",
	})
	require.Contains(t, block, "- Age: 30")
	require.Contains(t, block, "- Allergies: none")
	require.Contains(t, block, "- Symptoms: fever, cough")
	// Allow-list order is stable regardless of map iteration.
	require.Less(t, strings.Index(block, "Age"), strings.Index(block, "Allergies"))
	require.Less(t, strings.Index(block, "Allergies"), strings.Index(block, "Symptoms"))
}

func TestProfileBlockEmpty(t *testing.T) {
	require.Empty(t, profileBlock(nil))
	require.Empty(t, profileBlock(map[string]any{"age": ""}))
}

func TestSymptomAnalysisPromptWithoutProfile(t *testing.T) {
	prompt := SymptomAnalysisPrompt("fever, chills", nil)
	require.Contains(t, prompt, "fever, chills")
	require.Contains(t, prompt, "Health Information: Not provided")
}

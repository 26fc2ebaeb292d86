package core

import (
	"context"

	"github.com/charmbracelet/log"

	"medassist/internal/health"
	"medassist/internal/llm"
	"medassist/internal/sanitize"
	"medassist/pkg"
)

const defaultHistoryLimit = 10

// Store is the conversation persistence surface the service depends on.
type Store interface {
	AppendTurn(ctx context.Context, sessionID, message, response string, msgType pkg.MessageType) (*pkg.Turn, error)
	History(ctx context.Context, sessionID string, limit int) ([]pkg.Turn, error)
	ClearHistory(ctx context.Context, sessionID string) error
}

// Service orchestrates a consultation turn: load history, assemble the
// context, call the model, persist the turn, return the response.  Steps
// run strictly in that order with no overlap within a session; across
// sessions calls are independent.
//
// Nothing below this layer substitutes fallback text.  The store and the
// LLM client return errors; the service converts them here so the end
// user only ever sees a substantive answer or one of the two fixed
// apology strings, while the cause is logged for the operator.
type Service struct {
	store        Store
	llm          llm.Client
	log          *log.Logger
	historyLimit int
	flatPrompt   bool
}

// NewService constructs a conversation service.  historyLimit bounds how
// many stored turns are replayed into the model context each turn.
func NewService(store Store, client llm.Client, logger *log.Logger, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Service{store: store, llm: client, log: logger, historyLimit: historyLimit}
}

// UseFlatPrompts switches Consult from the structured message sequence to
// a single flattened completion prompt.  Completion-style backends take
// the persona, profile, and replayed history folded into one string.
func (s *Service) UseFlatPrompts() {
	s.flatPrompt = true
}

// Result is what a completed turn hands back to the presentation layer.
type Result struct {
	// Response is the generated text, or the fallback string when
	// generation failed.
	Response string
	// Turn is the persisted record, nil when persistence failed.  The
	// response is still returned in that case; the stored history will
	// not show this turn.
	Turn *pkg.Turn
	// Emergency reports that the message matched an emergency keyword.
	// It is informational only; no routing happens on it.
	Emergency bool
	// Fallback reports that Response is an apology string rather than
	// generated text.
	Fallback bool
}

// Consult runs one chat turn for the session.  The default shape is the
// structured message sequence: persona plus profile, replayed history,
// then the new message.  With flat prompts enabled the same context goes
// out as one flattened prompt instead.
func (s *Service) Consult(ctx context.Context, sess *pkg.Session, message string) Result {
	query := sanitize.Text(message)
	return s.turn(ctx, sess, query, pkg.TypeMedicalQuery, FallbackChat,
		func(ctx context.Context, history []pkg.Turn) (string, error) {
			if s.flatPrompt {
				return s.llm.Complete(ctx, BuildPrompt(sess.Profile, history, query))
			}
			return s.llm.Chat(ctx, BuildMessages(sess.Profile, history, query))
		})
}

// AnalyzeSymptoms runs a symptom-analysis consultation using the
// flattened prompt shape.
func (s *Service) AnalyzeSymptoms(ctx context.Context, sess *pkg.Session, symptoms string) Result {
	clean := sanitize.Text(symptoms)
	return s.turn(ctx, sess, "Symptom analysis: "+clean, pkg.TypeSymptomAnalysis, FallbackConsult,
		func(ctx context.Context, _ []pkg.Turn) (string, error) {
			return s.llm.Complete(ctx, SymptomAnalysisPrompt(clean, sess.Profile))
		})
}

// Recommendations generates wellness recommendations from the session's
// health profile.
func (s *Service) Recommendations(ctx context.Context, sess *pkg.Session) Result {
	return s.turn(ctx, sess, "Health recommendations request", pkg.TypeRecommendations, FallbackConsult,
		func(ctx context.Context, _ []pkg.Turn) (string, error) {
			return s.llm.Complete(ctx, RecommendationsPrompt(sess.Profile))
		})
}

// MedicationInfo asks for a medication profile.
func (s *Service) MedicationInfo(ctx context.Context, sess *pkg.Session, medication string) Result {
	clean := sanitize.Text(medication)
	return s.turn(ctx, sess, "Medication information: "+clean, pkg.TypeMedicationInfo, FallbackConsult,
		func(ctx context.Context, _ []pkg.Turn) (string, error) {
			return s.llm.Complete(ctx, MedicationInfoPrompt(clean))
		})
}

// FirstAid asks for first aid guidance for a situation.
func (s *Service) FirstAid(ctx context.Context, sess *pkg.Session, situation string) Result {
	clean := sanitize.Text(situation)
	return s.turn(ctx, sess, "First aid: "+clean, pkg.TypeFirstAid, FallbackConsult,
		func(ctx context.Context, _ []pkg.Turn) (string, error) {
			return s.llm.Complete(ctx, FirstAidPrompt(clean))
		})
}

// turn is the shared pipeline.  The stored message is what lands in the
// conversation record; generate receives the replayed history and
// produces the response text.
func (s *Service) turn(ctx context.Context, sess *pkg.Session, stored string, msgType pkg.MessageType, fallback string, generate func(context.Context, []pkg.Turn) (string, error)) Result {
	emergency := sanitize.IsEmergency(stored)
	if emergency {
		s.log.Warn("emergency keywords in message", "session", sess.ID)
	}

	// The store is the single source of truth: history is re-read every
	// turn, there is no in-memory transcript buffer.  Unavailable history
	// degrades to "no prior context" and never blocks the turn.
	history, err := s.store.History(ctx, sess.ID, s.historyLimit)
	if err != nil {
		s.log.Error("history load failed, continuing without context", "session", sess.ID, "err", err)
		history = nil
	}

	response, err := generate(ctx, history)
	fellBack := false
	if err != nil {
		s.log.Error("generation failed, substituting fallback", "session", sess.ID, "type", msgType, "err", err)
		response = fallback
		fellBack = true
	}

	// A failed generation is still persisted with the fallback text so
	// the transcript never has a message without a response.
	turn, err := s.store.AppendTurn(ctx, sess.ID, stored, response, msgType)
	if err != nil {
		// The response is still returned; this turn just won't appear in
		// later history loads.
		s.log.Error("persist failed, turn not recorded", "session", sess.ID, "err", err)
		turn = nil
	}

	return Result{Response: response, Turn: turn, Emergency: emergency, Fallback: fellBack}
}

// History returns up to limit stored turns for the session, oldest first.
// Failures degrade to an empty transcript.
func (s *Service) History(ctx context.Context, sess *pkg.Session, limit int) []pkg.Turn {
	if limit <= 0 {
		limit = s.historyLimit
	}
	turns, err := s.store.History(ctx, sess.ID, limit)
	if err != nil {
		s.log.Error("history load failed", "session", sess.ID, "err", err)
		return nil
	}
	return turns
}

// ClearHistory deletes the session's stored turns and reports success.
func (s *Service) ClearHistory(ctx context.Context, sess *pkg.Session) bool {
	if err := s.store.ClearHistory(ctx, sess.ID); err != nil {
		s.log.Error("clear history failed", "session", sess.ID, "err", err)
		return false
	}
	return true
}

// UpdateProfile replaces the session's health profile wholesale with the
// validated allow-listed fields.
func (s *Service) UpdateProfile(sess *pkg.Session, info map[string]any) {
	sess.Profile = health.ValidateProfile(info)
}

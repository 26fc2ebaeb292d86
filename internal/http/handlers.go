package http

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"medassist/internal/core"
	"medassist/internal/health"
	"medassist/internal/sanitize"
	"medassist/pkg"
)

// ConversationService is the orchestration surface the handlers depend on.
type ConversationService interface {
	Consult(ctx context.Context, sess *pkg.Session, message string) core.Result
	AnalyzeSymptoms(ctx context.Context, sess *pkg.Session, symptoms string) core.Result
	Recommendations(ctx context.Context, sess *pkg.Session) core.Result
	MedicationInfo(ctx context.Context, sess *pkg.Session, medication string) core.Result
	FirstAid(ctx context.Context, sess *pkg.Session, situation string) core.Result
	History(ctx context.Context, sess *pkg.Session, limit int) []pkg.Turn
	ClearHistory(ctx context.Context, sess *pkg.Session) bool
	UpdateProfile(sess *pkg.Session, info map[string]any)
}

// Server bundles the dependencies required by the HTTP handlers.  It
// implements http.Handler so it can be passed to http.ListenAndServe.
type Server struct {
	Service   ConversationService
	Sessions  *SessionRegistry
	Templates *template.Template
	Persona   Persona
	Log       *log.Logger
}

// NewServer constructs a Server.  Templates are loaded from the
// internal/http/templates directory relative to the working directory.
func NewServer(service ConversationService, persona Persona, logger *log.Logger) (*Server, error) {
	tmplPath := filepath.Join("internal", "http", "templates", "*.html")
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"displayMessage": displayMessage,
		"displayTime":    displayTime,
	}).ParseGlob(tmplPath)
	if err != nil {
		return nil, err
	}
	return &Server{
		Service:   service,
		Sessions:  NewSessionRegistry(),
		Templates: tmpl,
		Persona:   persona,
		Log:       logger,
	}, nil
}

// ServeHTTP dispatches requests by path.  Minimal routing keeps the
// dependency surface small.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/sessions" && r.Method == http.MethodPost:
		s.handleCreateSession(w, r)

	case strings.HasPrefix(path, "/api/sessions/"):
		// /api/sessions/{id}/{action}
		parts := strings.Split(path, "/")
		if len(parts) != 5 {
			http.NotFound(w, r)
			return
		}
		s.dispatchSessionAction(w, r, parts[3], parts[4])

	case strings.HasPrefix(path, "/chat/sessions/") && r.Method == http.MethodGet:
		parts := strings.Split(path, "/")
		if len(parts) != 4 {
			http.NotFound(w, r)
			return
		}
		s.handleChatPage(w, r, parts[3])

	default:
		http.NotFound(w, r)
	}
}

func (s *Server) dispatchSessionAction(w http.ResponseWriter, r *http.Request, sessionID, action string) {
	sess := s.Sessions.Get(sessionID)
	switch {
	case action == "messages" && r.Method == http.MethodPost:
		s.handlePostMessage(w, r, sess)
	case action == "symptoms" && r.Method == http.MethodPost:
		s.handleSymptoms(w, r, sess)
	case action == "recommendations" && r.Method == http.MethodPost:
		res := s.Service.Recommendations(r.Context(), sess)
		writeTurnSnippet(w, "Health recommendations request", res.Response)
	case action == "medication" && r.Method == http.MethodPost:
		s.handleMedication(w, r, sess)
	case action == "first-aid" && r.Method == http.MethodPost:
		s.handleFirstAid(w, r, sess)
	case action == "history" && r.Method == http.MethodGet:
		s.handleHistory(w, r, sess)
	case action == "clear" && r.Method == http.MethodPost:
		s.handleClearHistory(w, r, sess)
	case action == "reset" && r.Method == http.MethodPost:
		s.handleResetSession(w, sessionID)
	case action == "profile" && (r.Method == http.MethodPut || r.Method == http.MethodPost):
		s.handleUpdateProfile(w, r, sess)
	default:
		http.NotFound(w, r)
	}
}

type createSessionRequest struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	HealthInfo map[string]any `json:"health_info"`
}

// handleCreateSession registers a fresh session.  Name and email are
// optional; a malformed email is a structured validation failure, not a
// server error.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.Body != nil {
		// An empty body is fine, everything in it is optional.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Email != "" && !sanitize.ValidEmail(req.Email) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid email address"})
		return
	}

	sess := s.Sessions.Create()
	if len(req.HealthInfo) > 0 {
		s.Service.UpdateProfile(sess, req.HealthInfo)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"chat_url":   "/chat/sessions/" + sess.ID,
	})
}

// handlePostMessage runs one chat turn.  Form posts from the chat page
// get back an HTML snippet for the transcript; JSON posts get a
// pkg.ChatResponse, including the passive emergency flag.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request, sess *pkg.Session) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req pkg.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "empty message"})
			return
		}
		res := s.Service.Consult(r.Context(), sess, strings.TrimSpace(req.Content))
		resp := pkg.ChatResponse{Reply: res.Response, Emergency: res.Emergency, Timestamp: time.Now().UTC()}
		if res.Turn != nil {
			resp.Timestamp = res.Turn.Timestamp
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	content, ok := formValue(w, r, "content")
	if !ok {
		return
	}
	res := s.Service.Consult(r.Context(), sess, content)
	writeTurnSnippet(w, content, res.Response)
}

func (s *Server) handleSymptoms(w http.ResponseWriter, r *http.Request, sess *pkg.Session) {
	raw, ok := formValue(w, r, "symptoms")
	if !ok {
		return
	}
	// Normalize the free-text list before it enters the consultation.
	symptoms := raw
	if parsed := sanitize.ParseSymptoms(raw); len(parsed) > 0 {
		symptoms = strings.Join(parsed, ", ")
	}
	res := s.Service.AnalyzeSymptoms(r.Context(), sess, symptoms)
	writeTurnSnippet(w, symptoms, res.Response)
}

func (s *Server) handleMedication(w http.ResponseWriter, r *http.Request, sess *pkg.Session) {
	name, ok := formValue(w, r, "medication")
	if !ok {
		return
	}
	res := s.Service.MedicationInfo(r.Context(), sess, name)
	writeTurnSnippet(w, name, res.Response)
}

func (s *Server) handleFirstAid(w http.ResponseWriter, r *http.Request, sess *pkg.Session) {
	situation, ok := formValue(w, r, "situation")
	if !ok {
		return
	}
	res := s.Service.FirstAid(r.Context(), sess, situation)
	writeTurnSnippet(w, situation, res.Response)
}

// handleHistory returns the stored transcript as JSON, oldest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, sess *pkg.Session) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	turns := s.Service.History(r.Context(), sess, limit)
	if turns == nil {
		turns = []pkg.Turn{}
	}
	writeJSON(w, http.StatusOK, turns)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request, sess *pkg.Session) {
	ok := s.Service.ClearHistory(r.Context(), sess)
	writeJSON(w, http.StatusOK, map[string]any{"cleared": ok})
}

// handleResetSession swaps in a fresh identifier; the UI starts over with
// an empty displayed history.
func (s *Server) handleResetSession(w http.ResponseWriter, sessionID string) {
	sess := s.Sessions.Reset(sessionID)
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"chat_url":   "/chat/sessions/" + sess.ID,
	})
}

// handleUpdateProfile replaces the session's health profile wholesale.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, sess *pkg.Session) {
	var info map[string]any
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid profile payload"})
		return
	}
	s.Service.UpdateProfile(sess, info)
	resp := map[string]any{"health_profile": sess.Profile}
	if bmi, category, ok := health.ProfileBMI(sess.Profile); ok {
		resp["bmi"] = bmi
		resp["bmi_category"] = category
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleChatPage renders the chat interface with the stored transcript.
func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request, sessionID string) {
	sess := s.Sessions.Get(sessionID)
	transcript := s.Service.History(r.Context(), sess, 0)
	data := struct {
		Session    *pkg.Session
		Persona    Persona
		Transcript []pkg.Turn
	}{sess, s.Persona, transcript}
	if err := s.Templates.ExecuteTemplate(w, "chat.html", data); err != nil {
		s.Log.Error("render chat page", "session", sessionID, "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func formValue(w http.ResponseWriter, r *http.Request, field string) (string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return "", false
	}
	value := strings.TrimSpace(r.FormValue(field))
	if value == "" {
		http.Error(w, "empty "+field, http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// writeTurnSnippet emits the transcript fragment appended by the UI after
// a turn: the user's message followed by the assistant's reply.
func writeTurnSnippet(w io.Writer, message, reply string) {
	_, _ = io.WriteString(w, `<div class="message user">`+template.HTMLEscapeString(displayMessage(message))+`</div>`)
	_, _ = io.WriteString(w, `<div class="message bot">`+template.HTMLEscapeString(displayMessage(reply))+`</div>`)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

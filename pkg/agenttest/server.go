// Package agenttest provides an in-process fake agent for tests and local
// development. It implements the agent's session, command, and report
// endpoints and records all traffic for assertions.
package agenttest

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/odvcencio/agentbridge/pkg/agent"
	"github.com/odvcencio/agentbridge/pkg/report"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

// CommandCall is one recorded command request.
type CommandCall struct {
	SessionID  string
	Name       string
	Parameters webdriver.Params
}

// Server is a scriptable fake agent.
type Server struct {
	// Dialect is negotiated into every created session.
	Dialect webdriver.Dialect

	// RejectSessions makes session creation fail with 400.
	RejectSessions bool

	// FailReports makes the report endpoint fail with 500.
	FailReports bool

	mu        sync.Mutex
	sessionID string
	creates   int
	commands  []CommandCall
	batches   []agent.ReportBatch
	responses map[string]*webdriver.Response
}

// NewServer creates a fake agent negotiating the given dialect.
func NewServer(dialect webdriver.Dialect) *Server {
	return &Server{
		Dialect:   dialect,
		sessionID: uuid.NewString(),
		responses: make(map[string]*webdriver.Response),
	}
}

// SessionID returns the identifier issued to created sessions.
func (s *Server) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// ScriptResponse fixes the response returned for a command name.
func (s *Server) ScriptResponse(name string, resp *webdriver.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[name] = resp
}

// SessionCreateCount returns how many session negotiations the agent served.
func (s *Server) SessionCreateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates
}

// Commands returns all recorded command calls in order.
func (s *Server) Commands() []CommandCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CommandCall, len(s.commands))
	copy(out, s.commands)
	return out
}

// CommandCount returns how many times the named command was received.
func (s *Server) CommandCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, call := range s.commands {
		if call.Name == name {
			count++
		}
	}
	return count
}

// ReportBatches returns all recorded stash flushes in order.
func (s *Server) ReportBatches() []agent.ReportBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]agent.ReportBatch, len(s.batches))
	copy(out, s.batches)
	return out
}

// ReportedEntries returns every entry across all flushed batches.
func (s *Server) ReportedEntries() []report.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []report.Entry
	for _, batch := range s.batches {
		out = append(out, batch.Entries...)
	}
	return out
}

// Handler returns the fake agent's HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Post("/{sessionID}/command", s.handleCommand)
		r.Post("/{sessionID}/reports", s.handleReports)
	})
	return r
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req agent.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed session request"})
		return
	}
	if s.RejectSessions {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "capabilities rejected"})
		return
	}
	s.mu.Lock()
	s.creates++
	descriptor := agent.SessionDescriptor{
		SessionID:     s.sessionID,
		Capabilities:  req.Capabilities,
		RemoteAddress: "http://" + r.Host,
		Dialect:       s.Dialect,
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, descriptor)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	var req agent.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed command request"})
		return
	}

	s.mu.Lock()
	s.commands = append(s.commands, CommandCall{
		SessionID:  sessionID,
		Name:       req.Name,
		Parameters: req.Parameters,
	})
	scripted := s.responses[req.Name]
	s.mu.Unlock()

	if scripted != nil {
		resp := *scripted
		if resp.SessionID == "" {
			resp.SessionID = sessionID
		}
		writeJSON(w, http.StatusOK, &resp)
		return
	}
	writeJSON(w, http.StatusOK, &webdriver.Response{Status: 0, SessionID: sessionID})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if s.FailReports {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "report storage unavailable"})
		return
	}
	var batch agent.ReportBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed report batch"})
		return
	}
	if batch.SessionID == "" {
		batch.SessionID = chi.URLParam(r, "sessionID")
	}
	s.mu.Lock()
	s.batches = append(s.batches, batch)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

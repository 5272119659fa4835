// Package server exposes the research agent over HTTP. Each client
// conversation maps to one agent session, addressed by a session ID
// issued on the first request.
package server

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Achintharya/eightfold-bot/pkg/agent"
)

// Server routes HTTP requests to agent sessions
type Server struct {
	router chi.Router
	opts   agent.Options

	mu       sync.RWMutex
	sessions map[string]*agent.Session
}

// New creates a server whose sessions share the collaborators in opts.
// The cache and plan store are shared across all sessions; research
// done for one client is visible to every other.
func New(opts agent.Options) *Server {
	s := &Server{
		opts:     opts,
		sessions: make(map[string]*agent.Session),
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Post("/chat", s.handleChat)
	r.Post("/research", s.handleResearch)
	r.Get("/status", s.handleStatus)
	r.Get("/plan/summary", s.handlePlanSummary)
	r.Patch("/plan/section", s.handleEditSection)
	r.Delete("/cache", s.handleClearCache)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// session returns the session for id, creating one when id is empty
// or unknown.
func (s *Server) session(id string) *agent.Session {
	s.mu.RLock()
	if sess, ok := s.sessions[id]; ok {
		s.mu.RUnlock()
		return sess
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := agent.NewSession(s.opts)
	s.sessions[sess.ID()] = sess
	return sess
}

// lookup returns the session for id without creating one
func (s *Server) lookup(id string) (*agent.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

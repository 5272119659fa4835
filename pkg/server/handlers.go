package server

import (
	"encoding/json"
	"net/http"

	"github.com/Achintharya/eightfold-bot/pkg/logger"
)

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
	Phase     string `json:"phase"`
	Subject   string `json:"subject,omitempty"`
}

type researchRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Company   string `json:"company"`
}

type editRequest struct {
	SessionID    string `json:"session_id"`
	Section      string `json:"section"`
	Instructions string `json:"instructions"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	sess := s.session(req.SessionID)
	response := sess.ProcessInput(r.Context(), req.Message)

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: sess.ID(),
		Response:  response,
		Phase:     string(sess.Phase().Kind()),
		Subject:   sess.Subject(),
	})
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Company == "" {
		writeError(w, http.StatusBadRequest, "company is required")
		return
	}

	sess := s.session(req.SessionID)
	response := sess.Research(r.Context(), req.Company)

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: sess.ID(),
		Response:  response,
		Phase:     string(sess.Phase().Kind()),
		Subject:   sess.Subject(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r.URL.Query().Get("session_id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: sess.ID(),
		Response:  sess.GetStatus(),
		Phase:     string(sess.Phase().Kind()),
		Subject:   sess.Subject(),
	})
}

func (s *Server) handlePlanSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r.URL.Query().Get("session_id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: sess.ID(),
		Response:  sess.GetPlanSummary(),
		Phase:     string(sess.Phase().Kind()),
		Subject:   sess.Subject(),
	})
}

func (s *Server) handleEditSection(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess, ok := s.lookup(req.SessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	response := sess.EditSection(r.Context(), req.Section, req.Instructions)

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: sess.ID(),
		Response:  response,
		Phase:     string(sess.Phase().Kind()),
		Subject:   sess.Subject(),
	})
}

// handleClearCache drops cached research. With no subject query
// parameter it clears everything, for every session sharing the cache.
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r.URL.Query().Get("session_id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	result := sess.ClearCache(r.URL.Query().Get("subject"))
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

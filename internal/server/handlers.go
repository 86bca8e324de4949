package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/contact"
)

type errorBody struct {
	Error  string               `json:"error"`
	Fields []contact.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeContactError maps a submission error onto the response envelope.
func writeContactError(w http.ResponseWriter, err error) {
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, contact.ErrInsertFailed):
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: contact.TextInsertFailed})
	case errors.Is(err, contact.ErrEmailFailed):
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: contact.TextEmailFailed})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: contact.TextInternal})
	}
}

func (s *Server) decodeMessage(w http.ResponseWriter, r *http.Request) (contact.Message, bool) {
	var m contact.Message
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.log.Warn("bad contact body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return m, false
	}
	return m, true
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	m, ok := s.decodeMessage(w, r)
	if !ok {
		return
	}

	rec, err := s.contact.Submit(r.Context(), m)
	if err != nil {
		writeContactError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact.Response{
		Success:  true,
		Data:     rec,
		Notified: s.contact.NotifyOnSubmit(),
	})
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	m, ok := s.decodeMessage(w, r)
	if !ok {
		return
	}

	id, err := s.contact.Notify(r.Context(), m)
	if err != nil {
		writeContactError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact.Response{
		Success: true,
		Data:    map[string]string{"id": id},
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.page == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Render(w); err != nil {
		s.log.Error("render page", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"streams": s.streams.count(),
	})
}

package server

import (
	"encoding/json"
	"io"
	"net/http"
)

func (s *Server) handleGetContent(w http.ResponseWriter, _ *http.Request) {
	if s.opts.Content == nil {
		failure(w, s.logger, &ErrUnavailable{Feature: "content"})
		return
	}

	doc, err := s.opts.Content.Get()
	if err != nil {
		failure(w, s.logger, err)
		return
	}
	if doc == nil {
		doc = json.RawMessage("null")
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleSaveContent(w http.ResponseWriter, r *http.Request) {
	if s.opts.Content == nil {
		failure(w, s.logger, &ErrUnavailable{Feature: "content"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	if err := s.opts.Content.Save(body); err != nil {
		failure(w, s.logger, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

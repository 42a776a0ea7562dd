package server

import (
	"context"
	"net/http"

	"github.com/thepetra/petra/internal/leads"
)

// leadHandler decodes a form of type T and submits it.
func leadHandler[T any](s *Server, submit func(context.Context, T) (*leads.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form T
		if !decodeJSON(w, r, &form) {
			return
		}
		res, err := submit(r.Context(), form)
		if err != nil {
			failure(w, s.logger, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, res)
	}
}

func (s *Server) handleWaitlist(w http.ResponseWriter, r *http.Request) {
	leadHandler(s, s.opts.Leads.SubmitWaitlist)(w, r)
}

func (s *Server) handlePetRequest(w http.ResponseWriter, r *http.Request) {
	leadHandler(s, s.opts.Leads.SubmitPetRequest)(w, r)
}

func (s *Server) handlePetFinder(w http.ResponseWriter, r *http.Request) {
	leadHandler(s, s.opts.Leads.SubmitPetFinder)(w, r)
}

func (s *Server) handleProductNotify(w http.ResponseWriter, r *http.Request) {
	leadHandler(s, s.opts.Leads.SubmitProductNotify)(w, r)
}

package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/thepetra/petra/internal/metrics"
	"github.com/thepetra/petra/internal/readiness"
	"github.com/thepetra/petra/internal/recommend"
	"github.com/thepetra/petra/internal/server/middleware"
	"github.com/thepetra/petra/internal/types"
	"go.uber.org/zap"
)

// handleQuestions returns the questionnaire, expanded with follow-ups for
// the pet types in ?pets=dog,cat.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	var pets []readiness.PetType
	for _, p := range strings.Split(r.URL.Query().Get("pets"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			pets = append(pets, readiness.PetType(p))
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"questions": readiness.ExpandQuestions(pets)})
}

// handleCreateAssessment scores a questionnaire submission. The result is
// stored when a database is configured; storage failures don't fail the
// request.
func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req types.AssessmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result := readiness.Score(&req.Answers)
	metrics.AssessmentsScored.WithLabelValues(string(result.Tier)).Inc()
	resp := types.AssessmentResponse{Result: result}

	if s.opts.Assessments != nil {
		var owner *uuid.UUID
		if id, err := middleware.GetUserID(r); err == nil {
			owner = &id
		}
		id, err := s.opts.Assessments.CreateAssessment(r.Context(), owner, req.Answers, result.Score, string(result.Tier), result)
		if err != nil {
			s.logger.Error("failed to store assessment", zap.Error(err))
		} else {
			resp.ID = id.String()
		}
	}

	if req.Recommend {
		recs, src, err := s.opts.Recommender.Recommend(r.Context(), recommend.ProfileFromAnswers(&req.Answers))
		if err != nil {
			failure(w, s.logger, err)
			return
		}
		resp.Recommendations = recs
		resp.Source = string(src)
	}

	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGetAssessment returns a stored assessment. Assessments owned by an
// account are only visible to that account.
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if s.opts.Assessments == nil {
		failure(w, s.logger, &ErrUnavailable{Feature: "assessment history"})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid assessment ID")
		return
	}

	a, err := s.opts.Assessments.GetAssessment(r.Context(), id)
	if err != nil {
		failure(w, s.logger, err)
		return
	}
	if a != nil && a.UserID != nil {
		caller, err := middleware.GetUserID(r)
		if err != nil || caller != *a.UserID {
			a = nil
		}
	}
	if a == nil {
		s.errorResponse(w, http.StatusNotFound, "Assessment not found")
		return
	}

	var result readiness.Result
	if err := json.Unmarshal(a.Result, &result); err != nil {
		failure(w, s.logger, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":         a.ID,
		"answers":    a.Answers,
		"result":     result,
		"created_at": a.CreatedAt,
	})
}

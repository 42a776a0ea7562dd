package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/thepetra/petra/internal/billing"
	"github.com/thepetra/petra/internal/db"
	"github.com/thepetra/petra/internal/guide"
	"github.com/thepetra/petra/internal/notify"
	"github.com/thepetra/petra/internal/server/middleware"
	"github.com/thepetra/petra/internal/types"
	"go.uber.org/zap"
)

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failure(w, s.logger, validationError(err))
		return
	}

	recs, src, err := s.opts.Recommender.Recommend(r.Context(), req.Profile())
	if err != nil {
		failure(w, s.logger, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.RecommendationResponse{Recommendations: recs, Source: string(src)})
}

func (s *Server) handleGenerateGuide(w http.ResponseWriter, r *http.Request) {
	var req types.GuideRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failure(w, s.logger, validationError(err))
		return
	}
	profile, entry := req.Profile(), req.Entry()
	if err := profile.Validate(entry); err != nil {
		failure(w, s.logger, &ErrValidation{Field: "guide", Message: err.Error()})
		return
	}

	g, err := s.opts.Guides.Generate(r.Context(), profile, entry)
	if err != nil {
		failure(w, s.logger, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "guide": g})
}

// handleExportGuide emails the full guide. It is a paid feature: the caller
// needs an active subscription or a verified payment.
func (s *Server) handleExportGuide(w http.ResponseWriter, r *http.Request) {
	var req types.ExportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failure(w, s.logger, validationError(err))
		return
	}
	if s.opts.Mailer == nil {
		failure(w, s.logger, &ErrUnavailable{Feature: "guide export"})
		return
	}

	var owner *uuid.UUID
	userID := ""
	if id, err := middleware.GetUserID(r); err == nil {
		owner, userID = &id, id.String()
	}

	basis, err := s.opts.Billing.AuthorizeExport(r.Context(), userID, req.Payment)
	if err != nil {
		failure(w, s.logger, err)
		return
	}

	opts := guide.ExportOptions{PetName: req.PetName, OwnerName: req.OwnerName}
	html, err := guide.RenderHTML(req.Guide, opts)
	if err != nil {
		failure(w, s.logger, &ErrValidation{Field: "guideData", Message: err.Error()})
		return
	}

	msg := notify.Message{
		To:      []string{req.Email},
		Subject: opts.Heading() + " 🐾",
		HTML:    html,
		Kind:    "guide-export",
	}
	if err := s.opts.Mailer.Send(r.Context(), msg); err != nil {
		s.logger.Error("failed to send guide", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to send guide")
		return
	}

	if s.opts.Exports != nil {
		export := &db.GuideExport{UserID: owner, Email: req.Email, PetName: req.PetName, Subscriber: basis == billing.ExportBySubscription}
		if basis == billing.ExportByPayment {
			export.PaymentID = req.Payment.PaymentID
		}
		if err := s.opts.Exports.RecordGuideExport(r.Context(), export); err != nil {
			s.logger.Warn("failed to record guide export", zap.Error(err))
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Guide sent to " + req.Email,
		"emailSent": true,
	})
}

package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/thepetra/petra/internal/billing"
	"github.com/thepetra/petra/internal/server/middleware"
	"github.com/thepetra/petra/internal/types"
	"go.uber.org/zap"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.opts.Billing.Plans(r.Context())
	if err != nil {
		failure(w, s.logger, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"plans": plans})
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.SubscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failure(w, s.logger, validationError(err))
		return
	}

	customer := billing.Customer{UserID: userID.String()}
	if s.opts.Users != nil {
		user, err := s.opts.Users.GetUser(r.Context(), userID)
		if err != nil {
			failure(w, s.logger, err)
			return
		}
		if user == nil {
			failure(w, s.logger, &ErrUserNotFound{UserID: userID})
			return
		}
		customer.Name, customer.Email, customer.Phone = user.Name, user.Email, user.Phone
	}

	checkout, err := s.opts.Billing.Subscribe(r.Context(), customer, req.PlanID, req.Cycle())
	if err != nil {
		failure(w, s.logger, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, checkout)
}

func (s *Server) handleMySubscription(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sub, err := s.opts.Billing.MySubscription(r.Context(), userID.String())
	if err != nil {
		failure(w, s.logger, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"subscription": sub})
}

// handleWebhook applies a payment gateway event. The signature covers the
// raw body, so it is read before any decoding.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := s.opts.Billing.HandleWebhook(r.Context(), body, r.Header.Get("X-Razorpay-Signature"))
	if err != nil {
		var sigErr *billing.SignatureError
		if errors.As(err, &sigErr) {
			s.logger.Warn("webhook signature rejected", zap.String("reason", sigErr.Reason))
			s.errorResponse(w, http.StatusBadRequest, "Invalid signature")
			return
		}
		s.logger.Error("webhook processing failed", zap.String("event", event), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"received": true, "event": event})
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var proof billing.PaymentProof
	if !decodeJSON(w, r, &proof) {
		return
	}

	if err := s.opts.Billing.VerifyPayment(proof); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

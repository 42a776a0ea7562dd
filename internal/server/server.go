// Package server provides the HTTP REST API for the Petra site.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/thepetra/petra/internal/billing"
	"github.com/thepetra/petra/internal/config"
	"github.com/thepetra/petra/internal/content"
	"github.com/thepetra/petra/internal/db"
	"github.com/thepetra/petra/internal/guide"
	"github.com/thepetra/petra/internal/leads"
	"github.com/thepetra/petra/internal/metrics"
	"github.com/thepetra/petra/internal/notify"
	"github.com/thepetra/petra/internal/recommend"
	"github.com/thepetra/petra/internal/server/middleware"
	"github.com/thepetra/petra/internal/server/ratelimit"
	"go.uber.org/zap"
)

// AssessmentStore persists scored assessments.
type AssessmentStore interface {
	CreateAssessment(ctx context.Context, userID *uuid.UUID, answers any, score int, tier string, result any) (uuid.UUID, error)
	GetAssessment(ctx context.Context, id uuid.UUID) (*db.Assessment, error)
}

// ExportRecorder records paid guide exports.
type ExportRecorder interface {
	RecordGuideExport(ctx context.Context, e *db.GuideExport) error
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options wires the server's dependencies. Nil dependencies disable the
// routes that need them.
type Options struct {
	Config    config.ServerConfig
	RateLimit *ratelimit.Config
	Logger    *zap.Logger

	JWT      *JWTService
	Users    DBClient
	Password *config.PasswordConfig

	Assessments AssessmentStore
	Exports     ExportRecorder
	Database    Pinger

	Recommender *recommend.Recommender
	Guides      *guide.Generator
	Leads       *leads.Service
	Billing     *billing.Service
	Mailer      notify.Mailer
	Content     *content.FileStore
	AdminKey    string
}

// Server represents the HTTP server
type Server struct {
	opts        Options
	httpServer  *http.Server
	handler     http.Handler
	rateLimiter *ratelimit.Limiter
	authHandler *AuthHandler
	logger      *zap.Logger
}

// New creates a new server instance
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Recommender == nil {
		opts.Recommender = recommend.NewRecommender(nil, nil, 0, logger)
	}
	if opts.Guides == nil {
		opts.Guides = guide.NewGenerator(nil, nil, 0, logger)
	}
	if opts.Leads == nil {
		opts.Leads = leads.NewService(leads.Options{Logger: logger})
	}
	if opts.Billing == nil {
		opts.Billing = billing.NewService(billing.Options{Logger: logger})
	}

	s := &Server{
		opts:        opts,
		logger:      logger,
		rateLimiter: ratelimit.NewLimiter(opts.RateLimit),
	}
	if opts.JWT != nil && opts.Users != nil && opts.Password != nil {
		s.authHandler = NewAuthHandler(NewUserService(opts.Users, opts.Password), opts.JWT, logger)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	// Readiness questionnaire
	mux.HandleFunc("GET /assessment/questions", s.handleQuestions)
	mux.Handle("POST /assessments", s.optionalAuth(http.HandlerFunc(s.handleCreateAssessment)))
	mux.Handle("GET /assessments/{id}", s.optionalAuth(http.HandlerFunc(s.handleGetAssessment)))

	// Recommendations and guides
	mux.HandleFunc("POST /recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /guides", s.handleGenerateGuide)
	mux.Handle("POST /guides/export", s.optionalAuth(http.HandlerFunc(s.handleExportGuide)))

	// Lead forms
	mux.HandleFunc("POST /leads/waitlist", s.handleWaitlist)
	mux.HandleFunc("POST /leads/pet-request", s.handlePetRequest)
	mux.HandleFunc("POST /leads/pet-finder", s.handlePetFinder)
	mux.HandleFunc("POST /leads/product-notify", s.handleProductNotify)

	// Accounts
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("PUT /auth/password", s.requireAuth(http.HandlerFunc(s.handleUpdatePassword)))
	mux.Handle("GET /users/me", s.requireAuth(http.HandlerFunc(s.handleMe)))

	// Subscriptions and payments
	mux.HandleFunc("GET /subscriptions/plans", s.handleListPlans)
	mux.Handle("POST /subscriptions", s.requireAuth(http.HandlerFunc(s.handleSubscribe)))
	mux.Handle("GET /subscriptions/me", s.requireAuth(http.HandlerFunc(s.handleMySubscription)))
	mux.HandleFunc("POST /webhooks/razorpay", s.handleWebhook)
	mux.HandleFunc("POST /payments/verify", s.handleVerifyPayment)

	// CMS
	admin := middleware.AdminKeyMiddleware(opts.AdminKey)
	mux.Handle("GET /admin/content", admin(http.HandlerFunc(s.handleGetContent)))
	mux.Handle("POST /admin/content", admin(http.HandlerFunc(s.handleSaveContent)))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))

	cfg := opts.Config
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  orDefault(cfg.ReadTimeout, 30*time.Second),
		WriteTimeout: orDefault(cfg.WriteTimeout, 120*time.Second), // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until ctx is cancelled or
// the process receives SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), orDefault(s.opts.Config.ShutdownTimeout, 30*time.Second))
	defer cancel()

	// Stop rate limiter cleanup goroutine
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	if s.opts.JWT == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			failure(w, s.logger, &ErrUnavailable{Feature: "accounts"})
		})
	}
	return middleware.AuthMiddleware(s.opts.JWT.AsTokenValidator())(next)
}

func (s *Server) optionalAuth(next http.Handler) http.Handler {
	if s.opts.JWT == nil {
		return next
	}
	return middleware.OptionalAuthMiddleware(s.opts.JWT.AsTokenValidator())(next)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	origin := s.opts.Config.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs each request and records it in the HTTP metrics. The
// route label is the matched mux pattern so path parameters don't explode
// label cardinality.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "database": "disabled"}
	if s.opts.Database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.opts.Database.Ping(ctx); err != nil {
			s.logger.Warn("database ping failed", zap.Error(err))
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
		} else {
			resp["database"] = "ok"
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, s.logger, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message)
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("client", s.extractClientID(r)),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

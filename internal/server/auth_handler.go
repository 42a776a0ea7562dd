package server

import (
	"net/http"

	"github.com/thepetra/petra/internal/server/middleware"
	"github.com/thepetra/petra/internal/types"
	"go.uber.org/zap"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failure(w, h.logger, validationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		failure(w, h.logger, err)
		return
	}
	h.issue(w, http.StatusCreated, user)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failure(w, h.logger, validationError(err))
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		failure(w, h.logger, err)
		return
	}
	h.issue(w, http.StatusOK, user)
}

func (h *AuthHandler) issue(w http.ResponseWriter, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	writeJSON(w, h.logger, status, types.LoginResponse{User: user, Token: token})
}

// UpdatePassword changes the signed-in user's password.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.UpdatePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failure(w, h.logger, validationError(err))
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		failure(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		failure(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, user)
}

package server

import (
	"net/http"
)

// The account handlers delegate to AuthHandler, which exists only when
// accounts are configured.

func (s *Server) accountsDisabled(w http.ResponseWriter) bool {
	if s.authHandler == nil {
		failure(w, s.logger, &ErrUnavailable{Feature: "accounts"})
		return true
	}
	return false
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.accountsDisabled(w) {
		return
	}
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.accountsDisabled(w) {
		return
	}
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	if s.accountsDisabled(w) {
		return
	}
	s.authHandler.UpdatePassword(w, r)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if s.accountsDisabled(w) {
		return
	}
	s.authHandler.Me(w, r)
}

package devapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/relocate/tui-go/internal/model"
)

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "UK Relocation Platform API",
		"version": "2.0.0",
	})
}

// health handles GET /health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Health{Status: "healthy", Timestamp: s.now().UTC()})
}

// login handles POST /login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	if !s.checkPassword(req.Username, req.Password) {
		s.logger.Info("login rejected", zap.String("username", req.Username))
		unauthorized(w, "Incorrect username or password")
		return
	}

	writeJSON(w, http.StatusOK, model.Token{
		AccessToken: s.issueToken(req.Username),
		TokenType:   "bearer",
	})
}

// verifyToken handles GET /verify-token
func (s *Server) verifyToken(w http.ResponseWriter, r *http.Request) {
	user, _ := r.Context().Value(usernameKey).(string)
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "username": user})
}

// forgotPassword handles POST /forgot-password. The identity check matches
// the demo account; on success the password is replaced.
func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordReset
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	if req.Email != recoveryEmail ||
		!strings.EqualFold(req.FullName, recoveryFullName) ||
		!strings.EqualFold(strings.TrimSpace(req.VerificationQuestion), recoveryAnswer) {
		writeError(w, http.StatusBadRequest, "Verification failed. Please check your details and try again.")
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "new_password is required")
		return
	}

	if err := s.setPassword(req.NewPassword); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("password reset", zap.String("email", req.Email))

	writeJSON(w, http.StatusOK, model.ResetResult{
		Message:   "Password reset successful! Your new password has been updated.",
		EmailSent: true,
	})
}

// Package recovery implements the forgot-password flow. It is independent of
// the session: a successful reset does not log anyone in.
package recovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/relocate/tui-go/internal/model"
)

var (
	ErrMissingField     = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Submitter sends a reset to the API
type Submitter interface {
	ForgotPassword(ctx context.Context, reset model.PasswordReset) (*model.ResetResult, error)
}

// Request is what the user fills in on the reset form
type Request struct {
	Email       string
	FullName    string
	Answer      string // answer to "which city do you live in"
	NewPassword string
	Confirm     string
}

// Validate runs the client-side checks. The identity itself is only checked
// by the server.
func (r Request) Validate() error {
	fields := []struct{ name, value string }{
		{"email", r.Email},
		{"full name", r.FullName},
		{"verification answer", r.Answer},
		{"new password", r.NewPassword},
		{"confirmation", r.Confirm},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is empty", ErrMissingField, f.name)
		}
	}
	if r.NewPassword != r.Confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// Submit validates req and forwards it. The returned message is suitable for
// showing to the user.
func Submit(ctx context.Context, s Submitter, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	res, err := s.ForgotPassword(ctx, model.PasswordReset{
		Email:                strings.TrimSpace(req.Email),
		FullName:             strings.TrimSpace(req.FullName),
		VerificationQuestion: req.Answer,
		NewPassword:          req.NewPassword,
	})
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	if res.Message == "" {
		return "Password reset successful.", nil
	}
	return res.Message, nil
}

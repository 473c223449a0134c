// Package auth provides credential verification for the HTTP basic
// authentication guarding the write endpoints.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/dmuriuki/taskforge-api/internal/store"
)

// ErrInvalidCredentials is returned when an email/password pair does not
// identify a user. A missing user and a wrong password are deliberately
// indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks email/password pairs against the user store.
type CredentialVerifier interface {
	// VerifyCredentials returns the authenticated user, or
	// ErrInvalidCredentials when the pair does not match.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
}

// Verifier implements CredentialVerifier against a store.UserStore.
type Verifier struct {
	userStore store.UserStore
	passwords PasswordVerifier
	logger    *slog.Logger
}

// NewVerifier creates a Verifier with the given dependencies.
// It returns an error if any required dependency is nil.
func NewVerifier(
	userStore store.UserStore,
	passwords PasswordVerifier,
	logger *slog.Logger,
) (*Verifier, error) {
	if userStore == nil {
		return nil, errors.New("userStore cannot be nil")
	}
	if passwords == nil {
		return nil, errors.New("passwords cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Verifier{
		userStore: userStore,
		passwords: passwords,
		logger:    logger.With(slog.String("component", "credential_verifier")),
	}, nil
}

// Ensure Verifier implements CredentialVerifier
var _ CredentialVerifier = (*Verifier)(nil)

// VerifyCredentials implements CredentialVerifier.VerifyCredentials
func (v *Verifier) VerifyCredentials(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := v.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			v.logger.Debug("authentication attempt for unknown user")
			return nil, ErrInvalidCredentials
		}
		v.logger.Error("user lookup failed during authentication",
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := v.passwords.Compare(user.HashedPassword, password); err != nil {
		v.logger.Debug("password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/pkg/uuid"
)

// # Contracts & Types

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) bool
}

// invalidCredentials is shared by every login failure so callers cannot tell
// an unknown username from a wrong password.
const invalidCredentials = "Invalid username or password"

// Service implements the account use cases on top of the [Authenticator].
type Service struct {
	userRepository UserRepository
	authenticator  *Authenticator
	hasher         PasswordHasher
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(users UserRepository, authenticator *Authenticator, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		userRepository: users,
		authenticator:  authenticator,
		hasher:         hasher,
		logger:         logger,
	}
}

// # Registration Flow

// SignupInput holds validated signup fields.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

/*
Signup hashes the password, persists the account and issues a first token.

Parameters:
  - context: context.Context
  - input: SignupInput (already validated)

Returns:
  - *AuthResponse: Token and public user fields
  - error: apperr.Conflict if the username or email is taken
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*AuthResponse, error) {
	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("Username or email already exists")
		}
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	token, err := service.authenticator.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_signed_up", slog.String("user_id", user.ID))
	return &AuthResponse{Token: token, User: user.Summary()}, nil
}

// # Authentication Flow

/*
Login checks credentials and issues a token.

Returns:
  - *AuthResponse: Token and public user fields
  - error: apperr.Unauthorized for unknown users or wrong passwords
*/
func (service *Service) Login(context context.Context, username, password string) (*AuthResponse, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.logger.WarnContext(context, "login_failed_unknown_user", slog.String("username", username))
			return nil, apperr.Unauthorized(invalidCredentials)
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !service.hasher.Verify(password, user.PasswordHash) {
		service.logger.WarnContext(context, "login_failed_bad_password", slog.String("username", username))
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	token, err := service.authenticator.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))
	return &AuthResponse{Token: token, User: user.Summary()}, nil
}

/*
Logout revokes the presented token on a best-effort basis.

It never fails: a missing or already unusable token needs no revocation, and a
blacklist write failure is logged and swallowed.
*/
func (service *Service) Logout(context context.Context, token string) {
	if token == "" {
		service.logger.InfoContext(context, "logout_without_token")
		return
	}

	claims, err := service.authenticator.Verify(context, token)
	if err != nil {
		service.logger.InfoContext(context, "logout_with_invalid_token")
		return
	}

	if err := service.authenticator.Revoke(context, token); err != nil {
		service.logger.ErrorContext(context, "logout_revoke_failed",
			slog.String("user_id", claims.UserID()),
			slog.Any("error", err),
		)
		return
	}

	service.logger.InfoContext(context, "user_logged_out", slog.String("user_id", claims.UserID()))
}

// # Profile

// Profile returns the account of the authenticated user.
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

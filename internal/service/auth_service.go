package service

import (
	"context"
	"errors"
	"log/slog"

	"inkblog/internal/apperr"
	"inkblog/internal/models"
	"inkblog/internal/repository"
	"inkblog/internal/session"
	"inkblog/internal/validation"
)

type AuthService interface {
	SignUp(ctx context.Context, input models.SignUpInput) (*models.User, error)
	SignIn(ctx context.Context, input models.SignInInput, meta session.Meta) (*session.Token, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*models.Identity, error)
}

type authService struct {
	provider  session.Provider
	validator *validation.Validator
	logger    *slog.Logger
}

func NewAuthService(provider session.Provider, v *validation.Validator, logger *slog.Logger) AuthService {
	return &authService{
		provider:  provider,
		validator: v,
		logger:    logger,
	}
}

// SignUp creates the account only. The caller signs in separately.
func (s *authService) SignUp(ctx context.Context, input models.SignUpInput) (*models.User, error) {
	input.Email = validation.NormalizeEmail(input.Email)
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.provider.SignUpEmail(ctx, input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.KindConflict, "Email already registered", err)
		}
		return nil, internalError(s.logger, "sign up", "Failed to create account", err)
	}

	s.logger.Info("account created", "user_id", user.UserID)

	return user, nil
}

func (s *authService) SignIn(ctx context.Context, input models.SignInInput, meta session.Meta) (*session.Token, error) {
	input.Email = validation.NormalizeEmail(input.Email)
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	token, err := s.provider.SignInEmail(ctx, input.Email, input.Password, meta)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) || errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindUnauthenticated, "Invalid email or password", err)
		}
		return nil, internalError(s.logger, "sign in", "Failed to sign in", err)
	}

	return token, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	if err := s.provider.SignOut(ctx, token); err != nil {
		return internalError(s.logger, "sign out", "Failed to sign out", err)
	}
	return nil
}

// GetSession resolves token to an identity; nil means no valid session.
func (s *authService) GetSession(ctx context.Context, token string) (*models.Identity, error) {
	identity, err := s.provider.GetSession(ctx, token)
	if err != nil {
		return nil, internalError(s.logger, "get session", "Failed to resolve session", err)
	}
	return identity, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"inkblog/internal/apperr"
	"inkblog/internal/guard"
	"inkblog/internal/models"
	"inkblog/internal/repository"
	"inkblog/internal/session"
	"inkblog/internal/storage"
	"inkblog/internal/validation"
)

type UserService interface {
	Profile(ctx context.Context, identity *models.Identity) (*Profile, error)
	UpdateProfile(ctx context.Context, identity *models.Identity, input models.ProfileInput) (*models.User, error)
	UpdatePassword(ctx context.Context, identity *models.Identity, input models.PasswordInput) error
	DeleteAccount(ctx context.Context, identity *models.Identity, token string) error
}

type Profile struct {
	User   *models.User     `json:"user"`
	Stats  models.PostStats `json:"stats"`
	Recent []models.Post    `json:"recent"`
}

type userService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	uploadRepo repository.UploadRepository
	provider   session.Provider
	storage    storage.Storage
	validator  *validation.Validator
	logger     *slog.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	uploadRepo repository.UploadRepository,
	provider session.Provider,
	store storage.Storage,
	v *validation.Validator,
	logger *slog.Logger,
) UserService {
	return &userService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		uploadRepo: uploadRepo,
		provider:   provider,
		storage:    store,
		validator:  v,
		logger:     logger,
	}
}

func (s *userService) Profile(ctx context.Context, identity *models.Identity) (*Profile, error) {
	if err := guard.Require(identity); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, identity.UserID)
	if err != nil {
		return nil, s.storeError("load profile", err)
	}

	stats, err := s.postRepo.StatsByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, s.storeError("load profile stats", err)
	}

	recent, err := s.postRepo.ListByOwner(ctx, identity.UserID, recentPostsLimit)
	if err != nil {
		return nil, s.storeError("load recent posts", err)
	}

	return &Profile{User: user, Stats: stats, Recent: recent}, nil
}

// UpdateProfile rewrites name, email and image. A changed email is no longer
// verified.
func (s *userService) UpdateProfile(ctx context.Context, identity *models.Identity, input models.ProfileInput) (*models.User, error) {
	if err := guard.Require(identity); err != nil {
		return nil, err
	}

	input.Email = validation.NormalizeEmail(input.Email)
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, identity.UserID)
	if err != nil {
		return nil, s.storeError("update profile", err)
	}

	if err := guard.Self(identity, user.UserID); err != nil {
		return nil, err
	}

	if user.Email != input.Email {
		user.EmailVerified = false
	}
	user.Name = input.Name
	user.Email = input.Email
	user.Image = input.Image

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, s.storeError("update profile", err)
	}

	return user, nil
}

func (s *userService) UpdatePassword(ctx context.Context, identity *models.Identity, input models.PasswordInput) error {
	if err := guard.Require(identity); err != nil {
		return err
	}

	if err := s.validator.Struct(input); err != nil {
		return err
	}

	err := s.provider.ChangePassword(ctx, identity.UserID, input.CurrentPassword, input.NewPassword)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return apperr.Validation(map[string]string{
				"currentPassword": "Current password is incorrect",
			})
		}
		return s.storeError("update password", err)
	}

	s.logger.Info("password changed", "user_id", identity.UserID)

	return nil
}

// DeleteAccount removes the user with everything they own, then revokes the
// session the request came in on.
func (s *userService) DeleteAccount(ctx context.Context, identity *models.Identity, token string) error {
	if err := guard.Require(identity); err != nil {
		return err
	}

	uploads, err := s.uploadRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		s.logger.Warn("could not list uploads before account deletion", "user_id", identity.UserID, "error", err)
	}

	if err := s.userRepo.DeleteUser(ctx, identity.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Wrap(apperr.KindUnauthenticated, "Unauthorized", err)
		}
		return internalError(s.logger, "delete account", "Failed to delete account", err)
	}

	for _, upload := range uploads {
		if err := s.storage.DeleteImage(ctx, upload.ObjectName); err != nil {
			s.logger.Warn("could not remove upload", "object", upload.ObjectName, "error", err)
		}
	}

	if err := s.provider.SignOut(ctx, token); err != nil {
		return internalError(s.logger, "sign out deleted account", "Failed to delete account", err)
	}

	s.logger.Info("account deleted", "user_id", identity.UserID, "uploads", len(uploads))

	return nil
}

func (s *userService) storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.Wrap(apperr.KindUnauthenticated, "Unauthorized", err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Wrap(apperr.KindConflict, "Email already in use", err)
	default:
		return internalError(s.logger, op, "Something went wrong", err)
	}
}

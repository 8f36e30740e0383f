package service

import (
	"log/slog"

	"inkblog/internal/apperr"
	"inkblog/internal/config"
	"inkblog/internal/repository"
	"inkblog/internal/session"
	"inkblog/internal/storage"
	"inkblog/internal/validation"
)

type Service struct {
	User   UserService
	Post   PostService
	Auth   AuthService
	Media  MediaService
	Tables TablesService
}

func NewService(rep *repository.Repository, provider session.Provider, store storage.Storage, cfg *config.Config, logger *slog.Logger) *Service {
	v := validation.New()

	return &Service{
		User:   NewUserService(rep.User, rep.Post, rep.Upload, provider, store, v, logger),
		Post:   NewPostService(rep.Post, v, logger),
		Auth:   NewAuthService(provider, v, logger),
		Media:  NewMediaService(rep.Upload, store, cfg, logger),
		Tables: NewTablesService(rep.Tables),
	}
}

// internalError logs err and hides it behind a generic message.
func internalError(logger *slog.Logger, op, message string, err error) error {
	logger.Error("operation failed", "op", op, "error", err)
	return apperr.Wrap(apperr.KindUnknown, message, err)
}

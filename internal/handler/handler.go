package handlers

import (
	"log/slog"

	"inkblog/internal/config"
	"inkblog/internal/service"
)

type Handlers struct {
	AuthService   service.AuthService
	PostService   service.PostService
	UserService   service.UserService
	MediaService  service.MediaService
	TablesService service.TablesService
	Cfg           *config.Config
	Logger        *slog.Logger
}

func NewHandlers(services *service.Service, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		AuthService:   services.Auth,
		PostService:   services.Post,
		UserService:   services.User,
		MediaService:  services.Media,
		TablesService: services.Tables,
		Cfg:           cfg,
		Logger:        logger,
	}
}

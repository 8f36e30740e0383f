package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"inkblog/internal/apperr"
	"inkblog/internal/config"
	"inkblog/internal/guard"
	"inkblog/internal/models"
	"inkblog/internal/repository"
	"inkblog/internal/storage"
)

const (
	UploadKindAvatar = "avatar"
	UploadKindPost   = "post"

	sniffLen = 3072
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type MediaService interface {
	Upload(ctx context.Context, identity *models.Identity, kind string, file io.Reader, size int64) (*models.Upload, error)
	Config() MediaConfig
}

// MediaConfig is what the browser needs to prepare an upload.
type MediaConfig struct {
	UploadPreset  string   `json:"uploadPreset"`
	CloudName     string   `json:"cloudName"`
	MaxUploadSize int64    `json:"maxUploadSize"`
	MaxSizeLabel  string   `json:"maxSizeLabel"`
	AllowedTypes  []string `json:"allowedTypes"`
}

type mediaService struct {
	uploadRepo repository.UploadRepository
	storage    storage.Storage
	cfg        *config.Config
	logger     *slog.Logger
}

func NewMediaService(uploadRepo repository.UploadRepository, store storage.Storage, cfg *config.Config, logger *slog.Logger) MediaService {
	return &mediaService{
		uploadRepo: uploadRepo,
		storage:    store,
		cfg:        cfg,
		logger:     logger,
	}
}

func (m *mediaService) Upload(ctx context.Context, identity *models.Identity, kind string, file io.Reader, size int64) (*models.Upload, error) {
	if err := guard.Require(identity); err != nil {
		return nil, err
	}

	if kind != UploadKindAvatar && kind != UploadKindPost {
		return nil, apperr.Validation(map[string]string{"kind": "Kind must be avatar or post"})
	}

	if size <= 0 {
		return nil, apperr.Validation(map[string]string{"image": "File is empty"})
	}

	if size > m.cfg.MaxUploadSize {
		return nil, apperr.Validation(map[string]string{
			"image": fmt.Sprintf("File is too large (max %s)", humanize.IBytes(uint64(m.cfg.MaxUploadSize))),
		})
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, internalError(m.logger, "read upload", "Failed to upload image", err)
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !slices.Contains(allowedImageTypes, mtype.String()) {
		return nil, apperr.Validation(map[string]string{"image": "Only JPEG, PNG, GIF and WebP images are allowed"})
	}

	prefix := path.Join(kind+"s", identity.UserID)
	body := io.MultiReader(bytes.NewReader(head), file)

	objectName, url, err := m.storage.UploadImage(ctx, prefix, mtype.Extension(), body, size, mtype.String())
	if err != nil {
		return nil, internalError(m.logger, "store upload", "Failed to upload image", err)
	}

	upload := &models.Upload{
		UserID:     identity.UserID,
		Kind:       kind,
		ObjectName: objectName,
		URL:        url,
	}

	if err := m.uploadRepo.Create(ctx, upload); err != nil {
		if delErr := m.storage.DeleteImage(ctx, objectName); delErr != nil {
			m.logger.Warn("could not remove orphaned upload", "object", objectName, "error", delErr)
		}
		return nil, internalError(m.logger, "record upload", "Failed to upload image", err)
	}

	m.logger.Info("image uploaded", "user_id", identity.UserID, "kind", kind, "size", humanize.IBytes(uint64(size)))

	return upload, nil
}

func (m *mediaService) Config() MediaConfig {
	return MediaConfig{
		UploadPreset:  m.cfg.Media.UploadPreset,
		CloudName:     m.cfg.Media.CloudName,
		MaxUploadSize: m.cfg.MaxUploadSize,
		MaxSizeLabel:  humanize.IBytes(uint64(m.cfg.MaxUploadSize)),
		AllowedTypes:  slices.Clone(allowedImageTypes),
	}
}

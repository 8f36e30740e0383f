package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkblog/internal/models"
)

type UploadRepositoryImpl struct {
	db *sqlx.DB
}

func NewUploadRepository(db *sqlx.DB) *UploadRepositoryImpl {
	return &UploadRepositoryImpl{db: db}
}

func (r *UploadRepositoryImpl) Create(ctx context.Context, upload *models.Upload) error {
	query := `
		INSERT INTO uploads (upload_id, user_id, kind, object_name, url, created_at)
		VALUES (:upload_id, :user_id, :kind, :object_name, :url, :created_at)
	`

	if upload.UploadID == "" {
		upload.UploadID = uuid.New().String()
	}

	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, query, upload)
	if err != nil {
		return fmt.Errorf("error recording upload: %w", err)
	}

	return nil
}

func (r *UploadRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]models.Upload, error) {
	query := `SELECT * FROM uploads WHERE user_id = $1 ORDER BY created_at`

	uploads := []models.Upload{}
	err := r.db.SelectContext(ctx, &uploads, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing uploads: %w", err)
	}

	return uploads, nil
}

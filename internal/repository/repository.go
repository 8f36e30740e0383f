package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inkblog/internal/models"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("duplicate key")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const uniqueViolation pq.ErrorCode = "23505"

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, password string) error
	DeleteUser(ctx context.Context, userID string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByIDAndOwner(ctx context.Context, postID, userID string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.PostWithAuthor, error)
	ListPublished(ctx context.Context) ([]models.PostWithAuthor, error)
	ListByOwner(ctx context.Context, userID string, limit int) ([]models.Post, error)
	StatsByOwner(ctx context.Context, userID string) (models.PostStats, error)
	Update(ctx context.Context, post *models.Post) error
	DeleteByOwner(ctx context.Context, postID, userID string) (int64, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetActive(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type UploadRepository interface {
	Create(ctx context.Context, upload *models.Upload) error
	ListByUser(ctx context.Context, userID string) ([]models.Upload, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Session SessionRepository
	Upload  UploadRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Session: NewSessionRepository(db),
		Upload:  NewUploadRepository(db),
		Tables:  NewTablesRepository(db),
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

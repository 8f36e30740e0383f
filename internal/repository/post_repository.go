package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkblog/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

const postWithAuthorColumns = `
	p.post_id, p.user_id, p.title, p.slug, p.description, p.content, p.photo,
	p.seo_keywords, p.published, p.created_at, p.updated_at,
	u.name AS "author.name", u.image AS "author.image"
`

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (post_id, user_id, title, slug, description, content, photo, seo_keywords, published, created_at, updated_at)
        VALUES
        (:post_id, :user_id, :title, :slug, :description, :content, :photo, :seo_keywords, :published, :created_at, :updated_at)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("post with slug %s: %w", post.Slug, ErrDuplicate)
		}
		return fmt.Errorf("error creating post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetByIDAndOwner(ctx context.Context, postID, userID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1 AND user_id = $2`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.PostWithAuthor, error) {
	query := `SELECT ` + postWithAuthorColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.slug = $1`

	var post models.PostWithAuthor
	err := r.db.GetContext(ctx, &post, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post with slug %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting post by slug: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) ListPublished(ctx context.Context) ([]models.PostWithAuthor, error) {
	query := `SELECT ` + postWithAuthorColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.published = TRUE
		ORDER BY p.created_at DESC`

	posts := []models.PostWithAuthor{}
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("error listing published posts: %w", err)
	}

	return posts, nil
}

// ListByOwner returns the user's posts newest first. A limit of 0 returns all.
func (r *PostRepositoryImpl) ListByOwner(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE user_id = $1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing posts of user %s: %w", userID, err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) StatsByOwner(ctx context.Context, userID string) (models.PostStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE published) AS published,
			COUNT(*) FILTER (WHERE NOT published) AS drafts
		FROM posts
		WHERE user_id = $1
	`

	var stats models.PostStats
	err := r.db.GetContext(ctx, &stats, query, userID)
	if err != nil {
		return models.PostStats{}, fmt.Errorf("error counting posts: %w", err)
	}

	return stats, nil
}

// Update overwrites the mutable fields. The owner filter keeps user_id immutable.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			slug = :slug,
			description = :description,
			content = :content,
			photo = :photo,
			seo_keywords = :seo_keywords,
			published = :published,
			updated_at = :updated_at
		WHERE post_id = :post_id AND user_id = :user_id
	`

	post.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("post with slug %s: %w", post.Slug, ErrDuplicate)
		}
		return fmt.Errorf("error updating post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

// DeleteByOwner deletes the post only when userID owns it and reports how many
// rows went away. Zero is not an error.
func (r *PostRepositoryImpl) DeleteByOwner(ctx context.Context, postID, userID string) (int64, error) {
	query := `DELETE FROM posts WHERE post_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return 0, fmt.Errorf("error deleting post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking deleted rows: %w", err)
	}

	return rowsAffected, nil
}

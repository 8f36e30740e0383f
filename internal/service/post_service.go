package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"inkblog/internal/apperr"
	"inkblog/internal/guard"
	"inkblog/internal/models"
	"inkblog/internal/render"
	"inkblog/internal/repository"
	"inkblog/internal/validation"
)

const recentPostsLimit = 5

type PostService interface {
	CreatePost(ctx context.Context, identity *models.Identity, input models.PostInput) (*models.Post, error)
	EditPost(ctx context.Context, identity *models.Identity, input models.EditPostInput) (*models.Post, error)
	DeletePost(ctx context.Context, identity *models.Identity, postID string) error
	GetForEdit(ctx context.Context, identity *models.Identity, postID string) (*models.Post, error)
	GetPost(ctx context.Context, identity *models.Identity, postID string) (*PostView, error)
	ListOwn(ctx context.Context, identity *models.Identity) (*OwnPosts, error)
	ListPublished(ctx context.Context) ([]models.PostWithAuthor, error)
	GetPublishedBySlug(ctx context.Context, identity *models.Identity, slug string) (*PostDetail, error)
}

type PostView struct {
	*models.Post
	IsAuthor bool `json:"isAuthor"`
}

type OwnPosts struct {
	Posts []models.Post    `json:"posts"`
	Stats models.PostStats `json:"stats"`
}

type PostDetail struct {
	*models.PostWithAuthor
	HTML        string   `json:"html"`
	ReadingTime int      `json:"readingTime"`
	Keywords    []string `json:"keywords"`
}

type postService struct {
	postRepo  repository.PostRepository
	validator *validation.Validator
	logger    *slog.Logger
}

func NewPostService(postRepo repository.PostRepository, v *validation.Validator, logger *slog.Logger) PostService {
	return &postService{
		postRepo:  postRepo,
		validator: v,
		logger:    logger,
	}
}

func (p *postService) CreatePost(ctx context.Context, identity *models.Identity, input models.PostInput) (*models.Post, error) {
	if err := guard.Require(identity); err != nil {
		return nil, err
	}

	if err := p.validator.Struct(input); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:      identity.UserID,
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Content:     input.Content,
		Photo:       input.Photo,
		SeoKeywords: input.SeoKeywords,
		Published:   input.Published,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, p.storeError("create post", err)
	}

	p.logger.Info("post created", "post_id", post.PostID, "user_id", identity.UserID, "published", post.Published)

	return post, nil
}

func (p *postService) EditPost(ctx context.Context, identity *models.Identity, input models.EditPostInput) (*models.Post, error) {
	if err := guard.Require(identity); err != nil {
		return nil, err
	}

	if err := p.validator.Struct(input); err != nil {
		return nil, err
	}

	// wrong id and wrong owner look the same to the caller
	post, err := p.postRepo.GetByIDAndOwner(ctx, input.ID, identity.UserID)
	if err != nil {
		return nil, p.storeError("edit post", err)
	}

	post.Title = input.Title
	post.Slug = input.Slug
	post.Description = input.Description
	post.Content = input.Content
	if input.Photo != nil {
		post.Photo = *input.Photo
	}
	if input.SeoKeywords != nil {
		post.SeoKeywords = *input.SeoKeywords
	}
	if input.Published != nil {
		post.Published = *input.Published
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, p.storeError("edit post", err)
	}

	return post, nil
}

// DeletePost removes the post when the caller owns it. A post that does not
// exist or belongs to someone else is left alone and the call still succeeds.
func (p *postService) DeletePost(ctx context.Context, identity *models.Identity, postID string) error {
	if err := guard.Require(identity); err != nil {
		return err
	}

	if _, err := uuid.Parse(postID); err != nil {
		return nil
	}

	deleted, err := p.postRepo.DeleteByOwner(ctx, postID, identity.UserID)
	if err != nil {
		return p.storeError("delete post", err)
	}

	if deleted == 0 {
		p.logger.Warn("delete matched no post", "post_id", postID, "user_id", identity.UserID)
	}

	return nil
}

func (p *postService) GetForEdit(ctx context.Context, identity *models.Identity, postID string) (*models.Post, error) {
	if err := guard.Require(identity); err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(postID); err != nil {
		return nil, errBlogNotFound()
	}

	post, err := p.postRepo.GetByIDAndOwner(ctx, postID, identity.UserID)
	if err != nil {
		return nil, p.storeError("get post for edit", err)
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, identity *models.Identity, postID string) (*PostView, error) {
	if err := guard.Require(identity); err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(postID); err != nil {
		return nil, errBlogNotFound()
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, p.storeError("get post", err)
	}

	isAuthor := guard.Resource(identity, post.UserID) == nil
	if !post.Published && !isAuthor {
		return nil, errBlogNotFound()
	}

	return &PostView{Post: post, IsAuthor: isAuthor}, nil
}

func (p *postService) ListOwn(ctx context.Context, identity *models.Identity) (*OwnPosts, error) {
	if err := guard.Require(identity); err != nil {
		return nil, err
	}

	posts, err := p.postRepo.ListByOwner(ctx, identity.UserID, 0)
	if err != nil {
		return nil, p.storeError("list own posts", err)
	}

	stats := models.PostStats{Total: len(posts)}
	for _, post := range posts {
		if post.Published {
			stats.Published++
		}
	}
	stats.Drafts = stats.Total - stats.Published

	return &OwnPosts{Posts: posts, Stats: stats}, nil
}

func (p *postService) ListPublished(ctx context.Context) ([]models.PostWithAuthor, error) {
	posts, err := p.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, p.storeError("list published posts", err)
	}

	return posts, nil
}

// GetPublishedBySlug serves the public detail page. Drafts resolve only for
// their owner; identity may be nil.
func (p *postService) GetPublishedBySlug(ctx context.Context, identity *models.Identity, slug string) (*PostDetail, error) {
	if err := p.validator.Struct(models.SlugParam{Slug: slug}); err != nil {
		return nil, errBlogNotFound()
	}

	post, err := p.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, p.storeError("get post by slug", err)
	}

	if !post.Published && guard.Resource(identity, post.UserID) != nil {
		return nil, errBlogNotFound()
	}

	html, err := render.HTML(post.Content)
	if err != nil {
		return nil, internalError(p.logger, "render post", "Failed to load blog", err)
	}

	return &PostDetail{
		PostWithAuthor: post,
		HTML:           html,
		ReadingTime:    render.ReadingTime(post.Content),
		Keywords:       render.Keywords(post.SeoKeywords),
	}, nil
}

func (p *postService) storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.Wrap(apperr.KindNotFound, "Blog not found", err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Wrap(apperr.KindConflict, "Slug already in use", err)
	default:
		return internalError(p.logger, op, "Something went wrong", err)
	}
}

func errBlogNotFound() error {
	return apperr.New(apperr.KindNotFound, "Blog not found")
}

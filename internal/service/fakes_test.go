package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkblog/internal/config"
	"inkblog/internal/models"
	"inkblog/internal/repository"
	"inkblog/internal/session"
	"inkblog/internal/validation"
)

// memStore is an in-memory stand-in for Postgres. It enforces unique emails
// and slugs and cascades user deletion the way the schema does.
type memStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	passwords map[string]string
	posts     map[string]*models.Post
	sessions  map[string]*models.Session
	uploads   map[string]*models.Upload
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]*models.User{},
		passwords: map[string]string{},
		posts:     map[string]*models.Post{},
		sessions:  map[string]*models.Session{},
		uploads:   map[string]*models.Upload{},
	}
}

type memUsers struct{ *memStore }
type memPosts struct{ *memStore }
type memSessions struct{ *memStore }
type memUploads struct{ *memStore }

func (s memUsers) CreateUser(ctx context.Context, user *models.User, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s: %w", user.Email, repository.ErrDuplicate)
		}
	}
	user.UserID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	s.users[user.UserID] = &stored
	s.passwords[user.UserID] = password
	return nil
}

func (s memUsers) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s memUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s memUsers) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, repository.ErrInvalidCredentials
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.passwords[user.UserID] != password {
		return nil, repository.ErrInvalidCredentials
	}
	return user, nil
}

func (s memUsers) UpdateProfile(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; !ok {
		return repository.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.UserID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	stored := *user
	s.users[user.UserID] = &stored
	return nil
}

func (s memUsers) UpdatePassword(ctx context.Context, userID, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return repository.ErrNotFound
	}
	s.passwords[userID] = password
	return nil
}

func (s memUsers) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, userID)
	delete(s.passwords, userID)
	for id, p := range s.posts {
		if p.UserID == userID {
			delete(s.posts, id)
		}
	}
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	for id, up := range s.uploads {
		if up.UserID == userID {
			delete(s.uploads, id)
		}
	}
	return nil
}

func (s memPosts) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.Slug == post.Slug {
			return repository.ErrDuplicate
		}
	}
	post.PostID = uuid.NewString()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	s.posts[post.PostID] = &stored
	return nil
}

func (s memPosts) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s memPosts) GetByIDAndOwner(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return post, nil
}

func (s memPosts) GetBySlug(ctx context.Context, slug string) (*models.PostWithAuthor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.Slug == slug {
			author := s.users[p.UserID]
			return &models.PostWithAuthor{
				Post:   *p,
				Author: models.Author{Name: author.Name, Image: author.Image},
			}, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s memPosts) ListPublished(ctx context.Context) ([]models.PostWithAuthor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := []models.PostWithAuthor{}
	for _, p := range s.posts {
		if p.Published {
			author := s.users[p.UserID]
			posts = append(posts, models.PostWithAuthor{
				Post:   *p,
				Author: models.Author{Name: author.Name, Image: author.Image},
			})
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (s memPosts) ListByOwner(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := []models.Post{}
	for _, p := range s.posts {
		if p.UserID == userID {
			posts = append(posts, *p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s memPosts) StatsByOwner(ctx context.Context, userID string) (models.PostStats, error) {
	posts, _ := s.ListByOwner(ctx, userID, 0)
	stats := models.PostStats{Total: len(posts)}
	for _, p := range posts {
		if p.Published {
			stats.Published++
		}
	}
	stats.Drafts = stats.Total - stats.Published
	return stats, nil
}

func (s memPosts) Update(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.posts[post.PostID]
	if !ok || existing.UserID != post.UserID {
		return repository.ErrNotFound
	}
	for id, p := range s.posts {
		if id != post.PostID && p.Slug == post.Slug {
			return repository.ErrDuplicate
		}
	}
	post.UpdatedAt = time.Now()
	stored := *post
	s.posts[post.PostID] = &stored
	return nil
}

func (s memPosts) DeleteByOwner(ctx context.Context, postID, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok || p.UserID != userID {
		return 0, nil
	}
	delete(s.posts, postID)
	return 1, nil
}

func (s memPosts) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s memSessions) Create(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.SessionID = uuid.NewString()
	stored := *sess
	s.sessions[sess.SessionID] = &stored
	return nil
}

func (s memSessions) GetActive(ctx context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || !sess.ExpiresAt.After(time.Now()) {
		return nil, repository.ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s memSessions) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s memSessions) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, sess := range s.sessions {
		if !sess.ExpiresAt.After(time.Now()) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

func (s memUploads) Create(ctx context.Context, upload *models.Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	upload.UploadID = uuid.NewString()
	upload.CreatedAt = time.Now()
	stored := *upload
	s.uploads[upload.UploadID] = &stored
	return nil
}

func (s memUploads) ListByUser(ctx context.Context, userID string) ([]models.Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uploads := []models.Upload{}
	for _, up := range s.uploads {
		if up.UserID == userID {
			uploads = append(uploads, *up)
		}
	}
	return uploads, nil
}

// memStorage records object writes and removals instead of talking to MinIO.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
	failPut error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) UploadImage(ctx context.Context, prefix, ext string, file io.Reader, size int64, contentType string) (string, string, error) {
	if m.failPut != nil {
		return "", "", m.failPut
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", err
	}
	name := prefix + "/" + uuid.NewString() + ext
	m.mu.Lock()
	m.objects[name] = data
	m.mu.Unlock()
	return name, "http://media.test/images/" + name, nil
}

func (m *memStorage) DeleteImage(ctx context.Context, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectName)
	m.removed = append(m.removed, objectName)
	return nil
}

type testEnv struct {
	store    *memStore
	storage  *memStorage
	provider session.Provider
	cfg      *config.Config
	svc      *Service
}

func newTestEnv() *testEnv {
	store := newMemStore()
	objects := newMemStorage()
	cfg := &config.Config{
		MaxUploadSize: 1024,
		Media:         config.Media{UploadPreset: "blog", CloudName: "demo"},
		Session:       config.Session{Secret: "test-secret", Duration: time.Hour},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider := session.NewProvider(memUsers{store}, memSessions{store}, cfg.Session)
	v := validation.New()

	svc := &Service{
		User:  NewUserService(memUsers{store}, memPosts{store}, memUploads{store}, provider, objects, v, logger),
		Post:  NewPostService(memPosts{store}, v, logger),
		Auth:  NewAuthService(provider, v, logger),
		Media: NewMediaService(memUploads{store}, objects, cfg, logger),
	}

	return &testEnv{store: store, storage: objects, provider: provider, cfg: cfg, svc: svc}
}

// signUpAndIn registers a user and returns their identity and session token.
func (e *testEnv) signUpAndIn(ctx context.Context, name, email string) (*models.Identity, string) {
	if _, err := e.svc.Auth.SignUp(ctx, models.SignUpInput{Name: name, Email: email, Password: "password123"}); err != nil {
		panic(err)
	}
	token, err := e.svc.Auth.SignIn(ctx, models.SignInInput{Email: email, Password: "password123"}, session.Meta{})
	if err != nil {
		panic(err)
	}
	identity, err := e.svc.Auth.GetSession(ctx, token.Value)
	if err != nil || identity == nil {
		panic("session did not resolve")
	}
	return identity, token.Value
}

func validPostInput(slug string) models.PostInput {
	return models.PostInput{
		Title:       "Hello world",
		Slug:        slug,
		Description: "A first post about things",
		Content:     "This is the body of the post and it is comfortably longer than fifty characters.",
		SeoKeywords: "go, blog",
		Published:   true,
	}
}

// editInput sends every field, as a full form submit does.
func editInput(id string, in models.PostInput) models.EditPostInput {
	return models.EditPostInput{
		ID:          id,
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Content:     in.Content,
		Photo:       &in.Photo,
		SeoKeywords: &in.SeoKeywords,
		Published:   &in.Published,
	}
}

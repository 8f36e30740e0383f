package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"inkblog/internal/config"
	"inkblog/internal/models"
	"inkblog/internal/service"
	"inkblog/internal/session"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, input models.SignUpInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, input models.SignInInput, meta session.Meta) (*session.Token, error) {
	args := m.Called(ctx, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Token), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) GetSession(ctx context.Context, token string) (*models.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, identity *models.Identity, input models.PostInput) (*models.Post, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) EditPost(ctx context.Context, identity *models.Identity, input models.EditPostInput) (*models.Post, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, identity *models.Identity, postID string) error {
	args := m.Called(ctx, identity, postID)
	return args.Error(0)
}

func (m *MockPostService) GetForEdit(ctx context.Context, identity *models.Identity, postID string) (*models.Post, error) {
	args := m.Called(ctx, identity, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, identity *models.Identity, postID string) (*service.PostView, error) {
	args := m.Called(ctx, identity, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostView), args.Error(1)
}

func (m *MockPostService) ListOwn(ctx context.Context, identity *models.Identity) (*service.OwnPosts, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OwnPosts), args.Error(1)
}

func (m *MockPostService) ListPublished(ctx context.Context) ([]models.PostWithAuthor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostWithAuthor), args.Error(1)
}

func (m *MockPostService) GetPublishedBySlug(ctx context.Context, identity *models.Identity, slug string) (*service.PostDetail, error) {
	args := m.Called(ctx, identity, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostDetail), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Profile(ctx context.Context, identity *models.Identity) (*service.Profile, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, identity *models.Identity, input models.ProfileInput) (*models.User, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdatePassword(ctx context.Context, identity *models.Identity, input models.PasswordInput) error {
	args := m.Called(ctx, identity, input)
	return args.Error(0)
}

func (m *MockUserService) DeleteAccount(ctx context.Context, identity *models.Identity, token string) error {
	args := m.Called(ctx, identity, token)
	return args.Error(0)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, identity *models.Identity, kind string, file io.Reader, size int64) (*models.Upload, error) {
	args := m.Called(ctx, identity, kind, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Upload), args.Error(1)
}

func (m *MockMediaService) Config() service.MediaConfig {
	args := m.Called()
	return args.Get(0).(service.MediaConfig)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) GetCountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type testHandlers struct {
	*Handlers
	auth   *MockAuthService
	posts  *MockPostService
	users  *MockUserService
	media  *MockMediaService
	tables *MockTablesService
}

func newTestHandlers() *testHandlers {
	th := &testHandlers{
		auth:   new(MockAuthService),
		posts:  new(MockPostService),
		users:  new(MockUserService),
		media:  new(MockMediaService),
		tables: new(MockTablesService),
	}

	th.Handlers = &Handlers{
		AuthService:   th.auth,
		PostService:   th.posts,
		UserService:   th.users,
		MediaService:  th.media,
		TablesService: th.tables,
		Cfg: &config.Config{
			MaxUploadSize: 1024,
			Session:       config.Session{CookieName: "session_token"},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return th
}

var jane = &models.Identity{UserID: "u1", Email: "jane@example.com", Name: "Jane"}

func withIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return session.WithIdentity(session.WithToken(ctx, "tok"), identity)
}

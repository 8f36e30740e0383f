package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inkblog/internal/config"
	"inkblog/internal/models"
	"inkblog/internal/repository"
)

// Provider issues, resolves and destroys sessions.
type Provider interface {
	// GetSession resolves a token to an identity. An invalid, expired or
	// revoked token yields (nil, nil); only store failures return an error.
	GetSession(ctx context.Context, token string) (*models.Identity, error)
	SignInEmail(ctx context.Context, email, password string, meta Meta) (*Token, error)
	SignUpEmail(ctx context.Context, name, email, password string) (*models.User, error)
	SignOut(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// Meta is recorded alongside a new session.
type Meta struct {
	IPAddress string
	UserAgent string
}

type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type provider struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewProvider(users repository.UserRepository, sessions repository.SessionRepository, cfg config.Session) Provider {
	return &provider{
		users:    users,
		sessions: sessions,
		secret:   []byte(cfg.Secret),
		ttl:      cfg.Duration,
		now:      time.Now,
	}
}

func (p *provider) GetSession(ctx context.Context, token string) (*models.Identity, error) {
	c, ok := p.parse(token)
	if !ok {
		return nil, nil
	}

	session, err := p.sessions.GetActive(ctx, c.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.UserID != c.Subject {
		return nil, nil
	}

	user, err := p.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &models.Identity{
		UserID:    user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		SessionID: session.SessionID,
	}, nil
}

func (p *provider) SignInEmail(ctx context.Context, email, password string, meta Meta) (*Token, error) {
	user, err := p.users.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := p.now().UTC()
	session := &models.Session{
		UserID:    user.UserID,
		ExpiresAt: now.Add(p.ttl),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
	}

	if err := p.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	value, err := p.sign(session, now)
	if err != nil {
		return nil, err
	}

	return &Token{Value: value, ExpiresAt: session.ExpiresAt}, nil
}

func (p *provider) SignUpEmail(ctx context.Context, name, email, password string) (*models.User, error) {
	user := &models.User{
		Name:  name,
		Email: email,
	}

	if err := p.users.CreateUser(ctx, user, password); err != nil {
		return nil, err
	}

	return user, nil
}

// SignOut revokes the session behind token. Unknown or malformed tokens are a no-op.
func (p *provider) SignOut(ctx context.Context, token string) error {
	c, ok := p.parse(token)
	if !ok {
		return nil
	}

	return p.sessions.Delete(ctx, c.SessionID)
}

func (p *provider) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := p.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := p.users.VerifyPassword(ctx, user.Email, currentPassword); err != nil {
		return err
	}

	return p.users.UpdatePassword(ctx, userID, newPassword)
}

func (p *provider) sign(session *models.Session, issuedAt time.Time) (string, error) {
	c := claims{
		SessionID: session.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("error signing session token: %w", err)
	}

	return signed, nil
}

func (p *provider) parse(tokenString string) (*claims, bool) {
	if tokenString == "" {
		return nil, false
	}

	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || c.SessionID == "" || c.Subject == "" {
		return nil, false
	}

	return c, true
}

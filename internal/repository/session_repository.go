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

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (session_id, user_id, expires_at, ip_address, user_agent, created_at)
		VALUES (:session_id, :user_id, :expires_at, :ip_address, :user_agent, :created_at)
	`

	if session.SessionID == "" {
		session.SessionID = uuid.New().String()
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// GetActive returns the session only while it has not expired. Sessions of a
// deleted user are gone through the cascade, so they resolve to ErrNotFound.
func (r *sessionRepository) GetActive(ctx context.Context, sessionID string) (*models.Session, error) {
	query := `SELECT * FROM sessions WHERE session_id = $1 AND expires_at > CURRENT_TIMESTAMP`

	var session models.Session
	err := r.db.GetContext(ctx, &session, query, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE session_id = $1`

	_, err := r.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= CURRENT_TIMESTAMP`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("error purging sessions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking deleted rows: %w", err)
	}

	return rowsAffected, nil
}

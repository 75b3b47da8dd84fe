package sqlite

import (
	"context"
	"database/sql"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
)

const sessionColumns = `id, user_id, refresh_token_hash, expires_at, created_at, last_seen_at`

func scanSession(scanner interface{ Scan(dest ...any) error }) (*domain.Session, error) {
	var sess domain.Session

	var (
		expiresAt  string
		createdAt  string
		lastSeenAt string
	)

	err := scanner.Scan(
		&sess.ID,
		&sess.UserID,
		&sess.RefreshTokenHash,
		&expiresAt,
		&createdAt,
		&lastSeenAt,
	)
	if err != nil {
		return nil, err
	}

	sess.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	sess.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sess.LastSeenAt, err = parseTime(lastSeenAt)
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

// CreateSession inserts a refresh session.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, refresh_token_hash, expires_at, created_at, last_seen_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.RefreshTokenHash,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		formatTime(session.LastSeenAt),
	)
	if err != nil && isUniqueViolation(err) {
		return errors.Conflict("session already exists")
	}
	return err
}

// GetSessionByTokenHash looks up a session by the hash of its refresh token.
func (s *Store) GetSessionByTokenHash(ctx context.Context, hash string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE refresh_token_hash = ?`, hash)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("session not found")
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSession removes a session by ID. Deleting an unknown session is a
// no-op so logout stays idempotent.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// DeleteExpiredSessions purges sessions past their expiry and reports how
// many were removed.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, formatTime(timeNow()))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package sqlite

import (
	"context"
	"database/sql"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, first_name, last_name, email, external_id, avatar_url, created_at, updated_at, deleted_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		externalID sql.NullString
		avatarURL  sql.NullString
		createdAt  string
		updatedAt  string
		deletedAt  sql.NullString
	)

	err := scanner.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&externalID,
		&avatarURL,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if externalID.Valid {
		u.ExternalID = externalID.String
	}
	if avatarURL.Valid {
		u.AvatarURL = avatarURL.String
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	u.DeletedAt, err = parseNullableTime(deletedAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser inserts a new user and assigns its generated ID.
// Returns a Conflict error when the email belongs to a live account.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			first_name, last_name, email, external_id, avatar_url,
			created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.FirstName,
		user.LastName,
		user.Email,
		nullString(user.ExternalID),
		nullString(user.AvatarURL),
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		nullTimeString(user.DeletedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflictf("a user with email %q already exists", user.Email)
		}
		return err
	}

	user.ID, err = result.LastInsertId()
	return err
}

// GetUser retrieves a live user by ID.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND deleted_at IS NULL`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail retrieves a live user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? AND deleted_at IS NULL`, email)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("user with email %q not found", email)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns all live users ordered by creation time.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

var userUpdateColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"avatar":    "avatar_url",
}

// UpdateUser applies a partial update and returns the refreshed row.
// updated_at is always advanced alongside the requested fields.
func (s *Store) UpdateUser(ctx context.Context, id int64, fields []store.Field) (*domain.User, error) {
	clause, args, err := store.BuildUpdate(fields, userUpdateColumns)
	if err != nil {
		return nil, err
	}

	args = append(args, formatTime(timeNow()), id)
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET `+clause+`, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		args...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Conflict("a user with that email already exists")
		}
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.NotFoundf("user %d not found", id)
	}

	return s.GetUser(ctx, id)
}

// SoftDeleteUser marks a user as deleted. Deleting an already-deleted or
// unknown user returns NotFound.
func (s *Store) SoftDeleteUser(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		formatTime(timeNow()), id,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFoundf("user %d not found", id)
	}
	return nil
}

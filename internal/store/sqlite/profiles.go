package sqlite

import (
	"context"
	"database/sql"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
)

func scanProfile(scanner interface{ Scan(dest ...any) error }) (*domain.Profile, error) {
	var p domain.Profile
	var bio sql.NullString

	if err := scanner.Scan(&p.ID, &p.UserID, &bio); err != nil {
		return nil, err
	}
	if bio.Valid {
		p.Bio = bio.String
	}
	return &p, nil
}

// CreateProfile creates an empty profile for a user.
// Returns a Conflict error when the user already has one.
func (s *Store) CreateProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, bio) VALUES (?, NULL)`, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Conflictf("user %d already has a profile", userID)
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Profile{ID: id, UserID: userID}, nil
}

// GetProfileByUser retrieves the profile belonging to a user.
func (s *Store) GetProfileByUser(ctx context.Context, userID int64) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, bio FROM profiles WHERE user_id = ?`, userID)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("profile for user %d not found", userID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProfileBio replaces the bio text and returns the refreshed row.
func (s *Store) UpdateProfileBio(ctx context.Context, userID int64, bio string) (*domain.Profile, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET bio = ? WHERE user_id = ?`, nullString(bio), userID)
	if err != nil {
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.NotFoundf("profile for user %d not found", userID)
	}

	return s.GetProfileByUser(ctx, userID)
}

// DeleteProfile performs a hard delete on a user's profile.
func (s *Store) DeleteProfile(ctx context.Context, userID int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFoundf("profile for user %d not found", userID)
	}
	return nil
}

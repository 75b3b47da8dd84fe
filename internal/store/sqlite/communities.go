package sqlite

import (
	"context"
	"database/sql"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// communityColumns is the ordered list of columns selected in community
// queries. Must match the scan order in scanCommunity.
const communityColumns = `id, name, description, image, admin_id, created_at, last_updated_at`

// scanCommunity scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Community.
func scanCommunity(scanner interface{ Scan(dest ...any) error }) (*domain.Community, error) {
	var c domain.Community

	var (
		description   sql.NullString
		image         sql.NullString
		createdAt     string
		lastUpdatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&description,
		&image,
		&c.AdminID,
		&createdAt,
		&lastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		c.Description = description.String
	}
	if image.Valid {
		c.Image = image.String
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.LastUpdatedAt, err = parseTime(lastUpdatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateCommunity inserts a new community and assigns its generated ID.
// Returns a Conflict error when the name is taken.
func (s *Store) CreateCommunity(ctx context.Context, community *domain.Community) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO communities (name, description, image, admin_id, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		community.Name,
		nullString(community.Description),
		nullString(community.Image),
		community.AdminID,
		formatTime(community.CreatedAt),
		formatTime(community.LastUpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflictf("a community named %q already exists", community.Name)
		}
		return err
	}

	community.ID, err = result.LastInsertId()
	return err
}

// GetCommunity retrieves a community by ID.
func (s *Store) GetCommunity(ctx context.Context, id int64) (*domain.Community, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+communityColumns+` FROM communities WHERE id = ?`, id)

	c, err := scanCommunity(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("community %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCommunities returns all communities ordered by creation time.
func (s *Store) ListCommunities(ctx context.Context) ([]*domain.Community, error) {
	return s.queryCommunities(ctx,
		`SELECT `+communityColumns+` FROM communities ORDER BY created_at`)
}

// ListCommunitiesByAdmin returns the communities administered by a user.
func (s *Store) ListCommunitiesByAdmin(ctx context.Context, adminID int64) ([]*domain.Community, error) {
	return s.queryCommunities(ctx,
		`SELECT `+communityColumns+` FROM communities WHERE admin_id = ? ORDER BY created_at`,
		adminID)
}

func (s *Store) queryCommunities(ctx context.Context, query string, args ...any) ([]*domain.Community, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var communities []*domain.Community
	for rows.Next() {
		c, err := scanCommunity(rows)
		if err != nil {
			return nil, err
		}
		communities = append(communities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return communities, nil
}

var communityUpdateColumns = map[string]string{
	"name":        "name",
	"description": "description",
	"image":       "image",
}

// UpdateCommunity applies a partial update, advances last_updated_at, and
// returns the refreshed row.
func (s *Store) UpdateCommunity(ctx context.Context, id int64, fields []store.Field) (*domain.Community, error) {
	clause, args, err := store.BuildUpdate(fields, communityUpdateColumns)
	if err != nil {
		return nil, err
	}

	args = append(args, formatTime(timeNow()), id)
	result, err := s.db.ExecContext(ctx,
		`UPDATE communities SET `+clause+`, last_updated_at = ? WHERE id = ?`,
		args...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Conflict("a community with that name already exists")
		}
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.NotFoundf("community %d not found", id)
	}

	return s.GetCommunity(ctx, id)
}

// DeleteCommunity performs a hard delete.
func (s *Store) DeleteCommunity(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM communities WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFoundf("community %d not found", id)
	}
	return nil
}

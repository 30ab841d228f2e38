package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/photoscout/photoscout/internal/domain"
)

// SaveLocation inserts the location when it has no identity yet, otherwise
// updates the existing row. On insert the database-assigned id is written
// back onto the entity.
func (s *Store) SaveLocation(ctx context.Context, loc *domain.Location) error {
	if loc.ID() == 0 {
		return s.insertLocation(ctx, loc)
	}
	return s.updateLocation(ctx, loc)
}

func (s *Store) insertLocation(ctx context.Context, loc *domain.Location) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (title, description, lat, lon, city, state, photo_path, deleted, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loc.Title(), loc.Description(),
		loc.Coordinate().Lat, loc.Coordinate().Lon,
		loc.Address().City, loc.Address().State,
		loc.PhotoPath(), loc.IsDeleted(),
		loc.ModifiedAt().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("location insert id: %w", err)
	}
	loc.SetID(id)
	return nil
}

func (s *Store) updateLocation(ctx context.Context, loc *domain.Location) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE locations
		SET title = ?, description = ?, lat = ?, lon = ?, city = ?, state = ?,
		    photo_path = ?, deleted = ?, modified_at = ?
		WHERE id = ?`,
		loc.Title(), loc.Description(),
		loc.Coordinate().Lat, loc.Coordinate().Lon,
		loc.Address().City, loc.Address().State,
		loc.PhotoPath(), loc.IsDeleted(),
		loc.ModifiedAt().UTC().Format(timeLayout),
		loc.ID(),
	)
	if err != nil {
		return fmt.Errorf("update location %d: %w", loc.ID(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update location %d: %w", loc.ID(), err)
	}
	if n == 0 {
		return fmt.Errorf("update location %d: %w", loc.ID(), ErrNotFound)
	}
	return nil
}

// GetLocation loads one location by id, including soft-deleted ones.
func (s *Store) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, lat, lon, city, state, photo_path, deleted, modified_at
		FROM locations WHERE id = ?`, id)

	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("location %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get location %d: %w", id, err)
	}
	return loc, nil
}

// ListActiveLocations returns all locations that are not soft-deleted,
// oldest first.
func (s *Store) ListActiveLocations(ctx context.Context) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, lat, lon, city, state, photo_path, deleted, modified_at
		FROM locations WHERE deleted = 0 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("list locations: %w", err)
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var (
		id                 int64
		title, description string
		lat, lon           float64
		city, state        string
		photoPath          string
		deleted            bool
		modifiedAt         string
	)
	if err := row.Scan(&id, &title, &description, &lat, &lon, &city, &state, &photoPath, &deleted, &modifiedAt); err != nil {
		return nil, err
	}
	ts, err := time.Parse(timeLayout, modifiedAt)
	if err != nil {
		return nil, fmt.Errorf("parse modified_at: %w", err)
	}
	return domain.RehydrateLocation(id, title, description,
		domain.NewCoordinate(lat, lon), domain.NewAddress(city, state),
		photoPath, deleted, ts), nil
}

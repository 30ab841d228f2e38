package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/photoscout/photoscout/internal/domain"
)

// SaveSetting inserts or updates a setting. Keys are unique; an insert with a
// taken key fails at the database.
func (s *Store) SaveSetting(ctx context.Context, setting *domain.Setting) error {
	if setting.ID() == 0 {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO settings (key, value, description, updated_at)
			VALUES (?, ?, ?, ?)`,
			setting.Key(), setting.Value(), setting.Description(),
			setting.UpdatedAt().UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("insert setting %q: %w", setting.Key(), err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("setting insert id: %w", err)
		}
		setting.SetID(id)
		return nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE settings SET value = ?, description = ?, updated_at = ? WHERE id = ?`,
		setting.Value(), setting.Description(),
		setting.UpdatedAt().UTC().Format(timeLayout),
		setting.ID(),
	)
	if err != nil {
		return fmt.Errorf("update setting %q: %w", setting.Key(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update setting %q: %w", setting.Key(), err)
	}
	if n == 0 {
		return fmt.Errorf("setting %q: %w", setting.Key(), ErrNotFound)
	}
	return nil
}

// GetSetting loads one setting by its key.
func (s *Store) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, key, value, description, updated_at FROM settings WHERE key = ?`, key)

	setting, err := scanSetting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get setting %q: %w", key, err)
	}
	return setting, nil
}

// ListSettings returns all settings ordered by key.
func (s *Store) ListSettings(ctx context.Context) ([]*domain.Setting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, key, value, description, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var out []*domain.Setting
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("list settings: %w", err)
		}
		out = append(out, setting)
	}
	return out, rows.Err()
}

func scanSetting(row rowScanner) (*domain.Setting, error) {
	var (
		id                      int64
		key, value, description string
		updatedAt               string
	)
	if err := row.Scan(&id, &key, &value, &description, &updatedAt); err != nil {
		return nil, err
	}
	ts, err := time.Parse(timeLayout, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return domain.RehydrateSetting(id, key, value, description, ts), nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/photoscout/photoscout/internal/domain"
)

// SaveTipType inserts or updates a tip type row. Owned tips are saved
// separately with SaveTip.
func (s *Store) SaveTipType(ctx context.Context, tt *domain.TipType) error {
	if tt.ID() == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO tip_types (name, locale) VALUES (?, ?)`,
			tt.Name(), tt.Localization())
		if err != nil {
			return fmt.Errorf("insert tip type: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("tip type insert id: %w", err)
		}
		tt.SetID(id)
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE tip_types SET name = ?, locale = ? WHERE id = ?`,
		tt.Name(), tt.Localization(), tt.ID())
	if err != nil {
		return fmt.Errorf("update tip type %d: %w", tt.ID(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tip type %d: %w", tt.ID(), err)
	}
	if n == 0 {
		return fmt.Errorf("tip type %d: %w", tt.ID(), ErrNotFound)
	}
	return nil
}

// SaveTip inserts or updates a tip row.
func (s *Store) SaveTip(ctx context.Context, tip *domain.Tip) error {
	if tip.ID() == 0 {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO tips (tip_type_id, title, content, locale, f_stop, shutter_speed, iso)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			tip.TipTypeID(), tip.Title(), tip.Content(), tip.Localization(),
			tip.FStop(), tip.ShutterSpeed(), tip.ISO())
		if err != nil {
			return fmt.Errorf("insert tip: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("tip insert id: %w", err)
		}
		tip.SetID(id)
		return nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE tips
		SET tip_type_id = ?, title = ?, content = ?, locale = ?, f_stop = ?, shutter_speed = ?, iso = ?
		WHERE id = ?`,
		tip.TipTypeID(), tip.Title(), tip.Content(), tip.Localization(),
		tip.FStop(), tip.ShutterSpeed(), tip.ISO(), tip.ID())
	if err != nil {
		return fmt.Errorf("update tip %d: %w", tip.ID(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tip %d: %w", tip.ID(), err)
	}
	if n == 0 {
		return fmt.Errorf("tip %d: %w", tip.ID(), ErrNotFound)
	}
	return nil
}

// DeleteTip removes a tip row. Deleting an absent tip is a no-op, matching
// the collection semantics of TipType.RemoveTip.
func (s *Store) DeleteTip(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tips WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tip %d: %w", id, err)
	}
	return nil
}

// GetTipType loads a tip type with its tips attached, in insertion order.
func (s *Store) GetTipType(ctx context.Context, id int64) (*domain.TipType, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, locale FROM tip_types WHERE id = ?`, id)

	var (
		typeID       int64
		name, locale string
	)
	if err := row.Scan(&typeID, &name, &locale); errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tip type %d: %w", id, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("get tip type %d: %w", id, err)
	}

	tt := domain.RehydrateTipType(typeID, name, locale)
	if err := s.attachTips(ctx, tt); err != nil {
		return nil, err
	}
	return tt, nil
}

// ListTipTypes returns all tip types with their tips attached.
func (s *Store) ListTipTypes(ctx context.Context) ([]*domain.TipType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, locale FROM tip_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tip types: %w", err)
	}
	defer rows.Close()

	var out []*domain.TipType
	for rows.Next() {
		var (
			id           int64
			name, locale string
		)
		if err := rows.Scan(&id, &name, &locale); err != nil {
			return nil, fmt.Errorf("list tip types: %w", err)
		}
		out = append(out, domain.RehydrateTipType(id, name, locale))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, tt := range out {
		if err := s.attachTips(ctx, tt); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) attachTips(ctx context.Context, tt *domain.TipType) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tip_type_id, title, content, locale, f_stop, shutter_speed, iso
		FROM tips WHERE tip_type_id = ? ORDER BY id`, tt.ID())
	if err != nil {
		return fmt.Errorf("load tips for type %d: %w", tt.ID(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, typeID               int64
			title, content, locale   string
			fStop, shutterSpeed, iso string
		)
		if err := rows.Scan(&id, &typeID, &title, &content, &locale, &fStop, &shutterSpeed, &iso); err != nil {
			return fmt.Errorf("load tips for type %d: %w", tt.ID(), err)
		}
		tip := domain.RehydrateTip(id, typeID, title, content, locale, fStop, shutterSpeed, iso)
		if err := tt.AddTip(tip); err != nil {
			return fmt.Errorf("attach tip %d: %w", id, err)
		}
	}
	return rows.Err()
}

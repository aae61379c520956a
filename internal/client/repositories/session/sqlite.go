package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/common"
	"github.com/dmitrijs2005/bloodlink/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, s models.Session) error {
	rows := map[string]string{
		common.AccessTokenKey:  s.AccessToken,
		common.RefreshTokenKey: s.RefreshToken,
		common.RoleKey:         string(s.Role),
	}
	if s.ExpiresAt != nil {
		rows[common.ExpiresAtKey] = s.ExpiresAt.UTC().Format(time.RFC3339)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
		for key, value := range rows {
			_, err := tx.ExecContext(ctx, `INSERT INTO session (key, value) VALUES (?, ?)`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set session[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	return decode(values)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func decode(values map[string]string) (*models.Session, error) {
	access := values[common.AccessTokenKey]
	if access == "" {
		return nil, nil
	}

	role := models.Role(values[common.RoleKey])
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role %q", ErrCorrupt, role)
	}

	s := &models.Session{
		AccessToken:  access,
		RefreshToken: values[common.RefreshTokenKey],
		Role:         role,
	}
	if raw, ok := values[common.ExpiresAtKey]; ok && raw != "" {
		exp, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: expires_at: %v", ErrCorrupt, err)
		}
		s.ExpiresAt = &exp
	}
	return s, nil
}

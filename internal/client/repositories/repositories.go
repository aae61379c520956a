// Package repositories opens the local sqlite database, applies the embedded
// migrations and wires the repositories that live on top of it.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/bloodlink/internal/client/migrations"
	"github.com/dmitrijs2005/bloodlink/internal/client/repositories/offers"
	"github.com/dmitrijs2005/bloodlink/internal/client/repositories/session"
	"github.com/dmitrijs2005/bloodlink/internal/filex"
)

type Repositories struct {
	DB      *sql.DB
	Session session.Repository
	Offers  offers.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the sqlite database at dsn and brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", dsn, err)
	}
	return db, nil
}

func Open(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		DB:      db,
		Session: session.NewSQLiteRepository(db),
		Offers:  offers.NewSQLiteRepository(db),
	}, nil
}

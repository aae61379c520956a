package offers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/common"
	"github.com/dmitrijs2005/bloodlink/internal/dbx"
)

const offerDateLayout = time.RFC3339

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, o models.DonationOffer, receivedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO donation_offers (id, blood_group, units, hospital_name, location, offer_date, accepted, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			blood_group = excluded.blood_group,
			units = excluded.units,
			hospital_name = excluded.hospital_name,
			location = excluded.location,
			offer_date = excluded.offer_date
	`, o.ID, string(o.BloodGroup), o.Units, o.HospitalName, o.Location,
		o.Date.UTC().Format(offerDateLayout), boolToInt(o.Accepted), receivedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to put offer %s: %w", o.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.DonationOffer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, blood_group, units, hospital_name, location, offer_date, accepted
		FROM donation_offers
		ORDER BY received_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var out []models.DonationOffer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.DonationOffer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, blood_group, units, hospital_name, location, offer_date, accepted
		FROM donation_offers WHERE id = ?
	`, id)
	o, err := scanOffer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	return o, err
}

func (r *SQLiteRepository) Accept(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `UPDATE donation_offers SET accepted = 0 WHERE accepted = 1`); err != nil {
			return fmt.Errorf("failed to reset accepted offer: %w", err)
		}
		return setAccepted(ctx, tx, id, true)
	})
}

func (r *SQLiteRepository) Unaccept(ctx context.Context, id string) error {
	return setAccepted(ctx, r.db, id, false)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM donation_offers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer %s: %w", id, err)
	}
	return requireAffected(res)
}

func setAccepted(ctx context.Context, db dbx.DBTX, id string, accepted bool) error {
	res, err := db.ExecContext(ctx, `UPDATE donation_offers SET accepted = ? WHERE id = ?`, boolToInt(accepted), id)
	if err != nil {
		return fmt.Errorf("failed to update offer %s: %w", id, err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOffer(s scanner) (*models.DonationOffer, error) {
	var (
		o        models.DonationOffer
		group    string
		date     string
		accepted int
	)
	if err := s.Scan(&o.ID, &group, &o.Units, &o.HospitalName, &o.Location, &date, &accepted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan offer: %w", err)
	}
	t, err := time.Parse(offerDateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse offer date %q: %w", date, err)
	}
	o.BloodGroup = models.BloodType(group)
	o.Date = t
	o.Accepted = accepted == 1
	return &o, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

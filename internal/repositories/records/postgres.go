// Package records stores user records in the "SupaCRUD" table.
package records

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/dbx"
	"github.com/dmitrijs2005/supacrm/internal/models"
)

const columns = `id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''), location, latitude, longitude, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Select(ctx context.Context) ([]models.Record, error) {
	query := `SELECT ` + columns + ` FROM ` + common.TableRecords + `
		 ORDER BY id`

	return r.query(ctx, query)
}

// FindByContact returns records sharing the given email or phone. Empty
// arguments match nothing.
func (r *PostgresRepository) FindByContact(ctx context.Context, email, phone string) ([]models.Record, error) {
	query := `SELECT ` + columns + ` FROM ` + common.TableRecords + `
		 WHERE ($1 <> '' AND email = $1) OR ($2 <> '' AND phone = $2)
		 ORDER BY id`

	return r.query(ctx, query, email, phone)
}

func (r *PostgresRepository) Insert(ctx context.Context, rec models.Record) (models.Record, error) {
	query :=
		`INSERT INTO ` + common.TableRecords + ` (first_name, last_name, email, phone, location, latitude, longitude)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)
		 RETURNING id, created_at`

	var id int64
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query,
		rec.FirstName, rec.LastName, rec.Email, rec.Phone, rec.Location,
		nullFloat(rec.Latitude), nullFloat(rec.Longitude)).Scan(&id, &createdAt)
	if err != nil {
		return models.Record{}, dbx.MapError(err)
	}

	rec.ID = strconv.FormatInt(id, 10)
	rec.CreatedAt = createdAt
	return rec, nil
}

// InsertAndSelect inserts rec and reads the table back in one transaction.
// When the read fails the insert is rolled back, so a failed call leaves
// nothing behind. A repository already bound to a transaction runs both
// statements in it.
func (r *PostgresRepository) InsertAndSelect(ctx context.Context, rec models.Record) (models.Record, []models.Record, error) {
	var (
		saved models.Record
		rows  []models.Record
	)
	run := func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewPostgresRepository(tx)
		var err error
		if saved, err = repo.Insert(ctx, rec); err != nil {
			return err
		}
		rows, err = repo.Select(ctx)
		return err
	}

	db, ok := r.db.(*sql.DB)
	if !ok {
		if err := run(ctx, r.db); err != nil {
			return models.Record{}, nil, err
		}
		return saved, rows, nil
	}
	if err := dbx.WithTx(ctx, db, nil, run); err != nil {
		return models.Record{}, nil, err
	}
	return saved, rows, nil
}

// Update writes every editable field. created_at is never touched.
func (r *PostgresRepository) Update(ctx context.Context, rec models.Record) error {
	id, ok := parseID(rec.ID)
	if !ok {
		return common.ErrNotFound
	}

	query :=
		`UPDATE ` + common.TableRecords + `
		 SET first_name = $2, last_name = $3, email = NULLIF($4, ''), phone = NULLIF($5, ''),
		     location = $6, latitude = $7, longitude = $8
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		rec.FirstName, rec.LastName, rec.Email, rec.Phone, rec.Location,
		nullFloat(rec.Latitude), nullFloat(rec.Longitude))
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireOneRow(res, common.ErrNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	n, ok := parseID(id)
	if !ok {
		return common.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM `+common.TableRecords+` WHERE id = $1`, n)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireOneRow(res, common.ErrNotFound)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Record, 0)
	for rows.Next() {
		var (
			rec      models.Record
			id       int64
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&id, &rec.FirstName, &rec.LastName, &rec.Email, &rec.Phone,
			&rec.Location, &lat, &lng, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		rec.ID = strconv.FormatInt(id, 10)
		if lat.Valid && lng.Valid {
			rec.Latitude, rec.Longitude = &lat.Float64, &lng.Float64
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	return n, err == nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

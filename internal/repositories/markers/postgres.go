// Package markers stores operator-placed map markers. Every stored marker is
// draggable; markers derived from records are never persisted here.
package markers

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/dbx"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Select(ctx context.Context) ([]models.Marker, error) {
	query :=
		`SELECT id, lat, lng, label FROM ` + common.TableMarkers + `
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Marker, 0)
	for rows.Next() {
		m := models.Marker{Draggable: true}
		if err := rows.Scan(&m.ID, &m.Lat, &m.Lng, &m.Label); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, m models.Marker) (models.Marker, error) {
	query :=
		`INSERT INTO ` + common.TableMarkers + ` (lat, lng, label)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, m.Lat, m.Lng, m.Label).Scan(&m.ID); err != nil {
		return models.Marker{}, dbx.MapError(err)
	}
	m.Draggable = true
	return m, nil
}

func (r *PostgresRepository) Update(ctx context.Context, m models.Marker) error {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return common.ErrNotFound
	}

	query :=
		`UPDATE ` + common.TableMarkers + `
		 SET lat = $2, lng = $3, label = $4
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id.String(), m.Lat, m.Lng, m.Label)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireOneRow(res, common.ErrNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	u, err := uuid.Parse(id)
	if err != nil {
		return common.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM `+common.TableMarkers+` WHERE id = $1`, u.String())
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireOneRow(res, common.ErrNotFound)
}

// Package events stores calendar events as (event_day, event_hour) pairs.
package events

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/dbx"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/dmitrijs2005/supacrm/internal/normalize"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Select(ctx context.Context) ([]models.CalendarEvent, error) {
	query :=
		`SELECT id, event_name, event_day::text, event_hour FROM ` + common.TableEvents + `
		 ORDER BY event_day, event_hour, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.CalendarEvent, 0)
	for rows.Next() {
		var (
			id               int64
			title, day, hour string
		)
		if err := rows.Scan(&id, &title, &day, &hour); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ev, err := normalize.EventFromStored(strconv.FormatInt(id, 10), title, day, hour)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", id, err)
		}
		result = append(result, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, ev models.CalendarEvent) (models.CalendarEvent, error) {
	st, err := normalize.StoredFromEvent(ev)
	if err != nil {
		return models.CalendarEvent{}, err
	}

	query :=
		`INSERT INTO ` + common.TableEvents + ` (event_name, event_day, event_hour)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, ev.Title, st.Day, st.TimeOfDay).Scan(&id); err != nil {
		return models.CalendarEvent{}, dbx.MapError(err)
	}

	return normalize.EventFromStored(strconv.FormatInt(id, 10), ev.Title, st.Day, st.TimeOfDay)
}

func (r *PostgresRepository) Update(ctx context.Context, ev models.CalendarEvent) error {
	id, err := strconv.ParseInt(ev.ID, 10, 64)
	if err != nil {
		return common.ErrNotFound
	}
	st, err := normalize.StoredFromEvent(ev)
	if err != nil {
		return err
	}

	query :=
		`UPDATE ` + common.TableEvents + `
		 SET event_name = $2, event_day = $3, event_hour = $4
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, ev.Title, st.Day, st.TimeOfDay)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireOneRow(res, common.ErrNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return common.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM `+common.TableEvents+` WHERE id = $1`, n)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireOneRow(res, common.ErrNotFound)
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/supacrm/internal/dbx"
	"github.com/dmitrijs2005/supacrm/internal/repositories/events"
	"github.com/dmitrijs2005/supacrm/internal/repositories/markers"
	"github.com/dmitrijs2005/supacrm/internal/repositories/records"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Ping(ctx context.Context) error
	Records(db dbx.DBTX) records.Repository
	Events(db dbx.DBTX) events.Repository
	Markers(db dbx.DBTX) markers.Repository
}

package events

import (
	"context"

	"github.com/dmitrijs2005/supacrm/internal/models"
)

type Repository interface {
	Select(ctx context.Context) ([]models.CalendarEvent, error)
	Insert(ctx context.Context, ev models.CalendarEvent) (models.CalendarEvent, error)
	Update(ctx context.Context, ev models.CalendarEvent) error
	Delete(ctx context.Context, id string) error
}

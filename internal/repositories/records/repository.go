package records

import (
	"context"

	"github.com/dmitrijs2005/supacrm/internal/models"
)

type Repository interface {
	Select(ctx context.Context) ([]models.Record, error)
	Insert(ctx context.Context, r models.Record) (models.Record, error)
	Update(ctx context.Context, r models.Record) error
	Delete(ctx context.Context, id string) error
	FindByContact(ctx context.Context, email, phone string) ([]models.Record, error)
}

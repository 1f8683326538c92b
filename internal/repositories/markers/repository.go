package markers

import (
	"context"

	"github.com/dmitrijs2005/supacrm/internal/models"
)

type Repository interface {
	Select(ctx context.Context) ([]models.Marker, error)
	Insert(ctx context.Context, m models.Marker) (models.Marker, error)
	Update(ctx context.Context, m models.Marker) error
	Delete(ctx context.Context, id string) error
}

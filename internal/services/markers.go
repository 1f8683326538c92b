package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/logging"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/dmitrijs2005/supacrm/internal/optimistic"
	"github.com/dmitrijs2005/supacrm/internal/repositories/markers"
)

type MarkerService struct {
	ctrl *optimistic.Controller[models.Marker]
}

func NewMarkerService(repo markers.Repository, log logging.Logger, confirm optimistic.Confirmer) *MarkerService {
	return &MarkerService{
		ctrl: optimistic.New[models.Marker]("markers", repo, optimistic.InsertPlaceholder, log, confirm),
	}
}

func (s *MarkerService) Load(ctx context.Context) ([]models.Marker, error) {
	return s.ctrl.Load(ctx)
}

func (s *MarkerService) List() []models.Marker {
	return s.ctrl.Items()
}

// Place drops a new draggable marker.
func (s *MarkerService) Place(ctx context.Context, lat, lng float64, label string) (models.Marker, error) {
	if !models.ValidCoordinates(lat, lng) {
		return models.Marker{}, coordErr(lat, lng)
	}
	return s.ctrl.Add(ctx, models.Marker{Lat: lat, Lng: lng, Draggable: true, Label: strings.TrimSpace(label)})
}

// Move is the end of a drag: the marker takes the new position.
func (s *MarkerService) Move(ctx context.Context, id string, lat, lng float64) (models.Marker, error) {
	if !models.ValidCoordinates(lat, lng) {
		return models.Marker{}, coordErr(lat, lng)
	}
	return s.ctrl.Update(ctx, id, func(m models.Marker) models.Marker {
		m.Lat, m.Lng = lat, lng
		return m
	})
}

func (s *MarkerService) Remove(ctx context.Context, id string) error {
	return s.ctrl.Remove(ctx, id)
}

func coordErr(lat, lng float64) error {
	return fmt.Errorf("%w: coordinates out of range: %g, %g", common.ErrValidation, lat, lng)
}

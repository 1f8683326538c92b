package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/guard"
	"github.com/dmitrijs2005/supacrm/internal/logging"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/dmitrijs2005/supacrm/internal/normalize"
	"github.com/dmitrijs2005/supacrm/internal/optimistic"
	"github.com/dmitrijs2005/supacrm/internal/repositories/records"
)

type RecordService struct {
	ctrl     *optimistic.Controller[models.Record]
	geocoder normalize.Geocoder
	guard    *guard.Guard
	log      logging.Logger
}

func NewRecordService(repo records.Repository, geocoder normalize.Geocoder, log logging.Logger, confirm optimistic.Confirmer) *RecordService {
	if log == nil {
		log = logging.NewNop()
	}
	return &RecordService{
		ctrl:     optimistic.New[models.Record]("records", repo, optimistic.InsertThenReload, log, confirm),
		geocoder: geocoder,
		guard:    guard.New(repo),
		log:      log,
	}
}

func (s *RecordService) Load(ctx context.Context) ([]models.Record, error) {
	return s.ctrl.Load(ctx)
}

func (s *RecordService) List() []models.Record {
	return s.ctrl.Items()
}

func (s *RecordService) Get(id string) (models.Record, bool) {
	return s.ctrl.Get(id)
}

// Add geocodes the location, runs the duplicate guard and inserts the record.
// Nothing changes locally when either check fails.
func (s *RecordService) Add(ctx context.Context, in models.RecordInput) (models.Record, error) {
	rec, err := s.prepare(ctx, in, "")
	if err != nil {
		return models.Record{}, err
	}
	return s.ctrl.Add(ctx, rec)
}

// Update replaces the editable fields of record id. ID and CreatedAt are kept.
func (s *RecordService) Update(ctx context.Context, id string, in models.RecordInput) (models.Record, error) {
	if _, ok := s.ctrl.Get(id); !ok {
		return models.Record{}, fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}

	rec, err := s.prepare(ctx, in, id)
	if err != nil {
		return models.Record{}, err
	}

	return s.ctrl.Update(ctx, id, func(prev models.Record) models.Record {
		rec.ID = prev.ID
		rec.CreatedAt = prev.CreatedAt
		return rec
	})
}

func (s *RecordService) Remove(ctx context.Context, id string) error {
	return s.ctrl.Remove(ctx, id)
}

// Markers returns read-only map markers for every record with coordinates.
func (s *RecordService) Markers() []models.Marker {
	items := s.ctrl.Items()
	out := make([]models.Marker, 0, len(items))
	for _, r := range items {
		if !r.HasCoordinates() {
			continue
		}
		out = append(out, models.Marker{
			ID:    r.ID,
			Lat:   *r.Latitude,
			Lng:   *r.Longitude,
			Label: fmt.Sprintf("%s, %s", r.FullName(), r.Location),
		})
	}
	return out
}

func (s *RecordService) prepare(ctx context.Context, in models.RecordInput, excludeID string) (models.Record, error) {
	in = in.Trimmed()
	if in.FirstName == "" && in.LastName == "" {
		return models.Record{}, fmt.Errorf("%w: first or last name is required", common.ErrValidation)
	}

	rec := models.FromInput(in)
	if in.Location != "" {
		place, err := normalize.NormalizeLocation(ctx, s.geocoder, in.Location)
		if err != nil {
			s.log.Info(ctx, "location rejected", "location", in.Location, "err", err)
			return models.Record{}, err
		}
		rec.Location = place.FormattedName
		rec.Latitude, rec.Longitude = &place.Latitude, &place.Longitude
	}

	conflict, err := s.guard.CheckConflict(ctx, in, excludeID)
	if err != nil {
		return models.Record{}, err
	}
	if conflict {
		return models.Record{}, common.ErrDuplicate
	}
	return rec, nil
}

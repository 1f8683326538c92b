package services

import (
	"context"
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/logging"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/dmitrijs2005/supacrm/internal/normalize"
	"github.com/dmitrijs2005/supacrm/internal/optimistic"
	"github.com/dmitrijs2005/supacrm/internal/repositories/events"
)

const icsProductID = "-//supacrm//calendar//EN"

type EventService struct {
	ctrl *optimistic.Controller[models.CalendarEvent]
	now  func() time.Time
}

func NewEventService(repo events.Repository, log logging.Logger, confirm optimistic.Confirmer) *EventService {
	return &EventService{
		ctrl: optimistic.New[models.CalendarEvent]("events", repo, optimistic.InsertPlaceholder, log, confirm),
		now:  time.Now,
	}
}

func (s *EventService) Load(ctx context.Context) ([]models.CalendarEvent, error) {
	return s.ctrl.Load(ctx)
}

func (s *EventService) List() []models.CalendarEvent {
	return s.ctrl.Items()
}

func (s *EventService) Add(ctx context.Context, in models.EventInput) (models.CalendarEvent, error) {
	ev, _, err := normalize.EventFromInput(in)
	if err != nil {
		return models.CalendarEvent{}, err
	}
	return s.ctrl.Add(ctx, ev)
}

func (s *EventService) Update(ctx context.Context, id string, in models.EventInput) (models.CalendarEvent, error) {
	if _, ok := s.ctrl.Get(id); !ok {
		return models.CalendarEvent{}, fmt.Errorf("event %s: %w", id, common.ErrNotFound)
	}
	ev, _, err := normalize.EventFromInput(in)
	if err != nil {
		return models.CalendarEvent{}, err
	}
	return s.ctrl.Update(ctx, id, func(models.CalendarEvent) models.CalendarEvent { return ev })
}

func (s *EventService) Remove(ctx context.Context, id string) error {
	return s.ctrl.Remove(ctx, id)
}

// ExportICS writes the current collection as an iCalendar feed.
func (s *EventService) ExportICS(w io.Writer) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)

	stamp := s.now().UTC()
	for _, ev := range s.ctrl.Items() {
		e := cal.AddEvent(ev.ID + "@supacrm")
		e.SetDtStampTime(stamp)
		e.SetSummary(ev.Title)
		if ev.AllDay {
			e.SetAllDayStartAt(ev.Start)
			e.SetAllDayEndAt(ev.End)
		} else {
			e.SetStartAt(ev.Start)
			e.SetEndAt(ev.End)
		}
	}

	return cal.SerializeTo(w)
}

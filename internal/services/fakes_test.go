package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/dmitrijs2005/supacrm/internal/normalize"
)

// mapGeocoder knows a fixed set of places keyed by lower-cased name.
type mapGeocoder struct {
	places map[string]normalize.Place
	err    error
	calls  int
}

func newMapGeocoder() *mapGeocoder {
	return &mapGeocoder{places: map[string]normalize.Place{
		"germany": {FormattedName: "Germany", Latitude: 51, Longitude: 9},
		"france":  {FormattedName: "France", Latitude: 46, Longitude: 2},
		"latvia":  {FormattedName: "Latvia", Latitude: 57, Longitude: 25},
	}}
}

func (g *mapGeocoder) Lookup(_ context.Context, text string) (normalize.Place, error) {
	g.calls++
	if g.err != nil {
		return normalize.Place{}, g.err
	}
	p, ok := g.places[strings.ToLower(text)]
	if !ok {
		return normalize.Place{}, common.ErrLocationNotFound
	}
	return p, nil
}

// memTable is an in-memory table with per-operation failure injection.
type memTable[T interface {
	Key() string
	WithKey(string) T
}] struct {
	mu     sync.Mutex
	rows   []T
	nextID int
	newID  func(n int) string

	selectErr, insertErr, updateErr, deleteErr error
	inserts, updates, deletes                  int
}

func (t *memTable[T]) Select(context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selectErr != nil {
		return nil, t.selectErr
	}
	return append([]T(nil), t.rows...), nil
}

func (t *memTable[T]) insert(item T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inserts++
	var zero T
	if t.insertErr != nil {
		return zero, t.insertErr
	}
	t.nextID++
	id := strconv.Itoa(t.nextID)
	if t.newID != nil {
		id = t.newID(t.nextID)
	}
	item = item.WithKey(id)
	t.rows = append(t.rows, item)
	return item, nil
}

func (t *memTable[T]) Update(_ context.Context, item T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.updates++
	if t.updateErr != nil {
		return t.updateErr
	}
	for i := range t.rows {
		if t.rows[i].Key() == item.Key() {
			t.rows[i] = item
			return nil
		}
	}
	return common.ErrNotFound
}

func (t *memTable[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deletes++
	if t.deleteErr != nil {
		return t.deleteErr
	}
	for i := range t.rows {
		if t.rows[i].Key() == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

type fakeRecords struct {
	memTable[models.Record]
	findErr error
}

func (f *fakeRecords) Insert(_ context.Context, r models.Record) (models.Record, error) {
	r.CreatedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return f.insert(r)
}

func (f *fakeRecords) FindByContact(_ context.Context, email, phone string) ([]models.Record, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Record
	for _, r := range f.rows {
		if (email != "" && r.Email == email) || (phone != "" && r.Phone == phone) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeEvents struct {
	memTable[models.CalendarEvent]
}

func (f *fakeEvents) Insert(_ context.Context, ev models.CalendarEvent) (models.CalendarEvent, error) {
	return f.insert(ev)
}

type fakeMarkers struct {
	memTable[models.Marker]
}

func (f *fakeMarkers) Insert(_ context.Context, m models.Marker) (models.Marker, error) {
	m.Draggable = true
	return f.insert(m)
}

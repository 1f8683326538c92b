package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/supacrm/internal/logging"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type RecordService interface {
	Load(ctx context.Context) ([]models.Record, error)
	List() []models.Record
	Get(id string) (models.Record, bool)
	Add(ctx context.Context, in models.RecordInput) (models.Record, error)
	Update(ctx context.Context, id string, in models.RecordInput) (models.Record, error)
	Remove(ctx context.Context, id string) error
	Markers() []models.Marker
}

type EventService interface {
	Load(ctx context.Context) ([]models.CalendarEvent, error)
	List() []models.CalendarEvent
	Add(ctx context.Context, in models.EventInput) (models.CalendarEvent, error)
	Update(ctx context.Context, id string, in models.EventInput) (models.CalendarEvent, error)
	Remove(ctx context.Context, id string) error
	ExportICS(w io.Writer) error
}

type MarkerService interface {
	Load(ctx context.Context) ([]models.Marker, error)
	List() []models.Marker
	Place(ctx context.Context, lat, lng float64, label string) (models.Marker, error)
	Move(ctx context.Context, id string, lat, lng float64) (models.Marker, error)
	Remove(ctx context.Context, id string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	records RecordService
	events  EventService
	markers MarkerService
	pinger  Pinger
	log     logging.Logger

	prompter *Prompter
	out      io.Writer

	mu   sync.RWMutex
	mode Mode
}

func NewApp(p *Prompter, records RecordService, events EventService, markers MarkerService, pinger Pinger, log logging.Logger) *App {
	if log == nil {
		log = logging.NewNop()
	}
	return &App{
		records:  records,
		events:   events,
		markers:  markers,
		pinger:   pinger,
		log:      log,
		prompter: p,
		out:      p.out,
		mode:     ModeOnline,
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) status() string {
	return string(a.Mode())
}

// Run loads every collection and then serves the REPL until input ends,
// the operator exits, or ctx is canceled.
func (a *App) Run(ctx context.Context, onlineCheck time.Duration) error {
	fmt.Fprintln(a.out, "Welcome to SupaCRM (type 'help' for commands)")

	if err := a.LoadAll(ctx); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, onlineCheck)
	}()

	var status func() string
	if a.prompter.interactive {
		status = a.status
	}
	runREPL(ctx, a, status, a.prompter)

	cancel()
	wg.Wait()
	return nil
}

// LoadAll loads the three collections concurrently. A failing collection
// keeps its previous contents and does not stop the others.
func (a *App) LoadAll(ctx context.Context) error {
	var g errgroup.Group

	load := func(name string, fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(ctx); err != nil {
				a.log.Warn(ctx, "initial load failed", "collection", name, "err", err)
				return err
			}
			return nil
		})
	}

	load("records", func(ctx context.Context) error { _, err := a.records.Load(ctx); return err })
	load("events", func(ctx context.Context) error { _, err := a.events.Load(ctx); return err })
	load("markers", func(ctx context.Context) error { _, err := a.markers.Load(ctx); return err })

	return g.Wait()
}

// checkOnline pings the store once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.pinger.Ping(pctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the store on a cron schedule until ctx is
// done. Overlapping runs are skipped.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(cron.Every(interval), cron.FuncJob(func() { a.checkOnline(ctx) }))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
}

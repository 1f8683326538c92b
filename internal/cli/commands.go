package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/supacrm/internal/charts"
	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/dmitrijs2005/supacrm/internal/normalize"
)

// settled re-prints a collection after an operation and turns a declined
// confirmation into a notice instead of an error.
func (a *App) settled(err error, render func()) error {
	render()
	if errors.Is(err, common.ErrCanceled) {
		fmt.Fprintln(a.out, "Canceled.")
		return nil
	}
	return err
}

func (a *App) idArg(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return a.prompter.Text(prompt)
}

func (a *App) floatArg(args []string, i int, prompt string) (float64, error) {
	if len(args) > i {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", args[i])
		}
		return f, nil
	}
	return a.prompter.Float(prompt)
}

// Records

func (a *App) Users(ctx context.Context, args []string) error {
	a.printUsers()
	return nil
}

func (a *App) printUsers() {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tLOCATION\tCOORDINATES\tCREATED")
	for _, r := range a.records.List() {
		coords := "-"
		if r.HasCoordinates() {
			coords = fmt.Sprintf("%.4f, %.4f", *r.Latitude, *r.Longitude)
		}
		created := "-"
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.UTC().Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.FullName(), r.Email, r.Phone, r.Location, coords, created)
	}
	tw.Flush()
}

func (a *App) readRecordInput(cur models.RecordInput) (models.RecordInput, error) {
	var in models.RecordInput
	fields := []struct {
		prompt string
		def    string
		dst    *string
	}{
		{"First name", cur.FirstName, &in.FirstName},
		{"Last name", cur.LastName, &in.LastName},
		{"Email", cur.Email, &in.Email},
		{"Phone", cur.Phone, &in.Phone},
		{"Location (country)", cur.Location, &in.Location},
	}
	for _, f := range fields {
		v, err := a.prompter.TextDefault(f.prompt, f.def)
		if err != nil {
			return models.RecordInput{}, err
		}
		*f.dst = v
	}
	return in, nil
}

func (a *App) AddUser(ctx context.Context, args []string) error {
	in, err := a.readRecordInput(models.RecordInput{})
	if err != nil {
		return err
	}
	_, err = a.records.Add(ctx, in)
	return a.settled(err, a.printUsers)
}

func (a *App) EditUser(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter user id to edit")
	if err != nil {
		return err
	}
	cur, ok := a.records.Get(id)
	if !ok {
		return fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}

	in, err := a.readRecordInput(models.RecordInput{
		FirstName: cur.FirstName,
		LastName:  cur.LastName,
		Email:     cur.Email,
		Phone:     cur.Phone,
		Location:  cur.Location,
	})
	if err != nil {
		return err
	}
	_, err = a.records.Update(ctx, id, in)
	return a.settled(err, a.printUsers)
}

func (a *App) DelUser(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter user id to delete")
	if err != nil {
		return err
	}
	return a.settled(a.records.Remove(ctx, id), a.printUsers)
}

func (a *App) UserMap(ctx context.Context, args []string) error {
	printMarkers(a, a.records.Markers())
	return nil
}

// Events

func (a *App) Events(ctx context.Context, args []string) error {
	a.printEvents()
	return nil
}

func (a *App) printEvents() {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTART\tEND\tALL DAY")
	for _, ev := range a.events.List() {
		start, end := normalize.FormatInstant(ev.Start), normalize.FormatInstant(ev.End)
		allDay := ""
		if ev.AllDay {
			start, end = ev.Start.Format(normalize.DayLayout), ev.End.Format(normalize.DayLayout)
			allDay = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ev.ID, ev.Title, start, end, allDay)
	}
	tw.Flush()
}

func (a *App) readEventInput(cur models.EventInput) (models.EventInput, error) {
	title, err := a.prompter.TextDefault("Title", cur.Title)
	if err != nil {
		return models.EventInput{}, err
	}
	start, err := a.prompter.TextDefault("Start (YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD)", cur.Start)
	if err != nil {
		return models.EventInput{}, err
	}
	allDay, err := a.prompter.YesNo("All day?")
	if err != nil {
		return models.EventInput{}, err
	}
	return models.EventInput{Title: title, Start: start, AllDay: allDay}, nil
}

func (a *App) AddEvent(ctx context.Context, args []string) error {
	in, err := a.readEventInput(models.EventInput{})
	if err != nil {
		return err
	}
	_, err = a.events.Add(ctx, in)
	return a.settled(err, a.printEvents)
}

func (a *App) EditEvent(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter event id to edit")
	if err != nil {
		return err
	}

	var cur *models.CalendarEvent
	for _, ev := range a.events.List() {
		if ev.ID == id {
			cur = &ev
			break
		}
	}
	if cur == nil {
		return fmt.Errorf("event %s: %w", id, common.ErrNotFound)
	}

	def := models.EventInput{Title: cur.Title, Start: normalize.FormatInstant(cur.Start)}
	if cur.AllDay {
		def.Start = cur.Start.Format(normalize.DayLayout)
	}
	in, err := a.readEventInput(def)
	if err != nil {
		return err
	}
	_, err = a.events.Update(ctx, id, in)
	return a.settled(err, a.printEvents)
}

func (a *App) DelEvent(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter event id to delete")
	if err != nil {
		return err
	}
	return a.settled(a.events.Remove(ctx, id), a.printEvents)
}

func (a *App) ExportICS(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.events.ExportICS(a.out)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := a.events.ExportICS(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d events to %s\n", len(a.events.List()), args[0])
	return nil
}

// Markers

func (a *App) Markers(ctx context.Context, args []string) error {
	printMarkers(a, a.markers.List())
	return nil
}

func printMarkers(a *App, ms []models.Marker) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLAT\tLNG\tDRAGGABLE\tLABEL")
	for _, m := range ms {
		drag := "no"
		if m.Draggable {
			drag = "yes"
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%s\t%s\n", m.ID, m.Lat, m.Lng, drag, m.Label)
	}
	tw.Flush()
}

func (a *App) printPlacedMarkers() { printMarkers(a, a.markers.List()) }

func (a *App) AddMarker(ctx context.Context, args []string) error {
	lat, err := a.floatArg(args, 0, "Latitude")
	if err != nil {
		return err
	}
	lng, err := a.floatArg(args, 1, "Longitude")
	if err != nil {
		return err
	}
	label := strings.Join(args[min(len(args), 2):], " ")
	if len(args) < 2 {
		if label, err = a.prompter.Text("Label"); err != nil {
			return err
		}
	}
	_, err = a.markers.Place(ctx, lat, lng, label)
	return a.settled(err, a.printPlacedMarkers)
}

func (a *App) MoveMarker(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter marker id to move")
	if err != nil {
		return err
	}
	lat, err := a.floatArg(args, 1, "Latitude")
	if err != nil {
		return err
	}
	lng, err := a.floatArg(args, 2, "Longitude")
	if err != nil {
		return err
	}
	_, err = a.markers.Move(ctx, id, lat, lng)
	return a.settled(err, a.printPlacedMarkers)
}

func (a *App) DelMarker(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter marker id to delete")
	if err != nil {
		return err
	}
	return a.settled(a.markers.Remove(ctx, id), a.printPlacedMarkers)
}

// Dashboard

func (a *App) Charts(ctx context.Context, args []string) error {
	return charts.RenderAll(a.out, a.records.List())
}

func (a *App) Reload(ctx context.Context, args []string) error {
	err := a.LoadAll(ctx)
	fmt.Fprintf(a.out, "%d users, %d events, %d markers\n",
		len(a.records.List()), len(a.events.List()), len(a.markers.List()))
	return err
}

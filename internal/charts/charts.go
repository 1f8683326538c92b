// Package charts folds the record collection into the tallies shown on the
// dashboard and renders them as plain-text bar charts.
package charts

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/supacrm/internal/models"
)

const (
	UnknownLocation = "unknown"
	maxBar          = 20
)

// Tally is one bar of a chart.
type Tally struct {
	Label string
	Count int
}

// ByLocation counts records per lower-cased location, ordered by count
// descending and then label.
func ByLocation(records []models.Record) []Tally {
	return byCount(count(records, func(r models.Record) (string, bool) {
		loc := strings.ToLower(strings.TrimSpace(r.Location))
		if loc == "" {
			loc = UnknownLocation
		}
		return loc, true
	}))
}

// SignupsByMonth counts records per YYYY-MM of CreatedAt in UTC, oldest
// month first. Records without a creation time are skipped.
func SignupsByMonth(records []models.Record) []Tally {
	out := toTallies(count(records, func(r models.Record) (string, bool) {
		if r.CreatedAt.IsZero() {
			return "", false
		}
		return r.CreatedAt.UTC().Format("2006-01"), true
	}))
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// ByEmailDomain counts records per lower-cased email domain. Addresses
// without a domain are skipped.
func ByEmailDomain(records []models.Record) []Tally {
	return byCount(count(records, func(r models.Record) (string, bool) {
		_, domain, ok := strings.Cut(strings.TrimSpace(r.Email), "@")
		domain = strings.ToLower(strings.TrimSpace(domain))
		return domain, ok && domain != ""
	}))
}

func count(records []models.Record, key func(models.Record) (string, bool)) map[string]int {
	m := make(map[string]int)
	for _, r := range records {
		if k, ok := key(r); ok {
			m[k]++
		}
	}
	return m
}

func toTallies(m map[string]int) []Tally {
	out := make([]Tally, 0, len(m))
	for k, v := range m {
		out = append(out, Tally{Label: k, Count: v})
	}
	return out
}

func byCount(m map[string]int) []Tally {
	out := toTallies(m)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Render writes a horizontal bar chart. Bars are scaled so the largest
// count spans the full width.
func Render(w io.Writer, title string, tallies []Tally) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(tallies) == 0 {
		_, err := fmt.Fprintln(w, "  (no data)")
		return err
	}

	width, top := 0, 0
	for _, t := range tallies {
		width = max(width, len(t.Label))
		top = max(top, t.Count)
	}

	for _, t := range tallies {
		n := t.Count * maxBar / top
		if n == 0 && t.Count > 0 {
			n = 1
		}
		if _, err := fmt.Fprintf(w, "  %-*s %s %d\n", width, t.Label, strings.Repeat("#", n), t.Count); err != nil {
			return err
		}
	}
	return nil
}

// RenderAll writes the three dashboard charts separated by blank lines.
func RenderAll(w io.Writer, records []models.Record) error {
	sections := []struct {
		title   string
		tallies []Tally
	}{
		{"Users by location", ByLocation(records)},
		{"Signups by month", SignupsByMonth(records)},
		{"Users by email domain", ByEmailDomain(records)},
	}
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := Render(w, s.title, s.tallies); err != nil {
			return err
		}
	}
	return nil
}

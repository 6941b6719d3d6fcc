package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
)

// Modules lists the available modules, marking the selected one.
func (a *App) Modules(ctx context.Context) error {
	for _, name := range a.catalog.Names() {
		res, _ := a.catalog.Lookup(name)
		mark := " "
		if name == a.current {
			mark = "*"
		}
		line := fmt.Sprintf("%s %-11s %s", mark, name, res.Label)
		if res.ReadOnly {
			line += " (read-only)"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Use selects a module and loads its records. A pending delete on the
// previous module is dropped.
func (a *App) Use(ctx context.Context, name string) error {
	m, ok := a.modules[name]
	if !ok {
		fmt.Fprintf(a.out, "Unknown module: %s\n", name)
		return fmt.Errorf("unknown module %q", name)
	}
	if prev, ok := a.modules[a.current]; ok && a.current != name {
		prev.CancelDelete()
	}
	a.current = name
	return m.Fetch(ctx)
}

// List reloads the selected module and prints its records.
func (a *App) List(ctx context.Context) error {
	m, ok := a.module()
	if !ok {
		return nil
	}
	if err := m.Fetch(ctx); err != nil {
		return err
	}
	recs := m.Records()
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No records")
		return nil
	}
	for _, rec := range recs {
		fmt.Fprintln(a.out, formatRecord(m.Resource(), rec))
	}
	return nil
}

// Show prints every field of a listed record.
func (a *App) Show(ctx context.Context, id string) error {
	m, ok := a.module()
	if !ok {
		return nil
	}
	rec, ok := m.Record(id)
	if !ok {
		fmt.Fprintf(a.out, "No record %s\n", id)
		return nil
	}
	fmt.Fprintf(a.out, "%s %s\n", m.Resource().Label, rec.ID)
	for _, k := range slices.Sorted(maps.Keys(rec.Fields)) {
		fmt.Fprintf(a.out, "  %s: %s\n", k, rec.Text(k))
	}
	return nil
}

// formatRecord renders one list row: id, the form fields, creation time
// and media link.
func formatRecord(res models.Resource, rec models.Record) string {
	parts := []string{rec.ID}
	for _, f := range res.Fields {
		if v := rec.Text(f); v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", f, truncate(oneLine(v), 40)))
		}
	}
	if res.Approvable {
		if rec.Bool("is_approved") {
			parts = append(parts, "approved")
		} else {
			parts = append(parts, "pending")
		}
	}
	if at, ok := rec.CreatedAt(); ok {
		parts = append(parts, at.Local().Format("2006-01-02 15:04"))
	}
	if res.HasFile() {
		if u := rec.MediaURL(res.FileField); u != "" {
			parts = append(parts, u)
		}
	}
	return strings.Join(parts, " | ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/nehruadmin/internal/client/guard"
	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/upload"
)

// multilineFields are read with GetMultiline.
var multilineFields = []string{"content", "message", "address"}

// Add prompts for a new record of the selected module and submits it.
func (a *App) Add(ctx context.Context) error {
	m, ok := a.module()
	if !ok {
		return nil
	}
	res := m.Resource()
	if res.ReadOnly {
		_, err := m.Create(ctx, guard.Form{}, nil)
		return err
	}

	form, err := a.readForm(res, models.Record{})
	if err != nil {
		return err
	}
	rec, err := m.Create(ctx, form, a.progress())
	if err != nil {
		return err
	}
	if rec.ID != "" {
		fmt.Fprintln(a.out, formatRecord(res, rec))
	}
	return nil
}

// Edit prompts for changes to record id; empty answers keep the current
// values and an empty file path keeps the stored file.
func (a *App) Edit(ctx context.Context, id string) error {
	m, ok := a.module()
	if !ok {
		return nil
	}
	res := m.Resource()
	current, ok := m.Record(id)
	if !ok && !res.ReadOnly {
		fmt.Fprintf(a.out, "No record %s\n", id)
		return nil
	}
	if res.ReadOnly {
		_, err := m.Update(ctx, id, guard.Form{}, nil)
		return err
	}

	form, err := a.readForm(res, current)
	if err != nil {
		return err
	}
	rec, err := m.Update(ctx, id, form, a.progress())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, formatRecord(res, rec))
	return nil
}

func (a *App) readForm(res models.Resource, current models.Record) (guard.Form, error) {
	form := guard.Form{Create: current.ID == ""}
	for _, name := range res.Fields {
		var (
			v   string
			err error
		)
		switch {
		case slices.Contains(multilineFields, name) && form.Create:
			v, err = GetMultiline(a.reader, fieldPrompt(res, name), a.out)
		default:
			v, err = GetWithDefault(a.reader, fieldPrompt(res, name), current.Text(name), a.out)
		}
		if err != nil {
			return guard.Form{}, err
		}
		form.Fields = append(form.Fields, upload.Field{Name: name, Value: v})
	}

	if !res.HasFile() {
		return form, nil
	}
	prompt := fmt.Sprintf("Path to %s file", res.FileField)
	if !form.Create || !res.FileRequiredOnCreate {
		prompt += " (empty to skip)"
	}
	path, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return guard.Form{}, err
	}
	if path == "" {
		return form, nil
	}
	f, err := upload.LoadFile(path)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot use %s: %v\n", path, err)
		return guard.Form{}, err
	}
	form.File = f
	return form, nil
}

func fieldPrompt(res models.Resource, name string) string {
	if slices.Contains(res.Required, name) {
		return name + " *"
	}
	return name
}

// progress prints upload progress on a single line.
func (a *App) progress() upload.ProgressFunc {
	return func(p int) {
		fmt.Fprintf(a.out, "\rUploading %3d%%", p)
		if p >= 100 {
			fmt.Fprintln(a.out)
		}
	}
}

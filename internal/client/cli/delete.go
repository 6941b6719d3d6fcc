package cli

import (
	"context"
	"fmt"
)

// Delete asks for confirmation before deleting record id.
func (a *App) Delete(ctx context.Context, id string) error {
	m, ok := a.module()
	if !ok {
		return nil
	}
	rec, err := m.RequestDelete(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Delete %s %s? Type 'confirm' to delete or 'cancel' to keep it.\n", m.Resource().Label, rec.ID)
	return nil
}

func (a *App) Confirm(ctx context.Context) error {
	m, ok := a.module()
	if !ok {
		return nil
	}
	return m.ConfirmDelete(ctx)
}

func (a *App) Cancel(ctx context.Context) error {
	m, ok := a.module()
	if !ok {
		return nil
	}
	if m.CancelDelete() {
		fmt.Fprintln(a.out, "Deletion cancelled")
	} else {
		fmt.Fprintln(a.out, "Nothing to cancel")
	}
	return nil
}

// Approve approves a membership application.
func (a *App) Approve(ctx context.Context, id string) error {
	m, ok := a.module()
	if !ok {
		return nil
	}
	ap, err := m.Approve(ctx, id)
	if err != nil {
		return err
	}
	if ap.PDFURL != "" {
		fmt.Fprintln(a.out, "License:", ap.PDFURL)
	}
	return nil
}

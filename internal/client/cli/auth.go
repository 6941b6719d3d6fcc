package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nehruadmin/internal/client/client"
	"github.com/dmitrijs2005/nehruadmin/internal/client/notify"
)

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.logger.Warn(ctx, "read email", "error", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.logger.Warn(ctx, "read password", "error", err)
		return err
	}
	defer clear(password)

	if err := a.session.Login(ctx, email, password); err != nil {
		a.logger.Warn(ctx, "login failed", "email", email, "error", err)
		a.queue.Notify(notify.Failure("Login failed: " + client.Describe(err)))
		return err
	}
	a.logger.Info(ctx, "logged in", "email", email)
	a.queue.Notify(notify.Success("Logged in as " + email))

	if m, ok := a.modules[a.current]; ok {
		_ = m.Fetch(ctx)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	for _, m := range a.modules {
		m.CancelDelete()
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/moviecatalog/internal/client/listing"
	"github.com/dmitrijs2005/moviecatalog/internal/client/services"
)

var ErrSelf = errors.New("cannot do that to your own account")

func (a *App) Users(ctx context.Context) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	if err := a.reloadUsers(ctx); err != nil {
		return err
	}
	a.userView = listing.DefaultUserParams()
	a.renderUsers()
	return nil
}

func (a *App) UserSearch(ctx context.Context, text string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	if err := a.ensureUsers(ctx); err != nil {
		return err
	}
	a.userView = a.userView.WithSearch(text)
	a.renderUsers()
	return nil
}

func (a *App) UserPage(ctx context.Context, n string) error {
	page, err := strconv.Atoi(n)
	if err != nil {
		return fmt.Errorf("%w: usage: userpage <number>", ErrUsage)
	}
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	if err := a.ensureUsers(ctx); err != nil {
		return err
	}
	a.userView = a.userView.WithPage(page)
	a.renderUsers()
	return nil
}

func (a *App) AddUser(ctx context.Context) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	var in services.UserInput
	var err error
	if in.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if in.Password, err = getPassword(a.reader, a.out); err != nil {
		return err
	}
	if in.Role, err = GetDefaultText(a.reader, "Role (admin or user)", "user", a.out); err != nil {
		return err
	}

	u, err := a.users.CreateUser(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Created user %s (%s).\n", u.ID, u.Username)
	return a.reloadUsers(ctx)
}

func (a *App) DeleteUser(ctx context.Context, id string) error {
	if err := a.checkTarget(ctx, id, "deluser"); err != nil {
		return err
	}
	if err := a.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	a.printf("Deleted user %s.\n", id)
	return a.reloadUsers(ctx)
}

func (a *App) SetDisabled(ctx context.Context, id string, disabled bool) error {
	cmd := "enable"
	if disabled {
		cmd = "disable"
	}
	if err := a.checkTarget(ctx, id, cmd); err != nil {
		return err
	}
	u, err := a.users.SetDisabled(ctx, id, disabled)
	if err != nil {
		return err
	}
	a.println("Updated:", u)
	return a.reloadUsers(ctx)
}

// checkTarget guards commands acting on another user's account.
func (a *App) checkTarget(ctx context.Context, id, cmd string) error {
	if id == "" {
		return fmt.Errorf("%w: usage: %s <id>", ErrUsage, cmd)
	}
	// admin and self checks share one session read
	me, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	if !me.IsAdmin() {
		return ErrForbidden
	}
	if me.ID == id {
		return ErrSelf
	}
	return nil
}

func (a *App) ensureUsers(ctx context.Context) error {
	if a.roster != nil {
		return nil
	}
	return a.reloadUsers(ctx)
}

func (a *App) reloadUsers(ctx context.Context) error {
	list, err := a.users.ListUsers(ctx)
	if err != nil {
		return err
	}
	a.roster = list
	a.userView = a.userView.WithPage(1)
	return nil
}

func (a *App) renderUsers() {
	p := listing.Users(a.roster, a.userView)
	a.printf("Users: page %d of %d, %d found (search %q)\n", p.Number, p.Pages, p.Total, a.userView.Search)
	if len(p.Items) == 0 {
		a.println("  No users found.")
		return
	}
	for _, u := range p.Items {
		a.println(" ", u)
	}
}

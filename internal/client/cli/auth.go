package cli

import (
	"context"
	"time"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for username, email and password and creates a regular
// account. It does not log the new user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	u, err := a.users.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	a.printf("Account %s created, you can log in now.\n", u.Username)
	return nil
}

// Login prompts for credentials and starts a session. A failed attempt
// leaves any existing session in place.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	u, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.printf("Welcome, %s!\n", u.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		a.println("Not logged in.")
		return nil
	}
	a.session.Logout(ctx)
	a.println("Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	a.printf("%s <%s>, role %s, %d favorites\n", u.Username, u.Email, u.Role, len(a.favorites.Favorites()))
	if since, ok := a.session.Since(ctx); ok {
		a.printf("Signed in since %s\n", since.Local().Format(time.DateTime))
	}
	return nil
}

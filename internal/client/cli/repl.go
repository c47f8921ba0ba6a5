package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a recording stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	isAdmin(ctx context.Context) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Movies(ctx context.Context) error
	Search(ctx context.Context, text string) error
	Category(ctx context.Context, c string) error
	Genre(ctx context.Context, g string) error
	Page(ctx context.Context, n string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Show(ctx context.Context, id string) error

	Fav(ctx context.Context, id string) error
	Unfav(ctx context.Context, id string) error
	Favs(ctx context.Context) error

	Users(ctx context.Context) error
	UserSearch(ctx context.Context, text string) error
	UserPage(ctx context.Context, n string) error
	AddUser(ctx context.Context) error
	DeleteUser(ctx context.Context, id string) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
	AddMovie(ctx context.Context) error
	EditMovie(ctx context.Context, id string) error
}

const (
	helpGuest = "Available commands: register, login, movies, search <text>, category <c>, genre <g>, " +
		"page <n>, next, prev, show <id>, exit"
	helpUser = "Available commands: movies, search <text>, category <c>, genre <g>, page <n>, next, prev, " +
		"show <id>, fav <id>, unfav <id>, favs, whoami, logout, exit"
	helpAdmin = helpUser + "\nAdmin commands: users, usersearch <text>, userpage <n>, adduser, deluser <id>, " +
		"disable <id>, enable <id>, addmovie, editmovie <id>"
)

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Commands prompt for further input on the same reader. The first token is the command; the rest of the line
// is its argument, so "search star wars" searches for "star wars".
//
// A failing command prints its error and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("movies %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		err = nil
		switch cmd {
		case "help":
			switch {
			case a.isAdmin(ctx):
				printlnFn(helpAdmin)
			case a.isLoggedIn(ctx):
				printlnFn(helpUser)
			default:
				printlnFn(helpGuest)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)

		case "movies", "l", "list":
			err = a.Movies(ctx)
		case "search":
			err = a.Search(ctx, arg)
		case "category":
			err = a.Category(ctx, arg)
		case "genre":
			err = a.Genre(ctx, arg)
		case "page":
			err = a.Page(ctx, arg)
		case "next", "n":
			err = a.Next(ctx)
		case "prev", "p":
			err = a.Prev(ctx)
		case "show":
			err = a.Show(ctx, arg)

		case "fav":
			err = a.Fav(ctx, arg)
		case "unfav":
			err = a.Unfav(ctx, arg)
		case "favs":
			err = a.Favs(ctx)

		case "users":
			err = a.Users(ctx)
		case "usersearch":
			err = a.UserSearch(ctx, arg)
		case "userpage":
			err = a.UserPage(ctx, arg)
		case "adduser":
			err = a.AddUser(ctx)
		case "deluser":
			err = a.DeleteUser(ctx, arg)
		case "disable":
			err = a.SetDisabled(ctx, arg, true)
		case "enable":
			err = a.SetDisabled(ctx, arg, false)
		case "addmovie":
			err = a.AddMovie(ctx)
		case "editmovie":
			err = a.EditMovie(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

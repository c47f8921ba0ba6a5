package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/moviecatalog/internal/client/client"
	"github.com/dmitrijs2005/moviecatalog/internal/client/config"
	"github.com/dmitrijs2005/moviecatalog/internal/client/favorites"
	"github.com/dmitrijs2005/moviecatalog/internal/client/listing"
	"github.com/dmitrijs2005/moviecatalog/internal/client/models"
	"github.com/dmitrijs2005/moviecatalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moviecatalog/internal/client/services"
	"github.com/dmitrijs2005/moviecatalog/internal/client/session"
	"github.com/dmitrijs2005/moviecatalog/internal/logging"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNotLoggedIn = errors.New("please log in first")
	ErrForbidden   = errors.New("administrator access required")
	ErrUsage       = errors.New("wrong arguments")
)

// App holds the client state shared by all commands: services, the loaded
// movie and user lists and the current view parameters for each.
type App struct {
	config    *config.Config
	log       logging.Logger
	session   *session.Store
	favorites *favorites.Manager
	catalog   services.CatalogService
	users     services.UserService

	reader *bufio.Reader
	out    io.Writer

	movies    []models.Movie
	movieView listing.MovieParams
	roster    []models.User
	userView  listing.UserParams

	closers []func() error
}

// NewApp opens the session database, connects the optional Redis cache and
// builds the services on top of the REST client.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewRESTClient(c.APIBaseURL,
		client.WithRateLimit(c.RequestsPerSecond),
		client.WithLogger(log.With("component", "api")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var cache redis.Cmdable
	var rdb *redis.Client
	if c.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "redis unavailable, catalog cache disabled", "addr", c.RedisAddr, "error", err)
			_ = rdb.Close()
			rdb = nil
		} else {
			cache = rdb
		}
	}

	a := newApp(ctx, db, api, cache, c, log)
	if rdb != nil {
		a.closers = append(a.closers, rdb.Close)
	}
	return a, nil
}

func newApp(ctx context.Context, db *sql.DB, api client.Client, cache redis.Cmdable, c *config.Config, log logging.Logger) *App {
	store := session.NewStore(api, metadata.NewSQLiteRepository(db), log)
	favs := favorites.NewManager(ctx, store, api, log)

	a := &App{
		config:    c,
		log:       log,
		session:   store,
		favorites: favs,
		catalog:   services.NewCatalogService(api, cache, c.CatalogCacheTTL, log),
		users:     services.NewUserService(api, log),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		movieView: listing.DefaultMovieParams(),
		userView:  listing.DefaultUserParams(),
	}
	a.closers = append(a.closers, func() error { favs.Close(); return nil }, db.Close)

	// a different user sees a fresh roster view
	store.Subscribe(func(context.Context) {
		a.roster = nil
		a.userView = listing.DefaultUserParams()
	})
	return a
}

// Run shows the welcome banner and blocks in the REPL until exit.
func (a *App) Run(ctx context.Context) {
	a.println("Movie catalog (type 'help' for commands)")
	if u, ok := a.session.Current(ctx); ok {
		a.printf("Welcome back, %s\n", u.Username)
	}
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) status(ctx context.Context) string {
	u, ok := a.session.Current(ctx)
	if !ok {
		return "(guest)"
	}
	if u.IsAdmin() {
		return fmt.Sprintf("(%s admin)", u.Username)
	}
	return fmt.Sprintf("(%s)", u.Username)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok := a.session.Current(ctx)
	return ok
}

func (a *App) isAdmin(ctx context.Context) bool {
	u, ok := a.session.Current(ctx)
	return ok && u.IsAdmin()
}

func (a *App) requireLogin(ctx context.Context) (*models.User, error) {
	u, ok := a.session.Current(ctx)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return u, nil
}

func (a *App) requireAdmin(ctx context.Context) error {
	u, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

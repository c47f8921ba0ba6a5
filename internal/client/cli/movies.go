package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moviecatalog/internal/client/listing"
	"github.com/dmitrijs2005/moviecatalog/internal/client/models"
	"github.com/dmitrijs2005/moviecatalog/internal/client/services"
)

// Movies reloads the catalog and shows the first page with filters cleared.
func (a *App) Movies(ctx context.Context) error {
	if err := a.reloadMovies(ctx); err != nil {
		return err
	}
	a.movieView = listing.DefaultMovieParams()
	a.renderMovies()
	return nil
}

func (a *App) Search(ctx context.Context, text string) error {
	if err := a.ensureMovies(ctx); err != nil {
		return err
	}
	a.movieView = a.movieView.WithSearch(text)
	a.renderMovies()
	return nil
}

// Category filters by movie type or switches the ordering. Without an
// argument it lists the choices.
func (a *App) Category(ctx context.Context, c string) error {
	if c == "" {
		a.println("Categories:", strings.Join(listing.Categories(), ", "))
		return nil
	}
	canonical, ok := pick(listing.Categories(), c)
	if !ok {
		return fmt.Errorf("%w: unknown category %q, choose from %s", ErrUsage, c, strings.Join(listing.Categories(), ", "))
	}
	if err := a.ensureMovies(ctx); err != nil {
		return err
	}
	a.movieView = a.movieView.WithCategory(canonical)
	a.renderMovies()
	return nil
}

// Genre filters by genre. Without an argument it lists the genres present in
// the catalog.
func (a *App) Genre(ctx context.Context, g string) error {
	if err := a.ensureMovies(ctx); err != nil {
		return err
	}
	genres := listing.Genres(a.movies)
	if g == "" {
		a.println("Genres:", strings.Join(genres, ", "))
		return nil
	}
	canonical, ok := pick(genres, g)
	if !ok {
		return fmt.Errorf("%w: unknown genre %q", ErrUsage, g)
	}
	a.movieView = a.movieView.WithGenre(canonical)
	a.renderMovies()
	return nil
}

func (a *App) Page(ctx context.Context, n string) error {
	page, err := strconv.Atoi(n)
	if err != nil {
		return fmt.Errorf("%w: usage: page <number>", ErrUsage)
	}
	if err := a.ensureMovies(ctx); err != nil {
		return err
	}
	a.movieView = a.movieView.WithPage(page)
	a.renderMovies()
	return nil
}

func (a *App) Next(ctx context.Context) error {
	if err := a.ensureMovies(ctx); err != nil {
		return err
	}
	if p := listing.Movies(a.movies, a.movieView); a.movieView.Page >= p.Pages {
		a.println("Already on the last page.")
		return nil
	}
	a.movieView = a.movieView.WithPage(a.movieView.Page + 1)
	a.renderMovies()
	return nil
}

func (a *App) Prev(ctx context.Context) error {
	if err := a.ensureMovies(ctx); err != nil {
		return err
	}
	if a.movieView.Page <= 1 {
		a.println("Already on the first page.")
		return nil
	}
	a.movieView = a.movieView.WithPage(a.movieView.Page - 1)
	a.renderMovies()
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: usage: show <id>", ErrUsage)
	}
	m, err := a.catalog.GetMovie(ctx, id)
	if err != nil {
		return err
	}

	fav := ""
	if a.favorites.IsFavorite(m.ID) {
		fav = " [favorite]"
	}
	a.printf("%s (%s)%s\n", m.Title, m.Year, fav)
	a.printf("  Type:     %s\n", m.Type)
	a.printf("  Genre:    %s\n", strings.Join(m.Genre, ", "))
	a.printf("  Director: %s\n", m.Director)
	a.printf("  Rating:   %.1f\n", m.IMDbRating)
	for _, row := range [][2]string{
		{"Runtime", m.Runtime},
		{"Language", m.Language},
		{"Country", m.Country},
		{"Poster", m.Poster},
		{"Trailer", m.Trailer},
	} {
		if row[1] != "" {
			a.printf("  %-9s %s\n", row[0]+":", row[1])
		}
	}
	if m.Description != "" {
		a.println()
		a.println(m.Description)
	}
	return nil
}

func (a *App) Fav(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: usage: fav <id>", ErrUsage)
	}
	if _, err := a.requireLogin(ctx); err != nil {
		return err
	}
	if a.favorites.IsFavorite(id) {
		a.println("Already in favorites.")
		return nil
	}

	m, err := a.findMovie(ctx, id)
	if err != nil {
		return err
	}
	if err := a.favorites.Add(ctx, *m); err != nil {
		return err
	}
	a.printf("Added %s to favorites.\n", m.Title)
	return nil
}

func (a *App) Unfav(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: usage: unfav <id>", ErrUsage)
	}
	if _, err := a.requireLogin(ctx); err != nil {
		return err
	}
	if !a.favorites.IsFavorite(id) {
		a.println("Not in favorites.")
		return nil
	}
	if err := a.favorites.Remove(ctx, id); err != nil {
		return err
	}
	a.println("Removed from favorites.")
	return nil
}

func (a *App) Favs(ctx context.Context) error {
	if _, err := a.requireLogin(ctx); err != nil {
		return err
	}
	favs := a.favorites.Favorites()
	if len(favs) == 0 {
		a.println("No favorites yet.")
		return nil
	}
	for _, m := range favs {
		a.println(" ", m)
	}
	return nil
}

func (a *App) AddMovie(ctx context.Context) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	in, err := a.movieForm(services.MovieInput{Type: string(models.MovieTypeMovie)})
	if err != nil {
		return err
	}
	m, err := a.catalog.CreateMovie(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Created movie %s.\n", m.ID)
	return a.reloadMovies(ctx)
}

func (a *App) EditMovie(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: usage: editmovie <id>", ErrUsage)
	}
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	cur, err := a.catalog.GetMovie(ctx, id)
	if err != nil {
		return err
	}
	a.println("Press Enter to keep the current value.")
	in, err := a.movieForm(services.MovieInputFrom(*cur))
	if err != nil {
		return err
	}
	m, err := a.catalog.UpdateMovie(ctx, id, in)
	if err != nil {
		return err
	}
	a.printf("Updated movie %s.\n", m.ID)
	return a.reloadMovies(ctx)
}

// movieForm prompts for every field, offering the values of in as defaults.
func (a *App) movieForm(in services.MovieInput) (services.MovieInput, error) {
	text := []struct {
		prompt string
		dst    *string
	}{
		{"Title", &in.Title},
		{"Type (Movie or TV Series)", &in.Type},
		{"Year", &in.Year},
		{"Director", &in.Director},
		{"Description", &in.Description},
		{"Runtime", &in.Runtime},
		{"Language", &in.Language},
		{"Country", &in.Country},
		{"Poster URL", &in.Poster},
		{"Trailer URL", &in.Trailer},
	}
	for i, f := range text {
		v, err := GetDefaultText(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return in, err
		}
		*f.dst = v

		// genre and rating go right after the year
		if i == 2 {
			if in.Genre, err = GetList(a.reader, "Genres", in.Genre, a.out); err != nil {
				return in, err
			}
			if in.IMDbRating, err = GetFloat(a.reader, "IMDb rating (0-10)", in.IMDbRating, a.out); err != nil {
				return in, err
			}
		}
	}
	return in, nil
}

func (a *App) ensureMovies(ctx context.Context) error {
	if a.movies != nil {
		return nil
	}
	return a.reloadMovies(ctx)
}

// reloadMovies replaces the loaded list; the page goes back to 1 because the
// old page number may not exist any more.
func (a *App) reloadMovies(ctx context.Context) error {
	list, err := a.catalog.ListMovies(ctx)
	if err != nil {
		return err
	}
	a.movies = list
	a.movieView = a.movieView.WithPage(1)
	return nil
}

func (a *App) findMovie(ctx context.Context, id string) (*models.Movie, error) {
	for i := range a.movies {
		if a.movies[i].ID == id {
			m := a.movies[i]
			return &m, nil
		}
	}
	return a.catalog.GetMovie(ctx, id)
}

func (a *App) renderMovies() {
	p := listing.Movies(a.movies, a.movieView)
	v := a.movieView
	a.printf("Movies: page %d of %d, %d found (search %q, category %s, genre %s)\n",
		p.Number, p.Pages, p.Total, v.Search, orAll(v.Category), orAll(v.Genre))
	if len(p.Items) == 0 {
		a.println("  No movies found.")
		return
	}
	for _, m := range p.Items {
		mark := " "
		if a.favorites.IsFavorite(m.ID) {
			mark = "*"
		}
		a.println(mark, m)
	}
}

// pick finds want in options ignoring case and returns the canonical spelling.
func pick(options []string, want string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(o, want) {
			return o, true
		}
	}
	return "", false
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

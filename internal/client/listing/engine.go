// Package listing derives the visible page of a movie or user list from the
// full collection and the current view parameters. All functions are pure.
package listing

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moviecatalog/internal/client/models"
)

const PageSize = 10

// Category values accepted by MovieParams.Category.
const (
	CategoryAll      = "all"
	CategoryMovie    = string(models.MovieTypeMovie)
	CategoryTVSeries = string(models.MovieTypeTVSeries)
	CategoryTopRated = "top-rated"
	CategoryLatest   = "latest"

	GenreAll = "all"
)

// Categories lists the category options in display order.
func Categories() []string {
	return []string{CategoryAll, CategoryMovie, CategoryTVSeries, CategoryTopRated, CategoryLatest}
}

// Page is one slice of a filtered list. Pages is at least 0; Items is empty,
// never nil, when Number is outside [1, Pages].
type Page[T any] struct {
	Items  []T
	Number int
	Pages  int
	Total  int
}

type MovieParams struct {
	Search   string
	Category string
	Genre    string
	Page     int
}

// DefaultMovieParams is the view state of a freshly opened catalog.
func DefaultMovieParams() MovieParams {
	return MovieParams{Category: CategoryAll, Genre: GenreAll, Page: 1}
}

// WithSearch, WithCategory and WithGenre return p with the filter replaced and
// the page reset to 1.
func (p MovieParams) WithSearch(s string) MovieParams {
	p.Search, p.Page = s, 1
	return p
}

func (p MovieParams) WithCategory(c string) MovieParams {
	p.Category, p.Page = c, 1
	return p
}

func (p MovieParams) WithGenre(g string) MovieParams {
	p.Genre, p.Page = g, 1
	return p
}

func (p MovieParams) WithPage(n int) MovieParams {
	p.Page = n
	return p
}

type UserParams struct {
	Search string
	Page   int
}

func DefaultUserParams() UserParams {
	return UserParams{Page: 1}
}

func (p UserParams) WithSearch(s string) UserParams {
	p.Search, p.Page = s, 1
	return p
}

func (p UserParams) WithPage(n int) UserParams {
	p.Page = n
	return p
}

// Movies applies ordering, search, category, genre and pagination, in that
// order. The input slice is not modified.
func Movies(list []models.Movie, p MovieParams) Page[models.Movie] {
	out := make([]models.Movie, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })

	if q := strings.ToLower(p.Search); q != "" {
		out = filter(out, func(m models.Movie) bool {
			return contains(m.ID, q) || contains(m.Title, q)
		})
	}

	switch p.Category {
	case "", CategoryAll:
	case CategoryTopRated:
		sort.SliceStable(out, func(i, j int) bool { return out[i].IMDbRating > out[j].IMDbRating })
	case CategoryLatest:
		sort.SliceStable(out, func(i, j int) bool { return yearOf(out[i]) > yearOf(out[j]) })
	default:
		out = filter(out, func(m models.Movie) bool { return string(m.Type) == p.Category })
	}

	if p.Genre != "" && p.Genre != GenreAll {
		out = filter(out, func(m models.Movie) bool { return m.HasGenre(p.Genre) })
	}

	return Paginate(out, p.Page)
}

// Users orders by id, then applies search on id, username or email and
// paginates.
func Users(list []models.User, p UserParams) Page[models.User] {
	out := make([]models.User, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })

	if q := strings.ToLower(p.Search); q != "" {
		out = filter(out, func(u models.User) bool {
			return contains(u.ID, q) || contains(u.Username, q) || contains(u.Email, q)
		})
	}
	return Paginate(out, p.Page)
}

// Paginate cuts page n (1-based) of PageSize items out of items.
func Paginate[T any](items []T, n int) Page[T] {
	total := len(items)
	pg := Page[T]{
		Items:  []T{},
		Number: n,
		Pages:  (total + PageSize - 1) / PageSize,
		Total:  total,
	}
	if n < 1 || n > pg.Pages {
		return pg
	}
	start := (n - 1) * PageSize
	end := min(total, start+PageSize)
	pg.Items = items[start:end:end]
	return pg
}

// Genres returns the distinct genres of list, sorted, preceded by GenreAll.
func Genres(list []models.Movie) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, m := range list {
		for _, g := range m.Genre {
			if _, ok := seen[g]; ok || g == "" {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return append([]string{GenreAll}, out...)
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func contains(field, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(field), lowerQuery)
}

// idLess orders numeric ids numerically; non-numeric ids follow all numeric
// ones in lexicographic order.
func idLess(a, b string) bool {
	na, okA := numericID(a)
	nb, okB := numericID(b)
	switch {
	case okA && okB:
		return na < nb
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}

func numericID(id string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(id), 64)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// yearOf returns 0 for a missing or malformed year so such records sort last
// under "latest".
func yearOf(m models.Movie) int {
	y, err := strconv.Atoi(strings.TrimSpace(m.Year))
	if err != nil {
		return 0
	}
	return y
}

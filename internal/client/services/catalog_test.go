package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/moviecatalog/internal/client/client"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache implements the three redis commands the catalog uses.
type memCache struct {
	redis.Cmdable
	data            map[string][]byte
	gets, sets, dels int
	lastTTL         time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string) *redis.StringCmd {
	c.gets++
	v, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (c *memCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	c.sets++
	c.lastTTL = ttl
	c.data[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

func (c *memCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.dels++
	for _, k := range keys {
		delete(c.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

const movieSeed = `{"movies":[
 {"id":"1","title":"Alien","type":"Movie","year":"1979","genre":["Horror"],"director":"Scott","imdb_rating":8.5},
 {"id":"2","title":"Dark","type":"TV Series","year":"2017","genre":["Sci-Fi"],"director":"Odar","imdb_rating":8.7}
]}`

func validMovie() MovieInput {
	return MovieInput{
		Title:      "Heat",
		Type:       "Movie",
		Year:       "1995",
		Genre:      []string{"Crime"},
		Director:   "Mann",
		IMDbRating: 8.3,
		Poster:     "https://img.example.com/heat.jpg",
	}
}

func TestCatalog_ListWithoutCache(t *testing.T) {
	_, c := newBackend(t, movieSeed)
	svc := NewCatalogService(c, nil, time.Minute, nil)

	movies, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Alien", movies[0].Title)
}

func TestCatalog_ReadThroughCache(t *testing.T) {
	api, c := newBackend(t, movieSeed)
	cache := newMemCache()
	svc := NewCatalogService(c, cache, 5*time.Minute, nil)
	ctx := context.Background()

	_, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 5*time.Minute, cache.lastTTL)

	// served from cache even though the API now fails
	api.InjectFault(http.MethodGet, "movies", http.StatusInternalServerError)
	movies, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
	assert.Equal(t, 1, cache.sets)
}

func TestCatalog_WritesInvalidateCache(t *testing.T) {
	_, c := newBackend(t, movieSeed)
	cache := newMemCache()
	svc := NewCatalogService(c, cache, time.Minute, nil)
	ctx := context.Background()

	_, err := svc.ListMovies(ctx)
	require.NoError(t, err)

	created, err := svc.CreateMovie(ctx, validMovie())
	require.NoError(t, err)
	assert.Equal(t, "3", created.ID)
	assert.Equal(t, 1, cache.dels)

	movies, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 3)

	in := validMovie()
	in.Title = "Heat (Director's Cut)"
	updated, err := svc.UpdateMovie(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, in.Title, updated.Title)
	assert.Equal(t, 2, cache.dels)
}

func TestCatalog_CorruptCacheFallsBack(t *testing.T) {
	_, c := newBackend(t, movieSeed)
	cache := newMemCache()
	cache.data[catalogCacheKey] = []byte("not json")
	svc := NewCatalogService(c, cache, time.Minute, nil)

	movies, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestCatalog_UnreachableRedisFallsBack(t *testing.T) {
	_, c := newBackend(t, movieSeed)
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	svc := NewCatalogService(c, rdb, time.Minute, nil)
	ctx := context.Background()

	movies, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 2)

	_, err = svc.CreateMovie(ctx, validMovie())
	require.NoError(t, err)
}

func TestCatalog_Validation(t *testing.T) {
	_, c := newBackend(t, movieSeed)
	svc := NewCatalogService(c, nil, time.Minute, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		edit  func(*MovieInput)
		field string
	}{
		{"missing title", func(m *MovieInput) { m.Title = "" }, "title"},
		{"bad type", func(m *MovieInput) { m.Type = "Short" }, "type"},
		{"short year", func(m *MovieInput) { m.Year = "95" }, "year"},
		{"alpha year", func(m *MovieInput) { m.Year = "19x5" }, "year"},
		{"no genre", func(m *MovieInput) { m.Genre = nil }, "genre"},
		{"blank genre", func(m *MovieInput) { m.Genre = []string{""} }, "genre[0]"},
		{"rating high", func(m *MovieInput) { m.IMDbRating = 10.5 }, "imdb_rating"},
		{"rating low", func(m *MovieInput) { m.IMDbRating = -1 }, "imdb_rating"},
		{"bad poster", func(m *MovieInput) { m.Poster = "not a url" }, "poster"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validMovie()
			tt.edit(&in)

			_, err := svc.CreateMovie(ctx, in)
			require.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
		})
	}

	in := validMovie()
	in.Type = "TV Series"
	in.IMDbRating = 10
	_, err := svc.CreateMovie(ctx, in)
	require.NoError(t, err)
}

func TestCatalog_UpdateMissingMovie(t *testing.T) {
	_, c := newBackend(t, movieSeed)
	svc := NewCatalogService(c, nil, time.Minute, nil)

	_, err := svc.UpdateMovie(context.Background(), "404", validMovie())
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestMovieInputFrom(t *testing.T) {
	in := validMovie()
	m := in.movie("9")
	back := MovieInputFrom(m)
	assert.Equal(t, in, back)

	back.Genre[0] = "Changed"
	assert.Equal(t, "Crime", m.Genre[0])
}

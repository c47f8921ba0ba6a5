package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/moviecatalog/internal/client/client"
	"github.com/dmitrijs2005/moviecatalog/internal/client/models"
	"github.com/dmitrijs2005/moviecatalog/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "catalog:movies"

// MovieInput is the add/edit movie form.
type MovieInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Type        string   `json:"type" validate:"required,oneof='Movie' 'TV Series'"`
	Year        string   `json:"year" validate:"required,len=4,numeric"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,required"`
	Director    string   `json:"director" validate:"required"`
	IMDbRating  float64  `json:"imdb_rating" validate:"gte=0,lte=10"`
	Description string   `json:"description"`
	Runtime     string   `json:"runtime"`
	Language    string   `json:"language"`
	Country     string   `json:"country"`
	Poster      string   `json:"poster" validate:"omitempty,url"`
	Trailer     string   `json:"trailer" validate:"omitempty,url"`
}

// MovieInputFrom pre-fills the edit form from an existing record.
func MovieInputFrom(m models.Movie) MovieInput {
	return MovieInput{
		Title:       m.Title,
		Type:        string(m.Type),
		Year:        m.Year,
		Genre:       append([]string(nil), m.Genre...),
		Director:    m.Director,
		IMDbRating:  m.IMDbRating,
		Description: m.Description,
		Runtime:     m.Runtime,
		Language:    m.Language,
		Country:     m.Country,
		Poster:      m.Poster,
		Trailer:     m.Trailer,
	}
}

func (in MovieInput) movie(id string) models.Movie {
	return models.Movie{
		ID:          id,
		Title:       in.Title,
		Type:        models.MovieType(in.Type),
		Year:        in.Year,
		Genre:       in.Genre,
		Director:    in.Director,
		IMDbRating:  in.IMDbRating,
		Description: in.Description,
		Runtime:     in.Runtime,
		Language:    in.Language,
		Country:     in.Country,
		Poster:      in.Poster,
		Trailer:     in.Trailer,
	}
}

type CatalogService interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	CreateMovie(ctx context.Context, in MovieInput) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id string, in MovieInput) (*models.Movie, error)
}

type catalogService struct {
	client   client.MovieCollection
	cache    redis.Cmdable
	cacheTTL time.Duration
	validate *validator.Validate
	log      logging.Logger
}

// NewCatalogService builds the catalog service. cache may be nil, in which
// case every ListMovies call goes to the API.
func NewCatalogService(c client.MovieCollection, cache redis.Cmdable, ttl time.Duration, log logging.Logger) CatalogService {
	if log == nil {
		log = logging.Discard()
	}
	return &catalogService{
		client:   c,
		cache:    cache,
		cacheTTL: ttl,
		validate: newValidator(),
		log:      log.With("component", "catalog"),
	}
}

func (s *catalogService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	if movies, ok := s.fromCache(ctx); ok {
		return movies, nil
	}

	movies, err := s.client.ListMovies(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, movies)
	return movies, nil
}

func (s *catalogService) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	return s.client.GetMovie(ctx, id)
}

func (s *catalogService) CreateMovie(ctx context.Context, in MovieInput) (*models.Movie, error) {
	if err := check(s.validate, in); err != nil {
		return nil, err
	}
	m, err := s.client.CreateMovie(ctx, in.movie(""))
	if err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}
	s.invalidate(ctx)
	return m, nil
}

func (s *catalogService) UpdateMovie(ctx context.Context, id string, in MovieInput) (*models.Movie, error) {
	if err := check(s.validate, in); err != nil {
		return nil, err
	}
	m, err := s.client.UpdateMovie(ctx, id, in.movie(id))
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	s.invalidate(ctx)
	return m, nil
}

func (s *catalogService) fromCache(ctx context.Context) ([]models.Movie, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn(ctx, "catalog cache read failed", "error", err)
		}
		return nil, false
	}
	var movies []models.Movie
	if err := json.Unmarshal(raw, &movies); err != nil {
		s.log.Warn(ctx, "failed to unmarshal cached catalog", "error", err)
		return nil, false
	}
	s.log.Debug(ctx, "catalog served from cache", "count", len(movies))
	return movies, true
}

func (s *catalogService) toCache(ctx context.Context, movies []models.Movie) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(movies)
	if err != nil {
		s.log.Warn(ctx, "failed to marshal catalog for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, catalogCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.log.Warn(ctx, "catalog cache write failed", "error", err)
	}
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.log.Warn(ctx, "catalog cache invalidation failed", "error", err)
	}
}

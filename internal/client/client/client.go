package client

import (
	"context"

	"github.com/dmitrijs2005/moviecatalog/internal/client/models"
)

// MovieCollection is the remote "movies" collection. Movies are never
// deleted through the client.
type MovieCollection interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	CreateMovie(ctx context.Context, m models.Movie) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id string, m models.Movie) (*models.Movie, error)
}

// UserCollection is the remote "users" collection.
type UserCollection interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type Client interface {
	MovieCollection
	UserCollection
}

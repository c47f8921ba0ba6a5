package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moviecatalog/internal/client/client"
	"github.com/dmitrijs2005/moviecatalog/internal/client/models"
	"github.com/dmitrijs2005/moviecatalog/internal/logging"
	"github.com/go-playground/validator/v10"
)

var ErrEmailTaken = errors.New("email is already registered")

// UserInput is the registration and user administration form. An empty
// Password on update keeps the stored one.
type UserInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

// UserService covers registration and roster administration. Every record it
// returns has the password stripped.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	CreateUser(ctx context.Context, in UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id string, in UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	SetDisabled(ctx context.Context, id string, disabled bool) (*models.User, error)
}

type userService struct {
	client   client.UserCollection
	validate *validator.Validate
	log      logging.Logger
}

func NewUserService(c client.UserCollection, log logging.Logger) UserService {
	if log == nil {
		log = logging.Discard()
	}
	return &userService{client: c, validate: newValidator(), log: log.With("component", "users")}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	list, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = list[i].Sanitized()
	}
	return list, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.client.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitized(u), nil
}

// Register creates a regular, enabled account with no favorites.
func (s *userService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.CreateUser(ctx, UserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     string(models.RoleUser),
	})
}

func (s *userService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	in = in.normalized()
	if err := check(s.validate, in); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	u, err := s.client.CreateUser(ctx, models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		Role:      models.Role(in.Role),
		Favorites: []models.Movie{},
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info(ctx, "user created", "user_id", u.ID, "role", u.Role)
	return sanitized(u), nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, in UserInput) (*models.User, error) {
	in = in.normalized()
	var skip []string
	if in.Password == "" {
		skip = append(skip, "Password")
	}
	if err := check(s.validate, in, skip...); err != nil {
		return nil, err
	}

	cur, err := s.client.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if !strings.EqualFold(cur.Email, in.Email) {
		if err := s.ensureEmailFree(ctx, in.Email, id); err != nil {
			return nil, err
		}
	}

	next := cur.Sanitized()
	next.Username = in.Username
	next.Email = in.Email
	next.Role = models.Role(in.Role)
	next.Password = in.Password

	u, err := s.client.UpdateUser(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return sanitized(u), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}

func (s *userService) SetDisabled(ctx context.Context, id string, disabled bool) (*models.User, error) {
	cur, err := s.client.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("set disabled: %w", err)
	}
	next := cur.Sanitized()
	next.IsDisable = disabled

	u, err := s.client.UpdateUser(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("set disabled: %w", err)
	}
	s.log.Info(ctx, "user state changed", "user_id", id, "disabled", disabled)
	return sanitized(u), nil
}

// ensureEmailFree scans the roster for email, ignoring the record exceptID.
func (s *userService) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	list, err := s.client.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	for _, u := range list {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return ErrEmailTaken
		}
	}
	return nil
}

func (in UserInput) normalized() UserInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	return in
}

func sanitized(u *models.User) *models.User {
	out := u.Sanitized()
	return &out
}

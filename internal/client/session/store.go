// Package session keeps track of the signed-in user.
//
// The session is a sanitized copy of a user record persisted in the local
// metadata table, so it survives restarts of the client. There is no expiry:
// the session lasts until Logout or the next successful Login.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviecatalog/internal/client/models"
	"github.com/dmitrijs2005/moviecatalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moviecatalog/internal/logging"
)

const (
	keyUser      = "session"
	keyStartedAt = "session_started_at"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrNoSession          = errors.New("no active session")
	ErrSessionMismatch    = errors.New("user does not match the active session")
)

// UserLister is the part of the remote client the store needs for login.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Listener is called after the session changed. It carries no payload;
// listeners read the new state with Current.
type Listener func(ctx context.Context)

type subscription struct {
	id int
	fn Listener
}

type Store struct {
	users UserLister
	repo  metadata.Repository
	log   logging.Logger
	now   func() time.Time

	mu        sync.Mutex
	listeners []subscription
	nextID    int
}

func NewStore(users UserLister, repo metadata.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		users: users,
		repo:  repo,
		log:   log.With("component", "session"),
		now:   time.Now,
	}
}

// Login looks up the account by exact email and password match over the full
// user list. The first matching record wins. On failure the current session is
// left untouched.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	list, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var found *models.User
	for i := range list {
		if list[i].Email == email && list[i].Password == password {
			found = &list[i]
			break
		}
	}
	if found == nil {
		return nil, ErrInvalidCredentials
	}
	if found.IsDisable {
		return nil, ErrAccountDisabled
	}

	u := found.Sanitized()
	data, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("login: encode session: %w", err)
	}
	started := s.now().UTC().Format(time.RFC3339)
	if err := s.repo.Apply(ctx, map[string][]byte{
		keyUser:      data,
		keyStartedAt: []byte(started),
	}, nil); err != nil {
		return nil, fmt.Errorf("login: save session: %w", err)
	}

	s.log.Info(ctx, "signed in", "user_id", u.ID, "role", u.Role)
	s.notify(ctx)
	return &u, nil
}

// Logout clears the session. Storage failures are logged, listeners are
// notified regardless.
func (s *Store) Logout(ctx context.Context) {
	if err := s.repo.Apply(ctx, nil, []string{keyUser, keyStartedAt}); err != nil {
		s.log.Error(ctx, "failed to clear session", "error", err)
	}
	s.log.Info(ctx, "signed out")
	s.notify(ctx)
}

// Current returns the signed-in user. A missing, unreadable or corrupt record
// reads as anonymous.
func (s *Store) Current(ctx context.Context) (*models.User, bool) {
	data, err := s.repo.Get(ctx, keyUser)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			s.log.Warn(ctx, "failed to read session", "error", err)
		}
		return nil, false
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.log.Warn(ctx, "corrupt session record ignored", "error", err)
		return nil, false
	}
	if u.ID == "" {
		s.log.Warn(ctx, "corrupt session record ignored", "error", "missing id")
		return nil, false
	}
	if u.Favorites == nil {
		u.Favorites = []models.Movie{}
	}
	return &u, true
}

// Since reports when the current session was created.
func (s *Store) Since(ctx context.Context) (time.Time, bool) {
	if _, ok := s.Current(ctx); !ok {
		return time.Time{}, false
	}
	data, err := s.repo.Get(ctx, keyStartedAt)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		s.log.Warn(ctx, "corrupt session timestamp ignored", "error", err)
		return time.Time{}, false
	}
	return t, true
}

// Update replaces the stored record of the signed-in user, e.g. after its
// favorites changed remotely. Listeners are not notified.
func (s *Store) Update(ctx context.Context, u models.User) error {
	cur, ok := s.Current(ctx)
	if !ok {
		return ErrNoSession
	}
	if cur.ID != u.ID {
		return ErrSessionMismatch
	}

	data, err := json.Marshal(u.Sanitized())
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if err := s.repo.Set(ctx, keyUser, data); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Subscribe registers fn for change notifications. Listeners run synchronously
// in subscription order before Login or Logout returns. The returned function
// removes the subscription and may be called more than once.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(ctx context.Context) {
	s.mu.Lock()
	snapshot := make([]subscription, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.fn(ctx)
	}
}

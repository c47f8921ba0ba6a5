// Package favorites keeps the signed-in user's favorite movies in memory and
// writes every change through to the remote user record.
package favorites

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/moviecatalog/internal/client/models"
	"github.com/dmitrijs2005/moviecatalog/internal/client/session"
	"github.com/dmitrijs2005/moviecatalog/internal/logging"
)

// SessionSource is the subset of session.Store the manager depends on.
type SessionSource interface {
	Current(ctx context.Context) (*models.User, bool)
	Update(ctx context.Context, u models.User) error
	Subscribe(fn session.Listener) func()
}

type UserUpdater interface {
	UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error)
}

// Manager mirrors the favorites of the current session user.
//
// The mutex only protects the mirror. Overlapping Add/Remove calls each send
// the full list they computed, so the last write acknowledged by the API wins.
type Manager struct {
	session SessionSource
	users   UserUpdater
	log     logging.Logger

	mu     sync.RWMutex
	mirror []models.Movie

	unsubscribe func()
}

func NewManager(ctx context.Context, s SessionSource, users UserUpdater, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	m := &Manager{
		session: s,
		users:   users,
		log:     log.With("component", "favorites"),
	}
	m.reload(ctx)
	m.unsubscribe = s.Subscribe(m.reload)
	return m
}

// Close stops following session changes.
func (m *Manager) Close() {
	m.unsubscribe()
}

func (m *Manager) IsFavorite(movieID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return indexOf(m.mirror, movieID) >= 0
}

// Favorites returns a copy of the mirror in stored order.
func (m *Manager) Favorites() []models.Movie {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Movie, len(m.mirror))
	copy(out, m.mirror)
	return out
}

// Add appends movie to the user's favorites. It is a no-op for anonymous
// sessions and for movies already in the list.
func (m *Manager) Add(ctx context.Context, movie models.Movie) error {
	m.mu.RLock()
	present := indexOf(m.mirror, movie.ID) >= 0
	next := make([]models.Movie, len(m.mirror), len(m.mirror)+1)
	copy(next, m.mirror)
	m.mu.RUnlock()

	if present {
		return nil
	}
	return m.write(ctx, "add favorite", append(next, movie))
}

// Remove drops movieID from the user's favorites. Removing a movie that is not
// in the list succeeds without contacting the API.
func (m *Manager) Remove(ctx context.Context, movieID string) error {
	m.mu.RLock()
	i := indexOf(m.mirror, movieID)
	var next []models.Movie
	if i >= 0 {
		next = make([]models.Movie, 0, len(m.mirror)-1)
		next = append(next, m.mirror[:i]...)
		next = append(next, m.mirror[i+1:]...)
	}
	m.mu.RUnlock()

	if i < 0 {
		return nil
	}
	return m.write(ctx, "remove favorite", next)
}

// write sends the user record with favs and commits the mirror only after
// the API accepted it.
func (m *Manager) write(ctx context.Context, op string, favs []models.Movie) error {
	u, ok := m.session.Current(ctx)
	if !ok {
		return nil
	}

	record := u.Sanitized()
	record.Favorites = favs
	if _, err := m.users.UpdateUser(ctx, u.ID, record); err != nil {
		m.log.Warn(ctx, "favorites write failed", "op", op, "user_id", u.ID, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	m.mirror = favs
	m.mu.Unlock()

	if err := m.session.Update(ctx, record); err != nil {
		// remote state is already updated
		m.log.Warn(ctx, "failed to refresh session record", "user_id", u.ID, "error", err)
	}
	return nil
}

func (m *Manager) reload(ctx context.Context) {
	var loaded []models.Movie
	if u, ok := m.session.Current(ctx); ok {
		loaded = dedupe(u.Favorites)
	}

	m.mu.Lock()
	m.mirror = loaded
	m.mu.Unlock()
}

func dedupe(in []models.Movie) []models.Movie {
	out := make([]models.Movie, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, mv := range in {
		if _, dup := seen[mv.ID]; dup {
			continue
		}
		seen[mv.ID] = struct{}{}
		out = append(out, mv)
	}
	return out
}

func indexOf(list []models.Movie, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

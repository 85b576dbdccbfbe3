// Package users manages learner profiles and their persisted session
// settings.
package users

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sky-flux/factdrill"
	"github.com/sky-flux/factdrill/store"
)

const (
	usersKey       = "users"
	currentUserKey = "current_user"
)

var (
	// ErrNotFound is returned for an unknown learner ID.
	ErrNotFound = errors.New("users: not found")
	// ErrInvalidName is returned when a learner name is blank.
	ErrInvalidName = errors.New("users: name must not be empty")
)

// User is one learner.
type User struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	CreatedAt time.Time               `json:"created_at"`
	Settings  factdrill.SessionConfig `json:"settings"`
}

// StatsRemover deletes the statistics of a learner. *stats.Service
// implements it.
type StatsRemover interface {
	Delete(ctx context.Context, userID string) error
}

// Service stores learners and tracks the selected one.
type Service struct {
	kv     store.KV
	stats  StatsRemover
	logger *slog.Logger
	mu     sync.Mutex
}

// NewService returns a Service over kv. stats may be nil, in which case
// deleting a learner leaves their statistics in place.
func NewService(kv store.KV, stats StatsRemover, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{kv: kv, stats: stats, logger: logger}
}

func (s *Service) load(ctx context.Context) ([]User, error) {
	us, err := store.GetJSON(ctx, s.kv, usersKey, []User{})
	return us, errors.Wrap(err, "load users")
}

func (s *Service) save(ctx context.Context, us []User) error {
	return errors.Wrap(store.SetJSON(ctx, s.kv, usersKey, us), "save users")
}

// List returns all learners in creation order.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.load(ctx)
}

// Create adds a learner with default settings.
func (s *Service) Create(ctx context.Context, name string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	us, err := s.load(ctx)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Settings:  factdrill.DefaultSessionConfig(),
	}
	if err := s.save(ctx, append(us, u)); err != nil {
		return User{}, err
	}
	s.logger.Info("learner created", "id", u.ID, "name", u.Name)
	return u, nil
}

// Get returns the learner with the given ID.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	us, err := s.load(ctx)
	if err != nil {
		return User{}, err
	}
	i := slices.IndexFunc(us, func(u User) bool { return u.ID == id })
	if i < 0 {
		return User{}, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return us[i], nil
}

// Lookup finds a learner by exact ID, then by case-insensitive name.
func (s *Service) Lookup(ctx context.Context, ref string) (User, error) {
	us, err := s.load(ctx)
	if err != nil {
		return User{}, err
	}
	if i := slices.IndexFunc(us, func(u User) bool { return u.ID == ref }); i >= 0 {
		return us[i], nil
	}
	if i := slices.IndexFunc(us, func(u User) bool { return strings.EqualFold(u.Name, ref) }); i >= 0 {
		return us[i], nil
	}
	return User{}, errors.Wrapf(ErrNotFound, "%q", ref)
}

// Select makes the learner with the given ID current.
func (s *Service) Select(ctx context.Context, id string) (User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err := store.SetJSON(ctx, s.kv, currentUserKey, u.ID); err != nil {
		return User{}, errors.Wrap(err, "save current user")
	}
	return u, nil
}

// Current returns the selected learner. ok is false when none is selected
// or the selected learner no longer exists.
func (s *Service) Current(ctx context.Context) (u User, ok bool, err error) {
	id, err := store.GetJSON(ctx, s.kv, currentUserKey, "")
	if err != nil {
		return User{}, false, errors.Wrap(err, "load current user")
	}
	if id == "" {
		return User{}, false, nil
	}
	u, err = s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

// Logout clears the current selection.
func (s *Service) Logout(ctx context.Context) error {
	return errors.Wrap(s.kv.Delete(ctx, currentUserKey), "clear current user")
}

// UpdateSettings replaces the settings of a learner after validating them.
func (s *Service) UpdateSettings(ctx context.Context, id string, cfg factdrill.SessionConfig) (User, error) {
	if err := cfg.Validate(); err != nil {
		return User{}, err
	}
	return s.update(ctx, id, func(u *User) { u.Settings = cfg })
}

// ResetSettings restores the default settings of a learner.
func (s *Service) ResetSettings(ctx context.Context, id string) (User, error) {
	return s.update(ctx, id, func(u *User) { u.Settings = factdrill.DefaultSessionConfig() })
}

func (s *Service) update(ctx context.Context, id string, fn func(*User)) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	us, err := s.load(ctx)
	if err != nil {
		return User{}, err
	}
	i := slices.IndexFunc(us, func(u User) bool { return u.ID == id })
	if i < 0 {
		return User{}, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	fn(&us[i])
	if err := s.save(ctx, us); err != nil {
		return User{}, err
	}
	return us[i], nil
}

// Delete removes a learner and their statistics. Deleting the current
// learner also logs out.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	us, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(us, func(u User) bool { return u.ID == id })
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "id %s", id)
	}
	if err := s.save(ctx, slices.Delete(us, i, i+1)); err != nil {
		return err
	}

	cur, err := store.GetJSON(ctx, s.kv, currentUserKey, "")
	if err != nil {
		return errors.Wrap(err, "load current user")
	}
	if cur == id {
		if err := s.Logout(ctx); err != nil {
			return err
		}
	}
	if s.stats != nil {
		if err := s.stats.Delete(ctx, id); err != nil {
			return err
		}
	}
	s.logger.Info("learner deleted", "id", id)
	return nil
}

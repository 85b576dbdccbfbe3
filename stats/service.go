package stats

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/sky-flux/factdrill"
	"github.com/sky-flux/factdrill/store"
)

const keyPrefix = "stats_"

// Key returns the store key holding the statistics of userID.
func Key(userID string) string {
	return keyPrefix + userID
}

// Service persists UserStats in a store.KV.
type Service struct {
	kv     store.KV
	logger *slog.Logger
	mu     sync.Mutex // serializes read-modify-write of a stats record
}

// NewService returns a Service over kv. A nil logger means slog.Default().
func NewService(kv store.KV, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{kv: kv, logger: logger}
}

// Get returns the statistics of userID; an unknown learner has none.
func (s *Service) Get(ctx context.Context, userID string) (UserStats, error) {
	us, err := store.GetJSON(ctx, s.kv, Key(userID), UserStats{})
	if err != nil {
		return UserStats{}, errors.Wrapf(err, "load stats for %s", userID)
	}
	us.UserID = userID
	if us.Days == nil {
		us.Days = make(map[string]DailyStats)
	}
	return us, nil
}

func (s *Service) save(ctx context.Context, us UserStats) error {
	return errors.Wrapf(store.SetJSON(ctx, s.kv, Key(us.UserID), us), "save stats for %s", us.UserID)
}

// AddSession folds a finished session into the day it finished on.
func (s *Service) AddSession(ctx context.Context, userID string, res factdrill.SessionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	us, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	date := DayKey(res.FinishedAt)
	day, ok := us.Days[date]
	if !ok {
		day = DailyStats{Date: date}
	}
	day.Add(res.Problems)
	day.Sessions++
	us.Days[date] = day

	if err := s.save(ctx, us); err != nil {
		return err
	}
	s.logger.Debug("session recorded",
		"user", userID,
		"session", res.ID,
		"date", date,
		"problems", len(res.Problems),
	)
	return nil
}

// Clear removes the statistics of one day, or every day when date is "".
func (s *Service) Clear(ctx context.Context, userID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date == "" {
		return s.save(ctx, UserStats{UserID: userID, Days: map[string]DailyStats{}})
	}
	us, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	delete(us.Days, date)
	return s.save(ctx, us)
}

// Dates returns the days with statistics for userID, newest first.
func (s *Service) Dates(ctx context.Context, userID string) ([]string, error) {
	us, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return us.Dates(), nil
}

// Delete drops the statistics record of userID entirely.
func (s *Service) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Wrapf(s.kv.Delete(ctx, Key(userID)), "delete stats for %s", userID)
}

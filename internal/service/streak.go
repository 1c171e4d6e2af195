package service

import (
	"context"
	"errors"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/repository"
	"github.com/chimwopara/logic/pkg/daykey"
)

type StreakService struct {
	repo  StreakRepository
	clock *daykey.Clock
	users *keyMutex
}

func NewStreakService(repo StreakRepository, clock *daykey.Clock) *StreakService {
	return &StreakService{
		repo:  repo,
		clock: clock,
		users: newKeyMutex(),
	}
}

// Update credits the user's streak for now's day. The leaderboard engine
// only calls this on a first accepted submission of the day; the same-day
// guard below keeps a replay from double-crediting anyway.
func (s *StreakService) Update(ctx context.Context, userID string, now time.Time) (*model.StreakRecord, error) {
	unlock := s.users.Lock(userID)
	defer unlock()

	rec, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		rec = &model.StreakRecord{UserID: userID}
	}

	today := s.clock.Key(now)
	if rec.LastDate == today {
		return rec, nil
	}

	if rec.LastDate == s.clock.Yesterday(now) || rec.Count == 0 {
		rec.Count++
	} else {
		rec.Count = 1
	}

	if rec.Count > rec.BestStreak {
		rec.BestStreak = rec.Count
	}
	rec.LastDate = today

	if err := s.repo.UpsertStreak(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Get returns the user's streak record, zero-valued when the user has never
// submitted.
func (s *StreakService) Get(ctx context.Context, userID string) (*model.StreakRecord, error) {
	rec, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.StreakRecord{UserID: userID}, nil
		}
		return nil, err
	}
	return rec, nil
}

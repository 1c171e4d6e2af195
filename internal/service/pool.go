package service

import (
	"context"
	"errors"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/repository"

	"github.com/google/uuid"
)

// PoolService manages the shared pool of published challenges the daily
// selector draws from.
type PoolService struct {
	repo ChallengePoolRepository
}

func NewPoolService(repo ChallengePoolRepository) *PoolService {
	return &PoolService{repo: repo}
}

// Publish stores a challenge in the shared pool, assigning a serial when
// the caller did not supply one.
func (s *PoolService) Publish(ctx context.Context, c *model.Challenge) (*model.Challenge, error) {
	if c.Serial == "" {
		c.Serial = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.SaveSharedChallenge(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *PoolService) List(ctx context.Context) ([]*model.Challenge, error) {
	return s.repo.ListSharedChallenges(ctx)
}

func (s *PoolService) Get(ctx context.Context, serial string) (*model.Challenge, error) {
	c, err := s.repo.GetSharedChallenge(ctx, serial)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

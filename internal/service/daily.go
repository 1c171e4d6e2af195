package service

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/repository"
	"github.com/chimwopara/logic/pkg/daykey"
)

const (
	// DefaultLeaderboardLimit caps leaderboard reads when the caller does
	// not ask for a size.
	DefaultLeaderboardLimit = 10

	minDailySteps  = 10
	maxDailySteps  = 25
	minDailyRating = 3.5
)

type DailyChallengeService struct {
	repo    DailyChallengeRepository
	pool    ChallengePoolRepository
	streaks *StreakService
	ledger  *LedgerService
	clock   *daykey.Clock
	days    *keyMutex
	pick    func(n int) int
}

func NewDailyChallengeService(repo DailyChallengeRepository, pool ChallengePoolRepository, streaks *StreakService, ledger *LedgerService, clock *daykey.Clock) *DailyChallengeService {
	return &DailyChallengeService{
		repo:    repo,
		pool:    pool,
		streaks: streaks,
		ledger:  ledger,
		clock:   clock,
		days:    newKeyMutex(),
		pick:    rand.Intn,
	}
}

// defaultChallenge is served when the shared pool is empty.
func defaultChallenge() *model.Challenge {
	return &model.Challenge{
		Serial:     "default",
		Title:      "Fizz Buzz Classic",
		Question:   "Write a program that prints numbers 1-100, but for multiples of 3 print Fizz, for multiples of 5 print Buzz, and for multiples of both print FizzBuzz",
		Language:   "python",
		Difficulty: "medium",
		Steps:      15,
	}
}

// GetOrCreateTodaysChallenge returns the shared challenge for now's day,
// selecting and persisting one on the first call of the day. Repeated calls
// within the same day return the stored selection.
func (s *DailyChallengeService) GetOrCreateTodaysChallenge(ctx context.Context, now time.Time) (*model.DayChallenge, error) {
	date := s.clock.Key(now)
	unlock := s.days.Lock(date)
	defer unlock()

	return s.getOrCreateLocked(ctx, now, date)
}

func (s *DailyChallengeService) getOrCreateLocked(ctx context.Context, now time.Time, date string) (*model.DayChallenge, error) {
	dc, err := s.repo.GetDayChallenge(ctx, date)
	if err == nil {
		return dc, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	selected, err := s.selectChallenge(ctx)
	if err != nil {
		return nil, err
	}

	dc = &model.DayChallenge{
		Date:            date,
		ChallengeSerial: selected.Serial,
		Challenge:       selected,
		StartTime:       now,
		EndTime:         s.clock.EndOfDay(now),
	}

	if err := s.repo.CreateDayChallenge(ctx, dc); err != nil {
		return nil, err
	}

	// Re-read so a concurrent creator's row wins over our candidate.
	return s.repo.GetDayChallenge(ctx, date)
}

// selectChallenge filters the shared pool to medium challenges of a
// reasonable length with a good rating, falling back to the whole pool and
// then to the built-in default.
func (s *DailyChallengeService) selectChallenge(ctx context.Context) (*model.Challenge, error) {
	pool, err := s.pool.ListSharedChallenges(ctx)
	if err != nil {
		return nil, err
	}

	var suitable []*model.Challenge
	for _, c := range pool {
		if c.Difficulty == "medium" &&
			c.Steps >= minDailySteps && c.Steps <= maxDailySteps &&
			c.RatingOrDefault() >= minDailyRating {
			suitable = append(suitable, c)
		}
	}

	switch {
	case len(suitable) > 0:
		return suitable[s.pick(len(suitable))], nil
	case len(pool) > 0:
		return pool[s.pick(len(pool))], nil
	default:
		return defaultChallenge(), nil
	}
}

// SubmitCompletion records one user's run of today's challenge: it parses
// the completion time, scores efficiency, appends the leaderboard entry,
// credits the streak, and awards lines. A repeat submission is a normal
// outcome reported via AlreadyCompleted, never an error.
func (s *DailyChallengeService) SubmitCompletion(ctx context.Context, now time.Time, userID, username, completionTime string, linesUsed int) (*model.SubmissionResult, error) {
	seconds, err := ParseClockTime(completionTime)
	if err != nil {
		return nil, err
	}

	date := s.clock.Key(now)
	unlock := s.days.Lock(date)
	defer unlock()

	dc, err := s.getOrCreateLocked(ctx, now, date)
	if err != nil {
		return nil, err
	}

	if dc.HasParticipant(userID) {
		return &model.SubmissionResult{
			Rank:             dc.Rank(userID),
			AlreadyCompleted: true,
		}, nil
	}

	entry := &model.LeaderboardEntry{
		UserID:      userID,
		Username:    username,
		Time:        completionTime,
		Seconds:     seconds,
		Lines:       linesUsed,
		Efficiency:  Efficiency(linesUsed, dc.Challenge.Steps),
		SubmittedAt: now,
	}

	if err := s.repo.AppendLeaderboardEntry(ctx, date, dc.ChallengeSerial, entry); err != nil {
		return nil, err
	}

	// The new entry carries the highest sequence number of the day, so its
	// rank is the count of existing entries at or below its time, plus one.
	rank := 1
	for _, e := range dc.Leaderboard {
		if e.Seconds <= entry.Seconds {
			rank++
		}
	}

	streak, err := s.streaks.Update(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	rewards := CalculateRewards(rank, streak.Count)
	err = s.ledger.Award(ctx, userID, rewards.TotalLines, model.ReasonDailyChallengeReward, map[string]string{
		"challenge_serial": dc.ChallengeSerial,
		"date":             date,
		"rank":             strconv.Itoa(rank),
	})
	if err != nil {
		return nil, err
	}

	return &model.SubmissionResult{
		Rank:    rank,
		Streak:  streak,
		Rewards: rewards,
	}, nil
}

// GetLeaderboard returns the first limit entries of today's board.
func (s *DailyChallengeService) GetLeaderboard(ctx context.Context, now time.Time, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	return s.repo.GetLeaderboard(ctx, s.clock.Key(now), limit)
}

// GetUserStats returns the user's entry and rank on today's board.
func (s *DailyChallengeService) GetUserStats(ctx context.Context, now time.Time, userID string) (*model.UserStats, error) {
	dc, err := s.repo.GetDayChallenge(ctx, s.clock.Key(now))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	for i, e := range dc.Leaderboard {
		if e.UserID == userID {
			return &model.UserStats{
				Rank:       i + 1,
				Time:       e.Time,
				Lines:      e.Lines,
				Efficiency: e.Efficiency,
				Timestamp:  e.SubmittedAt,
			}, nil
		}
	}

	return nil, ErrNotFound
}

// GetTimeRemaining reports how long today's challenge stays open.
func (s *DailyChallengeService) GetTimeRemaining(now time.Time) time.Duration {
	return s.clock.Remaining(now)
}

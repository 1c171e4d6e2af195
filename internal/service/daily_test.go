package service

import (
	"context"
	"testing"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/repository"
	"github.com/chimwopara/logic/internal/service/mocks"
	"github.com/chimwopara/logic/pkg/daykey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func rating(v float64) *float64 { return &v }

type dailyFixture struct {
	repo   *mocks.MockDailyChallengeRepository
	pool   *mocks.MockChallengePoolRepository
	streak *mocks.MockStreakRepository
	ledger *mocks.MockLedgerRepository
	svc    *DailyChallengeService
}

func newDailyFixture(t *testing.T) *dailyFixture {
	t.Helper()
	clock, err := daykey.New("")
	assert.NoError(t, err)

	f := &dailyFixture{
		repo:   &mocks.MockDailyChallengeRepository{},
		pool:   &mocks.MockChallengePoolRepository{},
		streak: &mocks.MockStreakRepository{},
		ledger: &mocks.MockLedgerRepository{},
	}
	f.svc = NewDailyChallengeService(
		f.repo,
		f.pool,
		NewStreakService(f.streak, clock),
		NewLedgerService(f.ledger, clock),
		clock,
	)
	f.svc.pick = func(n int) int { return 0 }
	return f
}

func TestDailyChallengeService_SelectChallenge(t *testing.T) {
	tests := []struct {
		name           string
		pool           []*model.Challenge
		expectedSerial string
	}{
		{
			name: "Prefers suitable challenges",
			pool: []*model.Challenge{
				{Serial: "easy", Difficulty: "easy", Steps: 15, Rating: rating(4.5)},
				{Serial: "good", Difficulty: "medium", Steps: 15, Rating: rating(4.0)},
				{Serial: "long", Difficulty: "medium", Steps: 40, Rating: rating(4.5)},
			},
			expectedSerial: "good",
		},
		{
			name: "Steps outside the window are excluded",
			pool: []*model.Challenge{
				{Serial: "short", Difficulty: "medium", Steps: 9, Rating: rating(5)},
				{Serial: "fits", Difficulty: "medium", Steps: 10, Rating: rating(5)},
			},
			expectedSerial: "fits",
		},
		{
			name: "Low rating is excluded",
			pool: []*model.Challenge{
				{Serial: "meh", Difficulty: "medium", Steps: 15, Rating: rating(3.4)},
				{Serial: "rated", Difficulty: "medium", Steps: 15, Rating: rating(3.5)},
			},
			expectedSerial: "rated",
		},
		{
			name: "Unrated counts as below the bar",
			pool: []*model.Challenge{
				{Serial: "unrated", Difficulty: "medium", Steps: 15},
				{Serial: "rated", Difficulty: "medium", Steps: 15, Rating: rating(4)},
			},
			expectedSerial: "rated",
		},
		{
			name: "No suitable challenge falls back to the whole pool",
			pool: []*model.Challenge{
				{Serial: "hard", Difficulty: "hard", Steps: 50, Rating: rating(2)},
			},
			expectedSerial: "hard",
		},
		{
			name:           "Empty pool serves the built-in default",
			pool:           nil,
			expectedSerial: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDailyFixture(t)
			f.pool.On("ListSharedChallenges", mock.Anything).Return(tt.pool, nil)

			selected, err := f.svc.selectChallenge(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSerial, selected.Serial)
		})
	}
}

func TestDailyChallengeService_GetOrCreateTodaysChallenge(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("Existing day is returned as stored", func(t *testing.T) {
		f := newDailyFixture(t)
		stored := &model.DayChallenge{
			Date:            "2026-03-10",
			ChallengeSerial: "abc",
			Challenge:       &model.Challenge{Serial: "abc", Steps: 12},
		}
		f.repo.On("GetDayChallenge", mock.Anything, "2026-03-10").Return(stored, nil)

		dc, err := f.svc.GetOrCreateTodaysChallenge(context.Background(), now)
		assert.NoError(t, err)
		assert.Equal(t, stored, dc)
		f.pool.AssertNotCalled(t, "ListSharedChallenges", mock.Anything)
	})

	t.Run("First call of the day selects and persists", func(t *testing.T) {
		f := newDailyFixture(t)
		challenge := &model.Challenge{Serial: "abc", Difficulty: "medium", Steps: 12, Rating: rating(4)}

		f.repo.On("GetDayChallenge", mock.Anything, "2026-03-10").
			Return(nil, repository.ErrNotFound).Once()
		f.pool.On("ListSharedChallenges", mock.Anything).
			Return([]*model.Challenge{challenge}, nil)
		f.repo.On("CreateDayChallenge", mock.Anything, mock.MatchedBy(func(dc *model.DayChallenge) bool {
			return dc.Date == "2026-03-10" && dc.ChallengeSerial == "abc"
		})).Return(nil)
		f.repo.On("GetDayChallenge", mock.Anything, "2026-03-10").
			Return(&model.DayChallenge{
				Date:            "2026-03-10",
				ChallengeSerial: "abc",
				Challenge:       challenge,
			}, nil)

		dc, err := f.svc.GetOrCreateTodaysChallenge(context.Background(), now)
		assert.NoError(t, err)
		assert.Equal(t, "abc", dc.ChallengeSerial)
		f.repo.AssertExpectations(t)
	})
}

func TestDailyChallengeService_SubmitCompletion(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	today := func(entries ...model.LeaderboardEntry) *model.DayChallenge {
		dc := &model.DayChallenge{
			Date:            "2026-03-10",
			ChallengeSerial: "abc",
			Challenge:       &model.Challenge{Serial: "abc", Steps: 15},
			Leaderboard:     entries,
		}
		for _, e := range entries {
			dc.Participants = append(dc.Participants, e.UserID)
		}
		return dc
	}

	t.Run("First submission ranks first and pays out", func(t *testing.T) {
		f := newDailyFixture(t)
		f.repo.On("GetDayChallenge", mock.Anything, "2026-03-10").Return(today(), nil)
		f.repo.On("AppendLeaderboardEntry", mock.Anything, "2026-03-10", "abc",
			mock.MatchedBy(func(e *model.LeaderboardEntry) bool {
				return e.UserID == "u1" && e.Seconds == 150 && e.Efficiency == 100
			})).Return(nil)
		f.streak.On("GetStreak", mock.Anything, "u1").Return(nil, repository.ErrNotFound)
		f.streak.On("UpsertStreak", mock.Anything, mock.Anything).Return(nil)
		f.ledger.On("AdjustBalance", mock.Anything, "u1", 510,
			model.ReasonDailyChallengeReward, mock.Anything).Return(nil)

		result, err := f.svc.SubmitCompletion(context.Background(), now, "u1", "Uno", "02:30", 25)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Rank)
		assert.False(t, result.AlreadyCompleted)
		assert.Equal(t, 1, result.Streak.Count)
		assert.Equal(t, 510, result.Rewards.TotalLines)
		f.ledger.AssertExpectations(t)
	})

	t.Run("Equal time ranks below the earlier submitter", func(t *testing.T) {
		f := newDailyFixture(t)
		board := today(
			model.LeaderboardEntry{UserID: "a", Seconds: 100, Seq: 1},
			model.LeaderboardEntry{UserID: "b", Seconds: 120, Seq: 2},
		)
		f.repo.On("GetDayChallenge", mock.Anything, "2026-03-10").Return(board, nil)
		f.repo.On("AppendLeaderboardEntry", mock.Anything, "2026-03-10", "abc", mock.Anything).Return(nil)
		f.streak.On("GetStreak", mock.Anything, "c").Return(nil, repository.ErrNotFound)
		f.streak.On("UpsertStreak", mock.Anything, mock.Anything).Return(nil)
		f.ledger.On("AdjustBalance", mock.Anything, "c", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		result, err := f.svc.SubmitCompletion(context.Background(), now, "c", "Cee", "01:40", 30)
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Rank)
	})

	t.Run("Repeat submission reports the held rank and changes nothing", func(t *testing.T) {
		f := newDailyFixture(t)
		board := today(
			model.LeaderboardEntry{UserID: "a", Seconds: 100, Seq: 1},
			model.LeaderboardEntry{UserID: "u1", Seconds: 140, Seq: 2},
		)
		f.repo.On("GetDayChallenge", mock.Anything, "2026-03-10").Return(board, nil)

		result, err := f.svc.SubmitCompletion(context.Background(), now, "u1", "Uno", "00:05", 1)
		assert.NoError(t, err)
		assert.True(t, result.AlreadyCompleted)
		assert.Equal(t, 2, result.Rank)
		assert.Nil(t, result.Streak)
		assert.Nil(t, result.Rewards)
		f.repo.AssertNotCalled(t, "AppendLeaderboardEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.ledger.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Malformed time is rejected before any state changes", func(t *testing.T) {
		f := newDailyFixture(t)

		result, err := f.svc.SubmitCompletion(context.Background(), now, "u1", "Uno", "junk", 25)
		assert.ErrorIs(t, err, ErrMalformedTime)
		assert.Nil(t, result)
		f.repo.AssertNotCalled(t, "GetDayChallenge", mock.Anything, mock.Anything)
	})
}

func TestDailyChallengeService_GetUserStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("Returns the entry with its rank", func(t *testing.T) {
		f := newDailyFixture(t)
		f.repo.On("GetDayChallenge", mock.Anything, "2026-03-10").Return(&model.DayChallenge{
			Date: "2026-03-10",
			Leaderboard: []model.LeaderboardEntry{
				{UserID: "a", Time: "01:00", Seconds: 60},
				{UserID: "b", Time: "02:00", Seconds: 120, Lines: 40, Efficiency: 75},
			},
		}, nil)

		stats, err := f.svc.GetUserStats(context.Background(), now, "b")
		assert.NoError(t, err)
		assert.Equal(t, 2, stats.Rank)
		assert.Equal(t, "02:00", stats.Time)
		assert.Equal(t, 75, stats.Efficiency)
	})

	t.Run("No submission today", func(t *testing.T) {
		f := newDailyFixture(t)
		f.repo.On("GetDayChallenge", mock.Anything, "2026-03-10").Return(&model.DayChallenge{
			Date: "2026-03-10",
		}, nil)

		_, err := f.svc.GetUserStats(context.Background(), now, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("No challenge today", func(t *testing.T) {
		f := newDailyFixture(t)
		f.repo.On("GetDayChallenge", mock.Anything, "2026-03-10").
			Return(nil, repository.ErrNotFound)

		_, err := f.svc.GetUserStats(context.Background(), now, "a")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

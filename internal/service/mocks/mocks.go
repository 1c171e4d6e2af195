package mocks

import (
	"context"
	"time"

	"github.com/chimwopara/logic/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockDailyChallengeRepository is a mock implementation of DailyChallengeRepository
type MockDailyChallengeRepository struct {
	mock.Mock
}

func (m *MockDailyChallengeRepository) GetDayChallenge(ctx context.Context, date string) (*model.DayChallenge, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DayChallenge), args.Error(1)
}

func (m *MockDailyChallengeRepository) CreateDayChallenge(ctx context.Context, dc *model.DayChallenge) error {
	args := m.Called(ctx, dc)
	return args.Error(0)
}

func (m *MockDailyChallengeRepository) AppendLeaderboardEntry(ctx context.Context, date, challengeSerial string, entry *model.LeaderboardEntry) error {
	args := m.Called(ctx, date, challengeSerial, entry)
	return args.Error(0)
}

func (m *MockDailyChallengeRepository) GetLeaderboard(ctx context.Context, date string, limit int) ([]model.LeaderboardEntry, error) {
	args := m.Called(ctx, date, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaderboardEntry), args.Error(1)
}

// MockChallengePoolRepository is a mock implementation of ChallengePoolRepository
type MockChallengePoolRepository struct {
	mock.Mock
}

func (m *MockChallengePoolRepository) ListSharedChallenges(ctx context.Context) ([]*model.Challenge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockChallengePoolRepository) GetSharedChallenge(ctx context.Context, serial string) (*model.Challenge, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengePoolRepository) SaveSharedChallenge(ctx context.Context, c *model.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockStreakRepository is a mock implementation of StreakRepository
type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) GetStreak(ctx context.Context, userID string) (*model.StreakRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StreakRecord), args.Error(1)
}

func (m *MockStreakRepository) UpsertStreak(ctx context.Context, rec *model.StreakRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetWallet(ctx context.Context, userID string) (*model.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wallet), args.Error(1)
}

func (m *MockLedgerRepository) AdjustBalance(ctx context.Context, userID string, amount int, reason model.TransactionReason, metadata map[string]string) error {
	args := m.Called(ctx, userID, amount, reason, metadata)
	return args.Error(0)
}

func (m *MockLedgerRepository) GrantMonthlyAllocation(ctx context.Context, userID, monthKey string) (int, error) {
	args := m.Called(ctx, userID, monthKey)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) ListLineTransactions(ctx context.Context, userID string, limit int) ([]*model.LineTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LineTransaction), args.Error(1)
}

// MockFriendRepository is a mock implementation of FriendRepository
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) AddFriend(ctx context.Context, ownerID string, friend *model.Friend) (bool, error) {
	args := m.Called(ctx, ownerID, friend)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) RemoveFriend(ctx context.Context, ownerID, friendID string) error {
	args := m.Called(ctx, ownerID, friendID)
	return args.Error(0)
}

func (m *MockFriendRepository) ListFriends(ctx context.Context, ownerID string) ([]*model.Friend, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Friend), args.Error(1)
}

func (m *MockFriendRepository) CreateFriendChallenge(ctx context.Context, fc *model.FriendChallenge) error {
	args := m.Called(ctx, fc)
	return args.Error(0)
}

func (m *MockFriendRepository) GetFriendChallenge(ctx context.Context, id string) (*model.FriendChallenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FriendChallenge), args.Error(1)
}

func (m *MockFriendRepository) SetFriendChallengeStatus(ctx context.Context, id string, status model.FriendChallengeStatus, acceptedAt *time.Time) error {
	args := m.Called(ctx, id, status, acceptedAt)
	return args.Error(0)
}

func (m *MockFriendRepository) RecordFriendCompletion(ctx context.Context, id, challengeSerial string, comp *model.ChallengeCompletion) error {
	args := m.Called(ctx, id, challengeSerial, comp)
	return args.Error(0)
}

func (m *MockFriendRepository) ResolveFriendChallenge(ctx context.Context, fc *model.FriendChallenge, winner, loser string) error {
	args := m.Called(ctx, fc, winner, loser)
	return args.Error(0)
}

func (m *MockFriendRepository) ListPendingFriendChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FriendChallenge), args.Error(1)
}

func (m *MockFriendRepository) ListActiveFriendChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FriendChallenge), args.Error(1)
}

func (m *MockFriendRepository) ListChallengeCompletions(ctx context.Context, challengeSerial string, userIDs []string) ([]*model.ChallengeCompletion, error) {
	args := m.Called(ctx, challengeSerial, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ChallengeCompletion), args.Error(1)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/chimwopara/logic/internal/model"
)

var (
	ErrMalformedTime     = errors.New("completion time must be mm:ss")
	ErrNotFound          = errors.New("not found")
	ErrChallengeResolved = errors.New("friend challenge already resolved")
	ErrAlreadyCompleted  = errors.New("completion already recorded for this user")
	ErrNotParticipant    = errors.New("user is not a party to this challenge")
)

type Service struct {
	*DailyChallengeService
	*FriendLeagueService
	*LedgerService
	*PoolService
}

func NewService(daily *DailyChallengeService, friends *FriendLeagueService, ledger *LedgerService, pool *PoolService) *Service {
	return &Service{
		DailyChallengeService: daily,
		FriendLeagueService:   friends,
		LedgerService:         ledger,
		PoolService:           pool,
	}
}

type DailyChallengeServiceI interface {
	GetOrCreateTodaysChallenge(ctx context.Context, now time.Time) (*model.DayChallenge, error)
	SubmitCompletion(ctx context.Context, now time.Time, userID, username, completionTime string, linesUsed int) (*model.SubmissionResult, error)
	GetLeaderboard(ctx context.Context, now time.Time, limit int) ([]model.LeaderboardEntry, error)
	GetUserStats(ctx context.Context, now time.Time, userID string) (*model.UserStats, error)
	GetTimeRemaining(now time.Time) time.Duration
}

type FriendLeagueServiceI interface {
	AddFriend(ctx context.Context, ownerID, friendID, friendName string) (bool, error)
	RemoveFriend(ctx context.Context, ownerID, friendID string) error
	GetFriends(ctx context.Context, ownerID string) ([]*model.Friend, error)
	ChallengeFriend(ctx context.Context, fromID, toID, challengeSerial string, wagerLines int) (*model.FriendChallenge, error)
	AcceptChallenge(ctx context.Context, id string) (*model.FriendChallenge, error)
	DeclineChallenge(ctx context.Context, id string) (*model.FriendChallenge, error)
	CompleteChallenge(ctx context.Context, id, userID, completionTime string, linesUsed int) (*model.FriendChallenge, error)
	GetFriendsLeaderboard(ctx context.Context, ownerID, challengeSerial string) ([]*model.ChallengeCompletion, error)
	GetPendingChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error)
	GetActiveChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error)
}

type LedgerServiceI interface {
	GetWallet(ctx context.Context, userID string, now time.Time) (*model.Wallet, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]*model.LineTransaction, error)
}

type PoolServiceI interface {
	Publish(ctx context.Context, c *model.Challenge) (*model.Challenge, error)
	List(ctx context.Context) ([]*model.Challenge, error)
	Get(ctx context.Context, serial string) (*model.Challenge, error)
}

type DailyChallengeRepository interface {
	GetDayChallenge(ctx context.Context, date string) (*model.DayChallenge, error)
	CreateDayChallenge(ctx context.Context, dc *model.DayChallenge) error
	AppendLeaderboardEntry(ctx context.Context, date, challengeSerial string, entry *model.LeaderboardEntry) error
	GetLeaderboard(ctx context.Context, date string, limit int) ([]model.LeaderboardEntry, error)
}

type ChallengePoolRepository interface {
	ListSharedChallenges(ctx context.Context) ([]*model.Challenge, error)
	GetSharedChallenge(ctx context.Context, serial string) (*model.Challenge, error)
	SaveSharedChallenge(ctx context.Context, c *model.Challenge) error
}

type StreakRepository interface {
	GetStreak(ctx context.Context, userID string) (*model.StreakRecord, error)
	UpsertStreak(ctx context.Context, rec *model.StreakRecord) error
}

type LedgerRepository interface {
	GetWallet(ctx context.Context, userID string) (*model.Wallet, error)
	AdjustBalance(ctx context.Context, userID string, amount int, reason model.TransactionReason, metadata map[string]string) error
	GrantMonthlyAllocation(ctx context.Context, userID, monthKey string) (int, error)
	ListLineTransactions(ctx context.Context, userID string, limit int) ([]*model.LineTransaction, error)
}

type FriendRepository interface {
	AddFriend(ctx context.Context, ownerID string, friend *model.Friend) (bool, error)
	RemoveFriend(ctx context.Context, ownerID, friendID string) error
	ListFriends(ctx context.Context, ownerID string) ([]*model.Friend, error)
	CreateFriendChallenge(ctx context.Context, fc *model.FriendChallenge) error
	GetFriendChallenge(ctx context.Context, id string) (*model.FriendChallenge, error)
	SetFriendChallengeStatus(ctx context.Context, id string, status model.FriendChallengeStatus, acceptedAt *time.Time) error
	RecordFriendCompletion(ctx context.Context, id, challengeSerial string, comp *model.ChallengeCompletion) error
	ResolveFriendChallenge(ctx context.Context, fc *model.FriendChallenge, winner, loser string) error
	ListPendingFriendChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error)
	ListActiveFriendChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error)
	ListChallengeCompletions(ctx context.Context, challengeSerial string, userIDs []string) ([]*model.ChallengeCompletion, error)
}

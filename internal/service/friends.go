package service

import (
	"context"
	"errors"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/repository"

	"github.com/google/uuid"
)

// DefaultWagerLines is staked when a challenger does not name an amount.
const DefaultWagerLines = 100

type FriendLeagueService struct {
	repo       FriendRepository
	challenges *keyMutex
}

func NewFriendLeagueService(repo FriendRepository) *FriendLeagueService {
	return &FriendLeagueService{
		repo:       repo,
		challenges: newKeyMutex(),
	}
}

// AddFriend returns true when the friend was inserted, false when the
// relationship already existed.
func (s *FriendLeagueService) AddFriend(ctx context.Context, ownerID, friendID, friendName string) (bool, error) {
	return s.repo.AddFriend(ctx, ownerID, &model.Friend{
		UserID:   friendID,
		Username: friendName,
		AddedAt:  time.Now().UTC(),
	})
}

// RemoveFriend is idempotent; removing an absent friend is not an error.
func (s *FriendLeagueService) RemoveFriend(ctx context.Context, ownerID, friendID string) error {
	return s.repo.RemoveFriend(ctx, ownerID, friendID)
}

func (s *FriendLeagueService) GetFriends(ctx context.Context, ownerID string) ([]*model.Friend, error) {
	return s.repo.ListFriends(ctx, ownerID)
}

// ChallengeFriend opens a pending wagered challenge against the named user.
func (s *FriendLeagueService) ChallengeFriend(ctx context.Context, fromID, toID, challengeSerial string, wagerLines int) (*model.FriendChallenge, error) {
	if wagerLines <= 0 {
		wagerLines = DefaultWagerLines
	}

	fc := &model.FriendChallenge{
		ID:              uuid.NewString(),
		FromUserID:      fromID,
		ToUserID:        toID,
		ChallengeSerial: challengeSerial,
		WagerLines:      wagerLines,
		Status:          model.FriendChallengePending,
		SentAt:          time.Now().UTC(),
	}

	if err := s.repo.CreateFriendChallenge(ctx, fc); err != nil {
		return nil, err
	}

	return fc, nil
}

// AcceptChallenge moves a pending challenge to accepted. Accepting a
// challenge in any other state returns the record unchanged.
func (s *FriendLeagueService) AcceptChallenge(ctx context.Context, id string) (*model.FriendChallenge, error) {
	unlock := s.challenges.Lock(id)
	defer unlock()

	fc, err := s.getChallenge(ctx, id)
	if err != nil {
		return nil, err
	}

	if fc.Status != model.FriendChallengePending {
		return fc, nil
	}

	acceptedAt := time.Now().UTC()
	if err := s.repo.SetFriendChallengeStatus(ctx, id, model.FriendChallengeAccepted, &acceptedAt); err != nil {
		return nil, err
	}

	fc.Status = model.FriendChallengeAccepted
	fc.AcceptedAt = &acceptedAt
	return fc, nil
}

// DeclineChallenge moves a pending challenge to declined, mirroring
// AcceptChallenge for the other terminal answer.
func (s *FriendLeagueService) DeclineChallenge(ctx context.Context, id string) (*model.FriendChallenge, error) {
	unlock := s.challenges.Lock(id)
	defer unlock()

	fc, err := s.getChallenge(ctx, id)
	if err != nil {
		return nil, err
	}

	if fc.Status != model.FriendChallengePending {
		return fc, nil
	}

	if err := s.repo.SetFriendChallengeStatus(ctx, id, model.FriendChallengeDeclined, nil); err != nil {
		return nil, err
	}

	fc.Status = model.FriendChallengeDeclined
	return fc, nil
}

// CompleteChallenge records one party's run. The second completion resolves
// the challenge: the faster run wins (equal times go to whoever finished
// first) and the wager moves from loser to winner exactly once.
func (s *FriendLeagueService) CompleteChallenge(ctx context.Context, id, userID, completionTime string, linesUsed int) (*model.FriendChallenge, error) {
	seconds, err := ParseClockTime(completionTime)
	if err != nil {
		return nil, err
	}

	unlock := s.challenges.Lock(id)
	defer unlock()

	fc, err := s.getChallenge(ctx, id)
	if err != nil {
		return nil, err
	}

	if fc.Resolved() {
		return nil, ErrChallengeResolved
	}
	if !fc.IsParticipant(userID) {
		return nil, ErrNotParticipant
	}
	if fc.HasCompleted(userID) {
		return nil, ErrAlreadyCompleted
	}

	comp := model.ChallengeCompletion{
		UserID:      userID,
		Time:        completionTime,
		Seconds:     seconds,
		Lines:       linesUsed,
		CompletedAt: time.Now().UTC(),
	}

	if err := s.repo.RecordFriendCompletion(ctx, id, fc.ChallengeSerial, &comp); err != nil {
		return nil, err
	}
	fc.Completions = append(fc.Completions, comp)

	if len(fc.Completions) < 2 {
		return fc, nil
	}

	first, second := fc.Completions[0], fc.Completions[1]
	winner, loser := first.UserID, second.UserID
	if second.Seconds < first.Seconds {
		winner, loser = second.UserID, first.UserID
	}

	if err := s.repo.ResolveFriendChallenge(ctx, fc, winner, loser); err != nil {
		return nil, err
	}

	fc.Status = model.FriendChallengeCompleted
	fc.Winner = &winner
	fc.Loser = &loser
	return fc, nil
}

// GetFriendsLeaderboard returns every recorded run of the challenge by the
// owner and the owner's friends, fastest first.
func (s *FriendLeagueService) GetFriendsLeaderboard(ctx context.Context, ownerID, challengeSerial string) ([]*model.ChallengeCompletion, error) {
	friends, err := s.repo.ListFriends(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(friends)+1)
	for _, f := range friends {
		ids = append(ids, f.UserID)
	}
	ids = append(ids, ownerID)

	return s.repo.ListChallengeCompletions(ctx, challengeSerial, ids)
}

func (s *FriendLeagueService) GetPendingChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error) {
	return s.repo.ListPendingFriendChallenges(ctx, userID)
}

func (s *FriendLeagueService) GetActiveChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error) {
	return s.repo.ListActiveFriendChallenges(ctx, userID)
}

func (s *FriendLeagueService) getChallenge(ctx context.Context, id string) (*model.FriendChallenge, error) {
	fc, err := s.repo.GetFriendChallenge(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fc, nil
}

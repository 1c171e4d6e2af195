package service

import (
	"context"
	"testing"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/repository"
	"github.com/chimwopara/logic/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFriendLeagueService_AddFriend(t *testing.T) {
	mockRepo := &mocks.MockFriendRepository{}
	mockRepo.On("AddFriend", mock.Anything, "owner", mock.MatchedBy(func(f *model.Friend) bool {
		return f.UserID == "pal" && f.Username == "Pal"
	})).Return(true, nil).Once()
	mockRepo.On("AddFriend", mock.Anything, "owner", mock.Anything).
		Return(false, nil).Once()

	svc := NewFriendLeagueService(mockRepo)

	added, err := svc.AddFriend(context.Background(), "owner", "pal", "Pal")
	assert.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddFriend(context.Background(), "owner", "pal", "Pal")
	assert.NoError(t, err)
	assert.False(t, added)

	mockRepo.AssertExpectations(t)
}

func TestFriendLeagueService_ChallengeFriend(t *testing.T) {
	tests := []struct {
		name          string
		wager         int
		expectedWager int
	}{
		{
			name:          "Explicit wager",
			wager:         250,
			expectedWager: 250,
		},
		{
			name:          "Zero wager falls back to the default",
			wager:         0,
			expectedWager: DefaultWagerLines,
		},
		{
			name:          "Negative wager falls back to the default",
			wager:         -5,
			expectedWager: DefaultWagerLines,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockFriendRepository{}
			mockRepo.On("CreateFriendChallenge", mock.Anything, mock.Anything).Return(nil)

			svc := NewFriendLeagueService(mockRepo)
			fc, err := svc.ChallengeFriend(context.Background(), "a", "b", "serial-1", tt.wager)
			assert.NoError(t, err)
			assert.NotEmpty(t, fc.ID)
			assert.Equal(t, "a", fc.FromUserID)
			assert.Equal(t, "b", fc.ToUserID)
			assert.Equal(t, tt.expectedWager, fc.WagerLines)
			assert.Equal(t, model.FriendChallengePending, fc.Status)
		})
	}
}

func TestFriendLeagueService_AcceptDecline(t *testing.T) {
	pending := func() *model.FriendChallenge {
		return &model.FriendChallenge{
			ID:         "fc1",
			FromUserID: "a",
			ToUserID:   "b",
			Status:     model.FriendChallengePending,
		}
	}

	t.Run("Accept moves pending to accepted", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		mockRepo.On("GetFriendChallenge", mock.Anything, "fc1").Return(pending(), nil)
		mockRepo.On("SetFriendChallengeStatus", mock.Anything, "fc1",
			model.FriendChallengeAccepted, mock.Anything).Return(nil)

		svc := NewFriendLeagueService(mockRepo)
		fc, err := svc.AcceptChallenge(context.Background(), "fc1")
		assert.NoError(t, err)
		assert.Equal(t, model.FriendChallengeAccepted, fc.Status)
		assert.NotNil(t, fc.AcceptedAt)
	})

	t.Run("Decline moves pending to declined", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		mockRepo.On("GetFriendChallenge", mock.Anything, "fc1").Return(pending(), nil)
		mockRepo.On("SetFriendChallengeStatus", mock.Anything, "fc1",
			model.FriendChallengeDeclined, (*time.Time)(nil)).Return(nil)

		svc := NewFriendLeagueService(mockRepo)
		fc, err := svc.DeclineChallenge(context.Background(), "fc1")
		assert.NoError(t, err)
		assert.Equal(t, model.FriendChallengeDeclined, fc.Status)
		assert.Nil(t, fc.AcceptedAt)
	})

	t.Run("Accepting a non-pending challenge changes nothing", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		accepted := pending()
		accepted.Status = model.FriendChallengeAccepted
		mockRepo.On("GetFriendChallenge", mock.Anything, "fc1").Return(accepted, nil)

		svc := NewFriendLeagueService(mockRepo)
		fc, err := svc.AcceptChallenge(context.Background(), "fc1")
		assert.NoError(t, err)
		assert.Equal(t, model.FriendChallengeAccepted, fc.Status)
		mockRepo.AssertNotCalled(t, "SetFriendChallengeStatus",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown challenge", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		mockRepo.On("GetFriendChallenge", mock.Anything, "nope").
			Return(nil, repository.ErrNotFound)

		svc := NewFriendLeagueService(mockRepo)
		_, err := svc.AcceptChallenge(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFriendLeagueService_CompleteChallenge(t *testing.T) {
	accepted := func(completions ...model.ChallengeCompletion) *model.FriendChallenge {
		return &model.FriendChallenge{
			ID:              "fc1",
			FromUserID:      "a",
			ToUserID:        "b",
			ChallengeSerial: "serial-1",
			WagerLines:      100,
			Status:          model.FriendChallengeAccepted,
			Completions:     completions,
		}
	}

	t.Run("First completion leaves the challenge open", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		mockRepo.On("GetFriendChallenge", mock.Anything, "fc1").Return(accepted(), nil)
		mockRepo.On("RecordFriendCompletion", mock.Anything, "fc1", "serial-1",
			mock.MatchedBy(func(c *model.ChallengeCompletion) bool {
				return c.UserID == "a" && c.Seconds == 90
			})).Return(nil)

		svc := NewFriendLeagueService(mockRepo)
		fc, err := svc.CompleteChallenge(context.Background(), "fc1", "a", "01:30", 30)
		assert.NoError(t, err)
		assert.Equal(t, model.FriendChallengeAccepted, fc.Status)
		assert.Len(t, fc.Completions, 1)
		mockRepo.AssertNotCalled(t, "ResolveFriendChallenge",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Second completion resolves to the faster run", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		existing := model.ChallengeCompletion{UserID: "a", Time: "01:30", Seconds: 90}
		mockRepo.On("GetFriendChallenge", mock.Anything, "fc1").Return(accepted(existing), nil)
		mockRepo.On("RecordFriendCompletion", mock.Anything, "fc1", "serial-1", mock.Anything).Return(nil)
		mockRepo.On("ResolveFriendChallenge", mock.Anything, mock.Anything, "b", "a").Return(nil)

		svc := NewFriendLeagueService(mockRepo)
		fc, err := svc.CompleteChallenge(context.Background(), "fc1", "b", "01:20", 28)
		assert.NoError(t, err)
		assert.Equal(t, model.FriendChallengeCompleted, fc.Status)
		assert.Equal(t, "b", *fc.Winner)
		assert.Equal(t, "a", *fc.Loser)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Equal times go to whoever finished first", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		existing := model.ChallengeCompletion{UserID: "a", Time: "01:30", Seconds: 90}
		mockRepo.On("GetFriendChallenge", mock.Anything, "fc1").Return(accepted(existing), nil)
		mockRepo.On("RecordFriendCompletion", mock.Anything, "fc1", "serial-1", mock.Anything).Return(nil)
		mockRepo.On("ResolveFriendChallenge", mock.Anything, mock.Anything, "a", "b").Return(nil)

		svc := NewFriendLeagueService(mockRepo)
		fc, err := svc.CompleteChallenge(context.Background(), "fc1", "b", "01:30", 28)
		assert.NoError(t, err)
		assert.Equal(t, "a", *fc.Winner)
		assert.Equal(t, "b", *fc.Loser)
	})

	t.Run("Completion on a resolved challenge is rejected", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		done := accepted()
		done.Status = model.FriendChallengeCompleted
		mockRepo.On("GetFriendChallenge", mock.Anything, "fc1").Return(done, nil)

		svc := NewFriendLeagueService(mockRepo)
		_, err := svc.CompleteChallenge(context.Background(), "fc1", "a", "01:30", 30)
		assert.ErrorIs(t, err, ErrChallengeResolved)
	})

	t.Run("Outsider cannot complete", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		mockRepo.On("GetFriendChallenge", mock.Anything, "fc1").Return(accepted(), nil)

		svc := NewFriendLeagueService(mockRepo)
		_, err := svc.CompleteChallenge(context.Background(), "fc1", "stranger", "01:30", 30)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("Double completion by the same user is rejected", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}
		existing := model.ChallengeCompletion{UserID: "a", Time: "01:30", Seconds: 90}
		mockRepo.On("GetFriendChallenge", mock.Anything, "fc1").Return(accepted(existing), nil)

		svc := NewFriendLeagueService(mockRepo)
		_, err := svc.CompleteChallenge(context.Background(), "fc1", "a", "01:10", 30)
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
	})

	t.Run("Malformed time is rejected before any lookup", func(t *testing.T) {
		mockRepo := &mocks.MockFriendRepository{}

		svc := NewFriendLeagueService(mockRepo)
		_, err := svc.CompleteChallenge(context.Background(), "fc1", "a", "ninety", 30)
		assert.ErrorIs(t, err, ErrMalformedTime)
		mockRepo.AssertNotCalled(t, "GetFriendChallenge", mock.Anything, mock.Anything)
	})
}

func TestFriendLeagueService_GetFriendsLeaderboard(t *testing.T) {
	mockRepo := &mocks.MockFriendRepository{}
	mockRepo.On("ListFriends", mock.Anything, "owner").Return([]*model.Friend{
		{UserID: "f1"},
		{UserID: "f2"},
	}, nil)

	completions := []*model.ChallengeCompletion{
		{UserID: "f2", Seconds: 80},
		{UserID: "owner", Seconds: 95},
	}
	mockRepo.On("ListChallengeCompletions", mock.Anything, "serial-1",
		[]string{"f1", "f2", "owner"}).Return(completions, nil)

	svc := NewFriendLeagueService(mockRepo)
	board, err := svc.GetFriendsLeaderboard(context.Background(), "owner", "serial-1")
	assert.NoError(t, err)
	assert.Equal(t, completions, board)
	mockRepo.AssertExpectations(t)
}

package model

import "time"

// Friend is one entry in a user's friend list.
type Friend struct {
	UserID   string
	Username string
	AddedAt  time.Time
}

// FriendChallengeStatus is the state of a wagered head-to-head challenge.
type FriendChallengeStatus string

const (
	FriendChallengePending   FriendChallengeStatus = "pending"
	FriendChallengeAccepted  FriendChallengeStatus = "accepted"
	FriendChallengeDeclined  FriendChallengeStatus = "declined"
	FriendChallengeCompleted FriendChallengeStatus = "completed"
)

// FriendChallenge is a two-party wagered race on one challenge. The
// challenged user accepts or declines; either party submits a completion;
// the second completion resolves the wager. Declined and completed are
// terminal. Winner and Loser are set exactly when status is completed.
type FriendChallenge struct {
	ID              string
	FromUserID      string
	ToUserID        string
	ChallengeSerial string
	WagerLines      int
	Status          FriendChallengeStatus
	SentAt          time.Time
	AcceptedAt      *time.Time
	Completions     []ChallengeCompletion
	Winner          *string
	Loser           *string
}

// IsParticipant reports whether the user is one of the two parties.
func (fc *FriendChallenge) IsParticipant(userID string) bool {
	return fc.FromUserID == userID || fc.ToUserID == userID
}

// HasCompleted reports whether the user already recorded a completion.
func (fc *FriendChallenge) HasCompleted(userID string) bool {
	for _, c := range fc.Completions {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// Resolved reports whether the challenge reached a terminal state.
func (fc *FriendChallenge) Resolved() bool {
	return fc.Status == FriendChallengeDeclined || fc.Status == FriendChallengeCompleted
}

// ChallengeCompletion is one recorded run of a challenge, used both for
// friend-challenge resolution and for the friends leaderboard.
type ChallengeCompletion struct {
	UserID      string
	Time        string
	Seconds     int
	Lines       int
	CompletedAt time.Time
}

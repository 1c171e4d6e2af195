package model

import "time"

// DayChallenge is the single shared challenge for one calendar day, together
// with everyone who has submitted against it. Created once per day key,
// appended to by submissions, never deleted.
type DayChallenge struct {
	Date            string
	ChallengeSerial string
	Challenge       *Challenge
	Participants    []string
	Leaderboard     []LeaderboardEntry
	StartTime       time.Time
	EndTime         time.Time
}

// HasParticipant reports whether the user already submitted today.
func (d *DayChallenge) HasParticipant(userID string) bool {
	for _, p := range d.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Rank returns the 1-based leaderboard position of the user, or 0 if the
// user has no entry.
func (d *DayChallenge) Rank(userID string) int {
	for i, e := range d.Leaderboard {
		if e.UserID == userID {
			return i + 1
		}
	}
	return 0
}

// LeaderboardEntry is one submission on a day's board. Immutable once
// created. Boards order by Seconds ascending; Seq (the submission sequence
// number within the day) breaks ties so the first submitter ranks higher.
type LeaderboardEntry struct {
	UserID      string
	Username    string
	Time        string
	Seconds     int
	Lines       int
	Efficiency  int
	Seq         int
	SubmittedAt time.Time
}

// UserStats is a user's view of their own entry on a day's board.
type UserStats struct {
	Rank       int
	Time       string
	Lines      int
	Efficiency int
	Timestamp  time.Time
}

// SubmissionResult is what a daily completion submission returns to the
// caller. AlreadyCompleted means the submission was a duplicate and nothing
// changed; Streak and Rewards are only set on a first submission.
type SubmissionResult struct {
	Rank             int
	AlreadyCompleted bool
	Streak           *StreakRecord
	Rewards          *RewardBreakdown
}

package model

import "time"

// MembershipTier controls the monthly line allocation.
type MembershipTier string

const (
	TierFree      MembershipTier = "free"
	TierBoost     MembershipTier = "boost"
	TierCommunity MembershipTier = "community"
	TierSuper     MembershipTier = "super"
)

// MonthlyAllocation returns the lines granted at the start of each month.
// Unused lines roll over.
func (t MembershipTier) MonthlyAllocation() int {
	switch t {
	case TierBoost:
		return 5000
	case TierCommunity:
		return 25000
	case TierSuper:
		return 50000
	default:
		return 1000
	}
}

// Wallet holds a user's line balance. LastGrantMonth is the "2006-01" key of
// the most recent monthly allocation.
type Wallet struct {
	UserID         string
	Balance        int
	Tier           MembershipTier
	LastGrantMonth string
	CreatedAt      time.Time
}

// TransactionReason tags a line transaction with what produced it.
type TransactionReason string

const (
	ReasonDailyChallengeReward TransactionReason = "daily_challenge_reward"
	ReasonFriendChallengeWin   TransactionReason = "friend_challenge_win"
	ReasonFriendChallengeLoss  TransactionReason = "friend_challenge_loss"
	ReasonMonthlyAllocation    TransactionReason = "monthly_allocation"
)

// LineTransaction is one entry in a user's line history. Amount is signed:
// credits positive, debits negative.
type LineTransaction struct {
	ID        string
	UserID    string
	Reason    TransactionReason
	Amount    int
	Metadata  map[string]string
	CreatedAt time.Time
}

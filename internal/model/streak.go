package model

// StreakRecord tracks a user's consecutive-day participation. LastDate is
// the day identifier last credited; BestStreak never decreases.
type StreakRecord struct {
	UserID     string
	Count      int
	LastDate   string
	BestStreak int
}

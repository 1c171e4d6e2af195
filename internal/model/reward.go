package model

// RewardBreakdown itemizes the lines awarded for one daily completion.
// Computed, not persisted; the ledger records the credited total.
type RewardBreakdown struct {
	RankBonus          int
	StreakBonus        int
	ParticipationBonus int
	TotalLines         int
}

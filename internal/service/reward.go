package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/chimwopara/logic/internal/model"
)

// ParticipationBonus is granted on every first submission of the day.
const ParticipationBonus = 10

// streakMilestones pays a one-time spike when the streak lands exactly on a
// milestone; in-between counts earn nothing extra.
var streakMilestones = map[int]int{
	3:   50,
	7:   150,
	14:  300,
	30:  1000,
	50:  2000,
	100: 5000,
}

// CalculateRewards converts a leaderboard rank and a streak count into a
// line reward. Pure; applying the credit is the ledger's job.
func CalculateRewards(rank, streakCount int) *model.RewardBreakdown {
	rankBonus := 0
	switch {
	case rank == 1:
		rankBonus = 500
	case rank == 2 || rank == 3:
		rankBonus = 200
	case rank >= 4 && rank <= 10:
		rankBonus = 100
	}

	streakBonus := streakMilestones[streakCount]

	return &model.RewardBreakdown{
		RankBonus:          rankBonus,
		StreakBonus:        streakBonus,
		ParticipationBonus: ParticipationBonus,
		TotalLines:         rankBonus + streakBonus + ParticipationBonus,
	}
}

// Efficiency scores line usage against the challenge's step count: 2 lines
// per step (hint + correct answer) is the best case, 6 per step (every
// option viewed) the worst. Clamped to [0, 100].
func Efficiency(linesUsed, steps int) int {
	bestCase := steps * 2
	worstCase := steps * 6

	if linesUsed <= bestCase {
		return 100
	}
	if linesUsed >= worstCase {
		return 0
	}

	score := int(math.Round(100 - float64(linesUsed-bestCase)/float64(worstCase-bestCase)*100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ParseClockTime parses an "mm:ss" completion time into seconds. Minutes
// are unbounded; both parts must be non-negative integers.
func ParseClockTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, ErrMalformedTime
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0, ErrMalformedTime
	}

	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 {
		return 0, ErrMalformedTime
	}

	return minutes*60 + seconds, nil
}

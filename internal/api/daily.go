package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/service"
	"github.com/chimwopara/logic/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type dailyRoutes struct {
	ds  service.DailyChallengeServiceI
	hub *FeedHub
}

func NewDailyRoutes(handler *gin.RouterGroup, ds service.DailyChallengeServiceI, hub *FeedHub) {
	r := &dailyRoutes{ds: ds, hub: hub}
	h := handler.Group("/daily")
	{
		h.GET("/challenge", r.GetTodaysChallenge)
		h.POST("/submissions", r.SubmitCompletion)
		h.GET("/leaderboard", r.GetLeaderboard)
		h.GET("/stats/:user_id", r.GetUserStats)
		h.GET("/time-remaining", r.GetTimeRemaining)
	}
}

type DayChallengeResponse struct {
	Date            string    `json:"date"`
	ChallengeSerial string    `json:"challenge_serial"`
	Title           string    `json:"title"`
	Question        string    `json:"question"`
	Language        string    `json:"language"`
	Difficulty      string    `json:"difficulty"`
	Steps           int       `json:"steps"`
	Participants    int       `json:"participants"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
}

func (r *dailyRoutes) GetTodaysChallenge(c *gin.Context) {
	log := logger.Logger()

	dc, err := r.ds.GetOrCreateTodaysChallenge(c.Request.Context(), time.Now())
	if err != nil {
		log.Error("failed to get today's challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get today's challenge"})
		return
	}

	c.JSON(http.StatusOK, DayChallengeResponse{
		Date:            dc.Date,
		ChallengeSerial: dc.ChallengeSerial,
		Title:           dc.Challenge.Title,
		Question:        dc.Challenge.Question,
		Language:        dc.Challenge.Language,
		Difficulty:      dc.Challenge.Difficulty,
		Steps:           dc.Challenge.Steps,
		Participants:    len(dc.Participants),
		StartTime:       dc.StartTime,
		EndTime:         dc.EndTime,
	})
}

type SubmitCompletionRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Lines    int    `json:"lines"`
}

type StreakResponse struct {
	Count      int    `json:"count"`
	LastDate   string `json:"last_date"`
	BestStreak int    `json:"best_streak"`
}

type RewardsResponse struct {
	RankBonus          int `json:"rank_bonus"`
	StreakBonus        int `json:"streak_bonus"`
	ParticipationBonus int `json:"participation_bonus"`
	TotalLines         int `json:"total_lines"`
}

type SubmissionResponse struct {
	Rank             int              `json:"rank"`
	AlreadyCompleted bool             `json:"already_completed"`
	Streak           *StreakResponse  `json:"streak,omitempty"`
	Rewards          *RewardsResponse `json:"rewards,omitempty"`
}

func (r *dailyRoutes) SubmitCompletion(c *gin.Context) {
	log := logger.Logger()

	var req SubmitCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind submission request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	now := time.Now()
	result, err := r.ds.SubmitCompletion(c.Request.Context(), now, req.UserID, req.Username, req.Time, req.Lines)
	if err != nil {
		log.Error("failed to submit daily completion", zap.Error(err))
		if errors.Is(err, service.ErrMalformedTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "completion time must be mm:ss"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit completion"})
		return
	}

	response := SubmissionResponse{
		Rank:             result.Rank,
		AlreadyCompleted: result.AlreadyCompleted,
	}
	if result.Streak != nil {
		response.Streak = &StreakResponse{
			Count:      result.Streak.Count,
			LastDate:   result.Streak.LastDate,
			BestStreak: result.Streak.BestStreak,
		}
	}
	if result.Rewards != nil {
		response.Rewards = &RewardsResponse{
			RankBonus:          result.Rewards.RankBonus,
			StreakBonus:        result.Rewards.StreakBonus,
			ParticipationBonus: result.Rewards.ParticipationBonus,
			TotalLines:         result.Rewards.TotalLines,
		}
	}

	if !result.AlreadyCompleted {
		entries, err := r.ds.GetLeaderboard(c.Request.Context(), now, service.DefaultLeaderboardLimit)
		if err != nil {
			log.Error("failed to load leaderboard for feed", zap.Error(err))
		} else {
			r.hub.BroadcastLeaderboard(entries)
		}
	}

	c.JSON(http.StatusOK, response)
}

type LeaderboardEntryResponse struct {
	Rank       int       `json:"rank"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Time       string    `json:"time"`
	Lines      int       `json:"lines"`
	Efficiency int       `json:"efficiency"`
	Timestamp  time.Time `json:"timestamp"`
}

func toLeaderboardResponse(entries []model.LeaderboardEntry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntryResponse{
			Rank:       i + 1,
			UserID:     e.UserID,
			Username:   e.Username,
			Time:       e.Time,
			Lines:      e.Lines,
			Efficiency: e.Efficiency,
			Timestamp:  e.SubmittedAt,
		}
	}
	return out
}

func (r *dailyRoutes) GetLeaderboard(c *gin.Context) {
	log := logger.Logger()

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := r.ds.GetLeaderboard(c.Request.Context(), time.Now(), limit)
	if err != nil {
		log.Error("failed to get daily leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, toLeaderboardResponse(entries))
}

func (r *dailyRoutes) GetUserStats(c *gin.Context) {
	log := logger.Logger()

	userID := c.Param("user_id")
	stats, err := r.ds.GetUserStats(c.Request.Context(), time.Now(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no submission found for user today"})
			return
		}
		log.Error("failed to get user stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rank":       stats.Rank,
		"time":       stats.Time,
		"lines":      stats.Lines,
		"efficiency": stats.Efficiency,
		"timestamp":  stats.Timestamp,
	})
}

func (r *dailyRoutes) GetTimeRemaining(c *gin.Context) {
	remaining := r.ds.GetTimeRemaining(time.Now())
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60

	c.JSON(http.StatusOK, gin.H{
		"remaining":         fmt.Sprintf("%dh %dm", hours, minutes),
		"remaining_seconds": int(remaining.Seconds()),
	})
}

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/service"
	"github.com/chimwopara/logic/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type friendRoutes struct {
	fs service.FriendLeagueServiceI
}

func NewFriendRoutes(handler *gin.RouterGroup, fs service.FriendLeagueServiceI) {
	r := &friendRoutes{fs: fs}
	h := handler.Group("/friends")
	{
		h.GET("/:user_id", r.GetFriends)
		h.POST("/:user_id", r.AddFriend)
		h.DELETE("/:user_id/:friend_id", r.RemoveFriend)
		h.GET("/:user_id/leaderboard/:serial", r.GetFriendsLeaderboard)
	}

	ch := handler.Group("/challenges/friend")
	{
		ch.POST("/", r.ChallengeFriend)
		ch.POST("/:id/accept", r.AcceptChallenge)
		ch.POST("/:id/decline", r.DeclineChallenge)
		ch.POST("/:id/complete", r.CompleteChallenge)
		ch.GET("/pending/:user_id", r.GetPendingChallenges)
		ch.GET("/active/:user_id", r.GetActiveChallenges)
	}
}

type FriendResponse struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	AddedAt  time.Time `json:"added_at"`
}

func (r *friendRoutes) GetFriends(c *gin.Context) {
	log := logger.Logger()

	friends, err := r.fs.GetFriends(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		log.Error("failed to list friends", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list friends"})
		return
	}

	out := make([]FriendResponse, len(friends))
	for i, f := range friends {
		out[i] = FriendResponse{
			UserID:   f.UserID,
			Username: f.Username,
			AddedAt:  f.AddedAt,
		}
	}

	c.JSON(http.StatusOK, out)
}

type AddFriendRequest struct {
	FriendID   string `json:"friend_id" binding:"required"`
	FriendName string `json:"friend_name"`
}

func (r *friendRoutes) AddFriend(c *gin.Context) {
	log := logger.Logger()

	var req AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind add friend request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	added, err := r.fs.AddFriend(c.Request.Context(), c.Param("user_id"), req.FriendID, req.FriendName)
	if err != nil {
		log.Error("failed to add friend", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add friend"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (r *friendRoutes) RemoveFriend(c *gin.Context) {
	log := logger.Logger()

	err := r.fs.RemoveFriend(c.Request.Context(), c.Param("user_id"), c.Param("friend_id"))
	if err != nil {
		log.Error("failed to remove friend", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove friend"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

type FriendChallengeResponse struct {
	ID              string               `json:"id"`
	From            string               `json:"from"`
	To              string               `json:"to"`
	ChallengeSerial string               `json:"challenge_serial"`
	WagerLines      int                  `json:"wager_lines"`
	Status          string               `json:"status"`
	SentAt          time.Time            `json:"sent_at"`
	AcceptedAt      *time.Time           `json:"accepted_at,omitempty"`
	Completions     []CompletionResponse `json:"completions,omitempty"`
	Winner          *string              `json:"winner,omitempty"`
	Loser           *string              `json:"loser,omitempty"`
}

type CompletionResponse struct {
	UserID      string    `json:"user_id"`
	Time        string    `json:"time"`
	Lines       int       `json:"lines"`
	CompletedAt time.Time `json:"completed_at"`
}

func toFriendChallengeResponse(fc *model.FriendChallenge) FriendChallengeResponse {
	out := FriendChallengeResponse{
		ID:              fc.ID,
		From:            fc.FromUserID,
		To:              fc.ToUserID,
		ChallengeSerial: fc.ChallengeSerial,
		WagerLines:      fc.WagerLines,
		Status:          string(fc.Status),
		SentAt:          fc.SentAt,
		AcceptedAt:      fc.AcceptedAt,
		Winner:          fc.Winner,
		Loser:           fc.Loser,
	}
	for _, comp := range fc.Completions {
		out.Completions = append(out.Completions, CompletionResponse{
			UserID:      comp.UserID,
			Time:        comp.Time,
			Lines:       comp.Lines,
			CompletedAt: comp.CompletedAt,
		})
	}
	return out
}

type ChallengeFriendRequest struct {
	From            string `json:"from" binding:"required"`
	To              string `json:"to" binding:"required"`
	ChallengeSerial string `json:"challenge_serial" binding:"required"`
	WagerLines      int    `json:"wager_lines"`
}

func (r *friendRoutes) ChallengeFriend(c *gin.Context) {
	log := logger.Logger()

	var req ChallengeFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind challenge request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fc, err := r.fs.ChallengeFriend(c.Request.Context(), req.From, req.To, req.ChallengeSerial, req.WagerLines)
	if err != nil {
		log.Error("failed to create friend challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create challenge"})
		return
	}

	c.JSON(http.StatusCreated, toFriendChallengeResponse(fc))
}

func (r *friendRoutes) AcceptChallenge(c *gin.Context) {
	r.transition(c, r.fs.AcceptChallenge)
}

func (r *friendRoutes) DeclineChallenge(c *gin.Context) {
	r.transition(c, r.fs.DeclineChallenge)
}

func (r *friendRoutes) transition(c *gin.Context, op func(ctx context.Context, id string) (*model.FriendChallenge, error)) {
	log := logger.Logger()

	fc, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
			return
		}
		log.Error("failed to transition friend challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update challenge"})
		return
	}

	c.JSON(http.StatusOK, toFriendChallengeResponse(fc))
}

type CompleteChallengeRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Lines  int    `json:"lines"`
}

func (r *friendRoutes) CompleteChallenge(c *gin.Context) {
	log := logger.Logger()

	var req CompleteChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind complete request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fc, err := r.fs.CompleteChallenge(c.Request.Context(), c.Param("id"), req.UserID, req.Time, req.Lines)
	if err != nil {
		log.Error("failed to complete friend challenge", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		case errors.Is(err, service.ErrMalformedTime):
			c.JSON(http.StatusBadRequest, gin.H{"error": "completion time must be mm:ss"})
		case errors.Is(err, service.ErrChallengeResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "challenge already resolved"})
		case errors.Is(err, service.ErrAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "completion already recorded"})
		case errors.Is(err, service.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": "not a participant of this challenge"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete challenge"})
		}
		return
	}

	c.JSON(http.StatusOK, toFriendChallengeResponse(fc))
}

func (r *friendRoutes) GetFriendsLeaderboard(c *gin.Context) {
	log := logger.Logger()

	completions, err := r.fs.GetFriendsLeaderboard(c.Request.Context(), c.Param("user_id"), c.Param("serial"))
	if err != nil {
		log.Error("failed to get friends leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get friends leaderboard"})
		return
	}

	out := make([]CompletionResponse, len(completions))
	for i, comp := range completions {
		out[i] = CompletionResponse{
			UserID:      comp.UserID,
			Time:        comp.Time,
			Lines:       comp.Lines,
			CompletedAt: comp.CompletedAt,
		}
	}

	c.JSON(http.StatusOK, out)
}

func (r *friendRoutes) GetPendingChallenges(c *gin.Context) {
	r.listChallenges(c, r.fs.GetPendingChallenges)
}

func (r *friendRoutes) GetActiveChallenges(c *gin.Context) {
	r.listChallenges(c, r.fs.GetActiveChallenges)
}

func (r *friendRoutes) listChallenges(c *gin.Context, op func(ctx context.Context, userID string) ([]*model.FriendChallenge, error)) {
	log := logger.Logger()

	challenges, err := op(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		log.Error("failed to list friend challenges", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list challenges"})
		return
	}

	out := make([]FriendChallengeResponse, len(challenges))
	for i, fc := range challenges {
		out[i] = toFriendChallengeResponse(fc)
	}

	c.JSON(http.StatusOK, out)
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/chimwopara/logic/internal/content"
	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/service"
	"github.com/chimwopara/logic/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type challengeRoutes struct {
	ps        service.PoolServiceI
	generator *content.Client
}

func NewChallengeRoutes(handler *gin.RouterGroup, ps service.PoolServiceI, generator *content.Client) {
	r := &challengeRoutes{ps: ps, generator: generator}
	h := handler.Group("/challenges")
	{
		h.GET("/", r.ListChallenges)
		h.GET("/:serial", r.GetChallenge)
		h.POST("/", r.PublishChallenge)
		h.POST("/generate", r.GenerateChallenge)
	}
}

type ChallengeResponse struct {
	Serial     string    `json:"serial"`
	Title      string    `json:"title"`
	Question   string    `json:"question"`
	Language   string    `json:"language"`
	Difficulty string    `json:"difficulty"`
	Steps      int       `json:"steps"`
	Rating     *float64  `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toChallengeResponse(c *model.Challenge) ChallengeResponse {
	return ChallengeResponse{
		Serial:     c.Serial,
		Title:      c.Title,
		Question:   c.Question,
		Language:   c.Language,
		Difficulty: c.Difficulty,
		Steps:      c.Steps,
		Rating:     c.Rating,
		CreatedAt:  c.CreatedAt,
	}
}

func (r *challengeRoutes) ListChallenges(c *gin.Context) {
	log := logger.Logger()

	challenges, err := r.ps.List(c.Request.Context())
	if err != nil {
		log.Error("failed to list challenges", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list challenges"})
		return
	}

	out := make([]ChallengeResponse, len(challenges))
	for i, challenge := range challenges {
		out[i] = toChallengeResponse(challenge)
	}

	c.JSON(http.StatusOK, out)
}

func (r *challengeRoutes) GetChallenge(c *gin.Context) {
	log := logger.Logger()

	challenge, err := r.ps.Get(c.Request.Context(), c.Param("serial"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
			return
		}
		log.Error("failed to get challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get challenge"})
		return
	}

	response := toChallengeResponse(challenge)
	c.JSON(http.StatusOK, gin.H{
		"serial":     response.Serial,
		"title":      response.Title,
		"question":   response.Question,
		"language":   response.Language,
		"difficulty": response.Difficulty,
		"steps":      response.Steps,
		"rating":     response.Rating,
		"content":    json.RawMessage(challenge.Content),
		"created_at": response.CreatedAt,
	})
}

type PublishChallengeRequest struct {
	Title      string          `json:"title" binding:"required"`
	Question   string          `json:"question" binding:"required"`
	Language   string          `json:"language" binding:"required"`
	Difficulty string          `json:"difficulty" binding:"required"`
	Steps      int             `json:"steps" binding:"required"`
	Rating     *float64        `json:"rating"`
	Content    json.RawMessage `json:"content"`
}

func (r *challengeRoutes) PublishChallenge(c *gin.Context) {
	log := logger.Logger()

	var req PublishChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind publish request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	challenge, err := r.ps.Publish(c.Request.Context(), &model.Challenge{
		Title:      req.Title,
		Question:   req.Question,
		Language:   req.Language,
		Difficulty: req.Difficulty,
		Steps:      req.Steps,
		Rating:     req.Rating,
		Content:    req.Content,
	})
	if err != nil {
		log.Error("failed to publish challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish challenge"})
		return
	}

	c.JSON(http.StatusCreated, toChallengeResponse(challenge))
}

type GenerateChallengeRequest struct {
	Question   string `json:"question" binding:"required"`
	Language   string `json:"language" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
}

func (r *challengeRoutes) GenerateChallenge(c *gin.Context) {
	log := logger.Logger()

	var req GenerateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind generate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	challenge, err := r.generator.GenerateChallenge(c.Request.Context(), req.Question, req.Language, req.Difficulty)
	if err != nil {
		log.Error("failed to generate challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": challenge})
}

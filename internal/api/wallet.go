package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chimwopara/logic/internal/service"
	"github.com/chimwopara/logic/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type walletRoutes struct {
	ls service.LedgerServiceI
}

func NewWalletRoutes(handler *gin.RouterGroup, ls service.LedgerServiceI) {
	r := &walletRoutes{ls: ls}
	h := handler.Group("/wallet")
	{
		h.GET("/:user_id", r.GetWallet)
		h.GET("/:user_id/transactions", r.GetTransactions)
	}
}

func (r *walletRoutes) GetWallet(c *gin.Context) {
	log := logger.Logger()

	wallet, err := r.ls.GetWallet(c.Request.Context(), c.Param("user_id"), time.Now())
	if err != nil {
		log.Error("failed to get wallet", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": wallet.UserID,
		"balance": wallet.Balance,
		"tier":    wallet.Tier,
	})
}

func (r *walletRoutes) GetTransactions(c *gin.Context) {
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

	txs, err := r.ls.GetHistory(c.Request.Context(), c.Param("user_id"), limit)
	if err != nil {
		log.Error("failed to get line transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get transactions"})
		return
	}

	var out []gin.H
	for _, tx := range txs {
		out = append(out, gin.H{
			"id":         tx.ID,
			"reason":     tx.Reason,
			"amount":     tx.Amount,
			"metadata":   tx.Metadata,
			"created_at": tx.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}

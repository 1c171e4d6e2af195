package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/chimwopara/logic/internal/api"
	"github.com/chimwopara/logic/internal/content"
	"github.com/chimwopara/logic/internal/repository"
	"github.com/chimwopara/logic/internal/service"
	"github.com/chimwopara/logic/pkg/daykey"
	"github.com/chimwopara/logic/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.Migrate(); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	clock, err := daykey.New(cfg.Daily.Timezone)
	if err != nil {
		zapLogger.Fatal("Failed to initialize day clock", zap.Error(err))
	}

	streakService := service.NewStreakService(repo, clock)
	ledgerService := service.NewLedgerService(repo, clock)
	dailyService := service.NewDailyChallengeService(repo, repo, streakService, ledgerService, clock)
	friendService := service.NewFriendLeagueService(repo)
	poolService := service.NewPoolService(repo)
	generator := content.NewClient(cfg.Generator)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	hub := api.NewFeedHub()

	a := router.Group("/api/v1")
	api.NewDailyRoutes(a, dailyService, hub)
	api.NewFriendRoutes(a, friendService)
	api.NewWalletRoutes(a, ledgerService)
	api.NewChallengeRoutes(a, poolService, generator)
	api.NewFeedRoutes(a, hub)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}

package api

import (
	"net/http"
	"sync"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHub pushes the daily leaderboard to connected websocket clients after
// every accepted submission.
type FeedHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[*websocket.Conn]bool)}
}

func NewFeedRoutes(handler *gin.RouterGroup, hub *FeedHub) {
	h := handler.Group("/ws")
	h.GET("/daily", hub.handleWebSocket)
}

func (h *FeedHub) handleWebSocket(c *gin.Context) {
	log := logger.Logger()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Reader loop exists only to notice the close.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

type feedMessage struct {
	Type string                     `json:"type"`
	Data []LeaderboardEntryResponse `json:"data"`
}

// BroadcastLeaderboard sends the current board to every connected client,
// dropping clients whose writes fail.
func (h *FeedHub) BroadcastLeaderboard(entries []model.LeaderboardEntry) {
	log := logger.Logger()

	msg := feedMessage{
		Type: "daily_leaderboard",
		Data: toLeaderboardResponse(entries),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error("failed to marshal leaderboard feed message", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *FeedHub) drop(conn *websocket.Conn) {
	conn.Close()
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

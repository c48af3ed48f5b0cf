// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊與中介層。
//   - handler.go 定義「如何處理請求」
//   - router.go 定義「請求如何被導向」
//   - cmd/server 組裝整體應用（注入 Bank、logger、設定）
package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Router 建立並回傳整個 HTTP 處理鏈。
// 所有端點同時掛在 /api/v1 與根路徑下。
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(requestID(), logRequests(s.logger), gin.Recovery())

	s.register(r.Group("/api/v1"))
	s.register(&r.RouterGroup)
	return r
}

func (s *Server) register(g *gin.RouterGroup) {
	// 健康檢查
	g.GET("/health", s.health)

	// 使用者與其帳戶
	g.POST("/users", s.createUser)
	g.GET("/users", s.listUsers)
	g.GET("/users/:id", s.getUser)
	g.POST("/users/:id/accounts", s.openAccount)
	g.GET("/users/:id/accounts", s.listUserAccounts)
	g.POST("/users/:id/accounts/:index/deposit", s.depositByIndex)
	g.GET("/users/:id/statement", s.statement)

	// 帳戶操作
	g.GET("/accounts/:id", s.getAccount)
	g.POST("/accounts/:id/deposit", s.deposit)
	g.POST("/accounts/:id/withdraw", s.withdraw)
	g.GET("/accounts/:id/transactions", s.transactions)

	// 轉帳
	g.POST("/transfers", s.transfer)
}

// requestID 沿用呼叫端的 X-Request-ID，沒有則產生 UUID。
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func logRequests(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

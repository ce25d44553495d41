package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/api/handlers"
	"meeting_web/internal/config"
	"meeting_web/internal/middleware"
	"meeting_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, authCfg config.AuthConfig) {
	// 初始化 handlers
	tokenTTL := time.Duration(authCfg.TokenTTLHours) * time.Hour
	meetingHandler := handlers.NewMeetingHandler(services.Meeting)
	tokenHandler := handlers.NewTokenHandler(services.Meeting, authCfg.TokenSecret, tokenTTL)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// 會議相關
		api.POST("/meetings", meetingHandler.CreateMeeting)         // 創建會議
		api.GET("/meetings/:id", meetingHandler.GetMeeting)         // 獲取會議完整狀態
		api.GET("/meetings/:id/agenda", meetingHandler.ListAgendaItems) // 獲取議程列表
		api.GET("/lookup", meetingHandler.LookupByCode)             // 以代碼查詢會議

		// 主持人 token 換發
		api.POST("/meetings/:id/moderator", tokenHandler.IssueModeratorToken)

		// WebSocket 連接點，房間進出由連接內的控制消息處理
		api.GET("/ws", wsHandler.HandleWebSocket)
	}

	// 需要主持人 token 的路由
	moderated := api.Group("/meetings")
	moderated.Use(middleware.ModeratorAuthMiddleware(authCfg.TokenSecret))
	{
		moderated.POST("/:id/agenda", meetingHandler.AddAgendaItem)        // 加入議程項目
		moderated.POST("/:id/current_item", meetingHandler.AdvancePointer) // 推進議程指標
	}
}

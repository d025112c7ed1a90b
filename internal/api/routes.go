package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatroom_web/internal/api/handlers"
	"chatroom_web/internal/middleware"
	"chatroom_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	roomHandler := handlers.NewRoomHandler(services.Room)
	messageHandler := handlers.NewMessageHandler(services.Message)
	wsHandler := handlers.NewWebSocketHandler(services.Notifier, services.Room)

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
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 當前用戶相關
		auth := authorized.Group("/auth")
		{
			auth.GET("/user", authHandler.GetCurrentUser) // 當前用戶資料
			auth.PUT("/user", authHandler.UpdateProfile)  // 更新個人資料
		}

		// 聊天室相關
		rooms := authorized.Group("/rooms")
		{
			// 基本操作
			rooms.GET("", roomHandler.ListMyRooms)      // 我加入的房間
			rooms.GET("/all", roomHandler.ListAllRooms) // 所有房間
			rooms.POST("", roomHandler.CreateRoom)      // 創建房間

			// 房間參與
			rooms.POST("/:roomId/join", roomHandler.JoinRoom)   // 加入房間
			rooms.POST("/:roomId/leave", roomHandler.LeaveRoom) // 離開房間
			rooms.GET("/:roomId/members", roomHandler.ListMembers)

			// 消息
			rooms.GET("/:roomId/messages", messageHandler.ListMessages)   // 查詢 / 輪詢
			rooms.POST("/:roomId/messages", messageHandler.CreateMessage) // 發送消息

			// WebSocket 即時消息訂閱
			rooms.GET("/:roomId/ws", wsHandler.Subscribe)
		}
	}
}

package websocket

import (
	"codeberg.org/capworks/portal/internal/auth"
	ws "codeberg.org/capworks/portal/internal/websocket"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, hub *ws.Hub, userRepo UserFinder) {
	router.GET("/ws", auth.AuthMiddleware(), WebSocketHandler(hub, userRepo))
}

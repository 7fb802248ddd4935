package websocket

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"codeberg.org/capworks/portal/internal/auth"
	"codeberg.org/capworks/portal/internal/errors"
	"codeberg.org/capworks/portal/internal/logger"
	ws "codeberg.org/capworks/portal/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// terminal clients send no Origin header. browsers must match
// ALLOWED_ORIGINS in production.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || os.Getenv("ENVIRONMENT") != "production" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	for _, allowed := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if strings.EqualFold(strings.TrimSpace(allowed), u.Scheme+"://"+u.Host) {
			return true
		}
	}

	return false
}

// streams user updates to the authenticated user. the current user is sent
// once right after the upgrade.
func WebSocketHandler(hub *ws.Hub, userRepo UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "valid authentication required")
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			errors.NotFound(c, "user")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.ErrorErr(err, "failed to upgrade connection",
				"user_id", userID,
				"ip", c.ClientIP(),
			)
			return
		}

		client := ws.NewClient(userID, conn, hub)

		if msg, err := ws.NewMessage(ws.TypeUserUpdated, user); err == nil {
			if data, err := msg.Encode(); err == nil {
				client.Send(data) //nolint:errcheck,gosec // fresh buffer cannot be full
			}
		}

		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()

		logger.Info("websocket connection established",
			"user_id", userID,
			"ip", c.ClientIP(),
		)
	}
}

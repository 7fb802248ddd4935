package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// reports liveness and how many user streams are open
func Handler(streams ConnectionCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{
			Status:  "healthy",
			Service: "cap-devserver",
			Version: Version,
		}

		if streams != nil {
			resp.Streams = streams.TotalConnections()
		}

		c.JSON(http.StatusOK, resp)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Events streams hub messages to the client as server-sent events until the
// connection goes away. Push is best-effort; nothing here touches stored
// state.
func (rs *RestfulServer) Events(c *gin.Context) {
	if rs.Hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push not available"})
		return
	}

	userID := rs.currentUserID(c)
	client := rs.Hub.Register(userID)
	defer rs.Hub.Unregister(client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client.Messages():
			if !ok {
				return false
			}
			c.SSEvent("message", msg)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

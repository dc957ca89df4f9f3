package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/cabax/cabax-backend/floor"
	"github.com/cabax/cabax-backend/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Floor devices connect from the local network with no Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FloorSocket upgrades a floor device connection and keeps it registered
// until the peer goes away. Incoming frames are drained and discarded; the
// socket is push-only.
func FloorSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("floor socket upgrade failed: %v", err)
		return
	}

	role := c.DefaultQuery("role", "staff")
	floor.RegisterClient(conn, role)
	utils.InfoLogger.Printf("floor device connected (role=%s)", role)

	go func() {
		defer floor.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

package controllers

import (
	"log"
	"net/http"
	"time"

	"campusfix/realtime"
	"campusfix/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var hub *realtime.Hub

// InitHub wires the websocket hub created in main
func InitHub(h *realtime.Hub) {
	hub = h
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GetUnseenCount returns how many relevant reports changed since the
// caller's last-seen checkpoint
func GetUnseenCount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	count, err := services.ComputeUnseenCount(&user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unseenCount": count})
}

// MarkSeen advances the caller's checkpoint. With no timestamp in the
// body, now is used.
func MarkSeen(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Timestamp *time.Time `json:"timestamp"`
	}
	_ = c.ShouldBindJSON(&input)

	ts := time.Now().UTC()
	if input.Timestamp != nil {
		ts = input.Timestamp.UTC()
	}

	if err := services.MarkSeen(c.Request.Context(), &user, ts); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checkpoint saved", "timestamp": ts})
}

// ActivityWS upgrades the connection and streams unseen-count updates
func ActivityWS(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Failed to upgrade websocket:", err)
		return
	}
	hub.Register(user, conn)
}

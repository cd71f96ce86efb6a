package controllers

import (
	"errors"
	"net/http"

	"campusfix/services"

	"github.com/gin-gonic/gin"
)

// AppendConversationMessage posts a private chat entry on an assigned
// report. The sender role is taken from the session, never the body.
func AppendConversationMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reportID, ok := reportIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Message   string `json:"message" binding:"required"`
		RequestID string `json:"requestId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	entry, err := services.AppendConversationMessage(reportID, &user, input.Message, input.RequestID)
	if errors.Is(err, services.ErrDuplicateRequest) {
		c.JSON(http.StatusOK, gin.H{"message": "Already processed", "duplicate": true})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

package controllers

import (
	"errors"
	"net/http"

	"campusfix/services"

	"github.com/gin-gonic/gin"
)

// ToggleUpvote flips the caller's upvote on a report
func ToggleUpvote(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reportID, ok := reportIDParam(c)
	if !ok {
		return
	}

	var input struct {
		RequestID string `json:"requestId"`
	}
	// body is optional; a bare POST toggles without a dedup id
	_ = c.ShouldBindJSON(&input)

	upvoted, count, err := services.ToggleUpvote(reportID, user.ID, input.RequestID)
	if errors.Is(err, services.ErrDuplicateRequest) {
		c.JSON(http.StatusOK, gin.H{"message": "Already processed", "duplicate": true})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upvoted": upvoted, "upvotesCount": count})
}

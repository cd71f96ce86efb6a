package controllers

import (
	"errors"
	"net/http"

	"campusfix/services"

	"github.com/gin-gonic/gin"
)

// StartProgress lets the attached resolver self-start a pending report
func StartProgress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reportID, ok := reportIDParam(c)
	if !ok {
		return
	}

	report, err := services.StartProgress(reportID, &user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CompleteReport closes an in-progress report with a mandatory note
func CompleteReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reportID, ok := reportIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Note      string `json:"note" binding:"required"`
		RequestID string `json:"requestId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completion note is required"})
		return
	}

	report, err := services.CompleteReport(reportID, &user, input.Note, input.RequestID)
	if errors.Is(err, services.ErrDuplicateRequest) {
		c.JSON(http.StatusOK, gin.H{"message": "Already processed", "duplicate": true})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RejectReport turns down a pending report with a note for the submitter
func RejectReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reportID, ok := reportIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	report, err := services.RejectReport(reportID, &user, input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

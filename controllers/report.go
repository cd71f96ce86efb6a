package controllers

import (
	"net/http"

	"campusfix/models"
	"campusfix/services"

	"github.com/gin-gonic/gin"
)

// CreateReport files a new facility issue as the authenticated submitter
func CreateReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Building    string `json:"building" binding:"required"`
		Room        string `json:"room" binding:"required"`
		Priority    string `json:"priority" binding:"required"`
		Photo       string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	report, err := services.CreateReport(&user, services.CreateReportInput{
		Title:       input.Title,
		Description: input.Description,
		Building:    input.Building,
		Room:        input.Room,
		Priority:    input.Priority,
		PhotoURL:    input.Photo,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ListReports returns the reports relevant to the caller's role
func ListReports(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	reports, err := services.ListReportsFor(&user)
	if err != nil {
		respondError(c, err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	c.JSON(http.StatusOK, reports)
}

// GetReport returns one report under role visibility rules
func GetReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reportID, ok := reportIDParam(c)
	if !ok {
		return
	}

	report, err := services.GetReportFor(&user, reportID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report":  report,
		"upvoted": report.HasUpvoted(user.ID),
	})
}

package controllers

import (
	"net/http"

	"campusfix/services"

	"github.com/gin-gonic/gin"
)

// GetAssignmentCandidates offers resolvers sorted least-busy first
func GetAssignmentCandidates(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	candidates, err := services.ListAssignmentCandidates(&user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// AssignReport attaches a resolver to a pending report
func AssignReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reportID, ok := reportIDParam(c)
	if !ok {
		return
	}

	var input struct {
		StaffID string `json:"staffId" binding:"required"`
		Note    string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	report, err := services.AssignReport(reportID, &user, input.StaffID, input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"campusfix/database"
	"campusfix/models"
	"campusfix/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUser loads the authenticated user set by the auth middleware
func currentUser(c *gin.Context) (models.User, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return models.User{}, false
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return models.User{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return models.User{}, false
	}
	return user, true
}

// reportIDParam parses the :id path parameter
func reportIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return primitive.NilObjectID, false
	}
	return objID, true
}

// respondError maps the service error taxonomy to HTTP
func respondError(c *gin.Context, err error) {
	var transition *services.InvalidTransitionError
	var validation *services.ValidationError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed for your role"})
	case errors.Is(err, services.ErrLocked):
		c.JSON(http.StatusLocked, gin.H{"error": "Report is completed and locked"})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Report state does not allow this operation"})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

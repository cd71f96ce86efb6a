package controllers

import (
	"fmt"
	"net/http"

	"campusfix/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetProfile returns the caller's own user record
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// UpdateProfile lets the owner change display name and avatar. Role and
// identifiers are immutable and deliberately not accepted here.
func UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	displayName := c.PostForm("displayName")

	var avatarURL string
	file, header, err := c.Request.FormFile("avatar")
	if err == nil {
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		avatarURL, err = UploadImageToGCS(file, contentType, "avatars")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to upload image: %v", err)})
			return
		}
	}

	set := bson.M{}
	if displayName != "" {
		set["display_name"] = displayName
	}
	if avatarURL != "" {
		set["avatar_url"] = avatarURL
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	result, err := db.UserCollection.UpdateOne(c.Request.Context(), bson.M{"_id": user.ID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to update profile: %v", err)})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Update Successful"})
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"campusfix/database"
	"campusfix/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var collection *mongo.Collection

func InitMongo(client *mongo.Client) {
	collection = client.Database("campusfix_db").Collection("users")
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// Register creates an account with a fixed role. The role never changes
// after this point.
func Register(c *gin.Context) {
	type RegisterInput struct {
		Username        string `json:"username" binding:"required"`
		Email           string `json:"email" binding:"required,email"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
		DisplayName     string `json:"displayName" binding:"required"`
		Role            string `json:"role" binding:"required"`
		StaffID         string `json:"staffId"`
		StudentID       string `json:"studentId"`
	}

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}
	if !models.ValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be submitter, resolver or coordinator"})
		return
	}
	if input.Role == models.RoleSubmitter && input.StudentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student ID is required for submitters"})
		return
	}
	if input.Role != models.RoleSubmitter && input.StaffID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Staff ID is required for staff roles"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"username": input.Username}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}
	err = db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:          primitive.NewObjectID(),
		Username:    input.Username,
		Email:       input.Email,
		Password:    hashed,
		Role:        input.Role,
		DisplayName: input.DisplayName,
		StaffID:     input.StaffID,
		StudentID:   input.StudentID,
	}
	if user.Role == models.RoleSubmitter {
		user.StaffID = ""
	} else {
		user.StudentID = ""
	}

	result, err := db.UserCollection.InsertOne(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Register successful", "user_id": result.InsertedID})
}

package controllers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"campusfix/gcs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadImageToGCS streams an image to the bucket and returns its public URL
func UploadImageToGCS(reader io.Reader, contentType, folder string) (string, error) {
	ctx := context.Background()
	bucket := gcs.BucketName

	extension := "jpg"
	switch strings.ToLower(contentType) {
	case "image/png":
		extension = "png"
	case "image/jpeg", "image/jpg":
		extension = "jpeg"
	case "image/gif":
		extension = "gif"
	default:
		log.Printf("Unsupported content type: %s, defaulting to .jpg", contentType)
	}

	objectName := fmt.Sprintf("%s/%s_%d.%s", folder, uuid.NewString(), time.Now().UnixNano(), extension)

	writer := gcs.Client.Bucket(bucket).Object(objectName).NewWriter(ctx)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	writer.ContentType = contentType

	if _, err := io.Copy(writer, reader); err != nil {
		log.Printf("Failed to copy file to GCS: %v", err)
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := writer.Close(); err != nil {
		log.Printf("Failed to close writer: %v", err)
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	publicURL := fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectName)
	return publicURL, nil
}

// UploadReportImage accepts a multipart photo and returns the stored URL.
// The engine persists only the reference.
func UploadReportImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := UploadImageToGCS(file, contentType, "reports")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to upload image: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

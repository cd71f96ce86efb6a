package gcs

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var Client *storage.Client

// BucketName bucket that holds report photos and profile avatars
var BucketName = "campusfix-report-images"

func InitGCS() {
	ctx := context.Background()

	var err error
	credentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentials != "" {
		Client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentials))
	} else {
		Client, err = storage.NewClient(ctx)
	}
	if err != nil {
		log.Fatalf("Failed to connect to Google Cloud Storage: %v", err)
	}

	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		BucketName = bucket
	}

	_, err = Client.Bucket(BucketName).Attrs(ctx)
	if err != nil {
		log.Fatalf("Cannot access bucket %s: %v", BucketName, err)
	}
	log.Printf("Bucket %s ready", BucketName)
}

func Close() {
	if Client != nil {
		Client.Close()
	}
}

package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client global MongoDB connection shared by the whole service
var Client *mongo.Client

var ReportCollection *mongo.Collection
var UserCollection *mongo.Collection

const databaseName = "campusfix_db"

// InitDB connects to MongoDB and prepares the collection handles
func InitDB() {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI not set in .env")
	}

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	Client = client
	ReportCollection = client.Database(databaseName).Collection("reports")
	UserCollection = client.Database(databaseName).Collection("users")

	ensureIndexes(ctx)

	log.Println("Connected to MongoDB!")
}

// ensureIndexes creates the indexes the hot queries depend on
func ensureIndexes(ctx context.Context) {
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Println("Failed to create username index:", err)
	}

	_, err = ReportCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "submitter_id", Value: 1}, {Key: "updated_at", Value: -1}}},
		{Keys: bson.D{{Key: "assignee_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		log.Println("Failed to create report indexes:", err)
	}
}

// DisconnectDB closes the MongoDB connection
func DisconnectDB() {
	if Client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Client.Disconnect(ctx)
	if err != nil {
		log.Println("Failed to disconnect MongoDB:", err)
		return
	}
	log.Println("Disconnected from MongoDB")
}

// OpenCollection returns a collection handle by name
func OpenCollection(collectionName string) *mongo.Collection {
	return Client.Database(databaseName).Collection(collectionName)
}

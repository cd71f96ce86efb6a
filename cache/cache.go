package cache

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client global Redis connection used for last-seen checkpoints and
// request-id deduplication
var Client *redis.Client

// InitCache connects to Redis and verifies the connection
func InitCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	log.Println("Connected to Redis!")
}

// Close shuts the Redis connection down
func Close() {
	if Client == nil {
		return
	}
	if err := Client.Close(); err != nil {
		log.Println("Failed to close Redis:", err)
	}
}

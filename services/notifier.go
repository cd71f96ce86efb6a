package services

import (
	"context"
	"errors"
	"time"

	"campusfix/cache"
	"campusfix/database"
	"campusfix/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

func checkpointKey(user *models.User) string {
	return "lastseen:" + user.ID.Hex()
}

// Checkpoint returns the user's last-seen timestamp. A missing checkpoint
// is created at the zero time on first check, so everything counts as
// unseen until the user marks activity seen.
func Checkpoint(ctx context.Context, user *models.User) (time.Time, error) {
	key := checkpointKey(user)
	val, err := cache.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		zero := time.Time{}.UTC()
		if err := cache.Client.SetNX(ctx, key, zero.Format(time.RFC3339Nano), 0).Err(); err != nil {
			return time.Time{}, err
		}
		return zero, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, val)
}

// MarkSeen advances the user's checkpoint. The checkpoint only ever moves
// through this call; polling never touches it.
func MarkSeen(ctx context.Context, user *models.User, ts time.Time) error {
	return cache.Client.Set(ctx, checkpointKey(user), ts.UTC().Format(time.RFC3339Nano), 0).Err()
}

// ComputeUnseenCount counts the reports relevant to the user whose
// last-modified timestamp moved strictly past the checkpoint.
func ComputeUnseenCount(user *models.User) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	checkpoint, err := Checkpoint(ctx, user)
	if err != nil {
		return 0, err
	}

	filter := relevantFilter(user)
	filter["updated_at"] = bson.M{"$gt": checkpoint}

	return db.ReportCollection.CountDocuments(ctx, filter)
}

package services

import (
	"context"
	"testing"
	"time"

	"campusfix/cache"
	"campusfix/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Client.Close()
		cache.Client = nil
	})
}

func TestCheckpointCreatedAtZeroOnFirstCheck(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSubmitter}

	checkpoint, err := Checkpoint(ctx, user)
	require.NoError(t, err)
	assert.True(t, checkpoint.IsZero())

	// the created checkpoint is durable, not recreated on every read
	again, err := Checkpoint(ctx, user)
	require.NoError(t, err)
	assert.True(t, again.Equal(checkpoint))
}

func TestMarkSeenAdvancesCheckpoint(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleResolver}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, MarkSeen(ctx, user, now))

	checkpoint, err := Checkpoint(ctx, user)
	require.NoError(t, err)
	assert.True(t, checkpoint.Equal(now))
}

func TestMarkSeenOnlyMovesOwnCheckpoint(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()
	alice := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSubmitter}
	bob := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSubmitter}

	require.NoError(t, MarkSeen(ctx, alice, time.Now().UTC()))

	bobCheckpoint, err := Checkpoint(ctx, bob)
	require.NoError(t, err)
	assert.True(t, bobCheckpoint.IsZero())
}

func TestCheckpointSurvivesSubSecondPrecision(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCoordinator}

	ts := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)
	require.NoError(t, MarkSeen(ctx, user, ts))

	checkpoint, err := Checkpoint(ctx, user)
	require.NoError(t, err)
	assert.True(t, checkpoint.Equal(ts))
}

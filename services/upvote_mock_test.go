package services

import (
	"context"
	"testing"
	"time"

	"campusfix/database"
	"campusfix/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// The mock deployment answers driver commands from a canned queue, which
// lets the toggle and counting paths run end to end without a server.

func useMockReports(mt *mtest.T) {
	prev := db.ReportCollection
	db.ReportCollection = mt.Coll
	mt.Cleanup(func() { db.ReportCollection = prev })
}

func upvoteStateResponse(reportID primitive.ObjectID, members bson.A, count int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
		{Key: "_id", Value: reportID},
		{Key: "status", Value: models.StatusPending},
		{Key: "upvoted_by", Value: members},
		{Key: "upvotes_count", Value: count},
	}})
}

func noMatchResponse() bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil})
}

func TestToggleUpvoteTwiceRestoresState(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("on then off returns to the original count", func(mt *mtest.T) {
		useMockReports(mt)
		reportID := primitive.NewObjectID()
		userID := primitive.NewObjectID()

		mt.AddMockResponses(upvoteStateResponse(reportID, bson.A{userID}, 1))
		upvoted, count, err := ToggleUpvote(reportID, userID, "")
		require.NoError(mt, err)
		assert.True(mt, upvoted)
		assert.Equal(mt, 1, count)

		// the second toggle misses the add branch (already a member) and
		// lands on the remove branch
		mt.AddMockResponses(
			noMatchResponse(),
			upvoteStateResponse(reportID, bson.A{}, 0),
		)
		upvoted, count, err = ToggleUpvote(reportID, userID, "")
		require.NoError(mt, err)
		assert.False(mt, upvoted)
		assert.Equal(mt, 0, count)
	})

	mt.Run("completed report refuses the toggle", func(mt *mtest.T) {
		useMockReports(mt)
		reportID := primitive.NewObjectID()
		userID := primitive.NewObjectID()

		// both conditional updates miss, and the re-read shows why
		mt.AddMockResponses(
			noMatchResponse(),
			noMatchResponse(),
			mtest.CreateCursorResponse(0, "campusfix_db.reports", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: reportID},
				{Key: "status", Value: models.StatusCompleted},
			}),
		)
		_, _, err := ToggleUpvote(reportID, userID, "")
		assert.ErrorIs(mt, err, ErrLocked)
	})
}

func TestUnseenCountAdvancesWithActivity(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("zero after mark seen, one after a relevant change", func(mt *mtest.T) {
		setupRedis(mt.T)
		useMockReports(mt)
		user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSubmitter}

		require.NoError(mt, MarkSeen(context.Background(), user, time.Now().UTC()))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campusfix_db.reports", mtest.FirstBatch))
		count, err := ComputeUnseenCount(user)
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), count)

		// one of the user's reports was updated past the checkpoint
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campusfix_db.reports", mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(1)}}))
		count, err = ComputeUnseenCount(user)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), count)
	})
}

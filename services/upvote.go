package services

import (
	"context"
	"errors"
	"time"

	"campusfix/database"
	"campusfix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ToggleUpvote flips the caller's upvote on a report. Membership and the
// denormalized counter change in the same document write ($addToSet/$pull
// plus $inc), so the count always equals the membership cardinality, no
// matter how toggles interleave. Completed reports are locked.
func ToggleUpvote(reportID, userID primitive.ObjectID, requestID string) (bool, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := claimRequestID(ctx, requestID); err != nil {
		return false, 0, err
	}

	notCompleted := bson.M{"$nin": []string{models.StatusCompleted, models.StatusLegacyResolved}}
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// a concurrent toggle by the same user can flip membership between
	// the two attempts; retry the pair a few times before giving up
	for attempt := 0; attempt < 3; attempt++ {
		now := time.Now().UTC()

		// not yet a member: add and increment
		var report models.Report
		err := db.ReportCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": reportID, "status": notCompleted, "upvoted_by": bson.M{"$ne": userID}},
			bson.M{
				"$addToSet": bson.M{"upvoted_by": userID},
				"$inc":      bson.M{"upvotes_count": 1},
				"$set":      bson.M{"updated_at": now},
			},
			after,
		).Decode(&report)
		if err == nil {
			return true, report.UpvotesCount, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			releaseRequestID(ctx, requestID)
			return false, 0, err
		}

		// already a member: remove and decrement
		err = db.ReportCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": reportID, "status": notCompleted, "upvoted_by": userID},
			bson.M{
				"$pull": bson.M{"upvoted_by": userID},
				"$inc":  bson.M{"upvotes_count": -1},
				"$set":  bson.M{"updated_at": now},
			},
			after,
		).Decode(&report)
		if err == nil {
			return false, report.UpvotesCount, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			releaseRequestID(ctx, requestID)
			return false, 0, err
		}

		if err := classifyToggleFailure(reportID); err != nil {
			releaseRequestID(ctx, requestID)
			return false, 0, err
		}
	}

	releaseRequestID(ctx, requestID)
	return false, 0, ErrInvalidState
}

// classifyToggleFailure returns nil when both conditional updates missed
// only because of a racing toggle, which the caller may retry.
func classifyToggleFailure(reportID primitive.ObjectID) error {
	report, err := models.GetReportByID(reportID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if errors.Is(err, models.ErrUnknownStatus) {
		return validationErrorf("report %s has an unrecognized status", reportID.Hex())
	}
	if err != nil {
		return err
	}
	if report.Status == models.StatusCompleted {
		return ErrLocked
	}
	return nil
}

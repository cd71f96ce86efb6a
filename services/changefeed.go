package services

import (
	"context"
	"log"
	"time"

	"campusfix/database"
	"campusfix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeEvent one report mutation observed on the change feed
type ChangeEvent struct {
	ReportID    primitive.ObjectID
	SubmitterID primitive.ObjectID
	AssigneeID  *primitive.ObjectID
	Status      string
	UpdatedAt   time.Time
}

// RelevantTo applies the role-based subscription predicate: resolvers see
// changes on their assignments, submitters on their own reports,
// coordinators on everything.
func RelevantTo(event ChangeEvent, user *models.User) bool {
	switch user.Role {
	case models.RoleSubmitter:
		return event.SubmitterID == user.ID
	case models.RoleResolver:
		return event.AssigneeID != nil && *event.AssigneeID == user.ID
	case models.RoleCoordinator:
		return true
	}
	return false
}

// WatchReports tails the reports change stream and invokes handler for
// every insert or update, reconnecting with backoff until ctx is done.
// This is the push path that lets clients recompute activity immediately
// instead of waiting for the next poll.
func WatchReports(ctx context.Context, handler func(ChangeEvent)) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace"}},
		}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	for {
		if ctx.Err() != nil {
			return
		}

		stream, err := db.ReportCollection.Watch(ctx, pipeline, opts)
		if err != nil {
			log.Println("Failed to open report change stream:", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
				continue
			}
		}

		for stream.Next(ctx) {
			var change struct {
				FullDocument models.Report `bson:"fullDocument"`
			}
			if err := stream.Decode(&change); err != nil {
				log.Println("Failed to decode change event:", err)
				continue
			}
			doc := change.FullDocument
			if err := doc.Normalize(); err != nil {
				log.Printf("Skipping change for report %s: %v", doc.ID.Hex(), err)
				continue
			}
			handler(ChangeEvent{
				ReportID:    doc.ID,
				SubmitterID: doc.SubmitterID,
				AssigneeID:  doc.AssigneeID,
				Status:      doc.Status,
				UpdatedAt:   doc.UpdatedAt,
			})
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.Println("Report change stream closed:", err)
		}
		stream.Close(context.Background())
	}
}

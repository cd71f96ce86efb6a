package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"campusfix/database"
	"campusfix/models"
	"campusfix/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// legalEdges is the fixed lifecycle graph. No other edges exist.
var legalEdges = map[string][]string{
	models.StatusPending:    {models.StatusInProgress, models.StatusRejected},
	models.StatusInProgress: {models.StatusCompleted},
}

// CanTransition reports whether from -> to is a legal lifecycle edge
func CanTransition(from, to string) bool {
	for _, next := range legalEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StartProgress lets the attached resolver advance pending -> in-progress
// without reassignment. The filter re-checks both the status and the
// attachment inside the single atomic update.
func StartProgress(reportID primitive.ObjectID, actor *models.User) (models.Report, error) {
	if actor.Role != models.RoleResolver {
		return models.Report{}, ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":         reportID,
		"status":      models.StatusPending,
		"assignee_id": actor.ID,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     models.StatusInProgress,
			"updated_at": time.Now().UTC(),
		},
	}

	result, err := db.ReportCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Report{}, err
	}
	if result.MatchedCount == 0 {
		return models.Report{}, classifyTransitionFailure(reportID, models.StatusInProgress)
	}
	return models.GetReportByID(reportID)
}

// CompleteReport performs in-progress -> completed. The transition and the
// resolver-authored status note are one document write; neither can land
// without the other.
func CompleteReport(reportID primitive.ObjectID, actor *models.User, note, requestID string) (models.Report, error) {
	if actor.Role != models.RoleResolver {
		return models.Report{}, ErrUnauthorized
	}
	if strings.TrimSpace(note) == "" {
		return models.Report{}, validationErrorf("completion note is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := claimRequestID(ctx, requestID); err != nil {
		return models.Report{}, err
	}

	now := time.Now().UTC()
	filter := bson.M{
		"_id":         reportID,
		"status":      models.StatusInProgress,
		"assignee_id": actor.ID,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     models.StatusCompleted,
			"updated_at": now,
		},
		"$push": bson.M{
			"status_notes": models.StatusNote{
				Status:    models.StatusCompleted,
				Note:      note,
				CreatedAt: now,
			},
		},
	}

	result, err := db.ReportCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		releaseRequestID(ctx, requestID)
		return models.Report{}, err
	}
	if result.MatchedCount == 0 {
		releaseRequestID(ctx, requestID)
		return models.Report{}, classifyTransitionFailure(reportID, models.StatusCompleted)
	}

	report, err := models.GetReportByID(reportID)
	if err == nil {
		notifySubmitter(report)
	}
	return report, err
}

// RejectReport performs pending -> rejected with a mandatory rejection note
// that the submitter will see.
func RejectReport(reportID primitive.ObjectID, actor *models.User, note string) (models.Report, error) {
	if actor.Role != models.RoleCoordinator {
		return models.Report{}, ErrUnauthorized
	}
	if strings.TrimSpace(note) == "" {
		return models.Report{}, validationErrorf("rejection note is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":    reportID,
		"status": models.StatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":         models.StatusRejected,
			"rejection_note": note,
			"updated_at":     time.Now().UTC(),
		},
	}

	result, err := db.ReportCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Report{}, err
	}
	if result.MatchedCount == 0 {
		return models.Report{}, classifyTransitionFailure(reportID, models.StatusRejected)
	}

	report, err := models.GetReportByID(reportID)
	if err == nil {
		notifySubmitter(report)
	}
	return report, err
}

// classifyTransitionFailure turns a zero-match conditional update into the
// right taxonomy error by re-reading the report. An illegal edge is
// InvalidTransition; a legal edge blocked by assignment preconditions is
// InvalidState.
func classifyTransitionFailure(reportID primitive.ObjectID, requested string) error {
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
	if !CanTransition(report.Status, requested) {
		return &InvalidTransitionError{From: report.Status, To: requested}
	}
	return ErrInvalidState
}

// notifySubmitter emails the submitter about a terminal status change.
// Best effort: failures are logged, never surfaced.
func notifySubmitter(report models.Report) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var submitter models.User
		err := db.UserCollection.FindOne(ctx, bson.M{"_id": report.SubmitterID}).Decode(&submitter)
		if err != nil || submitter.Email == "" {
			return
		}
		if err := utils.SendStatusEmail(submitter.Email, report.Title, report.Status, report.RejectionNote); err != nil {
			log.Printf("Failed to send status email for report %s: %v", report.ID.Hex(), err)
		}
	}()
}

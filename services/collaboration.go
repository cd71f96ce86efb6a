package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"campusfix/database"
	"campusfix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// buildConversationNote stamps a chat entry with the sender's identity.
// The role always comes from the authenticated actor, never from input.
func buildConversationNote(actor *models.User, message string, now time.Time) models.ConversationNote {
	return models.ConversationNote{
		SenderRole:   actor.Role,
		SenderName:   actor.DisplayName,
		SenderAvatar: actor.AvatarURL,
		Message:      message,
		CreatedAt:    now,
	}
}

// validateConversationMessage trims the text and bounds its length in
// characters, not bytes, so multibyte text gets the full allowance.
func validateConversationMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", validationErrorf("message is required")
	}
	if utf8.RuneCountInString(message) > models.MaxConversationMessageLen {
		return "", validationErrorf("message exceeds %d characters", models.MaxConversationMessageLen)
	}
	return message, nil
}

// AppendConversationMessage appends one chat entry to a report's private
// conversation. The append is a single $push inside a conditional update,
// so concurrent appends from the resolver and a coordinator interleave
// without losing entries; the array keeps append order.
func AppendConversationMessage(reportID primitive.ObjectID, actor *models.User, message, requestID string) (models.ConversationNote, error) {
	if !actor.IsStaff() {
		return models.ConversationNote{}, ErrUnauthorized
	}
	message, err := validateConversationMessage(message)
	if err != nil {
		return models.ConversationNote{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := claimRequestID(ctx, requestID); err != nil {
		return models.ConversationNote{}, err
	}

	now := time.Now().UTC()
	entry := buildConversationNote(actor, message, now)

	// chat is open only while the report is assigned and in progress;
	// a resolver may only post on their own assignment
	filter := bson.M{
		"_id":         reportID,
		"status":      models.StatusInProgress,
		"assignee_id": bson.M{"$exists": true},
	}
	if actor.Role == models.RoleResolver {
		filter["assignee_id"] = actor.ID
	}

	update := bson.M{
		"$push": bson.M{"conversation_notes": entry},
		"$set":  bson.M{"updated_at": now},
	}

	result, err := db.ReportCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		releaseRequestID(ctx, requestID)
		return models.ConversationNote{}, err
	}
	if result.MatchedCount == 0 {
		releaseRequestID(ctx, requestID)
		return models.ConversationNote{}, classifyAppendFailure(reportID)
	}
	return entry, nil
}

// classifyAppendFailure maps a zero-match append to the taxonomy: missing
// report, terminal report, or one that is not (or not yours to) chat on.
func classifyAppendFailure(reportID primitive.ObjectID) error {
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
	if models.Terminal(report.Status) {
		return ErrLocked
	}
	return ErrInvalidState
}

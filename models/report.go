package models

import (
	"context"
	"errors"
	"time"

	"campusfix/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusRejected   = "rejected"

	// StatusLegacyResolved is accepted from storage and normalized to
	// completed; it is never written back.
	StatusLegacyResolved = "resolved"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// MaxConversationMessageLen bound on a single chat message
const MaxConversationMessageLen = 500

// ErrUnknownStatus is returned when a stored status value is not part of
// the lifecycle and not the legacy alias.
var ErrUnknownStatus = errors.New("unknown report status")

type Location struct {
	Building string `json:"building" bson:"building"`
	Room     string `json:"room" bson:"room"`
}

// StatusNote audit entry appended at a lifecycle transition.
// Visible to resolvers and coordinators only.
type StatusNote struct {
	Status    string    `json:"status" bson:"status"`
	Note      string    `json:"note" bson:"note"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// ConversationNote private chat entry between the assigned resolver and a
// coordinator. Array order is authoritative; the timestamp is informational.
type ConversationNote struct {
	SenderRole   string    `json:"senderRole" bson:"sender_role"`
	SenderName   string    `json:"senderName" bson:"sender_name"`
	SenderAvatar string    `json:"senderAvatar,omitempty" bson:"sender_avatar,omitempty"`
	Message      string    `json:"message" bson:"message"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

type Report struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Location    Location           `json:"location" bson:"location"`
	PhotoURL    string             `json:"photo,omitempty" bson:"photo_url,omitempty"`
	Priority    string             `json:"priority" bson:"priority"`
	Status      string             `json:"status" bson:"status"`

	SubmitterID   primitive.ObjectID  `json:"submitterId" bson:"submitter_id"`
	SubmitterName string              `json:"submitterName" bson:"submitter_name"`
	AssigneeID    *primitive.ObjectID `json:"assigneeId,omitempty" bson:"assignee_id,omitempty"`
	AssigneeName  string              `json:"assigneeName,omitempty" bson:"assignee_name,omitempty"`
	// WasEverAssigned latches to true on first assignment and never reverts
	WasEverAssigned bool `json:"wasEverAssigned" bson:"was_ever_assigned"`

	RejectionNote  string `json:"rejectionNote,omitempty" bson:"rejection_note,omitempty"`
	AssignmentNote string `json:"assignmentNote,omitempty" bson:"assignment_note,omitempty"`

	StatusNotes       []StatusNote       `json:"statusNotes" bson:"status_notes"`
	ConversationNotes []ConversationNote `json:"conversationNotes" bson:"conversation_notes"`

	UpvotedBy    []primitive.ObjectID `json:"-" bson:"upvoted_by"`
	UpvotesCount int                  `json:"upvotesCount" bson:"upvotes_count"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// NormalizeStatus maps a stored status value to its canonical form.
// The legacy alias becomes completed; anything unrecognized is a
// data-integrity fault, not a silent default.
func NormalizeStatus(s string) (string, error) {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusRejected:
		return s, nil
	case StatusLegacyResolved:
		return StatusCompleted, nil
	}
	return "", ErrUnknownStatus
}

// Normalize rewrites the in-memory status to canonical form before any
// business logic inspects it.
func (r *Report) Normalize() error {
	status, err := NormalizeStatus(r.Status)
	if err != nil {
		return err
	}
	r.Status = status
	return nil
}

// ValidPriority reports whether p is an accepted priority value
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions
func Terminal(status string) bool {
	return status == StatusCompleted || status == StatusRejected
}

// ForSubmitter returns a copy stripped of the fields a submitter must
// never see: both logs and the coordinator's assignment note.
func (r Report) ForSubmitter() Report {
	r.StatusNotes = nil
	r.ConversationNotes = nil
	r.AssignmentNote = ""
	return r
}

// HasUpvoted reports whether userID is in the upvote membership set
func (r *Report) HasUpvoted(userID primitive.ObjectID) bool {
	for _, id := range r.UpvotedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// InsertReport persists a freshly created report
func InsertReport(report Report) (Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	report.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now
	report.Status = StatusPending
	if report.StatusNotes == nil {
		report.StatusNotes = []StatusNote{}
	}
	if report.ConversationNotes == nil {
		report.ConversationNotes = []ConversationNote{}
	}
	if report.UpvotedBy == nil {
		report.UpvotedBy = []primitive.ObjectID{}
	}

	_, err := db.ReportCollection.InsertOne(ctx, report)
	return report, err
}

// GetReportByID fetches and normalizes one report
func GetReportByID(id primitive.ObjectID) (Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var report Report
	err := db.ReportCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		return Report{}, err
	}
	if err := report.Normalize(); err != nil {
		return Report{}, err
	}
	return report, nil
}

// FindReports runs a filtered query and normalizes every result
func FindReports(filter bson.M) ([]Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.ReportCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	for i := range reports {
		if err := reports[i].Normalize(); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

package services

import (
	"testing"

	"campusfix/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{models.StatusPending, models.StatusInProgress, true},
		{models.StatusPending, models.StatusRejected, true},
		{models.StatusInProgress, models.StatusCompleted, true},

		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusInProgress, models.StatusRejected, false},
		{models.StatusInProgress, models.StatusPending, false},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCompleted, models.StatusInProgress, false},
		{models.StatusRejected, models.StatusInProgress, false},
		{models.StatusRejected, models.StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{From: models.StatusCompleted, To: models.StatusInProgress}
	assert.Contains(t, err.Error(), "completed")
	assert.Contains(t, err.Error(), "in-progress")
}

func TestCompleteReportRequiresResolverRole(t *testing.T) {
	coordinator := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCoordinator}
	_, err := CompleteReport(primitive.NewObjectID(), coordinator, "fixed", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCompleteReportRequiresNote(t *testing.T) {
	resolver := &models.User{ID: primitive.NewObjectID(), Role: models.RoleResolver}

	var validation *ValidationError
	_, err := CompleteReport(primitive.NewObjectID(), resolver, "   ", "")
	assert.ErrorAs(t, err, &validation)
}

func TestRejectReportRequiresCoordinatorRole(t *testing.T) {
	resolver := &models.User{ID: primitive.NewObjectID(), Role: models.RoleResolver}
	_, err := RejectReport(primitive.NewObjectID(), resolver, "duplicate")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRejectReportRequiresNote(t *testing.T) {
	coordinator := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCoordinator}

	var validation *ValidationError
	_, err := RejectReport(primitive.NewObjectID(), coordinator, "")
	assert.ErrorAs(t, err, &validation)
}

func TestStartProgressRequiresResolverRole(t *testing.T) {
	submitter := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSubmitter}
	_, err := StartProgress(primitive.NewObjectID(), submitter)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

package services

import (
	"testing"

	"campusfix/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validInput() CreateReportInput {
	return CreateReportInput{
		Title:       "Leaking pipe",
		Description: "Water on the floor near the sink",
		Building:    "Engineering",
		Room:        "204",
		Priority:    models.PriorityUrgent,
	}
}

func TestCreateReportOnlySubmitters(t *testing.T) {
	for _, role := range []string{models.RoleResolver, models.RoleCoordinator} {
		actor := &models.User{ID: primitive.NewObjectID(), Role: role}
		_, err := CreateReport(actor, validInput())
		assert.ErrorIs(t, err, ErrUnauthorized, role)
	}
}

func TestCreateReportValidation(t *testing.T) {
	submitter := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSubmitter}

	tests := []struct {
		name   string
		mutate func(*CreateReportInput)
	}{
		{"missing title", func(in *CreateReportInput) { in.Title = "  " }},
		{"missing description", func(in *CreateReportInput) { in.Description = "" }},
		{"missing building", func(in *CreateReportInput) { in.Building = "" }},
		{"missing room", func(in *CreateReportInput) { in.Room = " " }},
		{"bad priority", func(in *CreateReportInput) { in.Priority = "critical" }},
		{"empty priority", func(in *CreateReportInput) { in.Priority = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			var validation *ValidationError
			_, err := CreateReport(submitter, input)
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestRelevantFilterByRole(t *testing.T) {
	id := primitive.NewObjectID()

	submitter := &models.User{ID: id, Role: models.RoleSubmitter}
	assert.Equal(t, bson.M{"submitter_id": id}, relevantFilter(submitter))

	resolver := &models.User{ID: id, Role: models.RoleResolver}
	assert.Equal(t, bson.M{"assignee_id": id}, relevantFilter(resolver))

	coordinator := &models.User{ID: id, Role: models.RoleCoordinator}
	assert.Equal(t, bson.M{}, relevantFilter(coordinator))
}

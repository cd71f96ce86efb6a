package services

import (
	"testing"
	"time"

	"campusfix/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRelevantTo(t *testing.T) {
	submitterID := primitive.NewObjectID()
	assigneeID := primitive.NewObjectID()
	strangerID := primitive.NewObjectID()

	event := ChangeEvent{
		ReportID:    primitive.NewObjectID(),
		SubmitterID: submitterID,
		AssigneeID:  &assigneeID,
		Status:      models.StatusInProgress,
		UpdatedAt:   time.Now().UTC(),
	}

	tests := []struct {
		name string
		user models.User
		want bool
	}{
		{
			name: "submitter sees their own report",
			user: models.User{ID: submitterID, Role: models.RoleSubmitter},
			want: true,
		},
		{
			name: "other submitter does not",
			user: models.User{ID: strangerID, Role: models.RoleSubmitter},
			want: false,
		},
		{
			name: "assigned resolver sees it",
			user: models.User{ID: assigneeID, Role: models.RoleResolver},
			want: true,
		},
		{
			name: "unassigned resolver does not",
			user: models.User{ID: strangerID, Role: models.RoleResolver},
			want: false,
		},
		{
			name: "coordinator sees everything",
			user: models.User{ID: strangerID, Role: models.RoleCoordinator},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelevantTo(event, &tt.user))
		})
	}
}

func TestRelevantToUnassignedEvent(t *testing.T) {
	event := ChangeEvent{
		ReportID:    primitive.NewObjectID(),
		SubmitterID: primitive.NewObjectID(),
		Status:      models.StatusPending,
	}

	resolver := models.User{ID: primitive.NewObjectID(), Role: models.RoleResolver}
	assert.False(t, RelevantTo(event, &resolver))

	coordinator := models.User{ID: primitive.NewObjectID(), Role: models.RoleCoordinator}
	assert.True(t, RelevantTo(event, &coordinator))
}

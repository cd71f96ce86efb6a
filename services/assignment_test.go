package services

import (
	"testing"

	"campusfix/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func candidate(name, staffID string, load int) Candidate {
	return Candidate{
		User: models.User{
			ID:          primitive.NewObjectID(),
			Role:        models.RoleResolver,
			DisplayName: name,
			StaffID:     staffID,
		},
		Load: load,
	}
}

func names(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.User.DisplayName
	}
	return out
}

func TestSortCandidatesLeastLoadedFirst(t *testing.T) {
	candidates := []Candidate{
		candidate("Bea", "3", 3),
		candidate("Al", "1", 1),
		candidate("Cy", "2", 1),
		candidate("Do", "4", 2),
	}

	sortCandidates(candidates)

	require.Equal(t, []string{"Al", "Cy", "Do", "Bea"}, names(candidates))
	assert.Equal(t, 1, candidates[0].Load)
	assert.Equal(t, 3, candidates[3].Load)
}

func TestSortCandidatesNameTieIsCaseInsensitive(t *testing.T) {
	candidates := []Candidate{
		candidate("bob", "2", 1),
		candidate("Alice", "1", 1),
		candidate("CARL", "3", 1),
	}

	sortCandidates(candidates)

	assert.Equal(t, []string{"Alice", "bob", "CARL"}, names(candidates))
}

func TestSortCandidatesStaffIDBreaksNameTie(t *testing.T) {
	candidates := []Candidate{
		candidate("Sam", "12", 0),
		candidate("sam", "07", 0),
	}

	sortCandidates(candidates)

	assert.Equal(t, "07", candidates[0].User.StaffID)
	assert.Equal(t, "12", candidates[1].User.StaffID)
}

func TestSortCandidatesEmptyAndSingle(t *testing.T) {
	var empty []Candidate
	sortCandidates(empty)
	assert.Empty(t, empty)

	one := []Candidate{candidate("Al", "1", 5)}
	sortCandidates(one)
	assert.Equal(t, "Al", one[0].User.DisplayName)
}

func TestListAssignmentCandidatesRequiresCoordinator(t *testing.T) {
	resolver := &models.User{ID: primitive.NewObjectID(), Role: models.RoleResolver}
	_, err := ListAssignmentCandidates(resolver)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAssignReportRequiresCoordinator(t *testing.T) {
	submitter := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSubmitter}
	_, err := AssignReport(primitive.NewObjectID(), submitter, "7", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAssignReportRequiresStaffID(t *testing.T) {
	coordinator := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCoordinator}

	var validation *ValidationError
	_, err := AssignReport(primitive.NewObjectID(), coordinator, "  ", "")
	assert.ErrorAs(t, err, &validation)
}

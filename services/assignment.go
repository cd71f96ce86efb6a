package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"campusfix/database"
	"campusfix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Candidate a resolver offered for assignment together with their current
// open workload.
type Candidate struct {
	User models.User `json:"user"`
	Load int         `json:"load"`
}

// ListAssignmentCandidates enumerates all resolvers sorted so the
// least-busy one is offered first. The ordering is advisory but must be
// reproducible: load ascending, ties by name case-insensitive, then by
// staff identifier.
func ListAssignmentCandidates(actor *models.User) ([]Candidate, error) {
	if actor.Role != models.RoleCoordinator {
		return nil, ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.UserCollection.Find(ctx, bson.M{"role": models.RoleResolver})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var resolvers []models.User
	if err := cursor.All(ctx, &resolvers); err != nil {
		return nil, err
	}

	loads, err := openLoadByAssignee(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(resolvers))
	for _, r := range resolvers {
		r.Password = ""
		candidates = append(candidates, Candidate{User: r, Load: loads[r.ID]})
	}
	sortCandidates(candidates)
	return candidates, nil
}

// openLoadByAssignee counts in-progress reports per resolver
func openLoadByAssignee(ctx context.Context) (map[primitive.ObjectID]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.StatusInProgress}}},
		{{Key: "$group", Value: bson.M{"_id": "$assignee_id", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := db.ReportCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    *primitive.ObjectID `bson:"_id"`
		Count int                 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	loads := make(map[primitive.ObjectID]int, len(rows))
	for _, row := range rows {
		if row.ID != nil {
			loads[*row.ID] = row.Count
		}
	}
	return loads, nil
}

func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Load != candidates[j].Load {
			return candidates[i].Load < candidates[j].Load
		}
		ni := strings.ToLower(candidates[i].User.DisplayName)
		nj := strings.ToLower(candidates[j].User.DisplayName)
		if ni != nj {
			return ni < nj
		}
		return candidates[i].User.StaffID < candidates[j].User.StaffID
	})
}

// AssignReport attaches a resolver to a pending report and moves it to
// in-progress in one atomic update. The filter re-checks that the report
// is still pending and unassigned, so two coordinators racing on the same
// report leave exactly one winner; the loser gets InvalidState.
func AssignReport(reportID primitive.ObjectID, actor *models.User, staffID, note string) (models.Report, error) {
	if actor.Role != models.RoleCoordinator {
		return models.Report{}, ErrUnauthorized
	}
	if strings.TrimSpace(staffID) == "" {
		return models.Report{}, validationErrorf("staff id is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var resolver models.User
	err := db.UserCollection.FindOne(ctx, bson.M{
		"staff_id": staffID,
		"role":     models.RoleResolver,
	}).Decode(&resolver)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Report{}, ErrNotFound
	}
	if err != nil {
		return models.Report{}, err
	}

	set := bson.M{
		"status":            models.StatusInProgress,
		"assignee_id":       resolver.ID,
		"assignee_name":     resolver.DisplayName,
		"was_ever_assigned": true,
		"updated_at":        time.Now().UTC(),
	}
	if note != "" {
		set["assignment_note"] = note
	}

	filter := bson.M{
		"_id":         reportID,
		"status":      models.StatusPending,
		"assignee_id": bson.M{"$exists": false},
	}

	result, err := db.ReportCollection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.Report{}, err
	}
	if result.MatchedCount == 0 {
		return models.Report{}, classifyAssignFailure(reportID)
	}
	return models.GetReportByID(reportID)
}

// classifyAssignFailure distinguishes a missing report from one that has
// left pending or is already assigned.
func classifyAssignFailure(reportID primitive.ObjectID) error {
	_, err := models.GetReportByID(reportID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if errors.Is(err, models.ErrUnknownStatus) {
		return validationErrorf("report %s has an unrecognized status", reportID.Hex())
	}
	if err != nil {
		return err
	}
	// either the report left pending or it is pending with a resolver
	// already attached; both block assignment
	return ErrInvalidState
}

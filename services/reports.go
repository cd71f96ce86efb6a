package services

import (
	"errors"
	"strings"

	"campusfix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateReportInput fields a submitter supplies when filing a report
type CreateReportInput struct {
	Title       string
	Description string
	Building    string
	Room        string
	Priority    string
	PhotoURL    string
}

// CreateReport files a new report as pending
func CreateReport(actor *models.User, input CreateReportInput) (models.Report, error) {
	if actor.Role != models.RoleSubmitter {
		return models.Report{}, ErrUnauthorized
	}
	if strings.TrimSpace(input.Title) == "" {
		return models.Report{}, validationErrorf("title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return models.Report{}, validationErrorf("description is required")
	}
	if strings.TrimSpace(input.Building) == "" || strings.TrimSpace(input.Room) == "" {
		return models.Report{}, validationErrorf("building and room are required")
	}
	if !models.ValidPriority(input.Priority) {
		return models.Report{}, validationErrorf("priority must be low, medium, high or urgent")
	}

	report := models.Report{
		Title:       input.Title,
		Description: input.Description,
		Location:    models.Location{Building: input.Building, Room: input.Room},
		Priority:    input.Priority,
		PhotoURL:    input.PhotoURL,

		SubmitterID:   actor.ID,
		SubmitterName: actor.DisplayName,
	}
	return models.InsertReport(report)
}

// relevantFilter scopes a report query to what the user's role may see:
// submitters their own reports, resolvers their current assignments,
// coordinators everything.
func relevantFilter(user *models.User) bson.M {
	switch user.Role {
	case models.RoleSubmitter:
		return bson.M{"submitter_id": user.ID}
	case models.RoleResolver:
		return bson.M{"assignee_id": user.ID}
	default:
		return bson.M{}
	}
}

// ListReportsFor returns the reports relevant to the user, with the
// internal logs stripped for submitters.
func ListReportsFor(user *models.User) ([]models.Report, error) {
	reports, err := models.FindReports(relevantFilter(user))
	if err != nil {
		if errors.Is(err, models.ErrUnknownStatus) {
			return nil, validationErrorf("a stored report has an unrecognized status")
		}
		return nil, err
	}

	if user.Role == models.RoleSubmitter {
		for i := range reports {
			reports[i] = reports[i].ForSubmitter()
		}
	}
	return reports, nil
}

// GetReportFor fetches one report under the same visibility rules as
// ListReportsFor.
func GetReportFor(user *models.User, reportID primitive.ObjectID) (models.Report, error) {
	report, err := models.GetReportByID(reportID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Report{}, ErrNotFound
	}
	if errors.Is(err, models.ErrUnknownStatus) {
		return models.Report{}, validationErrorf("report %s has an unrecognized status", reportID.Hex())
	}
	if err != nil {
		return models.Report{}, err
	}

	switch user.Role {
	case models.RoleSubmitter:
		if report.SubmitterID != user.ID {
			return models.Report{}, ErrUnauthorized
		}
		return report.ForSubmitter(), nil
	case models.RoleResolver:
		if report.AssigneeID == nil || *report.AssigneeID != user.ID {
			return models.Report{}, ErrUnauthorized
		}
	}
	return report, nil
}

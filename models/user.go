package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles are fixed at registration and never change afterwards.
const (
	RoleSubmitter   = "submitter"
	RoleResolver    = "resolver"
	RoleCoordinator = "coordinator"
)

type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username    string             `json:"username" bson:"username"`
	Password    string             `json:"password,omitempty" bson:"password"`
	Email       string             `json:"email" bson:"email"`
	Role        string             `json:"role" bson:"role"`
	DisplayName string             `json:"displayName" bson:"display_name"`
	AvatarURL   string             `json:"avatarUrl,omitempty" bson:"avatar_url,omitempty"`
	// StaffID short numeric identifier for resolvers and coordinators
	StaffID string `json:"staffId,omitempty" bson:"staff_id,omitempty"`
	// StudentID identifier for submitters
	StudentID string `json:"studentId,omitempty" bson:"student_id,omitempty"`
}

// ValidRole reports whether s is one of the three fixed roles
func ValidRole(s string) bool {
	switch s {
	case RoleSubmitter, RoleResolver, RoleCoordinator:
		return true
	}
	return false
}

// IsStaff reports whether the role carries a staff identifier
func (u *User) IsStaff() bool {
	return u.Role == RoleResolver || u.Role == RoleCoordinator
}

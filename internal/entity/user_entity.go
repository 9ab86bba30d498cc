package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser            UserRole = "user"
	UserRoleHelper          UserRole = "helper"
	UserRoleCounselor       UserRole = "counselor"
	UserRoleCrisisResponder UserRole = "crisis_responder"
	UserRoleAdmin           UserRole = "admin"

	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// IsHelperRole reports whether the role grants automatic membership of the
// helpers broadcast group.
func (r UserRole) IsHelperRole() bool {
	return r == UserRoleHelper || r == UserRoleCounselor || r == UserRoleCrisisResponder
}

// IsValid guards against persisting roles outside the closed set.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleHelper, UserRoleCounselor, UserRoleCrisisResponder, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	Role         UserRole
	Status       UserStatus
	SkillLevel   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

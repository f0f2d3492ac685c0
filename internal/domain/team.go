package domain

import (
	"strings"
	"time"
)

type Team struct {
	ID          string
	Name        string
	Description string
	Color       string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

type TeamMember struct {
	ID       string
	TeamID   string
	UserID   string
	Role     Role
	JoinedAt time.Time
	User     *User
}

// TeamInput - поля команды, которые задает пользователь
type TeamInput struct {
	Name        string
	Description string
	Color       string
}

func (in TeamInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", "team name is required")
	}
	return nil
}

// TeamUpdate - частичное обновление команды; nil означает "не менять"
type TeamUpdate struct {
	Name        *string
	Description *string
	Color       *string
}

func (u TeamUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return NewValidationError("name", "team name is required")
	}
	return nil
}

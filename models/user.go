package models

import "time"

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleTeamMember UserRole = "team_member"
)

// ValidRoles is the closed set accepted on registration and role updates
var ValidRoles = map[UserRole]bool{
	RoleAdmin:      true,
	RoleManager:    true,
	RoleTeamMember: true,
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserUID      string    `json:"user_uid" gorm:"uniqueIndex;not null"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'team_member'"`
	Country      string    `json:"country"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

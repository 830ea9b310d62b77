package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleInstitutionAdmin UserRole = "institution_admin"
	RoleTeacher          UserRole = "teacher"
	RoleStudent          UserRole = "student"
)

// User is the login account backing every person in the system: institution
// admins, teachers and students. Role lives on the Profile and is fixed at
// creation time.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null;size:150"`
	// Nullable so accounts issued by admin flows (no email collected) don't
	// collide on the unique index.
	Email        *string `json:"email" gorm:"uniqueIndex;size:255"`
	PasswordHash string  `json:"-" gorm:"not null;size:255"`
	FirstName    string `json:"first_name" gorm:"size:100"`
	LastName     string `json:"last_name" gorm:"size:100"`

	// Set for accounts issued with an initial credential (password equal to
	// the natural id); cleared on first rotation.
	MustChangePassword bool `json:"must_change_password" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `json:"profile,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name the way portal login matches them.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Profile carries the role tag and tenant membership for a User.
type Profile struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	UserID        uint     `json:"user_id" gorm:"uniqueIndex;not null"`
	Role          UserRole `json:"role" gorm:"not null;size:20"`
	InstitutionID uint     `json:"institution_id" gorm:"index;not null"`
	Phone         string   `json:"phone" gorm:"size:15"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// Student is an enrollment record, one-to-one with its login account and
// optionally linked to a single course. The course link is nulled when the
// course is deleted.
type Student struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	InstitutionID  uint            `json:"institution_id" gorm:"index;not null"`
	CourseID       *uint           `json:"course_id" gorm:"index"`
	StudentID      string          `json:"student_id" gorm:"uniqueIndex;not null;size:20"`
	AcademicYear   string          `json:"academic_year" gorm:"size:20"`
	Gender         Gender          `json:"gender" gorm:"size:1;default:'M'"`
	DateOfBirth    *datatypes.Date `json:"date_of_birth"`
	Address        string          `json:"address" gorm:"type:text"`
	ParentName     string          `json:"parent_name" gorm:"size:150"`
	ParentPhone    string          `json:"parent_phone" gorm:"size:15"`
	BloodGroup     string          `json:"blood_group" gorm:"size:5"`
	EnrollmentDate datatypes.Date  `json:"enrollment_date"`
	GPA            float64         `json:"gpa" gorm:"not null;default:0"`
	Status         StudentStatus   `json:"status" gorm:"size:20;default:'active'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User        *User        `json:"user,omitempty"`
	Institution *Institution `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Course      *Course      `json:"course,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}

func (Student) TableName() string {
	return "students"
}

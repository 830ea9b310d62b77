package models

import (
	"time"
)

type GradeLetter string

const (
	GradeA GradeLetter = "A"
	GradeB GradeLetter = "B"
	GradeC GradeLetter = "C"
	GradeD GradeLetter = "D"
	GradeF GradeLetter = "F"
)

// Grade is one ledger row per (student, course) pair; the composite index
// rejects a second insertion for the same pair.
type Grade struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	StudentID uint        `json:"student_id" gorm:"uniqueIndex:idx_grades_student_course;not null"`
	CourseID  uint        `json:"course_id" gorm:"uniqueIndex:idx_grades_student_course;not null"`
	Grade     GradeLetter `json:"grade" gorm:"not null;size:1"`
	Marks     float64     `json:"marks" gorm:"not null"`

	DateAssigned time.Time `json:"date_assigned" gorm:"autoCreateTime"`

	Student *Student `json:"student,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Course  *Course  `json:"course,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (Grade) TableName() string {
	return "grades"
}

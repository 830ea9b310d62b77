package models

import "time"

// Course belongs to one institution; the code is unique per institution, which
// the composite index enforces at the storage layer so concurrent creates of
// the same code surface as a duplicate-key error rather than a silent
// overwrite.
type Course struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	InstitutionID  uint    `json:"institution_id" gorm:"uniqueIndex:idx_courses_institution_code;not null"`
	Code           string  `json:"code" gorm:"uniqueIndex:idx_courses_institution_code;not null;size:20"`
	Name           string  `json:"name" gorm:"not null;size:200"`
	Description    string  `json:"description" gorm:"type:text"`
	Credits        int     `json:"credits" gorm:"not null;default:3"`
	DurationMonths int     `json:"duration_months" gorm:"not null;default:0"`
	Department     string  `json:"department" gorm:"size:100"`
	TuitionFee     float64 `json:"tuition_fee" gorm:"type:decimal(10,2);not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Institution *Institution `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Teachers    []*Teacher   `json:"teachers,omitempty" gorm:"many2many:course_teachers"`
}

func (Course) TableName() string {
	return "courses"
}

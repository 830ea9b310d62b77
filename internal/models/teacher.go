package models

import (
	"time"

	"gorm.io/datatypes"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

type ContractType string

const (
	ContractFullTime ContractType = "Full-Time"
	ContractPartTime ContractType = "Part-Time"
	ContractContract ContractType = "Contract"
	ContractGuest    ContractType = "Guest"
)

// Teacher is a staff record, one-to-one with its login account. The employee
// id is globally unique and doubles as the initial credential.
type Teacher struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	InstitutionID uint            `json:"institution_id" gorm:"index;not null"`
	EmployeeID    string          `json:"employee_id" gorm:"uniqueIndex;not null;size:20"`
	Department    string          `json:"department" gorm:"not null;size:100"`
	Qualification string          `json:"qualification" gorm:"size:200"`
	Gender        Gender          `json:"gender" gorm:"size:1;default:'M'"`
	DateOfBirth   *datatypes.Date `json:"date_of_birth"`
	Address       string          `json:"address" gorm:"type:text"`
	HireDate      datatypes.Date  `json:"hire_date"`
	Salary        float64         `json:"salary" gorm:"type:decimal(12,2);not null;default:0"`
	ContractType  ContractType    `json:"contract_type" gorm:"size:20;default:'Full-Time'"`
	PhotoURL      *string         `json:"photo_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User        *User        `json:"user,omitempty"`
	Institution *Institution `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Courses     []*Course    `json:"courses,omitempty" gorm:"many2many:course_teachers"`
}

func (Teacher) TableName() string {
	return "teachers"
}

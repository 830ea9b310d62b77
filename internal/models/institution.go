package models

import "time"

// Institution is a tenant. Every course, teacher, student and announcement
// belongs to exactly one institution, and one admin account owns it.
type Institution struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"uniqueIndex;not null;size:200"`
	AdminID         uint   `json:"admin_id" gorm:"uniqueIndex;not null"`
	Email           string `json:"email" gorm:"size:255"`
	Phone           string `json:"phone" gorm:"size:15"`
	Address         string `json:"address" gorm:"type:text"`
	EstablishedYear int    `json:"established_year"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Admin *User `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
}

func (Institution) TableName() string {
	return "institutions"
}

// News is an announcement posted by an institution admin. Lookups are always
// scoped to the owning institution.
type News struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	InstitutionID uint   `json:"institution_id" gorm:"index;not null"`
	Content       string `json:"content" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Institution *Institution `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (News) TableName() string {
	return "news"
}

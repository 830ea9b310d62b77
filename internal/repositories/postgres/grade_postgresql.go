package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

type GradePostgreSQL struct {
	db *gorm.DB
}

func NewGradePostgreSQL(db *gorm.DB) repositories.GradeRepository {
	return &GradePostgreSQL{db: db}
}

func (g *GradePostgreSQL) Create(ctx context.Context, grade *models.Grade) error {
	if err := g.db.WithContext(ctx).Create(grade).Error; err != nil {
		return fmt.Errorf("failed to create grade: %w", translate(err))
	}
	return nil
}

func (g *GradePostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := g.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("date_assigned DESC").
		Find(&grades).Error
	if err != nil {
		return nil, translate(err)
	}
	return grades, nil
}

func (g *GradePostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := g.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.User").
		Where("course_id = ?", courseID).
		Order("date_assigned DESC").
		Find(&grades).Error
	if err != nil {
		return nil, translate(err)
	}
	return grades, nil
}

func (g *GradePostgreSQL) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := g.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.User").
		Preload("Course").
		Joins("JOIN students st ON st.id = grades.student_id").
		Where("st.institution_id = ?", institutionID).
		Order("grades.date_assigned DESC").
		Find(&grades).Error
	if err != nil {
		return nil, translate(err)
	}
	return grades, nil
}

func (g *GradePostgreSQL) DeleteByCourse(ctx context.Context, courseID uint) error {
	err := g.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Grade{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete grades for course: %w", translate(err))
	}
	return nil
}

func (g *GradePostgreSQL) DeleteByStudent(ctx context.Context, studentID uint) error {
	err := g.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.Grade{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete grades for student: %w", translate(err))
	}
	return nil
}

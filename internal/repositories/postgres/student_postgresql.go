package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", translate(err))
	}
	return nil
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id, institutionID uint) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("id = ? AND institution_id = ?", id, institutionID).
		First(&student).Error
	if err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("user_id = ?", userID).
		First(&student).Error
	if err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("student_id = ?", studentID).
		First(&student).Error
	if err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

func (s *StudentPostgreSQL) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Student, error) {
	var students []*models.Student
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("institution_id = ?", institutionID).
		Order("student_id ASC").
		Find(&students).Error
	if err != nil {
		return nil, translate(err)
	}
	return students, nil
}

func (s *StudentPostgreSQL) ListByCourses(ctx context.Context, courseIDs []uint) ([]*models.Student, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var students []*models.Student
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("course_id IN ?", courseIDs).
		Order("student_id ASC").
		Find(&students).Error
	if err != nil {
		return nil, translate(err)
	}
	return students, nil
}

func (s *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student: %w", translate(err))
	}
	return nil
}

func (s *StudentPostgreSQL) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Student{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete student: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

type TeacherPostgreSQL struct {
	db *gorm.DB
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &TeacherPostgreSQL{db: db}
}

func (t *TeacherPostgreSQL) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := t.db.WithContext(ctx).Create(teacher).Error; err != nil {
		return fmt.Errorf("failed to create teacher: %w", translate(err))
	}
	return nil
}

func (t *TeacherPostgreSQL) GetByID(ctx context.Context, id, institutionID uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := t.db.WithContext(ctx).
		Preload("User").
		Preload("Courses").
		Where("id = ? AND institution_id = ?", id, institutionID).
		First(&teacher).Error
	if err != nil {
		return nil, translate(err)
	}
	return &teacher, nil
}

func (t *TeacherPostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := t.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&teacher).Error
	if err != nil {
		return nil, translate(err)
	}
	return &teacher, nil
}

func (t *TeacherPostgreSQL) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := t.db.WithContext(ctx).
		Preload("User").
		Where("employee_id = ?", employeeID).
		First(&teacher).Error
	if err != nil {
		return nil, translate(err)
	}
	return &teacher, nil
}

func (t *TeacherPostgreSQL) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	err := t.db.WithContext(ctx).
		Preload("User").
		Preload("Courses").
		Where("institution_id = ?", institutionID).
		Order("employee_id ASC").
		Find(&teachers).Error
	if err != nil {
		return nil, translate(err)
	}
	return teachers, nil
}

func (t *TeacherPostgreSQL) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := t.db.WithContext(ctx).Save(teacher).Error; err != nil {
		return fmt.Errorf("failed to update teacher: %w", translate(err))
	}
	return nil
}

func (t *TeacherPostgreSQL) Delete(ctx context.Context, id uint) error {
	res := t.db.WithContext(ctx).Delete(&models.Teacher{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete teacher: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (t *TeacherPostgreSQL) AssignedCourseIDs(ctx context.Context, teacherID uint) ([]uint, error) {
	var ids []uint
	err := t.db.WithContext(ctx).
		Table("course_teachers").
		Where("teacher_id = ?", teacherID).
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

func (t *TeacherPostgreSQL) AssignCourses(ctx context.Context, teacherID uint, courseIDs []uint) error {
	if len(courseIDs) == 0 {
		return nil
	}
	courses := make([]*models.Course, len(courseIDs))
	for i, id := range courseIDs {
		courses[i] = &models.Course{ID: id}
	}
	err := t.db.WithContext(ctx).
		Model(&models.Teacher{ID: teacherID}).
		Association("Courses").
		Append(courses)
	if err != nil {
		return fmt.Errorf("failed to assign courses: %w", translate(err))
	}
	return nil
}

func (t *TeacherPostgreSQL) UnassignCourses(ctx context.Context, teacherID uint, courseIDs []uint) error {
	if len(courseIDs) == 0 {
		return nil
	}
	courses := make([]*models.Course, len(courseIDs))
	for i, id := range courseIDs {
		courses[i] = &models.Course{ID: id}
	}
	err := t.db.WithContext(ctx).
		Model(&models.Teacher{ID: teacherID}).
		Association("Courses").
		Delete(courses)
	if err != nil {
		return fmt.Errorf("failed to unassign courses: %w", translate(err))
	}
	return nil
}

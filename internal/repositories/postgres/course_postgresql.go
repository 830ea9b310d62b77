package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", translate(err))
	}
	return nil
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, id, institutionID uint) (*models.Course, error) {
	var course models.Course
	err := c.db.WithContext(ctx).
		Preload("Teachers").
		Preload("Teachers.User").
		Where("id = ? AND institution_id = ?", id, institutionID).
		First(&course).Error
	if err != nil {
		return nil, translate(err)
	}
	return &course, nil
}

func (c *CoursePostgreSQL) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Course, error) {
	var courses []*models.Course
	err := c.db.WithContext(ctx).
		Preload("Teachers").
		Preload("Teachers.User").
		Where("institution_id = ?", institutionID).
		Order("code ASC").
		Find(&courses).Error
	if err != nil {
		return nil, translate(err)
	}
	return courses, nil
}

func (c *CoursePostgreSQL) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	var courses []*models.Course
	err := c.db.WithContext(ctx).
		Joins("JOIN course_teachers ct ON ct.course_id = courses.id").
		Where("ct.teacher_id = ?", teacherID).
		Order("courses.code ASC").
		Find(&courses).Error
	if err != nil {
		return nil, translate(err)
	}
	return courses, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", translate(err))
	}
	return nil
}

func (c *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	res := c.db.WithContext(ctx).Delete(&models.Course{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete course: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (c *CoursePostgreSQL) AssignedTeacherIDs(ctx context.Context, courseID uint) ([]uint, error) {
	var ids []uint
	err := c.db.WithContext(ctx).
		Table("course_teachers").
		Where("course_id = ?", courseID).
		Pluck("teacher_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

func (c *CoursePostgreSQL) AssignTeachers(ctx context.Context, courseID uint, teacherIDs []uint) error {
	if len(teacherIDs) == 0 {
		return nil
	}
	teachers := make([]*models.Teacher, len(teacherIDs))
	for i, id := range teacherIDs {
		teachers[i] = &models.Teacher{ID: id}
	}
	err := c.db.WithContext(ctx).
		Model(&models.Course{ID: courseID}).
		Association("Teachers").
		Append(teachers)
	if err != nil {
		return fmt.Errorf("failed to assign teachers: %w", translate(err))
	}
	return nil
}

func (c *CoursePostgreSQL) UnassignTeachers(ctx context.Context, courseID uint, teacherIDs []uint) error {
	if len(teacherIDs) == 0 {
		return nil
	}
	teachers := make([]*models.Teacher, len(teacherIDs))
	for i, id := range teacherIDs {
		teachers[i] = &models.Teacher{ID: id}
	}
	err := c.db.WithContext(ctx).
		Model(&models.Course{ID: courseID}).
		Association("Teachers").
		Delete(teachers)
	if err != nil {
		return fmt.Errorf("failed to unassign teachers: %w", translate(err))
	}
	return nil
}

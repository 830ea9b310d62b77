package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

// ExportService renders tenant data as spreadsheet workbooks for download.
type ExportService interface {
	StudentRoster(ctx context.Context, actx AuthContext) (*excelize.File, error)
	GradeSheet(ctx context.Context, actx AuthContext) (*excelize.File, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) StudentRoster(ctx context.Context, actx AuthContext) (*excelize.File, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}

	students, err := s.repo.Student().ListByInstitution(ctx, actx.InstitutionID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Students"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student ID", "Name", "Academic Year", "Course", "GPA", "Status", "Parent Name", "Parent Phone", "Enrolled"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, st := range students {
		name := ""
		if st.User != nil {
			name = st.User.FullName()
		}
		course := ""
		if st.Course != nil {
			course = st.Course.Name
		}
		values := []any{
			st.StudentID,
			name,
			st.AcademicYear,
			course,
			st.GPA,
			string(st.Status),
			st.ParentName,
			st.ParentPhone,
			time.Time(st.EnrollmentDate).Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write roster row: %w", err)
			}
		}
	}

	s.logger.Info("student roster exported", "institution_id", actx.InstitutionID, "rows", len(students))
	return f, nil
}

func (s *exportService) GradeSheet(ctx context.Context, actx AuthContext) (*excelize.File, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}

	grades, err := s.repo.Grade().ListByInstitution(ctx, actx.InstitutionID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Grades"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student ID", "Student", "Course Code", "Course", "Grade", "Marks", "Date Assigned"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, g := range grades {
		values := gradeRow(g)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write grade row: %w", err)
			}
		}
	}

	s.logger.Info("grade sheet exported", "institution_id", actx.InstitutionID, "rows", len(grades))
	return f, nil
}

func gradeRow(g *models.Grade) []any {
	studentID, studentName := "", ""
	if g.Student != nil {
		studentID = g.Student.StudentID
		if g.Student.User != nil {
			studentName = g.Student.User.FullName()
		}
	}
	courseCode, courseName := "", ""
	if g.Course != nil {
		courseCode = g.Course.Code
		courseName = g.Course.Name
	}
	return []any{
		studentID,
		studentName,
		courseCode,
		courseName,
		string(g.Grade),
		g.Marks,
		g.DateAssigned.Format("2006-01-02"),
	}
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/config"
	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/sessions"
	"github.com/edusync-platform/school-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	courseHandler    *CourseHandler
	teacherHandler   *TeacherHandler
	studentHandler   *StudentHandler
	gradeHandler     *GradeHandler
	newsHandler      *NewsHandler
	dashboardHandler *DashboardHandler
	exportHandler    *ExportHandler
	healthHandler    *HealthHandler
	authMiddleware   *SessionAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessionStore sessions.Store,
	sessionConfig config.SessionConfig,
	repo repositories.Repository,
	logger utils.Logger,
) *HandlerManager {
	authMiddleware := NewSessionAuthMiddleware(sessionStore, repo.User(), sessionConfig.CookieName, logger)

	return &HandlerManager{
		authHandler: NewAuthHandler(
			serviceManager.Auth(),
			sessionStore,
			sessionConfig.CookieName,
			int(sessionConfig.TTL.Seconds()),
			sessionConfig.CookieSecure,
			logger,
		),
		courseHandler:    NewCourseHandler(serviceManager.Course(), logger),
		teacherHandler:   NewTeacherHandler(serviceManager.Teacher(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), logger),
		gradeHandler:     NewGradeHandler(serviceManager.Grade(), logger),
		newsHandler:      NewNewsHandler(serviceManager.News(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		exportHandler:    NewExportHandler(serviceManager.Export(), logger),
		healthHandler:    NewHealthHandler(repo, logger),
		authMiddleware:   authMiddleware,
	}
}

// SetupRoutes wires the full HTTP surface. Mutations are POST-only, matching
// the form-driven contract.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthHandler.Health)

	// Public entry points.
	router.POST("/signup/", hm.authHandler.Signup)
	router.POST("/login/", hm.authHandler.Login)

	authed := router.Group("/")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.GET("/logout/", hm.authHandler.Logout)
		// Reachable while the initial credential is still in force.
		authed.POST("/change-password/", hm.authHandler.ChangePassword)
	}

	requireAdmin := hm.authMiddleware.RequireRoleMiddleware(models.RoleInstitutionAdmin)
	rotated := hm.authMiddleware.RequireRotatedPassword()

	admin := router.Group("/")
	admin.Use(hm.authMiddleware.AuthMiddleware(), requireAdmin, rotated)
	{
		admin.GET("/dashboard/", hm.dashboardHandler.AdminDashboard)

		// Portal logins switch the admin session into a teacher or student
		// account.
		admin.POST("/teacher/login/", hm.authHandler.TeacherPortalLogin)
		admin.POST("/student/login/", hm.authHandler.StudentPortalLogin)

		courses := admin.Group("/courses")
		{
			courses.GET("/", hm.courseHandler.ListCourses)
			courses.GET("/:id/", hm.courseHandler.GetCourse)
			courses.POST("/add/", hm.courseHandler.AddCourse)
			courses.POST("/:id/edit/", hm.courseHandler.EditCourse)
			courses.POST("/:id/delete/", hm.courseHandler.DeleteCourse)
		}

		teachers := admin.Group("/teachers")
		{
			teachers.GET("/", hm.teacherHandler.ListTeachers)
			teachers.GET("/:id/", hm.teacherHandler.GetTeacher)
			teachers.POST("/add/", hm.teacherHandler.AddTeacher)
			teachers.POST("/:id/edit/", hm.teacherHandler.EditTeacher)
			teachers.POST("/:id/delete/", hm.teacherHandler.DeleteTeacher)
		}

		students := admin.Group("/students")
		{
			students.GET("/", hm.studentHandler.ListStudents)
			students.GET("/:id/", hm.studentHandler.GetStudent)
			students.POST("/add/", hm.studentHandler.AddStudent)
			students.POST("/:id/edit/", hm.studentHandler.EditStudent)
			students.POST("/:id/delete/", hm.studentHandler.DeleteStudent)
		}

		grades := admin.Group("/grades")
		{
			grades.GET("/", hm.gradeHandler.ListGrades)
			grades.POST("/add/", hm.gradeHandler.AddGrade)
		}

		news := admin.Group("/news")
		{
			news.GET("/", hm.newsHandler.ListNews)
			news.POST("/add/", hm.newsHandler.AddNews)
			news.POST("/:id/edit/", hm.newsHandler.EditNews)
			news.POST("/:id/delete/", hm.newsHandler.DeleteNews)
		}

		export := admin.Group("/export")
		{
			export.GET("/students/", hm.exportHandler.ExportStudents)
			export.GET("/grades/", hm.exportHandler.ExportGrades)
		}
	}

	teacher := router.Group("/teacher")
	teacher.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), rotated)
	{
		teacher.GET("/dashboard/", hm.teacherHandler.TeacherDashboard)
		teacher.GET("/students/", hm.teacherHandler.TeacherStudents)
	}

	student := router.Group("/student")
	student.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), rotated)
	{
		student.GET("/dashboard/", hm.studentHandler.StudentDashboard)
	}
}

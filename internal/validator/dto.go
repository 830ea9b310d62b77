package validator

// Request DTOs for every mutating operation. Handlers bind these from form or
// JSON bodies; the validate tags are the single source of field rules.

// ===== AUTH =====

type SignupRequest struct {
	InstitutionName string `json:"institution_name" form:"institution_name" validate:"required,min=2,max=200"`
	Username        string `json:"username" form:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=8,max=128"`
	FirstName       string `json:"first_name" form:"first_name" validate:"omitempty,max=100"`
	LastName        string `json:"last_name" form:"last_name" validate:"omitempty,max=100"`
	Phone           string `json:"phone" form:"phone" validate:"omitempty,max=15"`
	Address         string `json:"address" form:"address" validate:"omitempty,max=500"`
	EstablishedYear int    `json:"established_year" form:"established_year" validate:"omitempty,gte=1000,lte=2100"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// PortalLoginRequest switches an admin session into a teacher or student
// account using a display name plus the id-derived code.
type PortalLoginRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=200"`
	Code string `json:"code" form:"code" validate:"required,max=20"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required,min=8,max=128,nefield=CurrentPassword"`
}

// ===== COURSES =====

type CourseCreateRequest struct {
	Code           string  `json:"code" form:"code" validate:"required,max=20"`
	Name           string  `json:"name" form:"name" validate:"required,max=200"`
	Description    string  `json:"description" form:"description" validate:"omitempty,max=2000"`
	Credits        int     `json:"credits" form:"credits" validate:"omitempty,gte=0,lte=60"`
	DurationMonths int     `json:"duration_months" form:"duration_months" validate:"omitempty,gte=0,lte=120"`
	Department     string  `json:"department" form:"department" validate:"omitempty,max=100"`
	TuitionFee     float64 `json:"tuition_fee" form:"tuition_fee" validate:"omitempty,gte=0"`
	TeacherIDs     []uint  `json:"teacher_ids" form:"teacher_ids" validate:"omitempty,dive,gt=0"`
}

type CourseUpdateRequest struct {
	Code           *string  `json:"code" form:"code" validate:"omitempty,max=20"`
	Name           *string  `json:"name" form:"name" validate:"omitempty,max=200"`
	Description    *string  `json:"description" form:"description" validate:"omitempty,max=2000"`
	Credits        *int     `json:"credits" form:"credits" validate:"omitempty,gte=0,lte=60"`
	DurationMonths *int     `json:"duration_months" form:"duration_months" validate:"omitempty,gte=0,lte=120"`
	Department     *string  `json:"department" form:"department" validate:"omitempty,max=100"`
	TuitionFee     *float64 `json:"tuition_fee" form:"tuition_fee" validate:"omitempty,gte=0"`
	TeacherIDs     []uint   `json:"teacher_ids" form:"teacher_ids" validate:"omitempty,dive,gt=0"`
}

// ===== TEACHERS =====

type TeacherCreateRequest struct {
	Name          string  `json:"name" form:"name" validate:"required,max=200"`
	EmployeeID    string  `json:"employee_id" form:"employee_id" validate:"required,max=20"`
	Department    string  `json:"department" form:"department" validate:"required,max=100"`
	Qualification string  `json:"qualification" form:"qualification" validate:"omitempty,max=200"`
	Gender        string  `json:"gender" form:"gender" validate:"omitempty,oneof=M F O"`
	DateOfBirth   string  `json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Phone         string  `json:"phone" form:"phone" validate:"omitempty,max=15"`
	Address       string  `json:"address" form:"address" validate:"omitempty,max=500"`
	Salary        float64 `json:"salary" form:"salary" validate:"omitempty,gte=0"`
	ContractType  string  `json:"contract_type" form:"contract_type" validate:"omitempty,oneof=Full-Time Part-Time Contract Guest"`
	PhotoURL      string  `json:"photo_url" form:"photo_url" validate:"omitempty,url,max=500"`
	CourseIDs     []uint  `json:"course_ids" form:"course_ids" validate:"omitempty,dive,gt=0"`
}

type TeacherUpdateRequest struct {
	Name          *string  `json:"name" form:"name" validate:"omitempty,max=200"`
	EmployeeID    *string  `json:"employee_id" form:"employee_id" validate:"omitempty,max=20"`
	Department    *string  `json:"department" form:"department" validate:"omitempty,max=100"`
	Qualification *string  `json:"qualification" form:"qualification" validate:"omitempty,max=200"`
	Gender        *string  `json:"gender" form:"gender" validate:"omitempty,oneof=M F O"`
	DateOfBirth   *string  `json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Phone         *string  `json:"phone" form:"phone" validate:"omitempty,max=15"`
	Address       *string  `json:"address" form:"address" validate:"omitempty,max=500"`
	Salary        *float64 `json:"salary" form:"salary" validate:"omitempty,gte=0"`
	ContractType  *string  `json:"contract_type" form:"contract_type" validate:"omitempty,oneof=Full-Time Part-Time Contract Guest"`
	PhotoURL      *string  `json:"photo_url" form:"photo_url" validate:"omitempty,url,max=500"`
	CourseIDs     []uint   `json:"course_ids" form:"course_ids" validate:"omitempty,dive,gt=0"`
}

// ===== STUDENTS =====

type StudentCreateRequest struct {
	Name         string  `json:"name" form:"name" validate:"required,max=200"`
	StudentID    string  `json:"student_id" form:"student_id" validate:"required,max=20"`
	AcademicYear string  `json:"academic_year" form:"academic_year" validate:"omitempty,max=20"`
	Gender       string  `json:"gender" form:"gender" validate:"omitempty,oneof=M F O"`
	DateOfBirth  string  `json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address      string  `json:"address" form:"address" validate:"omitempty,max=500"`
	ParentName   string  `json:"parent_name" form:"parent_name" validate:"omitempty,max=150"`
	ParentPhone  string  `json:"parent_phone" form:"parent_phone" validate:"omitempty,max=15"`
	BloodGroup   string  `json:"blood_group" form:"blood_group" validate:"omitempty,max=5"`
	GPA          float64 `json:"gpa" form:"gpa" validate:"omitempty,gte=0,lte=10"`
	CourseID     *uint   `json:"course_id" form:"course_id" validate:"omitempty,gt=0"`
}

type StudentUpdateRequest struct {
	Name         *string  `json:"name" form:"name" validate:"omitempty,max=200"`
	StudentID    *string  `json:"student_id" form:"student_id" validate:"omitempty,max=20"`
	AcademicYear *string  `json:"academic_year" form:"academic_year" validate:"omitempty,max=20"`
	Gender       *string  `json:"gender" form:"gender" validate:"omitempty,oneof=M F O"`
	DateOfBirth  *string  `json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address      *string  `json:"address" form:"address" validate:"omitempty,max=500"`
	ParentName   *string  `json:"parent_name" form:"parent_name" validate:"omitempty,max=150"`
	ParentPhone  *string  `json:"parent_phone" form:"parent_phone" validate:"omitempty,max=15"`
	BloodGroup   *string  `json:"blood_group" form:"blood_group" validate:"omitempty,max=5"`
	GPA          *float64 `json:"gpa" form:"gpa" validate:"omitempty,gte=0,lte=10"`
	Status       *string  `json:"status" form:"status" validate:"omitempty,oneof=active inactive"`
	CourseID     *uint    `json:"course_id" form:"course_id" validate:"omitempty,gte=0"`
}

// ===== GRADES =====

type GradeCreateRequest struct {
	StudentID uint    `json:"student_id" form:"student_id" validate:"required,gt=0"`
	CourseID  uint    `json:"course_id" form:"course_id" validate:"required,gt=0"`
	Grade     string  `json:"grade" form:"grade" validate:"required,oneof=A B C D F"`
	Marks     float64 `json:"marks" form:"marks" validate:"gte=0,lte=100"`
}

// ===== NEWS =====

type NewsCreateRequest struct {
	Content string `json:"content" form:"content" validate:"required,max=5000"`
}

type NewsUpdateRequest struct {
	Content string `json:"content" form:"content" validate:"required,max=5000"`
}

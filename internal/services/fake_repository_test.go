package services

import (
	"context"
	"sort"
	"sync"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

// fakeRepository is an in-memory repositories.Repository that enforces the
// same uniqueness constraints as the database schema, so the services'
// duplicate handling can be exercised without a database.
type fakeRepository struct {
	mu sync.Mutex

	users        map[uint]*models.User
	profiles     map[uint]*models.Profile
	institutions map[uint]*models.Institution
	courses      map[uint]*models.Course
	teachers     map[uint]*models.Teacher
	students     map[uint]*models.Student
	grades       map[uint]*models.Grade
	news         map[uint]*models.News

	// courseID -> teacherID set
	courseTeachers map[uint]map[uint]bool

	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:          make(map[uint]*models.User),
		profiles:       make(map[uint]*models.Profile),
		institutions:   make(map[uint]*models.Institution),
		courses:        make(map[uint]*models.Course),
		teachers:       make(map[uint]*models.Teacher),
		students:       make(map[uint]*models.Student),
		grades:         make(map[uint]*models.Grade),
		news:           make(map[uint]*models.News),
		courseTeachers: make(map[uint]map[uint]bool),
	}
}

func (r *fakeRepository) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepository) User() repositories.UserRepository               { return (*fakeUserRepo)(r) }
func (r *fakeRepository) Profile() repositories.ProfileRepository        { return (*fakeProfileRepo)(r) }
func (r *fakeRepository) Institution() repositories.InstitutionRepository { return (*fakeInstitutionRepo)(r) }
func (r *fakeRepository) Course() repositories.CourseRepository          { return (*fakeCourseRepo)(r) }
func (r *fakeRepository) Teacher() repositories.TeacherRepository        { return (*fakeTeacherRepo)(r) }
func (r *fakeRepository) Student() repositories.StudentRepository        { return (*fakeStudentRepo)(r) }
func (r *fakeRepository) Grade() repositories.GradeRepository            { return (*fakeGradeRepo)(r) }
func (r *fakeRepository) News() repositories.NewsRepository              { return (*fakeNewsRepo)(r) }

// WithTransaction runs fn against the same store. Rollback is not simulated;
// tests that hit a constraint only assert on the returned error.
func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

// ===== users =====

type fakeUserRepo fakeRepository

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
		if u.Email != nil && user.Email != nil && *u.Email == *user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = (*fakeRepository)(r).id()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ===== profiles =====

type fakeProfileRepo fakeRepository

func (r *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == profile.UserID {
			return repositories.ErrDuplicate
		}
	}
	profile.ID = (*fakeRepository)(r).id()
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProfileRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.profiles {
		if p.UserID == userID {
			delete(r.profiles, id)
		}
	}
	return nil
}

// ===== institutions =====

type fakeInstitutionRepo fakeRepository

func (r *fakeInstitutionRepo) Create(ctx context.Context, inst *models.Institution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.institutions {
		if i.Name == inst.Name {
			return repositories.ErrDuplicate
		}
	}
	inst.ID = (*fakeRepository)(r).id()
	copied := *inst
	r.institutions[inst.ID] = &copied
	return nil
}

func (r *fakeInstitutionRepo) GetByID(ctx context.Context, id uint) (*models.Institution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.institutions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *i
	return &copied, nil
}

func (r *fakeInstitutionRepo) GetByAdminID(ctx context.Context, adminID uint) (*models.Institution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.institutions {
		if i.AdminID == adminID {
			copied := *i
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeInstitutionRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.institutions {
		if i.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// ===== courses =====

type fakeCourseRepo fakeRepository

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.InstitutionID == course.InstitutionID && c.Code == course.Code {
			return repositories.ErrDuplicate
		}
	}
	course.ID = (*fakeRepository)(r).id()
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id, institutionID uint) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok || c.InstitutionID != institutionID {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCourseRepo) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Course
	for _, c := range r.courses {
		if c.InstitutionID == institutionID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sortByID(out, func(c *models.Course) uint { return c.ID })
	return out, nil
}

func (r *fakeCourseRepo) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Course
	for courseID, set := range r.courseTeachers {
		if set[teacherID] {
			if c, ok := r.courses[courseID]; ok {
				copied := *c
				out = append(out, &copied)
			}
		}
	}
	sortByID(out, func(c *models.Course) uint { return c.ID })
	return out, nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, c := range r.courses {
		if c.ID != course.ID && c.InstitutionID == course.InstitutionID && c.Code == course.Code {
			return repositories.ErrDuplicate
		}
	}
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
	delete(r.courseTeachers, id)
	// Course deletion nulls the student link, as the schema does.
	for _, s := range r.students {
		if s.CourseID != nil && *s.CourseID == id {
			s.CourseID = nil
		}
	}
	return nil
}

func (r *fakeCourseRepo) AssignedTeacherIDs(ctx context.Context, courseID uint) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []uint
	for tid := range r.courseTeachers[courseID] {
		out = append(out, tid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *fakeCourseRepo) AssignTeachers(ctx context.Context, courseID uint, teacherIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.courseTeachers[courseID] == nil {
		r.courseTeachers[courseID] = make(map[uint]bool)
	}
	for _, tid := range teacherIDs {
		r.courseTeachers[courseID][tid] = true
	}
	return nil
}

func (r *fakeCourseRepo) UnassignTeachers(ctx context.Context, courseID uint, teacherIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tid := range teacherIDs {
		delete(r.courseTeachers[courseID], tid)
	}
	return nil
}

// ===== teachers =====

type fakeTeacherRepo fakeRepository

func (r *fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teachers {
		if t.EmployeeID == teacher.EmployeeID {
			return repositories.ErrDuplicate
		}
	}
	teacher.ID = (*fakeRepository)(r).id()
	copied := *teacher
	r.teachers[teacher.ID] = &copied
	return nil
}

func (r *fakeTeacherRepo) getWithUser(t *models.Teacher) *models.Teacher {
	copied := *t
	if u, ok := r.users[t.UserID]; ok {
		uc := *u
		copied.User = &uc
	}
	return &copied
}

func (r *fakeTeacherRepo) GetByID(ctx context.Context, id, institutionID uint) (*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teachers[id]
	if !ok || t.InstitutionID != institutionID {
		return nil, repositories.ErrNotFound
	}
	return r.getWithUser(t), nil
}

func (r *fakeTeacherRepo) GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teachers {
		if t.UserID == userID {
			return r.getWithUser(t), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTeacherRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teachers {
		if t.EmployeeID == employeeID {
			return r.getWithUser(t), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTeacherRepo) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Teacher
	for _, t := range r.teachers {
		if t.InstitutionID == institutionID {
			out = append(out, r.getWithUser(t))
		}
	}
	sortByID(out, func(t *models.Teacher) uint { return t.ID })
	return out, nil
}

func (r *fakeTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teachers[teacher.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, t := range r.teachers {
		if t.ID != teacher.ID && t.EmployeeID == teacher.EmployeeID {
			return repositories.ErrDuplicate
		}
	}
	copied := *teacher
	r.teachers[teacher.ID] = &copied
	return nil
}

func (r *fakeTeacherRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.teachers, id)
	for _, set := range r.courseTeachers {
		delete(set, id)
	}
	return nil
}

func (r *fakeTeacherRepo) AssignedCourseIDs(ctx context.Context, teacherID uint) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []uint
	for courseID, set := range r.courseTeachers {
		if set[teacherID] {
			out = append(out, courseID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *fakeTeacherRepo) AssignCourses(ctx context.Context, teacherID uint, courseIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cid := range courseIDs {
		if r.courseTeachers[cid] == nil {
			r.courseTeachers[cid] = make(map[uint]bool)
		}
		r.courseTeachers[cid][teacherID] = true
	}
	return nil
}

func (r *fakeTeacherRepo) UnassignCourses(ctx context.Context, teacherID uint, courseIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cid := range courseIDs {
		delete(r.courseTeachers[cid], teacherID)
	}
	return nil
}

// ===== students =====

type fakeStudentRepo fakeRepository

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.StudentID == student.StudentID {
			return repositories.ErrDuplicate
		}
	}
	student.ID = (*fakeRepository)(r).id()
	copied := *student
	r.students[student.ID] = &copied
	return nil
}

func (r *fakeStudentRepo) getWithUser(s *models.Student) *models.Student {
	copied := *s
	if u, ok := r.users[s.UserID]; ok {
		uc := *u
		copied.User = &uc
	}
	return &copied
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id, institutionID uint) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok || s.InstitutionID != institutionID {
		return nil, repositories.ErrNotFound
	}
	return r.getWithUser(s), nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.UserID == userID {
			return r.getWithUser(s), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.StudentID == studentID {
			return r.getWithUser(s), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Student
	for _, s := range r.students {
		if s.InstitutionID == institutionID {
			out = append(out, r.getWithUser(s))
		}
	}
	sortByID(out, func(s *models.Student) uint { return s.ID })
	return out, nil
}

func (r *fakeStudentRepo) ListByCourses(ctx context.Context, courseIDs []uint) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uint]bool, len(courseIDs))
	for _, cid := range courseIDs {
		wanted[cid] = true
	}
	var out []*models.Student
	for _, s := range r.students {
		if s.CourseID != nil && wanted[*s.CourseID] {
			out = append(out, r.getWithUser(s))
		}
	}
	sortByID(out, func(s *models.Student) uint { return s.ID })
	return out, nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[student.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, s := range r.students {
		if s.ID != student.ID && s.StudentID == student.StudentID {
			return repositories.ErrDuplicate
		}
	}
	copied := *student
	r.students[student.ID] = &copied
	return nil
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.students, id)
	return nil
}

// ===== grades =====

type fakeGradeRepo fakeRepository

func (r *fakeGradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.grades {
		if g.StudentID == grade.StudentID && g.CourseID == grade.CourseID {
			return repositories.ErrDuplicate
		}
	}
	grade.ID = (*fakeRepository)(r).id()
	copied := *grade
	r.grades[grade.ID] = &copied
	return nil
}

func (r *fakeGradeRepo) ListByStudent(ctx context.Context, studentID uint) ([]*models.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Grade
	for _, g := range r.grades {
		if g.StudentID == studentID {
			copied := *g
			out = append(out, &copied)
		}
	}
	sortByID(out, func(g *models.Grade) uint { return g.ID })
	return out, nil
}

func (r *fakeGradeRepo) ListByCourse(ctx context.Context, courseID uint) ([]*models.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Grade
	for _, g := range r.grades {
		if g.CourseID == courseID {
			copied := *g
			out = append(out, &copied)
		}
	}
	sortByID(out, func(g *models.Grade) uint { return g.ID })
	return out, nil
}

func (r *fakeGradeRepo) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Grade
	for _, g := range r.grades {
		s, ok := r.students[g.StudentID]
		if ok && s.InstitutionID == institutionID {
			copied := *g
			out = append(out, &copied)
		}
	}
	sortByID(out, func(g *models.Grade) uint { return g.ID })
	return out, nil
}

func (r *fakeGradeRepo) DeleteByCourse(ctx context.Context, courseID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, g := range r.grades {
		if g.CourseID == courseID {
			delete(r.grades, id)
		}
	}
	return nil
}

func (r *fakeGradeRepo) DeleteByStudent(ctx context.Context, studentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, g := range r.grades {
		if g.StudentID == studentID {
			delete(r.grades, id)
		}
	}
	return nil
}

// ===== news =====

type fakeNewsRepo fakeRepository

func (r *fakeNewsRepo) Create(ctx context.Context, news *models.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	news.ID = (*fakeRepository)(r).id()
	copied := *news
	r.news[news.ID] = &copied
	return nil
}

func (r *fakeNewsRepo) GetByID(ctx context.Context, id, institutionID uint) (*models.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.news[id]
	if !ok || n.InstitutionID != institutionID {
		return nil, repositories.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNewsRepo) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.News
	for _, n := range r.news {
		if n.InstitutionID == institutionID {
			copied := *n
			out = append(out, &copied)
		}
	}
	// Newest first.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeNewsRepo) Update(ctx context.Context, news *models.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.news[news.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *news
	r.news[news.ID] = &copied
	return nil
}

func (r *fakeNewsRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.news, id)
	return nil
}

func sortByID[T any](items []*T, id func(*T) uint) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

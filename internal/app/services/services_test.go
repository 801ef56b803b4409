package services

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/config"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/auth"
)

type fixture struct {
	store    *store
	storage  *fakeStorage
	notifier *recordingNotifier
	svc      *Services

	admin, teacher, student, student2 *models.User
	course                            *models.Course
	week1, week2                      *models.Section
	assignment, material              *models.Activity
}

func strPtr(s string) *string { return &s }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	st := newStore()
	repos := &repositories.Repositories{
		UserRepository:       fakeUserRepo{st},
		CourseRepository:     fakeCourseRepo{st},
		SectionRepository:    fakeSectionRepo{st},
		ActivityRepository:   fakeActivityRepo{st},
		SubmissionRepository: fakeSubmissionRepo{st},
	}
	cfg := &config.Config{}
	cfg.Site.Name = "LMS UNIPEM"
	cfg.Site.Description = "Learning Management System UNIPEM"

	f := &fixture{store: st, storage: &fakeStorage{}, notifier: &recordingNotifier{}}
	f.svc = NewServices(repos, f.storage, f.notifier, cfg, zerolog.Nop())

	mkUser := func(username, name string, role models.Role) *models.User {
		u, err := f.svc.UserService.CreateUser(ctx, &dto.CreateUserRequest{
			Name: name, Username: username, Email: username + "@unipem.ac.id", Role: string(role),
		})
		require.NoError(t, err)
		return u
	}
	f.admin = mkUser("admin", "Administrator", models.RoleAdmin)
	f.teacher = mkUser("19850101", "Budi Santoso", models.RoleTeacher)
	f.student = mkUser("2021001", "Andi Mahasiswa", models.RoleStudent)
	f.student2 = mkUser("2021002", "Siti Aminah", models.RoleStudent)

	var err error
	f.course, err = f.svc.CourseService.CreateCourse(ctx, &dto.CourseRequest{
		Code: "inf202", Title: "Pemrograman Web Lanjut", InstructorID: f.teacher.ID,
	})
	require.NoError(t, err)

	f.week1, err = f.svc.SectionService.CreateSection(ctx, f.course.ID, &dto.SectionRequest{Title: "Minggu 1"})
	require.NoError(t, err)
	f.week2, err = f.svc.SectionService.CreateSection(ctx, f.course.ID, &dto.SectionRequest{Title: "Minggu 2"})
	require.NoError(t, err)

	f.material, err = f.svc.ActivityService.CreateActivity(ctx, f.course.ID, &dto.ActivityRequest{
		SectionID: f.week1.ID, Type: "FILE", Title: "Materi Pengantar", ContentURL: strPtr("/files/materi1.pdf"),
	})
	require.NoError(t, err)
	f.assignment, err = f.svc.ActivityService.CreateActivity(ctx, f.course.ID, &dto.ActivityRequest{
		SectionID: f.week2.ID, Type: "ASSIGNMENT", Title: "Tugas 1", DueDate: "2026-01-20T23:59",
	})
	require.NoError(t, err)

	return f
}

func sessionOf(u *models.User) *auth.Session {
	s := auth.NewSession(u)
	return &s
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.AuthService.Login(ctx, " 2021001 ", auth.DefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, session.ID)
	assert.Equal(t, models.RoleStudent, session.Role)
	assert.Equal(t, "Andi Mahasiswa", session.Name)

	_, err = f.svc.AuthService.Login(ctx, "9999999", auth.DefaultPassword)
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, MsgUnknownUsername, err.Error())

	_, err = f.svc.AuthService.Login(ctx, "2021001", "wrong")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, MsgWrongPassword, err.Error())

	me, err := f.svc.AuthService.CurrentUser(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "2021001", me.Username)
}

func TestUserService_CreateDefaultsAndConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.svc.UserService.CreateUser(ctx, &dto.CreateUserRequest{
		Name: "Rina", Username: "2021009", Email: "RINA@Student.unipem.ac.id",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, u.Role)
	assert.Equal(t, "rina@student.unipem.ac.id", u.Email)
	assert.True(t, auth.CheckPassword(u.Password, auth.DefaultPassword))

	_, err = f.svc.UserService.CreateUser(ctx, &dto.CreateUserRequest{
		Name: "Copy", Username: "2021009", Email: "copy@unipem.ac.id",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUserService_UpdateKeepsPasswordWhenEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := f.store.users[f.student.ID].Password

	updated, err := f.svc.UserService.UpdateUser(ctx, f.student.ID, &dto.UpdateUserRequest{
		Name: "Andi M.", Username: "2021001", Email: "andi@unipem.ac.id", Role: "STUDENT", Password: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, before, updated.Password)
	assert.Equal(t, "Andi M.", updated.Name)

	updated, err = f.svc.UserService.UpdateUser(ctx, f.student.ID, &dto.UpdateUserRequest{
		Name: "Andi M.", Username: "2021001", Email: "andi@unipem.ac.id", Role: "STUDENT", Password: strPtr("rahasia99"),
	})
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(updated.Password, "rahasia99"))

	_, err = f.svc.UserService.UpdateUser(ctx, uuid.New(), &dto.UpdateUserRequest{Role: "STUDENT"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserService_ListUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	users, total, err := f.svc.UserService.ListUsers(ctx, "", "ALL", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Equal(t, f.student2.ID, users[0].ID, "newest first")

	users, total, err = f.svc.UserService.ListUsers(ctx, "", "student", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	_, _, err = f.svc.UserService.ListUsers(ctx, "", "DEAN", 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	require.NoError(t, f.svc.UserService.DeleteUser(ctx, f.student2.ID))
	assert.True(t, apperrors.IsNotFound(f.svc.UserService.DeleteUser(ctx, f.student2.ID)))
}

func TestCourseService_CreateRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, "INF202", f.course.Code)
	require.NotNil(t, f.course.Thumbnail)
	assert.Equal(t, dto.DefaultCourseThumbnail, *f.course.Thumbnail)

	_, err := f.svc.CourseService.CreateCourse(ctx, &dto.CourseRequest{
		Code: "INF301", Title: "Kecerdasan Buatan", InstructorID: f.student.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrInstructorInvalid)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.CourseService.CreateCourse(ctx, &dto.CourseRequest{
		Code: "INF302", Title: "Basis Data", InstructorID: uuid.New(),
	})
	assert.ErrorIs(t, err, apperrors.ErrInstructorInvalid)

	_, err = f.svc.CourseService.CreateCourse(ctx, &dto.CourseRequest{
		Code: "INF202", Title: "Duplikat", InstructorID: f.teacher.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)

	byCode, err := f.svc.CourseService.GetCourseByCode(ctx, " inf202 ")
	require.NoError(t, err)
	assert.Equal(t, f.course.ID, byCode.ID)
}

func TestCourseService_UpdateKeepsThumbnail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	updated, err := f.svc.CourseService.UpdateCourse(ctx, f.course.ID, &dto.CourseRequest{
		Code: "INF202", Title: "Pemrograman Web", Category: strPtr("Teknik Informatika"), InstructorID: f.teacher.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pemrograman Web", updated.Title)
	assert.Equal(t, dto.DefaultCourseThumbnail, *updated.Thumbnail)
}

func TestCourseService_DetailAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	detail, err := f.svc.CourseService.GetCourseDetail(ctx, f.course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sections, 2)
	assert.Equal(t, "Minggu 1", detail.Sections[0].Title)
	require.Len(t, detail.Sections[0].Activities, 1)
	assert.Equal(t, f.material.ID, detail.Sections[0].Activities[0].ID)
	require.Len(t, detail.Sections[1].Activities, 1)
	assert.Equal(t, f.assignment.ID, detail.Sections[1].Activities[0].ID)

	require.NoError(t, f.svc.CourseService.DeleteCourse(ctx, f.course.ID))
	courses, err := f.svc.CourseService.ListCourses(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, courses)

	_, err = f.svc.CourseService.GetCourseDetail(ctx, f.course.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSectionService_OrderAndOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, 0, f.week1.Order)
	assert.Equal(t, 1, f.week2.Order)

	explicit, err := f.svc.SectionService.CreateSection(ctx, f.course.ID, &dto.SectionRequest{Title: "UTS", Order: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, explicit.Order)

	other, err := f.svc.CourseService.CreateCourse(ctx, &dto.CourseRequest{Code: "INF301", Title: "AI", InstructorID: f.teacher.ID})
	require.NoError(t, err)

	_, err = f.svc.SectionService.UpdateSection(ctx, other.ID, f.week1.ID, &dto.SectionRequest{Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrSectionNotFound)

	updated, err := f.svc.SectionService.UpdateSection(ctx, f.course.ID, f.week1.ID, &dto.SectionRequest{Title: "Minggu 1: Pengantar"})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Order)

	_, err = f.svc.SectionService.CreateSection(ctx, uuid.New(), &dto.SectionRequest{Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	require.NoError(t, f.svc.SectionService.DeleteSection(ctx, f.course.ID, explicit.ID))
}

func intPtr(i int) *int { return &i }

func TestActivityService_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NotNil(t, f.assignment.DueDate)
	assert.Equal(t, time.Date(2026, 1, 20, 23, 59, 0, 0, time.UTC), *f.assignment.DueDate)
	assert.Equal(t, f.course.ID, f.assignment.CourseID())

	forum, err := f.svc.ActivityService.CreateActivity(ctx, f.course.ID, &dto.ActivityRequest{
		SectionID: f.week1.ID, Type: "FORUM", Title: "Diskusi", DueDate: "2026-01-20",
	})
	require.NoError(t, err)
	assert.Nil(t, forum.DueDate)

	other, err := f.svc.CourseService.CreateCourse(ctx, &dto.CourseRequest{Code: "INF301", Title: "AI", InstructorID: f.teacher.ID})
	require.NoError(t, err)

	_, err = f.svc.ActivityService.CreateActivity(ctx, other.ID, &dto.ActivityRequest{
		SectionID: f.week1.ID, Type: "LINK", Title: "Salah kelas",
	})
	assert.ErrorIs(t, err, apperrors.ErrSectionNotInCourse)

	_, err = f.svc.ActivityService.GetActivityInCourse(ctx, other.ID, f.assignment.ID)
	assert.ErrorIs(t, err, apperrors.ErrActivityNotFound)

	_, err = f.svc.ActivityService.CreateActivity(ctx, f.course.ID, &dto.ActivityRequest{
		SectionID: f.week1.ID, Type: "ASSIGNMENT", Title: "Tugas", DueDate: "next week",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestActivityService_UploadFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fh := &multipart.FileHeader{Filename: "materi.pdf"}
	updated, err := f.svc.ActivityService.UploadActivityFile(ctx, f.course.ID, f.material.ID, fh)
	require.NoError(t, err)
	require.NotNil(t, updated.ContentURL)
	assert.Equal(t, "/uploads/activities/"+f.material.ID.String()+"/materi.pdf", *updated.ContentURL)
	assert.Empty(t, f.storage.deleted, "external content url is not ours to delete")

	_, err = f.svc.ActivityService.UploadActivityFile(ctx, f.course.ID, f.assignment.ID, fh)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	require.NoError(t, f.svc.ActivityService.DeleteActivity(ctx, f.course.ID, f.material.ID))
	assert.Equal(t, []string{*updated.ContentURL}, f.storage.deleted)
}

func TestSubmissionService_SubmitTwiceUpdatesRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), strPtr("https://drive.example.com/v1.zip"), nil)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionPending, first.Status)

	_, err = f.svc.SubmissionService.GradeSubmission(ctx, f.course.ID, f.assignment.ID, first.ID, 88, strPtr(" Bagus "))
	require.NoError(t, err)

	second, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), nil, &multipart.FileHeader{Filename: "v2.zip"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.store.submissions, 1)
	assert.Equal(t, models.SubmissionPending, second.Status)
	assert.Nil(t, second.Grade)
	require.NotNil(t, second.Feedback)
	assert.Equal(t, "Bagus", *second.Feedback)
	assert.True(t, second.SubmittedAt.After(first.SubmittedAt))
	assert.Equal(t, "/uploads/submissions/"+f.assignment.ID.String()+"/v2.zip", *second.FileURL)

	kept, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, *second.FileURL, *kept.FileURL)

	require.Len(t, f.notifier.events, 4)
	assert.Equal(t, models.SubmissionEventSubmitted, f.notifier.events[0].eventType)
	assert.Equal(t, models.SubmissionEventGraded, f.notifier.events[1].eventType)
	assert.Equal(t, first.ID, f.notifier.events[3].id)
}

func TestSubmissionService_SubmitRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.teacher), nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.svc.SubmissionService.Submit(ctx, f.course.ID, f.material.ID, sessionOf(f.student), nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotAnAssignment)

	_, err = f.svc.SubmissionService.Submit(ctx, f.course.ID, uuid.New(), sessionOf(f.student), nil, nil)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, f.notifier.events)
}

func TestSubmissionService_SubmitRejectsStoredFileURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student2), nil, &multipart.FileHeader{Filename: "siti.pdf"})
	require.NoError(t, err)
	otherFile := *other.FileURL

	for _, url := range []string{otherFile, " " + otherFile + " ", "/uploads/../uploads/submissions/x.pdf", "//uploads/activities/materi.pdf"} {
		_, err = f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), strPtr(url), nil)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, url)
	}

	mine, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), nil, &multipart.FileHeader{Filename: "andi-v1.pdf"})
	require.NoError(t, err)
	_, err = f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), nil, &multipart.FileHeader{Filename: "andi-v2.pdf"})
	require.NoError(t, err)
	require.NoError(t, f.svc.SubmissionService.DeleteSubmission(ctx, f.course.ID, f.assignment.ID, mine.ID))

	assert.NotContains(t, f.storage.deleted, otherFile)
	assert.Equal(t, []string{
		"/uploads/submissions/" + f.assignment.ID.String() + "/andi-v1.pdf",
		"/uploads/submissions/" + f.assignment.ID.String() + "/andi-v2.pdf",
	}, f.storage.deleted)
}

func TestSubmissionService_DeleteKeepsFilesOutsideItsActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	material, err := f.svc.ActivityService.UploadActivityFile(ctx, f.course.ID, f.material.ID, &multipart.FileHeader{Filename: "materi.pdf"})
	require.NoError(t, err)

	sub, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), strPtr("https://drive.example.com/tugas.zip"), nil)
	require.NoError(t, err)

	// a row written before stored links were rejected
	f.store.mu.Lock()
	row := f.store.submissions[sub.ID]
	row.FileURL = material.ContentURL
	f.store.submissions[sub.ID] = row
	f.store.mu.Unlock()

	require.NoError(t, f.svc.SubmissionService.DeleteSubmission(ctx, f.course.ID, f.assignment.ID, sub.ID))
	assert.Empty(t, f.storage.deleted)
}

func TestSubmissionService_SubmitForRemovedStudent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ghost := &models.User{ID: uuid.New(), Username: "2021099", Name: "Budi", Role: models.RoleStudent}
	_, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(ghost), nil, &multipart.FileHeader{Filename: "tugas.pdf"})
	assert.ErrorIs(t, err, apperrors.ErrSessionMissing)
	assert.Equal(t, []string{"/uploads/submissions/" + f.assignment.ID.String() + "/tugas.pdf"}, f.storage.deleted)
}

func TestActivityService_ReplaceKeepsForeignContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), nil, &multipart.FileHeader{Filename: "tugas.pdf"})
	require.NoError(t, err)

	_, err = f.svc.ActivityService.UpdateActivity(ctx, f.course.ID, f.material.ID, &dto.ActivityRequest{
		SectionID: f.week1.ID, Type: "FILE", Title: "Materi Pengantar", ContentURL: sub.FileURL,
	})
	require.NoError(t, err)
	_, err = f.svc.ActivityService.UploadActivityFile(ctx, f.course.ID, f.material.ID, &multipart.FileHeader{Filename: "materi.pdf"})
	require.NoError(t, err)

	assert.NotContains(t, f.storage.deleted, *sub.FileURL)
}

func TestSubmissionService_GradeAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), nil, &multipart.FileHeader{Filename: "tugas.pdf"})
	require.NoError(t, err)

	for _, grade := range []int{-1, 101} {
		_, err = f.svc.SubmissionService.GradeSubmission(ctx, f.course.ID, f.assignment.ID, sub.ID, grade, nil)
		assert.ErrorIs(t, err, apperrors.ErrGradeOutOfRange)
	}

	graded, err := f.svc.SubmissionService.GradeSubmission(ctx, f.course.ID, f.assignment.ID, sub.ID, 100, strPtr("   "))
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionGraded, graded.Status)
	assert.Equal(t, 100, *graded.Grade)
	assert.Nil(t, graded.Feedback)

	_, err = f.svc.SubmissionService.GetSubmission(ctx, f.course.ID, f.material.ID, sub.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubmissionNotFound)

	require.NoError(t, f.svc.SubmissionService.DeleteSubmission(ctx, f.course.ID, f.assignment.ID, sub.ID))
	assert.Equal(t, []string{*sub.FileURL}, f.storage.deleted)
	assert.Equal(t, models.SubmissionEventDeleted, f.notifier.events[len(f.notifier.events)-1].eventType)

	_, subs, err := f.svc.SubmissionService.ListActivitySubmissions(ctx, f.course.ID, f.assignment.ID, "")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSummarizeGrades(t *testing.T) {
	web := models.Course{ID: uuid.New(), Code: "INF202"}
	ai := models.Course{ID: uuid.New(), Code: "INF301"}
	activityIn := func(c models.Course) *models.Activity {
		return &models.Activity{Section: &models.Section{CourseID: c.ID}}
	}
	g := func(v int) *int { return &v }

	// newest first
	submissions := []models.Submission{
		{Activity: activityIn(web), Grade: nil},
		{Activity: activityIn(web), Grade: g(90), Feedback: strPtr("")},
		{Activity: activityIn(web), Grade: g(85), Feedback: strPtr("Terbaru")},
		{Activity: activityIn(web), Grade: g(80), Feedback: strPtr("Lama")},
	}

	summary := SummarizeGrades([]models.Course{web, ai}, submissions)
	require.Len(t, summary, 2)

	assert.Equal(t, "INF202", summary[0].Course.Code)
	require.NotNil(t, summary[0].Average)
	assert.Equal(t, 85, *summary[0].Average)
	assert.Equal(t, 3, summary[0].GradedCount)
	assert.Equal(t, 4, summary[0].SubmissionCount)
	assert.Equal(t, "Terbaru", *summary[0].LatestFeedback)

	assert.Nil(t, summary[1].Average)
	assert.Nil(t, summary[1].LatestFeedback)

	half := SummarizeGrades([]models.Course{web}, []models.Submission{
		{Activity: activityIn(web), Grade: g(80)},
		{Activity: activityIn(web), Grade: g(81)},
	})
	assert.Equal(t, 81, *half[0].Average, "80.5 rounds up")
}

func TestSubmissionService_RecentScopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), strPtr("a"), nil)
	require.NoError(t, err)
	_, err = f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student2), strPtr("b"), nil)
	require.NoError(t, err)

	otherTeacher, err := f.svc.UserService.CreateUser(ctx, &dto.CreateUserRequest{
		Name: "Dewi", Username: "19850102", Email: "dewi@unipem.ac.id", Role: "TEACHER",
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		viewer *models.User
		want   int
	}{
		{name: "admin sees all", viewer: f.admin, want: 2},
		{name: "instructor sees own course", viewer: f.teacher, want: 2},
		{name: "other teacher sees none", viewer: otherTeacher, want: 0},
		{name: "student sees own", viewer: f.student, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs, err := f.svc.SubmissionService.RecentSubmissions(ctx, sessionOf(tt.viewer), 0)
			require.NoError(t, err)
			assert.Len(t, subs, tt.want)
		})
	}

	grades, summary, err := f.svc.SubmissionService.ListStudentGrades(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Len(t, grades, 1)
	require.Len(t, summary, 1)
	assert.Equal(t, 1, summary[0].SubmissionCount)
}

func TestDashboardService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmissionService.Submit(ctx, f.course.ID, f.assignment.ID, sessionOf(f.student), nil, nil)
	require.NoError(t, err)

	adminView, err := f.svc.DashboardService.GetDashboard(ctx, sessionOf(f.admin))
	require.NoError(t, err)
	require.NotNil(t, adminView.Stats)
	assert.Equal(t, models.AdminStats{Students: 2, Teachers: 1, Courses: 1, Submissions: 1}, *adminView.Stats)
	assert.Nil(t, adminView.Courses)
	assert.Len(t, adminView.RecentSubmissions, 1)

	studentView, err := f.svc.DashboardService.GetDashboard(ctx, sessionOf(f.student2))
	require.NoError(t, err)
	assert.Nil(t, studentView.Stats)
	assert.Len(t, studentView.Courses, 1)
	assert.Empty(t, studentView.RecentSubmissions)

	assert.Equal(t, "LMS UNIPEM", f.svc.DashboardService.GetSiteSettings().Name)
}

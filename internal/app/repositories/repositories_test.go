package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/pkg/apperrors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	id := uuid.New()

	// squirrel passes driver.Valuer values such as uuid.UUID as their string form
	mock.ExpectQuery(q("FROM users WHERE id = $1 LIMIT 1")).
		WithArgs(id.String()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserRepository_GetByUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	id := uuid.New()
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("SELECT id, username, name, email, role, password, avatar, created_at FROM users WHERE username = $1")).
		WithArgs("19850101").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(id, "19850101", "Dr. Budi Santoso", "budi@unipem.ac.id", models.RoleTeacher, "hash", nil, created))

	user, err := repo.GetByUsername(context.Background(), "19850101")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Nil(t, user.Avatar)
	assert.Equal(t, created, user.CreatedAt)
}

func TestUserRepository_Create_UniqueViolations(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{constraintUsersUsername, apperrors.ErrUsernameExists},
		{constraintUsersEmail, apperrors.ErrEmailExists},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			mock := newMock(t)
			repo := NewUserRepository(mock)

			mock.ExpectQuery(q("INSERT INTO users")).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			err := repo.Create(context.Background(), &models.User{Username: "2021001", Email: "andi@student.unipem.ac.id", Role: models.RoleStudent})
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, apperrors.IsConflict(err))
		})
	}
}

func TestUserRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(q("SELECT COUNT(*) FROM users WHERE ((name ILIKE $1 OR email ILIKE $2 OR username ILIKE $3) AND role = $4)")).
		WithArgs("%budi%", "%budi%", "%budi%", models.RoleStudent).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(q("ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("%budi%", "%budi%", "%budi%", models.RoleStudent).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(id, "2021002", "Budi Cahyadi", "budi.c@student.unipem.ac.id", models.RoleStudent, "hash", nil, time.Now()))

	users, total, err := repo.List(context.Background(), models.UserFilter{Search: " budi ", Role: models.RoleStudent, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "2021002", users[0].Username)
}

func TestUserRepository_List_EmptySkipsSelect(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM users")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	users, total, err := repo.List(context.Background(), models.UserFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, users)
}

func TestCourseRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewCourseRepository(mock)
	id := uuid.New()

	mock.ExpectExec(q("DELETE FROM courses WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseRepository_Create_DuplicateCode(t *testing.T) {
	mock := newMock(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(q("INSERT INTO courses (id,code,title,category,instructor_id,thumbnail)")).
		WithArgs(pgxmock.AnyArg(), "INF202", "Pemrograman Web Lanjut", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: constraintCoursesCode})

	err := repo.Create(context.Background(), &models.Course{Code: "INF202", Title: "Pemrograman Web Lanjut"})
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)
}

func TestCourseRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewCourseRepository(mock)
	courseID, teacherID := uuid.New(), uuid.New()
	username, name, email := "19850101", "Dr. Budi Santoso", "budi@unipem.ac.id"
	category := "Teknik Informatika"

	mock.ExpectQuery(q("LEFT JOIN users u ON c.instructor_id = u.id WHERE (c.title ILIKE $1 OR c.code ILIKE $2) ORDER BY c.created_at DESC")).
		WithArgs("%inf%", "%inf%").
		WillReturnRows(pgxmock.NewRows([]string{"id", "code", "title", "category", "instructor_id", "thumbnail", "created_at", "username", "name", "email", "avatar", "section_count", "activity_count"}).
			AddRow(courseID, "INF202", "Pemrograman Web Lanjut", &category, &teacherID, nil, time.Now(), &username, &name, &email, nil, 2, 3))

	courses, err := repo.List(context.Background(), models.CourseFilter{Search: "inf"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 2, courses[0].SectionCount)
	assert.Equal(t, 3, courses[0].ActivityCount)
	require.NotNil(t, courses[0].Instructor)
	assert.Equal(t, "Dr. Budi Santoso", courses[0].Instructor.Name)
}

func TestSectionRepository_NextOrder(t *testing.T) {
	mock := newMock(t)
	repo := NewSectionRepository(mock)
	courseID := uuid.New()

	mock.ExpectQuery(q(`SELECT COALESCE(MAX("order") + 1, 0) FROM sections WHERE course_id = $1`)).
		WithArgs(courseID.String()).
		WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(2))

	next, err := repo.NextOrder(context.Background(), courseID)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}

func TestSubmissionRepository_Upsert(t *testing.T) {
	mock := newMock(t)
	repo := NewSubmissionRepository(mock)
	activityID, studentID, existingID := uuid.New(), uuid.New(), uuid.New()
	fileURL := "/uploads/submissions/tugas1.zip"
	feedback := "Perbaiki header."
	now := time.Now()

	mock.ExpectQuery(q("ON CONFLICT ON CONSTRAINT submissions_activity_student_key DO UPDATE")).
		WithArgs(pgxmock.AnyArg(), activityID, studentID, models.SubmissionPending, &fileURL).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status", "grade", "feedback", "file_url", "submitted_at"}).
			AddRow(existingID, models.SubmissionPending, nil, &feedback, &fileURL, now))

	sub := &models.Submission{ActivityID: activityID, StudentID: studentID, FileURL: &fileURL}
	require.NoError(t, repo.Upsert(context.Background(), sub))

	assert.Equal(t, existingID, sub.ID)
	assert.Equal(t, models.SubmissionPending, sub.Status)
	assert.Nil(t, sub.Grade)
	assert.Equal(t, feedback, *sub.Feedback)
	assert.Equal(t, now, sub.SubmittedAt)
}

func TestSubmissionRepository_Upsert_MissingReference(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"activity", "submissions_activity_id_fkey", apperrors.ErrActivityNotFound},
		{"student", "submissions_student_id_fkey", apperrors.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewSubmissionRepository(mock)

			mock.ExpectQuery(q("INSERT INTO submissions")).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: tt.constraint})

			err := repo.Upsert(context.Background(), &models.Submission{ActivityID: uuid.New(), StudentID: uuid.New()})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmissionRepository_Grade_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewSubmissionRepository(mock)
	id := uuid.New()
	feedback := "Bagus"

	mock.ExpectExec(q("UPDATE submissions SET grade = $1, feedback = $2, status = $3 WHERE id = $4")).
		WithArgs(90, &feedback, models.SubmissionGraded, id.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := repo.Grade(context.Background(), id, 90, &feedback)
	assert.ErrorIs(t, err, apperrors.ErrSubmissionNotFound)
}

func TestSubmissionRepository_ListRecent_TeacherScope(t *testing.T) {
	mock := newMock(t)
	repo := NewSubmissionRepository(mock)
	teacherID := uuid.New()

	mock.ExpectQuery(q("WHERE c.instructor_id = $1 ORDER BY sub.submitted_at DESC LIMIT 5")).
		WithArgs(teacherID.String()).
		WillReturnRows(pgxmock.NewRows(submissionSelectColumns))

	subs, err := repo.ListRecent(context.Background(), models.SubmissionScope{InstructorID: &teacherID}, 5)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%100\%%`, likePattern(" 100% "))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/db"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/dberrors"
)

// ConstraintSubmissionActivityStudent keeps one submission per (activity, student)
const ConstraintSubmissionActivityStudent = "submissions_activity_student_key"

const constraintSubmissionsStudent = "submissions_student_id_fkey"

// submissionSelectColumns loads a submission with its student, activity, section and course
var submissionSelectColumns = []string{
	"sub.id", "sub.activity_id", "sub.student_id", "sub.status", "sub.grade", "sub.feedback", "sub.file_url", "sub.submitted_at",
	"u.username", "u.name", "u.email", "u.avatar",
	"a.type", "a.title", "a.due_date", "a.section_id",
	"sec.title", "sec.course_id",
	"c.code", "c.title",
}

// upsertSubmissionSQL resets the grading state of an existing row. Feedback is kept and the
// file is only replaced when a new one is given.
var upsertSubmissionSQL = fmt.Sprintf(`
	INSERT INTO submissions (id, activity_id, student_id, status, grade, file_url, submitted_at)
	VALUES ($1, $2, $3, $4, NULL, $5, NOW())
	ON CONFLICT ON CONSTRAINT %s DO UPDATE SET
		status = EXCLUDED.status,
		grade = NULL,
		submitted_at = EXCLUDED.submitted_at,
		file_url = COALESCE(EXCLUDED.file_url, submissions.file_url)
	RETURNING id, status, grade, feedback, file_url, submitted_at`, ConstraintSubmissionActivityStudent)

// SubmissionRepository handles database operations for submissions
type SubmissionRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(conn db.DBTX) *SubmissionRepository {
	return &SubmissionRepository{
		db: conn,
		sb: psql,
	}
}

func (r *SubmissionRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(submissionSelectColumns...).
		From("submissions sub").
		Join("users u ON sub.student_id = u.id").
		Join("activities a ON sub.activity_id = a.id").
		Join("sections sec ON a.section_id = sec.id").
		Join("courses c ON sec.course_id = c.id")
}

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var s models.Submission
	student := &models.User{Role: models.RoleStudent}
	activity := &models.Activity{}
	section := &models.Section{}
	course := &models.Course{}

	if err := row.Scan(
		&s.ID, &s.ActivityID, &s.StudentID, &s.Status, &s.Grade, &s.Feedback, &s.FileURL, &s.SubmittedAt,
		&student.Username, &student.Name, &student.Email, &student.Avatar,
		&activity.Type, &activity.Title, &activity.DueDate, &activity.SectionID,
		&section.Title, &section.CourseID,
		&course.Code, &course.Title,
	); err != nil {
		return nil, err
	}

	student.ID = s.StudentID
	activity.ID = s.ActivityID
	section.ID = activity.SectionID
	course.ID = section.CourseID

	section.Course = course
	activity.Section = section
	s.Student = student
	s.Activity = activity
	return &s, nil
}

func (r *SubmissionRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.Submission, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list submissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		submissions = append(submissions, *s)
	}
	return submissions, rows.Err()
}

func (r *SubmissionRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Submission, error) {
	sql, args, err := r.baseSelect().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get submission query: %w", err)
	}

	s, err := scanSubmission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error getting submission: %w", err)
	}
	return s, nil
}

// Upsert creates the submission of a student for an activity, or resets the existing one
// to PENDING with a fresh submitted_at. ID, Status, Grade, Feedback, FileURL and SubmittedAt
// are filled from the stored row.
func (r *SubmissionRepository) Upsert(ctx context.Context, submission *models.Submission) error {
	err := r.db.QueryRow(ctx, upsertSubmissionSQL,
		uuid.New(), submission.ActivityID, submission.StudentID, models.SubmissionPending, submission.FileURL,
	).Scan(&submission.ID, &submission.Status, &submission.Grade, &submission.Feedback, &submission.FileURL, &submission.SubmittedAt)
	if err != nil {
		switch {
		case dberrors.IsForeignKeyConstraintError(err, constraintSubmissionsStudent):
			return apperrors.ErrUserNotFound
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrActivityNotFound
		}
		return fmt.Errorf("error saving submission: %w", err)
	}
	return nil
}

// GetByID retrieves a submission with its relations
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	return r.getOne(ctx, squirrel.Eq{"sub.id": id})
}

// GetByActivityAndStudent retrieves the submission of one student for one activity
func (r *SubmissionRepository) GetByActivityAndStudent(ctx context.Context, activityID, studentID uuid.UUID) (*models.Submission, error) {
	return r.getOne(ctx, squirrel.Eq{"sub.activity_id": activityID, "sub.student_id": studentID})
}

// ListByActivity returns the submissions of an activity newest first; search matches student name or NPM
func (r *SubmissionRepository) ListByActivity(ctx context.Context, activityID uuid.UUID, search string) ([]models.Submission, error) {
	query := r.baseSelect().
		Where(squirrel.Eq{"sub.activity_id": activityID}).
		OrderBy("sub.submitted_at DESC")
	if search != "" {
		pattern := likePattern(search)
		query = query.Where(squirrel.Or{
			squirrel.ILike{"u.name": pattern},
			squirrel.ILike{"u.username": pattern},
		})
	}
	return r.list(ctx, query)
}

// ListByStudent returns every submission of a student newest first
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Submission, error) {
	return r.list(ctx, r.baseSelect().
		Where(squirrel.Eq{"sub.student_id": studentID}).
		OrderBy("sub.submitted_at DESC"))
}

// ListRecent returns the newest submissions visible in scope
func (r *SubmissionRepository) ListRecent(ctx context.Context, scope models.SubmissionScope, limit int) ([]models.Submission, error) {
	query := r.baseSelect().OrderBy("sub.submitted_at DESC")
	if scope.InstructorID != nil {
		query = query.Where(squirrel.Eq{"c.instructor_id": *scope.InstructorID})
	}
	if scope.StudentID != nil {
		query = query.Where(squirrel.Eq{"sub.student_id": *scope.StudentID})
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	return r.list(ctx, query)
}

// Grade stores the grade and feedback and marks the submission GRADED
func (r *SubmissionRepository) Grade(ctx context.Context, id uuid.UUID, grade int, feedback *string) (*models.Submission, error) {
	sql, args, err := r.sb.Update("submissions").
		Set("grade", grade).
		Set("feedback", feedback).
		Set("status", models.SubmissionGraded).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build grade submission query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error grading submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrSubmissionNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a submission
func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("submissions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete submission query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}
	return nil
}

// Count returns the number of submissions
func (r *SubmissionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM submissions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return n, nil
}

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
	"github.com/unipem/lms/internal/pkg/logger"
)

const constraintCoursesCode = "courses_code_key"

// courseSelectColumns joins the instructor and counts sections and activities
var courseSelectColumns = []string{
	"c.id", "c.code", "c.title", "c.category", "c.instructor_id", "c.thumbnail", "c.created_at",
	"u.username", "u.name", "u.email", "u.avatar",
	"(SELECT COUNT(*) FROM sections s WHERE s.course_id = c.id) AS section_count",
	"(SELECT COUNT(*) FROM activities a JOIN sections s ON a.section_id = s.id WHERE s.course_id = c.id) AS activity_count",
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(conn db.DBTX) *CourseRepository {
	return &CourseRepository{
		db: conn,
		sb: psql,
	}
}

func (r *CourseRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(courseSelectColumns...).
		From("courses c").
		LeftJoin("users u ON c.instructor_id = u.id")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	var username, name, email, avatar *string
	if err := row.Scan(
		&c.ID, &c.Code, &c.Title, &c.Category, &c.InstructorID, &c.Thumbnail, &c.CreatedAt,
		&username, &name, &email, &avatar,
		&c.SectionCount, &c.ActivityCount,
	); err != nil {
		return nil, err
	}

	if c.InstructorID != nil && username != nil {
		c.Instructor = &models.User{
			ID:       *c.InstructorID,
			Username: *username,
			Role:     models.RoleTeacher,
			Avatar:   avatar,
		}
		if name != nil {
			c.Instructor.Name = *name
		}
		if email != nil {
			c.Instructor.Email = *email
		}
	}
	return &c, nil
}

func mapCourseWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, constraintCoursesCode), dberrors.IsUniqueViolation(err):
		return apperrors.ErrCourseCodeExists
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrInstructorInvalid
	}
	return err
}

// Create inserts a course and fills its id and created_at
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("courses").
		Columns("id", "code", "title", "category", "instructor_id", "thumbnail").
		Values(course.ID, course.Code, course.Title, course.Category, course.InstructorID, course.Thumbnail).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.CreatedAt); err != nil {
		if mapped := mapCourseWriteError(err); mapped != err {
			return mapped
		}
		logger.Error().Err(err).Str("code", course.Code).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

func (r *CourseRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Course, error) {
	sql, args, err := r.baseSelect().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return course, nil
}

// GetByID retrieves a course with its instructor and counts
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"c.id": id})
}

// GetByCode retrieves a course by its code
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"c.code": code})
}

// List returns courses newest first; search matches title or code
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	query := r.baseSelect().OrderBy("c.created_at DESC")
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(squirrel.Or{
			squirrel.ILike{"c.title": pattern},
			squirrel.ILike{"c.code": pattern},
		})
	}
	if filter.InstructorID != nil {
		query = query.Where(squirrel.Eq{"c.instructor_id": *filter.InstructorID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, *course)
	}
	return courses, rows.Err()
}

// Update overwrites the editable columns of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("code", course.Code).
		Set("title", course.Title).
		Set("category", course.Category).
		Set("instructor_id", course.InstructorID).
		Set("thumbnail", course.Thumbnail).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if mapped := mapCourseWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course together with its sections, activities and submissions
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Count returns the number of courses
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM courses").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return n, nil
}

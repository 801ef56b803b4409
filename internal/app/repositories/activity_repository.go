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

var activityColumns = []string{"a.id", "a.section_id", "a.type", "a.title", "a.description", "a.content_url", "a.due_date", "a.created_at"}

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(conn db.DBTX) *ActivityRepository {
	return &ActivityRepository{
		db: conn,
		sb: psql,
	}
}

func activityDest(a *models.Activity) []any {
	return []any{&a.ID, &a.SectionID, &a.Type, &a.Title, &a.Description, &a.ContentURL, &a.DueDate, &a.CreatedAt}
}

// Create inserts an activity and fills its created_at
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("activities").
		Columns("id", "section_id", "type", "title", "description", "content_url", "due_date").
		Values(activity.ID, activity.SectionID, activity.Type, activity.Title, activity.Description, activity.ContentURL, activity.DueDate).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create activity query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&activity.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSectionNotFound
		}
		return fmt.Errorf("error creating activity: %w", err)
	}
	return nil
}

// GetByID retrieves an activity with its section and course
func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	cols := append(append([]string{}, activityColumns...),
		"s.id", "s.course_id", "s.title", "s.description", `s."order"`,
		"c.id", "c.code", "c.title", "c.instructor_id",
	)
	sql, args, err := r.sb.Select(cols...).
		From("activities a").
		Join("sections s ON a.section_id = s.id").
		Join("courses c ON s.course_id = c.id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get activity query: %w", err)
	}

	var a models.Activity
	s := &models.Section{}
	c := &models.Course{}
	dest := append(activityDest(&a),
		&s.ID, &s.CourseID, &s.Title, &s.Description, &s.Order,
		&c.ID, &c.Code, &c.Title, &c.InstructorID,
	)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrActivityNotFound
		}
		return nil, fmt.Errorf("error getting activity: %w", err)
	}

	s.Course = c
	a.Section = s
	return &a, nil
}

// ListByCourse returns every activity of a course, oldest first
func (r *ActivityRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Activity, error) {
	sql, args, err := r.sb.Select(activityColumns...).
		From("activities a").
		Join("sections s ON a.section_id = s.id").
		Where(squirrel.Eq{"s.course_id": courseID}).
		OrderBy("a.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list activities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(activityDest(&a)...); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// Update overwrites the editable columns of an activity
func (r *ActivityRepository) Update(ctx context.Context, activity *models.Activity) error {
	sql, args, err := r.sb.Update("activities").
		Set("section_id", activity.SectionID).
		Set("type", activity.Type).
		Set("title", activity.Title).
		Set("description", activity.Description).
		Set("content_url", activity.ContentURL).
		Set("due_date", activity.DueDate).
		Where(squirrel.Eq{"id": activity.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update activity query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSectionNotFound
		}
		return fmt.Errorf("error updating activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrActivityNotFound
	}
	return nil
}

// Delete removes an activity and its submissions
func (r *ActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("activities").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete activity query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrActivityNotFound
	}
	return nil
}

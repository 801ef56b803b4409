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

var sectionColumns = []string{"id", "course_id", "title", "description", `"order"`}

// SectionRepository handles database operations for sections
type SectionRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(conn db.DBTX) *SectionRepository {
	return &SectionRepository{
		db: conn,
		sb: psql,
	}
}

func scanSection(row pgx.Row) (*models.Section, error) {
	var s models.Section
	if err := row.Scan(&s.ID, &s.CourseID, &s.Title, &s.Description, &s.Order); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a section
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	if section.ID == uuid.Nil {
		section.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("sections").
		Columns(sectionColumns...).
		Values(section.ID, section.CourseID, section.Title, section.Description, section.Order).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create section query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating section: %w", err)
	}
	return nil
}

// GetByID retrieves a section by ID
func (r *SectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	sql, args, err := r.sb.Select(sectionColumns...).
		From("sections").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get section query: %w", err)
	}

	section, err := scanSection(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSectionNotFound
		}
		return nil, fmt.Errorf("error getting section: %w", err)
	}
	return section, nil
}

// ListByCourse returns the sections of a course by position
func (r *SectionRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error) {
	sql, args, err := r.sb.Select(sectionColumns...).
		From("sections").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy(`"order" ASC`, "title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sections query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	sections := []models.Section{}
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section row: %w", err)
		}
		sections = append(sections, *section)
	}
	return sections, rows.Err()
}

// NextOrder returns the position after the last section of a course
func (r *SectionRepository) NextOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	sql, args, err := r.sb.Select(`COALESCE(MAX("order") + 1, 0)`).
		From("sections").
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build next order query: %w", err)
	}

	var next int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to get next section order: %w", err)
	}
	return next, nil
}

// Update overwrites title, description and order
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	sql, args, err := r.sb.Update("sections").
		Set("title", section.Title).
		Set("description", section.Description).
		Set(`"order"`, section.Order).
		Where(squirrel.Eq{"id": section.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update section query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating section: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}
	return nil
}

// Delete removes a section and, by cascade, its activities
func (r *SectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("sections").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete section query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting section: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a file, assignment, forum or link inside a section
type Activity struct {
	ID          uuid.UUID    `db:"id"`
	SectionID   uuid.UUID    `db:"section_id"`
	Type        ActivityType `db:"type"`
	Title       string       `db:"title"`
	Description *string      `db:"description"`
	ContentURL  *string      `db:"content_url"`
	DueDate     *time.Time   `db:"due_date"` // ASSIGNMENT only
	CreatedAt   time.Time    `db:"created_at"`

	Section *Section
}

// CourseID returns the owning course id when the section relation is loaded
func (a *Activity) CourseID() uuid.UUID {
	if a.Section == nil {
		return uuid.Nil
	}
	return a.Section.CourseID
}

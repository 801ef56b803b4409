package models

import "github.com/google/uuid"

// Section is a week or topic inside a course
type Section struct {
	ID          uuid.UUID `db:"id"`
	CourseID    uuid.UUID `db:"course_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Order       int       `db:"order"`

	Activities []Activity
	Course     *Course
}

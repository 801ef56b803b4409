package models

import (
	"time"

	"github.com/google/uuid"
)

// Course defines the course model based on the 'courses' table
type Course struct {
	ID           uuid.UUID  `db:"id"`
	Code         string     `db:"code"`
	Title        string     `db:"title"`
	Category     *string    `db:"category"`
	InstructorID *uuid.UUID `db:"instructor_id"`
	Thumbnail    *string    `db:"thumbnail"`
	CreatedAt    time.Time  `db:"created_at"`

	// Relations and aggregates, filled by specific queries only
	Instructor    *User
	Sections      []Section
	SectionCount  int
	ActivityCount int
}

// CourseFilter narrows ListCourses
type CourseFilter struct {
	Search       string
	InstructorID *uuid.UUID
}

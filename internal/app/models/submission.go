package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a student's answer to an ASSIGNMENT activity.
// There is at most one row per (activity, student).
type Submission struct {
	ID          uuid.UUID        `db:"id"`
	ActivityID  uuid.UUID        `db:"activity_id"`
	StudentID   uuid.UUID        `db:"student_id"`
	Status      SubmissionStatus `db:"status"`
	Grade       *int             `db:"grade"`
	Feedback    *string          `db:"feedback"`
	FileURL     *string          `db:"file_url"`
	SubmittedAt time.Time        `db:"submitted_at"`

	Student  *User
	Activity *Activity
}

// SubmissionScope selects which submissions a viewer may see in recent lists
type SubmissionScope struct {
	InstructorID *uuid.UUID // submissions of courses taught by this teacher
	StudentID    *uuid.UUID // submissions made by this student
}

// SubmissionEventType names a change pushed to live grading views
type SubmissionEventType string

const (
	SubmissionEventSubmitted SubmissionEventType = "SUBMITTED"
	SubmissionEventGraded    SubmissionEventType = "GRADED"
	SubmissionEventDeleted   SubmissionEventType = "DELETED"
)

// CourseGrades summarizes one student's results in a course.
// Average is the rounded mean of graded submissions, nil when none are graded.
type CourseGrades struct {
	Course          Course
	Average         *int
	GradedCount     int
	SubmissionCount int
	LatestFeedback  *string
}

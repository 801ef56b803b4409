package models

// Role is the role of a user account
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// CanEditCourses reports whether the role may manage sections and activities
func (r Role) CanEditCourses() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// ActivityType is the kind of a course activity
type ActivityType string

const (
	ActivityFile       ActivityType = "FILE"
	ActivityAssignment ActivityType = "ASSIGNMENT"
	ActivityForum      ActivityType = "FORUM"
	ActivityLink       ActivityType = "LINK"
)

// Valid reports whether t is one of the known activity types
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityFile, ActivityAssignment, ActivityForum, ActivityLink:
		return true
	}
	return false
}

// SubmissionStatus is the grading state of a submission
type SubmissionStatus string

const (
	SubmissionPending SubmissionStatus = "PENDING"
	SubmissionGraded  SubmissionStatus = "GRADED"
)

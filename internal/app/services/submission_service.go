package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/auth"
	"github.com/unipem/lms/internal/pkg/filestorage"
	"github.com/unipem/lms/internal/pkg/validation"
)

// DefaultRecentLimit is the number of submissions shown on the dashboard
const DefaultRecentLimit = 5

// SubmissionService handles assignment submissions and grading
type SubmissionService interface {
	Submit(ctx context.Context, courseID, activityID uuid.UUID, student *auth.Session, fileURL *string, file *multipart.FileHeader) (*models.Submission, error)
	ListActivitySubmissions(ctx context.Context, courseID, activityID uuid.UUID, search string) (*models.Activity, []models.Submission, error)
	GetSubmission(ctx context.Context, courseID, activityID, submissionID uuid.UUID) (*models.Submission, error)
	GradeSubmission(ctx context.Context, courseID, activityID, submissionID uuid.UUID, grade int, feedback *string) (*models.Submission, error)
	DeleteSubmission(ctx context.Context, courseID, activityID, submissionID uuid.UUID) error
	ListStudentGrades(ctx context.Context, studentID uuid.UUID) ([]models.Submission, []models.CourseGrades, error)
	RecentSubmissions(ctx context.Context, viewer *auth.Session, limit int) ([]models.Submission, error)
}

type activityFinder interface {
	GetActivityInCourse(ctx context.Context, courseID, activityID uuid.UUID) (*models.Activity, error)
}

type submissionServiceImpl struct {
	submissionRepo repositories.ISubmissionRepository
	courseRepo     repositories.ICourseRepository
	activities     activityFinder
	storage        filestorage.FileStorage
	notifier       SubmissionNotifier
	logger         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	submissionRepo repositories.ISubmissionRepository,
	courseRepo repositories.ICourseRepository,
	activities activityFinder,
	storage filestorage.FileStorage,
	notifier SubmissionNotifier,
	logger zerolog.Logger,
) SubmissionService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &submissionServiceImpl{
		submissionRepo: submissionRepo,
		courseRepo:     courseRepo,
		activities:     activities,
		storage:        storage,
		notifier:       notifier,
		logger:         logger,
	}
}

// Submit creates or resets the student's submission for an assignment.
// An uploaded file wins over fileURL; with neither, a resubmission keeps the previous file.
func (s *submissionServiceImpl) Submit(ctx context.Context, courseID, activityID uuid.UUID, student *auth.Session, fileURL *string, file *multipart.FileHeader) (*models.Submission, error) {
	if student == nil || student.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only students can submit assignments")
	}

	activity, err := s.activities.GetActivityInCourse(ctx, courseID, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Type != models.ActivityAssignment {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrNotAnAssignment)
	}

	previous, err := s.submissionRepo.GetByActivityAndStudent(ctx, activityID, student.ID)
	if err != nil && !errors.Is(err, apperrors.ErrSubmissionNotFound) {
		return nil, fmt.Errorf("failed to load previous submission: %w", err)
	}

	if fileURL != nil {
		trimmed := strings.TrimSpace(*fileURL)
		switch {
		case trimmed == "":
			fileURL = nil
		case filestorage.IsStoredURL(path.Clean(trimmed)):
			return nil, apperrors.NewValidationError("fileUrl must be an external link; upload the file instead")
		default:
			fileURL = &trimmed
		}
	}

	var stored string
	if file != nil {
		stored, err = s.storage.SaveFile(file, "submissions/"+activityID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to store submission file: %w", err)
		}
		fileURL = &stored
	}

	submission := &models.Submission{
		ActivityID: activityID,
		StudentID:  student.ID,
		FileURL:    fileURL,
	}
	if err := s.submissionRepo.Upsert(ctx, submission); err != nil {
		if stored != "" {
			s.removeStoredFile(activityID, &stored)
		}
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// account removed while the session was still alive
			return nil, apperrors.ErrSessionMissing
		}
		return nil, err
	}

	if previous != nil && previous.FileURL != nil && fileURL != nil && *previous.FileURL != *fileURL {
		s.removeStoredFile(activityID, previous.FileURL)
	}

	s.logger.Info().
		Str("activityId", activityID.String()).
		Str("studentId", student.ID.String()).
		Bool("resubmission", previous != nil).
		Msg("Assignment submitted")

	full, err := s.submissionRepo.GetByID(ctx, submission.ID)
	if err != nil {
		return nil, err
	}
	s.notifier.SubmissionChanged(models.SubmissionEventSubmitted, full)
	return full, nil
}

// ListActivitySubmissions returns the activity and its submissions, newest first
func (s *submissionServiceImpl) ListActivitySubmissions(ctx context.Context, courseID, activityID uuid.UUID, search string) (*models.Activity, []models.Submission, error) {
	activity, err := s.activities.GetActivityInCourse(ctx, courseID, activityID)
	if err != nil {
		return nil, nil, err
	}

	submissions, err := s.submissionRepo.ListByActivity(ctx, activityID, strings.TrimSpace(search))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return activity, submissions, nil
}

// GetSubmission loads a submission of the given activity
func (s *submissionServiceImpl) GetSubmission(ctx context.Context, courseID, activityID, submissionID uuid.UUID) (*models.Submission, error) {
	if _, err := s.activities.GetActivityInCourse(ctx, courseID, activityID); err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.ActivityID != activityID {
		return nil, apperrors.ErrSubmissionNotFound
	}
	return submission, nil
}

// GradeSubmission stores a 0..100 grade with optional feedback and marks the submission GRADED
func (s *submissionServiceImpl) GradeSubmission(ctx context.Context, courseID, activityID, submissionID uuid.UUID, grade int, feedback *string) (*models.Submission, error) {
	if !validation.ValidGrade(grade) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrGradeOutOfRange)
	}

	if _, err := s.GetSubmission(ctx, courseID, activityID, submissionID); err != nil {
		return nil, err
	}

	if feedback != nil {
		trimmed := strings.TrimSpace(*feedback)
		if trimmed == "" {
			feedback = nil
		} else {
			feedback = &trimmed
		}
	}

	graded, err := s.submissionRepo.Grade(ctx, submissionID, grade, feedback)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("submissionId", submissionID.String()).Int("grade", grade).Msg("Submission graded")
	s.notifier.SubmissionChanged(models.SubmissionEventGraded, graded)
	return graded, nil
}

// DeleteSubmission removes a submission and its uploaded file
func (s *submissionServiceImpl) DeleteSubmission(ctx context.Context, courseID, activityID, submissionID uuid.UUID) error {
	submission, err := s.GetSubmission(ctx, courseID, activityID, submissionID)
	if err != nil {
		return err
	}

	if err := s.submissionRepo.Delete(ctx, submissionID); err != nil {
		return err
	}

	s.removeStoredFile(activityID, submission.FileURL)
	s.notifier.SubmissionChanged(models.SubmissionEventDeleted, submission)
	return nil
}

// ListStudentGrades returns a student's submissions, newest first, and a summary per course
func (s *submissionServiceImpl) ListStudentGrades(ctx context.Context, studentID uuid.UUID) ([]models.Submission, []models.CourseGrades, error) {
	submissions, err := s.submissionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list student submissions: %w", err)
	}

	courses, err := s.courseRepo.List(ctx, models.CourseFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return submissions, SummarizeGrades(courses, submissions), nil
}

// SummarizeGrades builds one summary per course from submissions ordered newest first
func SummarizeGrades(courses []models.Course, submissions []models.Submission) []models.CourseGrades {
	type acc struct {
		total, graded, submitted int
		feedback                 *string
	}
	byCourse := make(map[uuid.UUID]*acc, len(courses))
	for i := range submissions {
		sub := &submissions[i]
		if sub.Activity == nil {
			continue
		}
		courseID := sub.Activity.CourseID()
		a, ok := byCourse[courseID]
		if !ok {
			a = &acc{}
			byCourse[courseID] = a
		}
		a.submitted++
		if sub.Grade == nil {
			continue
		}
		a.total += *sub.Grade
		a.graded++
		if a.feedback == nil && sub.Feedback != nil && *sub.Feedback != "" {
			a.feedback = sub.Feedback
		}
	}

	out := make([]models.CourseGrades, 0, len(courses))
	for _, course := range courses {
		summary := models.CourseGrades{Course: course}
		if a, ok := byCourse[course.ID]; ok {
			summary.SubmissionCount = a.submitted
			summary.GradedCount = a.graded
			summary.LatestFeedback = a.feedback
			if a.graded > 0 {
				avg := int(math.Round(float64(a.total) / float64(a.graded)))
				summary.Average = &avg
			}
		}
		out = append(out, summary)
	}
	return out
}

// RecentSubmissions returns the newest submissions the viewer may see
func (s *submissionServiceImpl) RecentSubmissions(ctx context.Context, viewer *auth.Session, limit int) ([]models.Submission, error) {
	if viewer == nil {
		return nil, apperrors.ErrSessionMissing
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var scope models.SubmissionScope
	switch viewer.Role {
	case models.RoleAdmin:
	case models.RoleTeacher:
		id := viewer.ID
		scope.InstructorID = &id
	default:
		id := viewer.ID
		scope.StudentID = &id
	}

	submissions, err := s.submissionRepo.ListRecent(ctx, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent submissions: %w", err)
	}
	return submissions, nil
}

// removeStoredFile deletes url only when it was uploaded through Submit for this activity
func (s *submissionServiceImpl) removeStoredFile(activityID uuid.UUID, url *string) {
	if url == nil || s.storage == nil || !filestorage.OwnedBy(*url, "submissions/"+activityID.String()) {
		return
	}
	if s.storage.GetFullPath(*url) == "" {
		return
	}
	if err := s.storage.DeleteFile(*url); err != nil {
		s.logger.Warn().Err(err).Str("url", *url).Msg("Failed to delete stored file")
	}
}

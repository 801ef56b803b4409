package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/auth"
	"github.com/unipem/lms/internal/pkg/filestorage"
	"github.com/unipem/lms/internal/pkg/helpers"
)

// ActivityService manages the activities inside course sections
type ActivityService interface {
	CreateActivity(ctx context.Context, courseID uuid.UUID, req *dto.ActivityRequest) (*models.Activity, error)
	GetActivityInCourse(ctx context.Context, courseID, activityID uuid.UUID) (*models.Activity, error)
	GetActivityDetail(ctx context.Context, courseID, activityID uuid.UUID, viewer *auth.Session) (*models.Activity, *models.Submission, error)
	UpdateActivity(ctx context.Context, courseID, activityID uuid.UUID, req *dto.ActivityRequest) (*models.Activity, error)
	DeleteActivity(ctx context.Context, courseID, activityID uuid.UUID) error
	UploadActivityFile(ctx context.Context, courseID, activityID uuid.UUID, file *multipart.FileHeader) (*models.Activity, error)
}

type activityServiceImpl struct {
	sectionRepo    repositories.ISectionRepository
	activityRepo   repositories.IActivityRepository
	submissionRepo repositories.ISubmissionRepository
	storage        filestorage.FileStorage
	logger         zerolog.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	sectionRepo repositories.ISectionRepository,
	activityRepo repositories.IActivityRepository,
	submissionRepo repositories.ISubmissionRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) ActivityService {
	return &activityServiceImpl{
		sectionRepo:    sectionRepo,
		activityRepo:   activityRepo,
		submissionRepo: submissionRepo,
		storage:        storage,
		logger:         logger,
	}
}

// CreateActivity adds an activity to a section of the course
func (s *activityServiceImpl) CreateActivity(ctx context.Context, courseID uuid.UUID, req *dto.ActivityRequest) (*models.Activity, error) {
	activity := &models.Activity{}
	if err := s.apply(ctx, courseID, activity, req); err != nil {
		return nil, err
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	s.logger.Info().Str("activityId", activity.ID.String()).Str("type", string(activity.Type)).Msg("Activity created")
	return s.activityRepo.GetByID(ctx, activity.ID)
}

// GetActivityInCourse loads an activity and checks it belongs to courseID
func (s *activityServiceImpl) GetActivityInCourse(ctx context.Context, courseID, activityID uuid.UUID) (*models.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.CourseID() != courseID {
		return nil, apperrors.ErrActivityNotFound
	}
	return activity, nil
}

// GetActivityDetail returns the activity and, for a student, their own submission (nil when none)
func (s *activityServiceImpl) GetActivityDetail(ctx context.Context, courseID, activityID uuid.UUID, viewer *auth.Session) (*models.Activity, *models.Submission, error) {
	activity, err := s.GetActivityInCourse(ctx, courseID, activityID)
	if err != nil {
		return nil, nil, err
	}

	if viewer == nil || viewer.Role != models.RoleStudent || activity.Type != models.ActivityAssignment {
		return activity, nil, nil
	}

	mine, err := s.submissionRepo.GetByActivityAndStudent(ctx, activityID, viewer.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubmissionNotFound) {
			return activity, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load own submission: %w", err)
	}
	return activity, mine, nil
}

// UpdateActivity replaces an activity's fields, possibly moving it to another section of the course
func (s *activityServiceImpl) UpdateActivity(ctx context.Context, courseID, activityID uuid.UUID, req *dto.ActivityRequest) (*models.Activity, error) {
	activity, err := s.GetActivityInCourse(ctx, courseID, activityID)
	if err != nil {
		return nil, err
	}

	previous := activity.ContentURL
	if err := s.apply(ctx, courseID, activity, req); err != nil {
		return nil, err
	}

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, err
	}
	if previous != nil && (activity.ContentURL == nil || *activity.ContentURL != *previous) {
		s.removeStoredFile(activityID, previous)
	}
	return s.activityRepo.GetByID(ctx, activityID)
}

// DeleteActivity removes an activity, its submissions and the file it stored
func (s *activityServiceImpl) DeleteActivity(ctx context.Context, courseID, activityID uuid.UUID) error {
	activity, err := s.GetActivityInCourse(ctx, courseID, activityID)
	if err != nil {
		return err
	}

	if err := s.activityRepo.Delete(ctx, activityID); err != nil {
		return err
	}

	s.removeStoredFile(activityID, activity.ContentURL)
	return nil
}

// UploadActivityFile stores the material of a FILE activity and points content_url at it
func (s *activityServiceImpl) UploadActivityFile(ctx context.Context, courseID, activityID uuid.UUID, file *multipart.FileHeader) (*models.Activity, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("file is required")
	}

	activity, err := s.GetActivityInCourse(ctx, courseID, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Type != models.ActivityFile {
		return nil, apperrors.NewValidationError("only FILE activities accept uploads")
	}

	url, err := s.storage.SaveFile(file, "activities/"+activityID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to store activity file: %w", err)
	}

	previous := activity.ContentURL
	activity.ContentURL = &url
	if err := s.activityRepo.Update(ctx, activity); err != nil {
		s.removeStoredFile(activityID, &url)
		return nil, err
	}

	s.removeStoredFile(activityID, previous)
	return activity, nil
}

// apply copies the form onto activity after checking the section belongs to the course
func (s *activityServiceImpl) apply(ctx context.Context, courseID uuid.UUID, activity *models.Activity, req *dto.ActivityRequest) error {
	activityType := models.ActivityType(strings.ToUpper(req.Type))
	if !activityType.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown activity type %q", req.Type))
	}

	section, err := s.sectionRepo.GetByID(ctx, req.SectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSectionNotFound) {
			return fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrSectionNotInCourse)
		}
		return err
	}
	if section.CourseID != courseID {
		return fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrSectionNotInCourse)
	}

	var dueDate *time.Time
	if activityType == models.ActivityAssignment {
		dueDate, err = helpers.ParseDueDate(req.DueDate)
		if err != nil {
			return apperrors.NewValidationError("invalid due date")
		}
	}

	activity.SectionID = section.ID
	activity.Type = activityType
	activity.Title = strings.TrimSpace(req.Title)
	activity.Description = req.Description
	if req.ContentURL != nil {
		activity.ContentURL = req.ContentURL
	}
	activity.DueDate = dueDate
	return nil
}

// removeStoredFile deletes url only when it was uploaded through UploadActivityFile for this activity
func (s *activityServiceImpl) removeStoredFile(activityID uuid.UUID, url *string) {
	if url == nil || !filestorage.OwnedBy(*url, "activities/"+activityID.String()) {
		return
	}
	if s.storage.GetFullPath(*url) == "" {
		return
	}
	if err := s.storage.DeleteFile(*url); err != nil {
		s.logger.Warn().Err(err).Str("url", *url).Msg("Failed to delete stored file")
	}
}

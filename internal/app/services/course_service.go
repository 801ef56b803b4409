package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/validation"
)

// CourseService defines course catalogue operations
type CourseService interface {
	ListCourses(ctx context.Context, search string) ([]models.Course, error)
	GetCourseDetail(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetCourseByCode(ctx context.Context, code string) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, req *dto.CourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type courseServiceImpl struct {
	courseRepo   repositories.ICourseRepository
	sectionRepo  repositories.ISectionRepository
	activityRepo repositories.IActivityRepository
	userRepo     repositories.IUserRepository
	logger       zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	sectionRepo repositories.ISectionRepository,
	activityRepo repositories.IActivityRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo:   courseRepo,
		sectionRepo:  sectionRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// ListCourses returns courses whose title or code matches search
func (s *courseServiceImpl) ListCourses(ctx context.Context, search string) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx, models.CourseFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// GetCourseDetail loads a course with its sections and their activities
func (s *courseServiceImpl) GetCourseDetail(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.ListByCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections: %w", err)
	}

	activities, err := s.activityRepo.ListByCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	bySection := make(map[uuid.UUID][]models.Activity, len(sections))
	for _, a := range activities {
		bySection[a.SectionID] = append(bySection[a.SectionID], a)
	}
	for i := range sections {
		sections[i].Activities = bySection[sections[i].ID]
		if sections[i].Activities == nil {
			sections[i].Activities = []models.Activity{}
		}
	}

	course.Sections = sections
	return course, nil
}

// GetCourseByCode retrieves a course by its code
func (s *courseServiceImpl) GetCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	return s.courseRepo.GetByCode(ctx, validation.NormalizeCourseCode(code))
}

// CreateCourse creates a course taught by an existing teacher
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error) {
	if err := s.checkInstructor(ctx, req.InstructorID); err != nil {
		return nil, err
	}

	instructorID := req.InstructorID
	course := &models.Course{
		Code:         validation.NormalizeCourseCode(req.Code),
		Title:        strings.TrimSpace(req.Title),
		Category:     req.Category,
		InstructorID: &instructorID,
		Thumbnail:    thumbnailOrDefault(req.Thumbnail),
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseId", course.ID.String()).Str("code", course.Code).Msg("Course created")
	return s.courseRepo.GetByID(ctx, course.ID)
}

// UpdateCourse replaces the course fields; a missing thumbnail keeps the current one
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id uuid.UUID, req *dto.CourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkInstructor(ctx, req.InstructorID); err != nil {
		return nil, err
	}

	instructorID := req.InstructorID
	course.Code = validation.NormalizeCourseCode(req.Code)
	course.Title = strings.TrimSpace(req.Title)
	course.Category = req.Category
	course.InstructorID = &instructorID
	if req.Thumbnail != nil && *req.Thumbnail != "" {
		course.Thumbnail = req.Thumbnail
	} else if course.Thumbnail == nil {
		course.Thumbnail = thumbnailOrDefault(nil)
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse removes a course; sections, activities and submissions go with it
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("courseId", id.String()).Msg("Course deleted")
	return nil
}

func (s *courseServiceImpl) checkInstructor(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrInstructorInvalid)
		}
		return fmt.Errorf("failed to load instructor: %w", err)
	}
	if user.Role != models.RoleTeacher {
		return fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrInstructorInvalid)
	}
	return nil
}

func thumbnailOrDefault(thumbnail *string) *string {
	if thumbnail != nil && strings.TrimSpace(*thumbnail) != "" {
		return thumbnail
	}
	def := dto.DefaultCourseThumbnail
	return &def
}

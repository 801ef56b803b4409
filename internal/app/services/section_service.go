package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/pkg/apperrors"
)

// SectionService manages the weekly sections of a course
type SectionService interface {
	ListSections(ctx context.Context, courseID uuid.UUID) ([]models.Section, error)
	CreateSection(ctx context.Context, courseID uuid.UUID, req *dto.SectionRequest) (*models.Section, error)
	UpdateSection(ctx context.Context, courseID, sectionID uuid.UUID, req *dto.SectionRequest) (*models.Section, error)
	DeleteSection(ctx context.Context, courseID, sectionID uuid.UUID) error
}

type sectionServiceImpl struct {
	courseRepo  repositories.ICourseRepository
	sectionRepo repositories.ISectionRepository
	logger      zerolog.Logger
}

// NewSectionService creates a new SectionService
func NewSectionService(courseRepo repositories.ICourseRepository, sectionRepo repositories.ISectionRepository, logger zerolog.Logger) SectionService {
	return &sectionServiceImpl{
		courseRepo:  courseRepo,
		sectionRepo: sectionRepo,
		logger:      logger,
	}
}

// ListSections returns the sections of a course in display order
func (s *sectionServiceImpl) ListSections(ctx context.Context, courseID uuid.UUID) ([]models.Section, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.sectionRepo.ListByCourse(ctx, courseID)
}

// CreateSection appends a section unless an explicit order is given
func (s *sectionServiceImpl) CreateSection(ctx context.Context, courseID uuid.UUID, req *dto.SectionRequest) (*models.Section, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	section := &models.Section{
		CourseID:    courseID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	if req.Order != nil {
		section.Order = *req.Order
	} else {
		next, err := s.sectionRepo.NextOrder(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute section order: %w", err)
		}
		section.Order = next
	}

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSection changes a section of the given course; a nil order keeps the position
func (s *sectionServiceImpl) UpdateSection(ctx context.Context, courseID, sectionID uuid.UUID, req *dto.SectionRequest) (*models.Section, error) {
	section, err := s.sectionInCourse(ctx, courseID, sectionID)
	if err != nil {
		return nil, err
	}

	section.Title = strings.TrimSpace(req.Title)
	section.Description = req.Description
	if req.Order != nil {
		section.Order = *req.Order
	}

	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection removes a section and its activities
func (s *sectionServiceImpl) DeleteSection(ctx context.Context, courseID, sectionID uuid.UUID) error {
	if _, err := s.sectionInCourse(ctx, courseID, sectionID); err != nil {
		return err
	}
	return s.sectionRepo.Delete(ctx, sectionID)
}

// sectionInCourse hides sections of other courses behind a not-found error
func (s *sectionServiceImpl) sectionInCourse(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error) {
	section, err := s.sectionRepo.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section.CourseID != courseID {
		return nil, apperrors.ErrSectionNotFound
	}
	return section, nil
}

package services

import (
	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/config"
	"github.com/unipem/lms/internal/pkg/filestorage"
)

// SubmissionNotifier receives submission changes for live grading views
type SubmissionNotifier interface {
	SubmissionChanged(eventType models.SubmissionEventType, submission *models.Submission)
}

type noopNotifier struct{}

func (noopNotifier) SubmissionChanged(models.SubmissionEventType, *models.Submission) {}

// Services holds every service of the application
type Services struct {
	AuthService       AuthService
	UserService       UserService
	CourseService     CourseService
	SectionService    SectionService
	ActivityService   ActivityService
	SubmissionService SubmissionService
	DashboardService  DashboardService
}

// NewServices wires the services on top of the repositories.
// A nil notifier disables live submission events.
func NewServices(
	repos *repositories.Repositories,
	storage filestorage.FileStorage,
	notifier SubmissionNotifier,
	cfg *config.Config,
	logger zerolog.Logger,
) *Services {
	if notifier == nil {
		notifier = noopNotifier{}
	}

	activityService := NewActivityService(repos.SectionRepository, repos.ActivityRepository, repos.SubmissionRepository, storage, logger)
	submissionService := NewSubmissionService(repos.SubmissionRepository, repos.CourseRepository, activityService, storage, notifier, logger)

	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, logger),
		UserService:       NewUserService(repos.UserRepository, logger),
		CourseService:     NewCourseService(repos.CourseRepository, repos.SectionRepository, repos.ActivityRepository, repos.UserRepository, logger),
		SectionService:    NewSectionService(repos.CourseRepository, repos.SectionRepository, logger),
		ActivityService:   activityService,
		SubmissionService: submissionService,
		DashboardService: NewDashboardService(
			repos.UserRepository, repos.CourseRepository, repos.SubmissionRepository, submissionService,
			cfg.Site.Name, cfg.Site.Description, logger,
		),
	}
}

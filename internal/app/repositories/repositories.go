package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/db"
)

// psql is the statement builder shared by all repositories
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// IUserRepository defines user persistence
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context) (models.UserCounts, error)
}

// ICourseRepository defines course persistence
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// ISectionRepository defines section persistence
type ISectionRepository interface {
	Create(ctx context.Context, section *models.Section) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Section, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error)
	NextOrder(ctx context.Context, courseID uuid.UUID) (int, error)
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// IActivityRepository defines activity persistence
type IActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Activity, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ISubmissionRepository defines submission persistence
type ISubmissionRepository interface {
	Upsert(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	GetByActivityAndStudent(ctx context.Context, activityID, studentID uuid.UUID) (*models.Submission, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID, search string) ([]models.Submission, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Submission, error)
	ListRecent(ctx context.Context, scope models.SubmissionScope, limit int) ([]models.Submission, error)
	Grade(ctx context.Context, id uuid.UUID, grade int, feedback *string) (*models.Submission, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       IUserRepository
	CourseRepository     ICourseRepository
	SectionRepository    ISectionRepository
	ActivityRepository   IActivityRepository
	SubmissionRepository ISubmissionRepository
}

// NewRepositories initializes all repositories on the same connection
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(conn),
		CourseRepository:     NewCourseRepository(conn),
		SectionRepository:    NewSectionRepository(conn),
		ActivityRepository:   NewActivityRepository(conn),
		SubmissionRepository: NewSubmissionRepository(conn),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds an ILIKE substring pattern with wildcards in search escaped
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(search)) + "%"
}

package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/auth"
)

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type courseStore interface {
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
}

type sectionStore interface {
	Create(ctx context.Context, section *models.Section) error
}

type activityStore interface {
	Create(ctx context.Context, activity *models.Activity) error
}

type mockUser struct {
	username, name, email string
	role                  models.Role
}

type mockActivity struct {
	kind        models.ActivityType
	title       string
	description string
	contentURL  string
	dueDate     string
}

type mockSection struct {
	title       string
	description string
	activities  []mockActivity
}

type mockCourse struct {
	code, title, category, thumbnail string
	instructor                       string
	sections                         []mockSection
}

var users = []mockUser{
	{"admin", "Admin UNIPEM", "admin@unipem.ac.id", models.RoleAdmin},
	{"19850101", "Dr. Budi Santoso", "budi@unipem.ac.id", models.RoleTeacher},
	{"2021001", "Andi Mahasiswa", "andi@student.unipem.ac.id", models.RoleStudent},
	{"19850102", "Dr. Siti Aminah", "siti@unipem.ac.id", models.RoleTeacher},
	{"2021002", "Budi Cahyadi", "budi.c@student.unipem.ac.id", models.RoleStudent},
	{"2021003", "Dedi Kurniawan", "dedi.k@student.unipem.ac.id", models.RoleStudent},
	{"staff", "Staff Akademik", "akademik@unipem.ac.id", models.RoleAdmin},
}

var courses = []mockCourse{
	{
		code:       "INF202",
		title:      "Pemrograman Web Lanjut",
		category:   "Teknik Informatika",
		thumbnail:  "https://images.unsplash.com/photo-1587620962725-abab7fe55159?w=800&q=80",
		instructor: "19850101",
		sections: []mockSection{
			{
				title:       "Minggu 1: Pengenalan Next.js",
				description: "Mempelajari dasar-dasar App Router dan Server Components.",
				activities: []mockActivity{
					{kind: models.ActivityFile, title: "Slide Materi 1: Arsitektur Next.js", contentURL: "/files/materi1.pdf"},
					{kind: models.ActivityForum, title: "Diskusi: Server vs Client Components"},
				},
			},
			{
				title: "Minggu 2: Tailwind CSS & UI Design",
				activities: []mockActivity{
					{
						kind:        models.ActivityAssignment,
						title:       "Tugas 1: Slice UI Dashboard",
						description: "Buatlah layout dashboard menggunakan Tailwind CSS.",
						dueDate:     "2026-01-20T23:59:00Z",
					},
				},
			},
		},
	},
	{
		code:       "INF301",
		title:      "Kecerdasan Buatan",
		category:   "Teknik Informatika",
		thumbnail:  "https://images.unsplash.com/photo-1555255707-c079664889ec?w=800&q=80",
		instructor: "19850102",
	},
}

// Seeder inserts the demo accounts and courses
type Seeder struct {
	users      userStore
	courses    courseStore
	sections   sectionStore
	activities activityStore
	logger     zerolog.Logger
}

// NewSeeder creates a seeder writing through repos
func NewSeeder(repos *repositories.Repositories, logger zerolog.Logger) *Seeder {
	return &Seeder{
		users:      repos.UserRepository,
		courses:    repos.CourseRepository,
		sections:   repos.SectionRepository,
		activities: repos.ActivityRepository,
		logger:     logger.With().Str("component", "seed").Logger(),
	}
}

// Run creates the demo data. Usernames and course codes that already exist are skipped,
// so running it twice changes nothing.
func (s *Seeder) Run(ctx context.Context) error {
	password, err := auth.HashPassword(auth.DefaultPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	var finalErr error
	ids := make(map[string]models.User, len(users))
	for _, u := range users {
		user, err := s.ensureUser(ctx, u, password)
		if err != nil {
			s.logger.Error().Err(err).Str("username", u.username).Msg("Error creating seed user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		ids[u.username] = *user
	}

	for _, c := range courses {
		if err := s.ensureCourse(ctx, c, ids); err != nil {
			s.logger.Error().Err(err).Str("code", c.code).Msg("Error creating seed course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		s.logger.Info().Int("users", len(users)).Int("courses", len(courses)).Msg("Seed data ready")
	}
	return finalErr
}

func (s *Seeder) ensureUser(ctx context.Context, u mockUser, password string) (*models.User, error) {
	existing, err := s.users.GetByUsername(ctx, u.username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	user := &models.User{
		Username: u.username,
		Name:     u.name,
		Email:    u.email,
		Role:     u.role,
		Password: password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("username", u.username).Msg("Seed user created")
	return user, nil
}

func (s *Seeder) ensureCourse(ctx context.Context, c mockCourse, users map[string]models.User) error {
	_, err := s.courses.GetByCode(ctx, c.code)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		return err
	}

	course := &models.Course{
		Code:      c.code,
		Title:     c.title,
		Category:  optional(c.category),
		Thumbnail: optional(c.thumbnail),
	}
	if instructor, ok := users[c.instructor]; ok {
		course.InstructorID = &instructor.ID
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return err
	}

	for i, sec := range c.sections {
		section := &models.Section{
			CourseID:    course.ID,
			Title:       sec.title,
			Description: optional(sec.description),
			Order:       i,
		}
		if err := s.sections.Create(ctx, section); err != nil {
			return err
		}

		for _, a := range sec.activities {
			activity := &models.Activity{
				SectionID:   section.ID,
				Type:        a.kind,
				Title:       a.title,
				Description: optional(a.description),
				ContentURL:  optional(a.contentURL),
			}
			if a.dueDate != "" {
				due, err := time.Parse(time.RFC3339, a.dueDate)
				if err != nil {
					return fmt.Errorf("invalid seed due date: %w", err)
				}
				activity.DueDate = &due
			}
			if err := s.activities.Create(ctx, activity); err != nil {
				return err
			}
		}
	}

	s.logger.Debug().Str("code", c.code).Msg("Seed course created")
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

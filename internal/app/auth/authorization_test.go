package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/pkg/auth"
)

func session(role models.Role) *auth.Session {
	return &auth.Session{ID: uuid.New(), Username: "u", Role: role}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		session *auth.Session
		want    string
	}{
		{name: "login with session", path: "/login", session: session(models.RoleStudent), want: "/dashboard"},
		{name: "login without session", path: "/login", want: ""},
		{name: "dashboard without session", path: "/dashboard", want: "/login"},
		{name: "course without session", path: "/course/abc", want: "/login"},
		{name: "uploads without session", path: "/uploads/x.pdf", want: "/login"},
		{name: "admin as teacher", path: "/admin/users", session: session(models.RoleTeacher), want: "/dashboard"},
		{name: "admin as student", path: "/admin", session: session(models.RoleStudent), want: "/dashboard"},
		{name: "admin as admin", path: "/admin/settings", session: session(models.RoleAdmin), want: ""},
		{name: "submissions as student", path: "/course/1/activity/2/submissions", session: session(models.RoleStudent), want: "/dashboard"},
		{name: "submissions as teacher", path: "/course/1/activity/2/submissions", session: session(models.RoleTeacher), want: ""},
		{name: "admin rule before submissions rule", path: "/admin/submissions", session: session(models.RoleStudent), want: "/dashboard"},
		{name: "dashboard as student", path: "/dashboard/grades", session: session(models.RoleStudent), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.path, tt.session)
			assert.Equal(t, tt.want, d.Redirect)
			assert.Equal(t, tt.want == "", d.Allowed())
		})
	}
}

func TestIsGated(t *testing.T) {
	for _, p := range []string{"/login", "/dashboard", "/dashboard/me", "/course/1", "/admin/users", "/uploads/a/b.pdf"} {
		assert.True(t, IsGated(p), p)
	}
	for _, p := range []string{"/", "/health", "/swagger/index.html", "/courses", "/loginx", "/administrator", "/adminx/users"} {
		assert.False(t, IsGated(p), p)
	}
}

func TestRoleChecks(t *testing.T) {
	assert.True(t, CanEditCourse(session(models.RoleAdmin)))
	assert.True(t, CanEditCourse(session(models.RoleTeacher)))
	assert.False(t, CanEditCourse(session(models.RoleStudent)))
	assert.False(t, CanEditCourse(nil))

	assert.True(t, CanGrade(session(models.RoleTeacher)))
	assert.False(t, CanGrade(session(models.RoleStudent)))

	assert.True(t, HasRole(session(models.RoleStudent), models.RoleAdmin, models.RoleStudent))
	assert.False(t, HasRole(nil, models.RoleAdmin))
}

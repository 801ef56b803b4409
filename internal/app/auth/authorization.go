package auth

import (
	"strings"

	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/pkg/auth"
)

// Paths the gate redirects to
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// GatedPrefixes are the path prefixes protected by the session gate
var GatedPrefixes = []string{"/login", "/dashboard", "/course", "/admin", "/uploads"}

// Decision is the outcome of the gate for one request.
// Redirect is empty when the request may proceed.
type Decision struct {
	Redirect string
}

// Allowed reports whether the request may proceed
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

var allow = Decision{}

// IsGated reports whether path falls under one of the gated prefixes
func IsGated(path string) bool {
	for _, prefix := range GatedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Decide applies the gate rules in order. A nil session means no usable cookie.
func Decide(path string, session *auth.Session) Decision {
	isLogin := path == LoginPath

	if isLogin && session != nil {
		return Decision{Redirect: DashboardPath}
	}
	if !isLogin && session == nil {
		return Decision{Redirect: LoginPath}
	}
	if session == nil {
		return allow
	}

	if strings.HasPrefix(path, "/admin") && session.Role != models.RoleAdmin {
		return Decision{Redirect: DashboardPath}
	}
	if strings.Contains(path, "/submissions") && session.Role == models.RoleStudent {
		return Decision{Redirect: DashboardPath}
	}
	return allow
}

// HasRole reports whether the session holds one of roles
func HasRole(session *auth.Session, roles ...models.Role) bool {
	if session == nil {
		return false
	}
	for _, r := range roles {
		if session.Role == r {
			return true
		}
	}
	return false
}

// CanEditCourse reports whether the session may change sections and activities
func CanEditCourse(session *auth.Session) bool {
	return session != nil && session.Role.CanEditCourses()
}

// CanGrade reports whether the session may view and grade submissions
func CanGrade(session *auth.Session) bool {
	return session != nil && session.Role != models.RoleStudent
}

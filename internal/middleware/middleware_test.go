package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *SessionMiddleware) {
	t.Helper()
	codec, err := auth.NewSessionCodec(auth.SessionConfig{Mode: auth.ModePlain})
	require.NoError(t, err)

	m := NewSessionMiddleware(codec, "user_session", 7*24*time.Hour, false, zerolog.Nop())
	r := gin.New()
	r.Use(m.Gate())

	ok := func(c *gin.Context) {
		session, _ := auth.SessionFromContext(c)
		if session != nil {
			c.String(http.StatusOK, string(session.Role))
			return
		}
		c.String(http.StatusOK, "anonymous")
	}
	r.GET("/login", ok)
	r.GET("/dashboard", ok)
	r.GET("/health", ok)
	r.GET("/admin/users", m.RequireRoles(models.RoleAdmin), ok)
	r.GET("/course/:id/activity/:aid/submissions", ok)
	r.POST("/course/:id/sections", m.RequireRoles(models.RoleAdmin, models.RoleTeacher), ok)
	return r, m
}

func cookieFor(t *testing.T, role models.Role) *http.Cookie {
	t.Helper()
	codec, err := auth.NewSessionCodec(auth.SessionConfig{Mode: auth.ModePlain})
	require.NoError(t, err)
	value, err := codec.Encode(auth.Session{ID: uuid.New(), Username: "2021001", Name: "Andi", Role: role})
	require.NoError(t, err)
	return &http.Cookie{Name: "user_session", Value: url.QueryEscape(value)}
}

func TestGate(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		cookie   *http.Cookie
		status   int
		location string
		body     string
	}{
		{name: "login anonymous", method: "GET", path: "/login", status: 200, body: "anonymous"},
		{name: "login with session", method: "GET", path: "/login", cookie: cookieFor(t, models.RoleStudent), status: 307, location: "/dashboard"},
		{name: "dashboard anonymous", method: "GET", path: "/dashboard", status: 307, location: "/login"},
		{name: "dashboard student", method: "GET", path: "/dashboard", cookie: cookieFor(t, models.RoleStudent), status: 200, body: "STUDENT"},
		{name: "admin as teacher", method: "GET", path: "/admin/users", cookie: cookieFor(t, models.RoleTeacher), status: 307, location: "/dashboard"},
		{name: "admin as admin", method: "GET", path: "/admin/users", cookie: cookieFor(t, models.RoleAdmin), status: 200, body: "ADMIN"},
		{name: "submissions as student", method: "GET", path: "/course/1/activity/2/submissions", cookie: cookieFor(t, models.RoleStudent), status: 307, location: "/dashboard"},
		{name: "submissions as teacher", method: "GET", path: "/course/1/activity/2/submissions", cookie: cookieFor(t, models.RoleTeacher), status: 200},
		{name: "ungated path", method: "GET", path: "/health", status: 200, body: "anonymous"},
		{name: "editor route as student", method: "POST", path: "/course/1/sections", cookie: cookieFor(t, models.RoleStudent), status: 403},
		{name: "editor route as teacher", method: "POST", path: "/course/1/sections", cookie: cookieFor(t, models.RoleTeacher), status: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestGate_MalformedCookieIsClearedAndTreatedAsAbsent(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, value := range []string{"not-json", url.QueryEscape(`{"id":"x","role":"DEAN"}`)} {
		req := httptest.NewRequest("GET", "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: "user_session", Value: value})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Contains(t, w.Header().Get("Set-Cookie"), "user_session=;")
		assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	}

	req := httptest.NewRequest("GET", "/login", nil)
	req.AddCookie(&http.Cookie{Name: "user_session", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionMiddleware_SetCookie(t *testing.T) {
	_, m := newTestRouter(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/login", nil)

	require.NoError(t, m.SetCookie(c, auth.Session{ID: uuid.New(), Username: "admin", Role: models.RoleAdmin}))
	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "user_session=")
	assert.Contains(t, header, "Path=/")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, fmt.Sprintf("Max-Age=%d", 7*24*60*60))
	assert.NotContains(t, header, "Secure")
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{name: "not found", err: fmt.Errorf("load: %w", apperrors.ErrCourseNotFound), status: 404, code: "RES_001", message: "course not found"},
		{name: "conflict", err: apperrors.ErrUsernameExists, status: 409, code: "RES_002", message: "username already exists"},
		{name: "credentials", err: apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "NPM/NIP tidak terdaftar."), status: 401, code: "AUTH_001", message: "NPM/NIP tidak terdaftar."},
		{name: "forbidden", err: apperrors.NewForbiddenError("only students can submit assignments"), status: 403, code: "AUTH_009", message: "only students can submit assignments"},
		{name: "validation", err: fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrGradeOutOfRange), status: 400, code: "VAL_001", message: "grade must be between 0 and 100"},
		{name: "unknown", err: fmt.Errorf("boom"), status: 500, code: "SRV_001", message: MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
			assert.Contains(t, w.Body.String(), fmt.Sprintf(`"code":%q`, tt.code))
			assert.Contains(t, w.Body.String(), fmt.Sprintf(`"message":%q`, tt.message))
		})
	}
}

package routes

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unipem/lms/internal/middleware"
	"github.com/unipem/lms/internal/pkg/auth"
)

func TestSetupRouter_AdminCourseRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec, err := auth.NewSessionCodec(auth.SessionConfig{Mode: auth.ModePlain})
	require.NoError(t, err)
	sessions := middleware.NewSessionMiddleware(codec, "user_session", 7*24*time.Hour, false, zerolog.Nop())

	router := gin.New()
	SetupRouter(router, Controllers{}, sessions, t.TempDir())

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, route := range []string{
		http.MethodGet + " /admin/courses",
		http.MethodPost + " /admin/courses",
		http.MethodGet + " /admin/courses/:id",
		http.MethodPut + " /admin/courses/:id",
		http.MethodDelete + " /admin/courses/:id",
		http.MethodGet + " /course/:id",
	} {
		assert.True(t, registered[route], route)
	}
}

package websocket

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/pkg/auth"
)

// ActivityLookup resolves an activity inside a course
type ActivityLookup interface {
	GetActivityInCourse(ctx context.Context, courseID, activityID uuid.UUID) (*models.Activity, error)
}

// Handler upgrades grading views to websocket connections
type Handler struct {
	hub        *Hub
	activities ActivityLookup
	upgrader   websocket.Upgrader
	logger     zerolog.Logger
}

// NewHandler creates a new WebSocket handler. An empty allowedOrigins list accepts only same-host origins.
func NewHandler(hub *Hub, activities ActivityLookup, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		activities: activities,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set["*"] || set[origin] {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// HandleConnection godoc
// @Summary Live submission feed
// @Description Upgrades to a websocket that receives SUBMITTED, GRADED and DELETED events for one activity
// @Tags submissions, websocket
// @Param id path string true "Course ID"
// @Param activityId path string true "Activity ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Router /course/{id}/activity/{activityId}/submissions/live [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	activityID, err := uuid.Parse(c.Param("activityId"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if _, err := h.activities.GetActivityInCourse(c.Request.Context(), courseID, activityID); err != nil {
		h.logger.Debug().Err(err).Str("activityID", activityID.String()).Msg("Live feed requested for unknown activity")
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("activityID", activityID.String()).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := NewClient(h.hub, conn, session.ID, activityID, h.logger)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

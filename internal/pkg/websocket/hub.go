package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
)

// Hub keeps the live grading views open per activity and fans submission events out to them
type Hub struct {
	// Registered clients organized by activity ID
	clients map[uuid.UUID]map[*Client]bool

	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client

	// closed when Run returns
	done chan struct{}

	mu     sync.RWMutex
	logger zerolog.Logger
}

// Event is a submission change sent over the websocket
type Event struct {
	Type         models.SubmissionEventType `json:"type"`
	ActivityID   uuid.UUID                  `json:"activityId"`
	SubmissionID uuid.UUID                  `json:"submissionId"`
	StudentID    uuid.UUID                  `json:"studentId"`
	StudentName  string                     `json:"studentName,omitempty"`
	Status       models.SubmissionStatus    `json:"status,omitempty"`
	Grade        *int                       `json:"grade,omitempty"`
	FileURL      *string                    `json:"fileUrl,omitempty"`
	Timestamp    time.Time                  `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled, then disconnects every client
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Register adds a client, or reports false when the hub has stopped
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client; it is a no-op after the hub has stopped
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.activityID]; !ok {
		h.clients[client.activityID] = make(map[*Client]bool)
	}
	h.clients[client.activityID][client] = true

	h.logger.Info().
		Str("activityID", client.activityID.String()).
		Str("userID", client.userID.String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops a client and closes its send channel. h.mu must be held for writing.
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.activityID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.activityID)
	}

	h.logger.Info().
		Str("activityID", client.activityID.String()).
		Str("userID", client.userID.String()).
		Msg("Client unregistered")
}

// broadcastEvent sends an event to every viewer of the event's activity; slow viewers are dropped
func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal submission event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[event.ActivityID]
	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Str("userID", client.userID.String()).Msg("Dropping slow websocket client")
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("activityID", event.ActivityID.String()).
		Str("type", string(event.Type)).
		Int("clientCount", len(clients)).
		Msg("Submission event broadcasted")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// Publish queues an event without blocking the caller. Events are dropped when the hub is
// stopped or its queue is full.
func (h *Hub) Publish(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("activityID", event.ActivityID.String()).Msg("Submission event queue full, dropping event")
	}
}

// SubmissionChanged publishes a submission change to the viewers of its activity
func (h *Hub) SubmissionChanged(eventType models.SubmissionEventType, s *models.Submission) {
	event := &Event{
		Type:         eventType,
		ActivityID:   s.ActivityID,
		SubmissionID: s.ID,
		StudentID:    s.StudentID,
		Status:       s.Status,
		Grade:        s.Grade,
		FileURL:      s.FileURL,
	}
	if s.Student != nil {
		event.StudentName = s.Student.Name
	}
	h.Publish(event)
}

// ClientsCount returns the number of viewers connected to an activity
func (h *Hub) ClientsCount(activityID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[activityID])
}

package api

import (
	"time"

	"github.com/rpupo63/blogicum-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	feedHandler    feedHandler
	postHandler    postHandler
	commentHandler commentHandler
	profileHandler profileHandler
	authHandler    authHandler
	adminHandler   adminHandler
	healthHandler  healthHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string            `json:"error" example:"post not found"`
	Status  string            `json:"status" example:"error"`
	Field   string            `json:"field,omitempty" example:"title"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details string            `json:"details,omitempty" example:"Additional error details"`
}

// SessionResponse is returned by registration and login. The token is also
// set as the session cookie.
type SessionResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Redirect  string       `json:"redirect"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
}

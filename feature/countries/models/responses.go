package models

import "time"

// Status is the body of GET /status.
type Status struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

// RefreshResponse is the body of a successful POST /countries/refresh.
type RefreshResponse struct {
	Message            string     `json:"message"`
	CountriesProcessed int        `json:"countries_processed"`
	TotalCountries     int64      `json:"total_countries"`
	LastRefreshedAt    *time.Time `json:"last_refreshed_at"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

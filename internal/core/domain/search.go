package domain

import "time"

// SearchQuery is a write-only log entry recorded for every search call.
// Nothing reads it back; popular tags are a static list by design.
type SearchQuery struct {
	ID        int       `json:"id"`
	Query     string    `json:"query"`
	Results   int       `json:"results"`
	CreatedAt time.Time `json:"createdAt"`
}

// SearchResponse is the body for GET /api/search.
type SearchResponse struct {
	Results []Service `json:"results"`
	Total   int       `json:"total"`
}

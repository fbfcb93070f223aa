package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lookup is a successful weather lookup as kept in history
type Lookup struct {
	ID        uuid.UUID     `json:"id"`
	Record    WeatherRecord `json:"record"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// WeatherResponse wraps a record with metadata
type WeatherResponse struct {
	Data    *WeatherRecord `json:"data,omitempty"`
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
}

// HistoryResponse wraps recent lookups with metadata
type HistoryResponse struct {
	Data    []Lookup `json:"data"`
	Count   int      `json:"count"`
	Success bool     `json:"success"`
}

// LookupRepository defines the interface for lookup history persistence
type LookupRepository interface {
	// SaveLookup persists a successful lookup
	SaveLookup(ctx context.Context, lookup Lookup) error

	// RecentLookups returns the newest lookups first. An empty city matches all
	// cities; otherwise matching is case-insensitive.
	RecentLookups(ctx context.Context, city string, limit int) ([]Lookup, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}

// LookupPublisher forwards successful lookups to downstream consumers
type LookupPublisher interface {
	Publish(ctx context.Context, lookup Lookup) error
}

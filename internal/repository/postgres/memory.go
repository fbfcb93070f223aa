package postgres

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
)

// maxMemoryLookups bounds the in-memory history
const maxMemoryLookups = 500

// MemoryRepository implements domain.LookupRepository in process memory.
// Used when no database is configured, and in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	lookups []domain.Lookup
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{lookups: make([]domain.Lookup, 0, 64)}
}

// SaveLookup appends a lookup, dropping the oldest beyond the bound
func (r *MemoryRepository) SaveLookup(_ context.Context, lookup domain.Lookup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups = append(r.lookups, lookup)
	if len(r.lookups) > maxMemoryLookups {
		r.lookups = r.lookups[len(r.lookups)-maxMemoryLookups:]
	}
	return nil
}

// RecentLookups returns up to limit lookups for city, newest first
func (r *MemoryRepository) RecentLookups(_ context.Context, city string, limit int) ([]domain.Lookup, error) {
	r.mu.RLock()
	out := make([]domain.Lookup, 0, len(r.lookups))
	for _, l := range r.lookups {
		if city == "" || strings.EqualFold(l.Record.CityName, city) {
			out = append(out, l)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].FetchedAt.After(out[j].FetchedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Health always returns nil for the in-memory store
func (r *MemoryRepository) Health(_ context.Context) error {
	return nil
}

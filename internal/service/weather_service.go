package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/observability"
)

// Fetcher looks up the current weather for a city
type Fetcher interface {
	Fetch(ctx context.Context, city string) (domain.WeatherRecord, error)
}

// WeatherService wraps the fetcher with logging, metrics, and lookup history
type WeatherService struct {
	fetcher   Fetcher
	repo      LookupRepository
	publisher domain.LookupPublisher
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *slog.Logger

	saveTimeout time.Duration
	wgBg        sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// Option customises a WeatherService
type Option func(*WeatherService)

// WithPublisher forwards every successful lookup to p
func WithPublisher(p domain.LookupPublisher) Option {
	return func(s *WeatherService) { s.publisher = p }
}

// WithClock swaps the time source used to stamp lookups
func WithClock(c clockwork.Clock) Option {
	return func(s *WeatherService) { s.clock = c }
}

// NewWeatherService creates a new weather service
func NewWeatherService(
	fetcher Fetcher,
	repo LookupRepository,
	metrics *observability.Metrics,
	logger *slog.Logger,
	opts ...Option,
) *WeatherService {
	s := &WeatherService{
		fetcher:     fetcher,
		repo:        repo,
		clock:       clockwork.NewRealClock(),
		metrics:     metrics,
		logger:      logger,
		saveTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *WeatherService) WaitBackground() {
	s.wgBg.Wait()
}

// Lookup fetches the current weather for city and records the lookup in the
// background. Errors from the fetcher are returned unchanged.
func (s *WeatherService) Lookup(ctx context.Context, city string) (domain.WeatherRecord, error) {
	start := s.clock.Now()
	record, err := s.fetcher.Fetch(ctx, city)
	s.metrics.FetchDuration.Observe(s.clock.Since(start).Seconds())
	s.metrics.FetchRequests.WithLabelValues(outcomeLabel(err)).Inc()

	if err != nil {
		s.logFailure(city, err)
		return domain.WeatherRecord{}, err
	}

	lookup := domain.Lookup{
		ID:        uuid.New(),
		Record:    record,
		FetchedAt: s.clock.Now().UTC(),
	}
	s.logger.Info("weather lookup succeeded",
		"city", record.CityName,
		"lookup_id", lookup.ID,
		"temperature_celsius", record.TemperatureCelsius,
	)

	// Persist and publish asynchronously (tracked for graceful shutdown)
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
		defer cancel()
		s.record(bgCtx, lookup)
	}()

	return record, nil
}

// History returns recent lookups for city, newest first. An empty city
// returns lookups for every city.
func (s *WeatherService) History(ctx context.Context, city string, limit int) ([]domain.Lookup, error) {
	return s.repo.RecentLookups(ctx, city, limit)
}

// Health checks the history store.
func (s *WeatherService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

func (s *WeatherService) record(ctx context.Context, lookup domain.Lookup) {
	if err := s.repo.SaveLookup(ctx, lookup); err != nil {
		s.metrics.HistorySaveErrors.Inc()
		s.logger.Error("failed to save lookup", "lookup_id", lookup.ID, "error", err)
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, lookup); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("failed to publish lookup", "lookup_id", lookup.ID, "error", err)
	}
}

func (s *WeatherService) logFailure(city string, err error) {
	attrs := []any{"city", city, "outcome", outcomeLabel(err), "error", err}
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrProtocol):
		s.logger.Info("weather lookup rejected", attrs...)
	case errors.Is(err, context.Canceled):
		s.logger.Debug("weather lookup cancelled", attrs...)
	default:
		s.logger.Error("weather lookup failed", attrs...)
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, domain.ErrInvalidInput):
		return observability.OutcomeInvalidInput
	case errors.Is(err, domain.ErrMissingCredential):
		return observability.OutcomeMissingCredential
	case errors.Is(err, domain.ErrNetwork):
		return observability.OutcomeNetworkError
	case errors.Is(err, domain.ErrProtocol):
		return observability.OutcomeProtocolError
	default:
		return observability.OutcomeDecodeError
	}
}

package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/clientdata"
	"github.com/dkoutsos/tradescope/internal/domain"
)

const cacheKey = "entries"

// BackendClient is the slice of the analytics backend this module needs.
type BackendClient interface {
	ListJournal(ctx context.Context) ([]domain.JournalEntry, error)
	AddJournalEntry(ctx context.Context, entry json.RawMessage) (json.RawMessage, error)
	DeleteJournalEntry(ctx context.Context, id int64) error
	AnalyzeJournal(ctx context.Context) (json.RawMessage, error)
}

// Cache is the subset of the client data repository the service uses.
// A nil cache disables caching entirely.
type Cache interface {
	GetIfFresh(table, key string, dest interface{}) (bool, error)
	Store(table, key string, data interface{}, ttl time.Duration) error
	Delete(table, key string) error
}

// Service proxies journal operations to the backend and derives the mood and
// calendar views from the entry list.
type Service struct {
	client BackendClient
	cache  Cache
	log    zerolog.Logger
}

// NewService creates a new journal service. cache may be nil.
func NewService(client BackendClient, cache Cache, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		log:    log.With().Str("service", "journal").Logger(),
	}
}

// List returns all journal entries, serving from the cache when fresh.
func (s *Service) List(ctx context.Context) ([]domain.JournalEntry, error) {
	if s.cache != nil {
		var cached []domain.JournalEntry
		found, err := s.cache.GetIfFresh("journal", cacheKey, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("Journal cache read failed")
		} else if found {
			return cached, nil
		}
	}

	entries, err := s.client.ListJournal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Store("journal", cacheKey, entries, clientdata.TTLJournal); err != nil {
			s.log.Warn().Err(err).Msg("Journal cache write failed")
		}
	}

	return entries, nil
}

// Add forwards a new entry to the backend and invalidates the cached list.
func (s *Service) Add(ctx context.Context, entry json.RawMessage) (json.RawMessage, error) {
	result, err := s.client.AddJournalEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to add journal entry: %w", err)
	}
	s.invalidate()
	return result, nil
}

// Delete removes an entry on the backend and invalidates the cached list.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteJournalEntry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	s.invalidate()
	return nil
}

// Analyze forwards the backend's journal analysis (sentiment over notes).
func (s *Service) Analyze(ctx context.Context) (json.RawMessage, error) {
	result, err := s.client.AnalyzeJournal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze journal: %w", err)
	}
	return result, nil
}

// Mood returns the emotion → summed PnL breakdown for the mood chart.
func (s *Service) Mood(ctx context.Context) (map[string]float64, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return MoodBreakdown(entries), nil
}

// CalendarView returns the trailing-year PnL heatmap.
func (s *Service) CalendarView(ctx context.Context) ([]CalendarDay, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Calendar(entries, time.Now()), nil
}

// Insights returns per-emotion PnL statistics.
func (s *Service) Insights(ctx context.Context) ([]EmotionInsight, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return EmotionInsights(entries), nil
}

func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete("journal", cacheKey); err != nil {
		s.log.Warn().Err(err).Msg("Journal cache invalidation failed")
	}
}

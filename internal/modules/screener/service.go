package screener

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/clientdata"
)

// BackendClient is the slice of the analytics backend this module needs.
type BackendClient interface {
	GetScreen(ctx context.Context, screen string) (json.RawMessage, error)
	RunScreen(ctx context.Context, body json.RawMessage) (json.RawMessage, error)
}

// Cache is the subset of the client data repository the service uses.
type Cache interface {
	GetIfFresh(table, key string, dest interface{}) (bool, error)
	Store(table, key string, data interface{}, ttl time.Duration) error
}

// Service serves screener result sets, caching idempotent GETs.
type Service struct {
	client BackendClient
	cache  Cache
	log    zerolog.Logger
}

// NewService creates a new screener service. cache may be nil.
func NewService(client BackendClient, cache Cache, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		log:    log.With().Str("service", "screener").Logger(),
	}
}

// Get returns a named screener result set, served from cache when fresh.
func (s *Service) Get(ctx context.Context, screen string) (json.RawMessage, error) {
	if screen == "" {
		screen = "default"
	}

	if s.cache != nil {
		var cached json.RawMessage
		found, err := s.cache.GetIfFresh("screener", screen, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("Screener cache read failed")
		} else if found {
			return cached, nil
		}
	}

	result, err := s.client.GetScreen(ctx, screen)
	if err != nil {
		return nil, fmt.Errorf("screen %q failed: %w", screen, err)
	}

	if s.cache != nil {
		if err := s.cache.Store("screener", screen, result, clientdata.TTLScreener); err != nil {
			s.log.Warn().Err(err).Msg("Screener cache write failed")
		}
	}

	return result, nil
}

// Run forwards a parameterized screen request; results are not cached since
// the parameters vary per request.
func (s *Service) Run(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	result, err := s.client.RunScreen(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("screen run failed: %w", err)
	}
	return result, nil
}

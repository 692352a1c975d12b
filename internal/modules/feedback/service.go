// Package feedback forwards user feedback submissions to the backend.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BackendClient is the slice of the analytics backend this module needs.
type BackendClient interface {
	SendFeedback(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
}

// Receipt confirms a forwarded submission. The ID lets support staff
// correlate a user report with the gateway logs.
type Receipt struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Service forwards feedback to the backend, tagging each submission with
// a correlation ID.
type Service struct {
	client BackendClient
	log    zerolog.Logger
}

// NewService creates a new feedback service.
func NewService(client BackendClient, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		log:    log.With().Str("service", "feedback").Logger(),
	}
}

// Submit forwards the feedback payload and returns the receipt.
func (s *Service) Submit(ctx context.Context, payload json.RawMessage) (*Receipt, error) {
	id := uuid.New().String()

	result, err := s.client.SendFeedback(ctx, payload)
	if err != nil {
		s.log.Error().Err(err).Str("feedback_id", id).Msg("Failed to forward feedback")
		return nil, fmt.Errorf("failed to forward feedback: %w", err)
	}

	s.log.Info().Str("feedback_id", id).Msg("Feedback forwarded")
	return &Receipt{ID: id, Result: result}, nil
}

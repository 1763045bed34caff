package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
)

// Service is an in-process pub/sub dispatcher keyed by event type.
type Service struct {
	mu       sync.RWMutex
	handlers map[interfaces.EventType][]interfaces.EventHandler
	closed   bool
	logger   arbor.ILogger
}

// NewService creates a new event service
func NewService(logger arbor.ILogger) interfaces.EventService {
	return &Service{
		handlers: make(map[interfaces.EventType][]interfaces.EventHandler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event type
func (s *Service) Subscribe(eventType interfaces.EventType, handler interfaces.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("event service is closed")
	}

	s.handlers[eventType] = append(s.handlers[eventType], handler)

	s.logger.Debug().
		Str("event_type", string(eventType)).
		Int("subscriber_count", len(s.handlers[eventType])).
		Msg("Event handler subscribed")

	return nil
}

func (s *Service) snapshot(eventType interfaces.EventType) []interfaces.EventHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()

	registered := s.handlers[eventType]
	if len(registered) == 0 {
		return nil
	}
	out := make([]interfaces.EventHandler, len(registered))
	copy(out, registered)
	return out
}

// Publish delivers an event to all subscribers without waiting for them.
// Handler errors are logged, not returned.
func (s *Service) Publish(ctx context.Context, event interfaces.Event) error {
	handlers := s.snapshot(event.Type)
	if handlers == nil {
		return nil
	}

	for _, handler := range handlers {
		go func(h interfaces.EventHandler) {
			if err := h(ctx, event); err != nil {
				s.logger.Error().
					Err(err).
					Str("event_type", string(event.Type)).
					Msg("Event handler failed")
			}
		}(handler)
	}

	return nil
}

// PublishSync delivers an event to all subscribers and waits for every
// handler to finish, returning their errors joined.
func (s *Service) PublishSync(ctx context.Context, event interfaces.Event) error {
	handlers := s.snapshot(event.Type)
	if handlers == nil {
		return nil
	}

	var (
		wg   sync.WaitGroup
		errM sync.Mutex
		errs []error
	)

	for _, handler := range handlers {
		wg.Add(1)
		go func(h interfaces.EventHandler) {
			defer wg.Done()
			if err := h(ctx, event); err != nil {
				s.logger.Error().
					Err(err).
					Str("event_type", string(event.Type)).
					Msg("Event handler failed")
				errM.Lock()
				errs = append(errs, err)
				errM.Unlock()
			}
		}(handler)
	}

	wg.Wait()

	return errors.Join(errs...)
}

// Close drops all subscriptions. Events published afterwards are discarded.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers = make(map[interfaces.EventType][]interfaces.EventHandler)
	s.closed = true

	return nil
}

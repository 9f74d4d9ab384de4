// Package realtime fans committed job events out to connected subscribers,
// scoped per agency.
package realtime

import (
	"log/slog"
	"sync"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// subscriberBuffer bounds each subscriber channel. A subscriber that falls
// this far behind starts losing events instead of stalling publishers.
const subscriberBuffer = 16

// Subscription is one live feed of an agency's job events. Events() stays
// open until Close is called; missed events are not redelivered.
type Subscription struct {
	hub      *Hub
	agencyID kernel.UUID
	events   chan ports.JobEvent
	once     sync.Once
}

// Events returns the subscriber's event channel.
func (s *Subscription) Events() <-chan ports.JobEvent {
	return s.events
}

// Close detaches the subscription from the hub and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
		close(s.events)
	})
}

// Hub is an in-process broadcaster. Publish copies the event into every
// subscriber channel of the event's agency and drops it for subscribers
// whose buffer is full.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[kernel.UUID]map[*Subscription]struct{}
	logger      *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) (*Hub, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Hub{
		subscribers: make(map[kernel.UUID]map[*Subscription]struct{}),
		logger:      logger,
	}, nil
}

// Subscribe registers a new feed for the agency's events.
func (h *Hub) Subscribe(agencyID kernel.UUID) (*Subscription, error) {
	if err := agencyID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("agencyID", err)
	}

	sub := &Subscription{
		hub:      h,
		agencyID: agencyID,
		events:   make(chan ports.JobEvent, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	agencySubs, ok := h.subscribers[agencyID]
	if !ok {
		agencySubs = make(map[*Subscription]struct{})
		h.subscribers[agencyID] = agencySubs
	}
	agencySubs[sub] = struct{}{}

	return sub, nil
}

// Publish delivers the event to every current subscriber of its agency.
// Subscribers with a full buffer miss the event.
func (h *Hub) Publish(event ports.JobEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers[event.AgencyID] {
		select {
		case sub.events <- event:
		default:
			h.logger.Warn("realtime subscriber buffer full, event dropped",
				"kind", event.Kind,
				"job_id", event.JobID,
			)
		}
	}
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	agencySubs := h.subscribers[sub.agencyID]
	delete(agencySubs, sub)
	if len(agencySubs) == 0 {
		delete(h.subscribers, sub.agencyID)
	}
}

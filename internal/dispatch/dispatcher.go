// Package dispatch drains pending domain events from entities and hands them
// to a Publisher as serialized envelopes. Events are cleared from the entity
// only after a successful publish, so a failed publish leaves them pending
// for the next attempt.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/photoscout/photoscout/internal/domain"
	"github.com/photoscout/photoscout/internal/observability"
)

// Envelope is the wire form of one domain event.
type Envelope struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Publisher delivers envelopes to an external system.
type Publisher interface {
	PublishBatch(ctx context.Context, envelopes []Envelope) error
}

// EventSource is the slice of a domain entity the dispatcher works with.
type EventSource interface {
	DomainEvents() []domain.Event
	ClearDomainEvents()
}

// Dispatcher serializes and publishes entity event buffers.
type Dispatcher struct {
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Dispatcher.
func New(publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Dispatch publishes all pending events of src in raise order, then clears
// the buffer. A no-op when the buffer is empty.
func (d *Dispatcher) Dispatch(ctx context.Context, src EventSource) error {
	events := src.DomainEvents()
	if len(events) == 0 {
		return nil
	}

	envelopes := make([]Envelope, len(events))
	for i, ev := range events {
		env, err := encodeEvent(ev)
		if err != nil {
			return err
		}
		envelopes[i] = env
	}

	if err := d.publisher.PublishBatch(ctx, envelopes); err != nil {
		d.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish domain events: %w", err)
	}

	for _, ev := range events {
		d.metrics.EventsPublished.WithLabelValues(ev.Kind()).Inc()
	}
	d.logger.Debug("domain events published", "count", len(events))

	src.ClearDomainEvents()
	return nil
}

// encodeEvent maps a domain event to its envelope: key is the location id,
// value is the event payload, headers carry type and occurrence time.
func encodeEvent(ev domain.Event) (Envelope, error) {
	var (
		locationID int64
		payload    any
	)

	switch e := ev.(type) {
	case domain.LocationSaved:
		locationID = e.Location.ID()
		payload = locationSavedPayload{
			LocationID:  e.Location.ID(),
			Title:       e.Location.Title(),
			Description: e.Location.Description(),
			Coordinate:  e.Location.Coordinate(),
			Address:     e.Location.Address(),
		}
	case domain.PhotoAttached:
		locationID = e.LocationID
		payload = photoAttachedPayload{LocationID: e.LocationID, Path: e.Path}
	case domain.LocationDeleted:
		locationID = e.LocationID
		payload = locationDeletedPayload{LocationID: e.LocationID}
	case domain.WeatherUpdated:
		locationID = e.LocationID
		payload = weatherUpdatedPayload{LocationID: e.LocationID}
	default:
		return Envelope{}, fmt.Errorf("unknown domain event type %q", ev.Kind())
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("serialize %s event: %w", ev.Kind(), err)
	}

	return Envelope{
		Key:   []byte(strconv.FormatInt(locationID, 10)),
		Value: value,
		Headers: map[string]string{
			"event_type":  ev.Kind(),
			"occurred_at": ev.OccurredAt().Format(time.RFC3339),
		},
	}, nil
}

type locationSavedPayload struct {
	LocationID  int64             `json:"location_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Coordinate  domain.Coordinate `json:"coordinate"`
	Address     domain.Address    `json:"address"`
}

type photoAttachedPayload struct {
	LocationID int64  `json:"location_id"`
	Path       string `json:"path"`
}

type locationDeletedPayload struct {
	LocationID int64 `json:"location_id"`
}

type weatherUpdatedPayload struct {
	LocationID int64 `json:"location_id"`
}

package blockstatus

import (
	"context"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// EventSource is the CloudEvents source of everything this package emits.
const EventSource = "blockstatus"

// Event types, in reverse domain notation.
const (
	EventTypeRegistryPopulated = "com.blockstatus.registry.populated"
	EventTypeRegistryReloaded  = "com.blockstatus.registry.reloaded"
	EventTypeConfigLoaded      = "com.blockstatus.config.loaded"
	EventTypeConfigFallback    = "com.blockstatus.config.fallback"
	EventTypeEntrySkipped      = "com.blockstatus.entry.skipped"
	EventTypeWatchError        = "com.blockstatus.watch.error"
)

// CloudEvent is an alias for the CloudEvents Event type.
type CloudEvent = cloudevents.Event

// NewCloudEvent builds a v1.0 event with a UUIDv7 id and JSON data.
func NewCloudEvent(eventType, source string, data any) cloudevents.Event {
	event := cloudevents.NewEvent()

	event.SetID(generateEventID())
	event.SetSource(source)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)

	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}
	return event
}

// generateEventID prefers UUIDv7 for time ordering and falls back to v4.
func generateEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// ValidateCloudEvent runs the SDK's validation.
func ValidateCloudEvent(event cloudevents.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("CloudEvent validation failed: %w", err)
	}
	return nil
}

// PopulatedEvent is the data of registry.populated and registry.reloaded.
type PopulatedEvent struct {
	Generation  uint64 `json:"generation"`
	Break       int    `json:"break"`
	Claim       int    `json:"claim"`
	Known       int    `json:"known"`
	Diagnostics int    `json:"diagnostics"`
}

// SkippedEvent is the data of entry.skipped and config.fallback.
type SkippedEvent struct {
	Section string `json:"section"`
	Entry   string `json:"entry,omitempty"`
	Reason  string `json:"reason"`
}

// emitEvent publishes to subject if there is one. Failures are only logged;
// events never change the outcome of a load.
func emitEvent(ctx context.Context, subject Subject, logger Logger, eventType string, data any) {
	if subject == nil {
		return
	}
	if err := subject.NotifyObservers(ctx, NewCloudEvent(eventType, EventSource, data)); err != nil {
		logger.Debug("Failed to emit event", "eventType", eventType, "error", err)
	}
}

func emitDiagnostics(ctx context.Context, subject Subject, logger Logger, eventType string, diags []Diagnostic) {
	if subject == nil {
		return
	}
	for _, d := range diags {
		emitEvent(ctx, subject, logger, eventType, SkippedEvent{
			Section: d.Section,
			Entry:   d.Entry,
			Reason:  d.Err.Error(),
		})
	}
}

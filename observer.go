// Package blockstatus classifies block identifiers into tooltip categories.
//
// A Resolver holds an immutable Snapshot of three identifier groups loaded
// from a configuration document. Lookups read the published Snapshot without
// locking; reloads build a replacement off to the side and swap it in.
// Load and reload progress is published as CloudEvents to any Subject
// handed to the Resolver, Loader or Watcher.
package blockstatus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// Observer is notified of events published through a Subject.
type Observer interface {
	// OnEvent is called synchronously by the Subject. Keep it short.
	OnEvent(ctx context.Context, event cloudevents.Event) error

	// ObserverID identifies the observer for registration and removal.
	ObserverID() string
}

// Subject fans events out to registered observers.
type Subject interface {
	// RegisterObserver adds an observer. With no eventTypes it receives everything.
	RegisterObserver(observer Observer, eventTypes ...string) error

	// UnregisterObserver removes an observer. Unknown observers are ignored.
	UnregisterObserver(observer Observer) error

	// NotifyObservers delivers event to every interested observer.
	NotifyObservers(ctx context.Context, event cloudevents.Event) error
}

// ObserverInfo describes a registration.
type ObserverInfo struct {
	ID           string    `json:"id"`
	EventTypes   []string  `json:"eventTypes"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// FunctionalObserver adapts a function to Observer.
type FunctionalObserver struct {
	id      string
	handler func(ctx context.Context, event cloudevents.Event) error
}

// NewFunctionalObserver creates an observer that calls handler for each event.
func NewFunctionalObserver(id string, handler func(ctx context.Context, event cloudevents.Event) error) Observer {
	return &FunctionalObserver{
		id:      id,
		handler: handler,
	}
}

// OnEvent implements Observer.
func (f *FunctionalObserver) OnEvent(ctx context.Context, event cloudevents.Event) error {
	return f.handler(ctx, event)
}

// ObserverID implements Observer.
func (f *FunctionalObserver) ObserverID() string {
	return f.id
}

type registration struct {
	observer Observer
	info     ObserverInfo
}

// EventHub is a synchronous in-process Subject. Observers run on the
// publisher's goroutine in registration order, so nothing is delivered
// after Populate or Reload has returned.
type EventHub struct {
	mu            sync.RWMutex
	registrations []registration
	logger        Logger
}

// NewEventHub creates an empty hub. Observer failures are logged to logger.
func NewEventHub(logger Logger) *EventHub {
	return &EventHub{logger: loggerOrNop(logger)}
}

// RegisterObserver implements Subject.
func (h *EventHub) RegisterObserver(observer Observer, eventTypes ...string) error {
	if observer == nil {
		return ErrObserverNil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, reg := range h.registrations {
		if reg.info.ID == observer.ObserverID() {
			return fmt.Errorf("%w: %s", ErrObserverAlreadyRegistered, observer.ObserverID())
		}
	}

	h.registrations = append(h.registrations, registration{
		observer: observer,
		info: ObserverInfo{
			ID:           observer.ObserverID(),
			EventTypes:   slices.Clone(eventTypes),
			RegisteredAt: time.Now(),
		},
	})
	h.logger.Debug("Observer registered", "observer", observer.ObserverID(), "eventTypes", eventTypes)
	return nil
}

// UnregisterObserver implements Subject.
func (h *EventHub) UnregisterObserver(observer Observer) error {
	if observer == nil {
		return ErrObserverNil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.registrations = slices.DeleteFunc(h.registrations, func(reg registration) bool {
		return reg.info.ID == observer.ObserverID()
	})
	return nil
}

// NotifyObservers implements Subject. Every interested observer is called even
// if an earlier one fails; the failures are joined into the returned error.
func (h *EventHub) NotifyObservers(ctx context.Context, event cloudevents.Event) error {
	if err := ValidateCloudEvent(event); err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]Observer, 0, len(h.registrations))
	for _, reg := range h.registrations {
		if len(reg.info.EventTypes) == 0 || slices.Contains(reg.info.EventTypes, event.Type()) {
			targets = append(targets, reg.observer)
		}
	}
	h.mu.RUnlock()

	var errs []error
	for _, o := range targets {
		if err := o.OnEvent(ctx, event); err != nil {
			h.logger.Error("Observer failed", "observer", o.ObserverID(), "eventType", event.Type(), "error", err)
			errs = append(errs, fmt.Errorf("observer %s: %w", o.ObserverID(), err))
		}
	}
	return errors.Join(errs...)
}

// Observers returns the current registrations.
func (h *EventHub) Observers() []ObserverInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]ObserverInfo, len(h.registrations))
	for i, reg := range h.registrations {
		out[i] = reg.info
	}
	return out
}

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventType categorizes playback events.
type EventType string

const (
	// Session events
	EventTypeSessionLoaded  EventType = "session.loaded"
	EventTypeSessionStarted EventType = "session.started"
	EventTypeSessionGated   EventType = "session.gated"
	EventTypeSessionResumed EventType = "session.resumed"
	EventTypeSessionStopped EventType = "session.stopped"
	EventTypeSessionCleaned EventType = "session.cleaned"

	// Step events
	EventTypeStepStarted  EventType = "step.started"
	EventTypeStepFinished EventType = "step.finished"
	EventTypeStepSkipped  EventType = "step.skipped"

	// Control events
	EventTypeAdvanceSignal EventType = "control.advance"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypeSession EntityType = "session"
	EntityTypeStep    EntityType = "step"
	EntityTypeElement EntityType = "element"
)

// Event represents an append-only playback log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the ID of the related entity.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	if strings.TrimSpace(string(e.Type)) == "" {
		return fmt.Errorf("event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		return fmt.Errorf("event entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		return fmt.Errorf("event entity_id is required")
	}
	return nil
}

// StepStartedPayload is the payload for step.started events.
type StepStartedPayload struct {
	StepID    string   `json:"step_id"`
	ElementID string   `json:"element_id"`
	Effect    string   `json:"effect"`
	Trigger   Trigger  `json:"trigger"`
	Category  Category `json:"category"`
}

// StepFinishedPayload is the payload for step.finished events.
type StepFinishedPayload struct {
	StepID   string `json:"step_id"`
	Outcome  string `json:"outcome"`
	Duration string `json:"duration"`
}

// StepSkippedPayload is the payload for step.skipped events.
type StepSkippedPayload struct {
	StepID string `json:"step_id"`
	Reason string `json:"reason"`
}

// SessionStoppedPayload is the payload for session.stopped events.
type SessionStoppedPayload struct {
	Cursor     int    `json:"cursor"`
	TotalSteps int    `json:"total_steps"`
	Reason     string `json:"reason"`
}

// AdvanceSignalPayload is the payload for control.advance events.
type AdvanceSignalPayload struct {
	StepID string `json:"step_id"`
	Cursor int    `json:"cursor"`
}

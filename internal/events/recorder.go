// Package events bridges sequencer playback events into the persisted
// event log.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/showdeck/buildseq/internal/models"
	"github.com/showdeck/buildseq/internal/sequencer"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// Record converts one playback event into a log entry and persists it. The
// session id groups all events of one play session.
func Record(ctx context.Context, repo Repository, sessionID string, ev sequencer.PlaybackEvent) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}

	event := &models.Event{
		Timestamp:  ev.Timestamp,
		Type:       ev.Type,
		EntityType: models.EntityTypeSession,
		EntityID:   sessionID,
	}

	switch ev.Type {
	case models.EventTypeStepStarted:
		event.EntityType = models.EntityTypeStep
		event.EntityID = ev.StepID
		if err := attach(event, models.StepStartedPayload{
			StepID:    ev.StepID,
			ElementID: ev.ElementID,
			Effect:    ev.Effect,
			Trigger:   ev.Trigger,
			Category:  ev.Category,
		}); err != nil {
			return err
		}

	case models.EventTypeStepFinished:
		event.EntityType = models.EntityTypeStep
		event.EntityID = ev.StepID
		if err := attach(event, models.StepFinishedPayload{
			StepID:   ev.StepID,
			Outcome:  string(ev.Outcome),
			Duration: ev.Duration.String(),
		}); err != nil {
			return err
		}

	case models.EventTypeStepSkipped:
		event.EntityType = models.EntityTypeStep
		event.EntityID = ev.StepID
		if err := attach(event, models.StepSkippedPayload{
			StepID: ev.StepID,
			Reason: ev.Reason,
		}); err != nil {
			return err
		}

	case models.EventTypeSessionStopped:
		if err := attach(event, models.SessionStoppedPayload{
			Cursor:     ev.Cursor,
			TotalSteps: ev.TotalSteps,
			Reason:     ev.Reason,
		}); err != nil {
			return err
		}

	case models.EventTypeAdvanceSignal:
		if err := attach(event, models.AdvanceSignalPayload{
			StepID: ev.StepID,
			Cursor: ev.Cursor,
		}); err != nil {
			return err
		}
	}

	return repo.Create(ctx, event)
}

func attach(event *models.Event, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", event.Type, err)
	}
	event.Payload = data
	return nil
}

package sequencer

import (
	"time"

	"github.com/showdeck/buildseq/internal/models"
)

// PlaybackEvent is a notification emitted while a session plays. Consumers
// read these from Events(); sends never block and drop when the channel is
// full.
type PlaybackEvent struct {
	// Type categorizes the event.
	Type models.EventType

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// StepID is set for step-scoped events.
	StepID string

	// ElementID is the step's target element, when it has one.
	ElementID string

	// Effect is the step's effect name, when it has one.
	Effect string

	// Trigger and Category describe the step on step.started events.
	Trigger  models.Trigger
	Category models.Category

	// Outcome is set on step.finished events.
	Outcome Outcome

	// Duration is the step's resolved run time on step.finished events.
	Duration time.Duration

	// Reason is set on step.skipped and session.stopped events.
	Reason string

	// Cursor is the play cursor at emission time.
	Cursor int

	// TotalSteps is the sequence length on session.stopped events.
	TotalSteps int
}

// AdvanceSignal tells the host to advance to the next container. It carries
// no payload beyond the step that fired it.
type AdvanceSignal struct {
	StepID string
}

func (s *Sequencer) emit(ev PlaybackEvent) {
	ev.Timestamp = time.Now().UTC()
	select {
	case s.eventCh <- ev:
	default:
		// Channel full, drop event
	}
}

func (s *Sequencer) emitAdvance(stepID string) {
	select {
	case s.advanceCh <- AdvanceSignal{StepID: stepID}:
	default:
	}
}

// Events returns the channel of playback events.
func (s *Sequencer) Events() <-chan PlaybackEvent {
	return s.eventCh
}

// AdvanceSignals returns the channel of advance-container signals.
func (s *Sequencer) AdvanceSignals() <-chan AdvanceSignal {
	return s.advanceCh
}

package sequencer

import (
	"context"

	"github.com/showdeck/buildseq/internal/effects"
	"github.com/showdeck/buildseq/internal/models"
	"github.com/showdeck/buildseq/internal/scene"
	"github.com/showdeck/buildseq/internal/timeline"
)

// Outcome is how a single step run ended.
type Outcome string

const (
	// OutcomeCompleted means the step's timeline ran to its end state and
	// the finalization policy was applied.
	OutcomeCompleted Outcome = "completed"

	// OutcomeCancelled means the timeline was cancelled (or refused to
	// start); no finalization happened.
	OutcomeCancelled Outcome = "cancelled"

	// OutcomeSkippedNoTarget means the step referenced an element id not
	// present on the bound slide.
	OutcomeSkippedNoTarget Outcome = "skipped:no-target"

	// OutcomeSkippedNoDefinition means the step referenced an effect the
	// registry does not know.
	OutcomeSkippedNoDefinition Outcome = "skipped:no-definition"
)

// startStep plays one step end to end and delivers its outcome on the
// returned channel. Skips resolve immediately; started timelines deliver
// once the timeline settles. The channel is buffered, so callers are free
// to never read it (fire-and-forget steps).
func (s *Sequencer) startStep(ctx context.Context, step models.Step) <-chan Outcome {
	ch := make(chan Outcome, 1)

	if step.IsAdvance() {
		s.runAdvance(step)
		ch <- OutcomeCompleted
		return ch
	}

	s.mu.Lock()
	slide := s.slide
	s.mu.Unlock()

	el, ok := slide.Element(step.TargetElementID)
	if !ok {
		s.skipStep(step, "no-target", OutcomeSkippedNoTarget)
		ch <- OutcomeSkippedNoTarget
		return ch
	}

	def, ok := s.registry.Lookup(step.Effect)
	if !ok {
		s.skipStep(step, "no-definition", OutcomeSkippedNoDefinition)
		ch <- OutcomeSkippedNoDefinition
		return ch
	}

	keyframes := effects.Compose(def, el.Rotation)
	easing := effects.ResolveEasing(step.Easing, def.DefaultEasing)
	step = step.Normalize(def.DefaultDuration)

	// Entrance effects assume the host pre-hid their targets; the effect
	// itself is what makes the element appear.
	if step.Category == models.CategoryEntrance {
		el.Apply(func(e *scene.Element) {
			e.Visible = true
		})
	}

	tl, err := s.engine.Start(ctx, timeline.Spec{
		Element:   el,
		Keyframes: keyframes,
		Duration:  step.Duration,
		Delay:     step.Delay,
		Easing:    easing,
		Fill:      true,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("step_id", step.ID).
			Str("effect", step.Effect).
			Msg("timeline refused to start")
		s.emit(PlaybackEvent{
			Type:      models.EventTypeStepFinished,
			StepID:    step.ID,
			ElementID: step.TargetElementID,
			Effect:    step.Effect,
			Outcome:   OutcomeCancelled,
			Duration:  step.Duration,
		})
		ch <- OutcomeCancelled
		return ch
	}

	s.trackTimeline(tl)

	s.logger.Debug().
		Str("step_id", step.ID).
		Str("element_id", step.TargetElementID).
		Str("effect", step.Effect).
		Str("trigger", string(step.Trigger)).
		Dur("duration", step.Duration).
		Msg("step started")
	s.emit(PlaybackEvent{
		Type:      models.EventTypeStepStarted,
		StepID:    step.ID,
		ElementID: step.TargetElementID,
		Effect:    step.Effect,
		Trigger:   step.Trigger,
		Category:  step.Category,
	})

	go func() {
		<-tl.Done()

		outcome := OutcomeCancelled
		if tl.Outcome() == timeline.OutcomeCompleted {
			s.finalize(el, step, def)
			outcome = OutcomeCompleted
		}
		s.releaseTimeline(tl)

		s.logger.Debug().
			Str("step_id", step.ID).
			Str("outcome", string(outcome)).
			Msg("step finished")
		s.emit(PlaybackEvent{
			Type:      models.EventTypeStepFinished,
			StepID:    step.ID,
			ElementID: step.TargetElementID,
			Effect:    step.Effect,
			Outcome:   outcome,
			Duration:  step.Duration,
		})

		ch <- outcome
	}()

	return ch
}

// runAdvance handles the control-signal step: emit the advance signal to
// the host, mark the session stopped. No timeline is touched and any steps
// after it are never reached in this session.
func (s *Sequencer) runAdvance(step models.Step) {
	s.mu.Lock()
	s.stopped = true
	s.playing = false
	s.awaitingAdvance = false
	cursor, total := s.cursor, len(s.steps)
	s.mu.Unlock()

	s.logger.Info().Str("step_id", step.ID).Int("cursor", cursor).Msg("advance signal fired")
	s.emitAdvance(step.ID)
	s.emit(PlaybackEvent{Type: models.EventTypeAdvanceSignal, StepID: step.ID, Cursor: cursor})
	s.emit(PlaybackEvent{
		Type:       models.EventTypeSessionStopped,
		StepID:     step.ID,
		Cursor:     cursor,
		TotalSteps: total,
		Reason:     "advance-signal",
	})
}

func (s *Sequencer) skipStep(step models.Step, reason string, outcome Outcome) {
	s.logger.Warn().
		Str("step_id", step.ID).
		Str("element_id", step.TargetElementID).
		Str("effect", step.Effect).
		Str("reason", reason).
		Msg("step skipped")
	s.emit(PlaybackEvent{
		Type:      models.EventTypeStepSkipped,
		StepID:    step.ID,
		ElementID: step.TargetElementID,
		Effect:    step.Effect,
		Outcome:   outcome,
		Reason:    reason,
	})
}

// finalize applies the category's end-state policy and resets the element's
// transform to only its static rotation, so the element sits exactly where
// the host's resting layout expects and later inline styles cannot conflict
// with a persisted animation state.
func (s *Sequencer) finalize(el *scene.Element, step models.Step, def *effects.Definition) {
	last := def.Keyframes[len(def.Keyframes)-1]

	el.Apply(func(e *scene.Element) {
		switch step.Category {
		case models.CategoryEntrance:
			e.Visible = true
			e.Opacity = 1
		case models.CategoryExit:
			e.Visible = false
			e.Opacity = 0
		default:
			if last.Opacity != nil {
				e.Opacity = *last.Opacity
			}
		}
		e.Transform = effects.RestingTransform(e.Rotation)
	})
}

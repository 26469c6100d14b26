package sequencer

import (
	"context"

	"github.com/showdeck/buildseq/internal/models"
)

// dispatch walks the cursor until the sequence is exhausted, a click gate
// suspends playback, or a control-signal step stops the session. When
// resuming from a gate, the gated step is forced onto the group-leader path
// even though its trigger is on-click.
func (s *Sequencer) dispatch(ctx context.Context, resuming bool) error {
	leaderOverride := resuming

	s.mu.Lock()
	sessionCtx := s.sessionCtx
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if s.stopped || !s.playing {
			s.mu.Unlock()
			return nil
		}

		if s.cursor >= len(s.steps) {
			s.playing = false
			s.stopped = true
			cursor, total := s.cursor, len(s.steps)
			s.mu.Unlock()

			s.logger.Info().Int("cursor", cursor).Int("steps", total).Msg("sequence exhausted")
			s.emit(PlaybackEvent{
				Type:       models.EventTypeSessionStopped,
				Cursor:     cursor,
				TotalSteps: total,
				Reason:     "exhausted",
			})
			return nil
		}

		step := s.steps[s.cursor]

		if !leaderOverride && step.Trigger == models.TriggerOnClick {
			// Suspend without consuming the gated step. Resume picks it
			// back up as a group leader.
			s.awaitingAdvance = true
			cursor := s.cursor
			s.mu.Unlock()

			s.logger.Info().Int("cursor", cursor).Str("step_id", step.ID).Msg("suspended at click gate")
			s.emit(PlaybackEvent{Type: models.EventTypeSessionGated, StepID: step.ID, Cursor: cursor})
			return nil
		}

		if !leaderOverride && step.Trigger == models.TriggerWithPrevious {
			// A with-previous step encountered as the dispatch target has
			// no group driving a barrier around it: start it and move on
			// without awaiting. Downstream sequences depend on this.
			s.cursor++
			s.mu.Unlock()

			s.logger.Debug().Str("step_id", step.ID).Msg("with-previous step started fire-and-forget")
			_ = s.startStep(ctx, step)
			continue
		}

		// This step and every immediately trailing with-previous step form
		// a group: started together, awaited together. An advance step leads
		// no group; the session halts on it and trailing steps stay
		// unconsumed.
		group := []models.Step{step}
		next := s.cursor + 1
		for !step.IsAdvance() && next < len(s.steps) && s.steps[next].Trigger == models.TriggerWithPrevious {
			group = append(group, s.steps[next])
			next++
		}
		s.cursor = next
		s.mu.Unlock()
		leaderOverride = false

		outcomes := make([]<-chan Outcome, 0, len(group))
		for _, member := range group {
			outcomes = append(outcomes, s.startStep(ctx, member))
			if member.IsAdvance() {
				// The signal stopped the session; members after it in the
				// group are never started.
				break
			}
		}

		for _, ch := range outcomes {
			select {
			case <-ch:
			case <-sessionCtx.Done():
				// Cleanup released the session; outstanding awaits resolve
				// without waiting for timelines to settle.
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Package timeline abstracts the host's declarative animation primitive:
// start a keyframe animation against an element, await its completion,
// hard-finish it, or cancel it.
package timeline

import (
	"context"
	"errors"
	"time"

	"github.com/showdeck/buildseq/internal/effects"
	"github.com/showdeck/buildseq/internal/scene"
)

// Engine errors.
var (
	ErrNoElement   = errors.New("timeline spec has no element")
	ErrNoKeyframes = errors.New("timeline spec has no keyframes")
)

// Outcome is how a timeline ended.
type Outcome string

const (
	// OutcomeCompleted means the timeline ran (or was hard-finished) to its
	// end state.
	OutcomeCompleted Outcome = "completed"

	// OutcomeCancelled means the timeline was aborted without reaching its
	// end state.
	OutcomeCancelled Outcome = "cancelled"
)

// Spec describes one animation to start.
type Spec struct {
	// Element is the animation target.
	Element *scene.Element

	// Keyframes is the concrete (already composed) keyframe list.
	Keyframes []effects.Keyframe

	// Duration is the animation run time, excluding Delay.
	Duration time.Duration

	// Delay postpones the first keyframe.
	Delay time.Duration

	// Easing is the resolved curve name or raw easing function.
	Easing string

	// Fill requests a persisted end state: the final keyframe's styles stay
	// applied after the timeline completes.
	Fill bool
}

// Timeline is a handle to one in-flight animation instance. The sequencer
// holds these for cancellation only; it does not own their clocks.
type Timeline interface {
	// Done is closed when the timeline reaches a terminal state.
	Done() <-chan struct{}

	// Outcome is valid once Done is closed.
	Outcome() Outcome

	// Finish forces the timeline to its end state immediately. The
	// completion path still fires; this is a hard cut, not a cancellation.
	Finish()

	// Cancel aborts the timeline without applying its end state.
	Cancel()
}

// Engine starts timelines. The production implementation is ClockEngine;
// tests substitute their own.
type Engine interface {
	Start(ctx context.Context, spec Spec) (Timeline, error)
}

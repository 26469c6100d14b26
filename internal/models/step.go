package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Step validation errors.
var (
	ErrMissingTarget = errors.New("step target element id is required")
	ErrMissingEffect = errors.New("step effect is required")
	ErrBadTrigger    = errors.New("unknown trigger")
	ErrBadCategory   = errors.New("unknown category")
	ErrNegativeDelay = errors.New("delay must be >= 0")
)

// DefaultDuration is applied to steps that carry no usable duration and
// whose effect definition does not provide one either.
const DefaultDuration = 500 * time.Millisecond

// Trigger describes how a step starts relative to playback progress.
type Trigger string

const (
	// TriggerOnLoad starts the step as soon as the cursor reaches it.
	TriggerOnLoad Trigger = "on-load"

	// TriggerOnClick gates the step behind an explicit resume from the host.
	TriggerOnClick Trigger = "on-click"

	// TriggerAfterPrevious starts the step once the previous group finished.
	TriggerAfterPrevious Trigger = "after-previous"

	// TriggerWithPrevious starts the step together with the preceding
	// non-with-previous step, as part of that step's group.
	TriggerWithPrevious Trigger = "with-previous"
)

// Category determines a step's finalization policy.
type Category string

const (
	CategoryEntrance Category = "entrance"
	CategoryEmphasis Category = "emphasis"
	CategoryExit     Category = "exit"
)

// StepKind distinguishes visual steps from control-signal steps.
type StepKind string

const (
	// StepKindEffect is a normal visual-effect step.
	StepKindEffect StepKind = "effect"

	// StepKindAdvance is the out-of-band "advance container" signal. It
	// carries no animation and halts the session when dispatched.
	StepKindAdvance StepKind = "advance"
)

// Step is one scheduled visual effect applied to one element. Steps are
// immutable once loaded into a sequencer; they are referenced by ID.
type Step struct {
	// ID uniquely identifies the step.
	ID string `json:"id" yaml:"id,omitempty"`

	// Kind distinguishes effect steps from the advance control signal.
	// An empty kind means StepKindEffect.
	Kind StepKind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// TargetElementID references an element inside the bound slide.
	TargetElementID string `json:"target_element_id" yaml:"target"`

	// Effect is the key into the effect registry.
	Effect string `json:"effect" yaml:"effect"`

	// Category is one of entrance, emphasis, exit.
	Category Category `json:"category" yaml:"category"`

	// Trigger controls when the step starts.
	Trigger Trigger `json:"trigger" yaml:"trigger"`

	// Duration is the animation run time. Zero or negative means "use the
	// effect's default".
	Duration time.Duration `json:"duration" yaml:"duration,omitempty"`

	// Delay postpones the timeline start after dispatch.
	Delay time.Duration `json:"delay" yaml:"delay,omitempty"`

	// Easing names a curve or carries a raw easing function string. Empty
	// falls back to the effect default, then the global default.
	Easing string `json:"easing,omitempty" yaml:"easing,omitempty"`
}

// IsAdvance reports whether the step is the advance control signal.
func (s *Step) IsAdvance() bool {
	return s.Kind == StepKindAdvance
}

// Validate checks that the step is well formed. Advance steps only need a
// valid trigger; effect steps need a target, an effect and a category.
func (s *Step) Validate() error {
	switch s.Trigger {
	case TriggerOnLoad, TriggerOnClick, TriggerAfterPrevious, TriggerWithPrevious:
	default:
		return fmt.Errorf("%w: %q", ErrBadTrigger, s.Trigger)
	}

	if s.Delay < 0 {
		return ErrNegativeDelay
	}

	if s.IsAdvance() {
		return nil
	}

	if strings.TrimSpace(s.TargetElementID) == "" {
		return ErrMissingTarget
	}
	if strings.TrimSpace(s.Effect) == "" {
		return ErrMissingEffect
	}

	switch s.Category {
	case CategoryEntrance, CategoryEmphasis, CategoryExit:
	default:
		return fmt.Errorf("%w: %q", ErrBadCategory, s.Category)
	}

	return nil
}

// Normalize returns a copy with invalid durations replaced. A duration <= 0
// is invalid; fallback is the effect default when the caller knows it, else
// DefaultDuration.
func (s Step) Normalize(fallback time.Duration) Step {
	if s.Duration <= 0 {
		if fallback > 0 {
			s.Duration = fallback
		} else {
			s.Duration = DefaultDuration
		}
	}
	if s.Delay < 0 {
		s.Delay = 0
	}
	return s
}

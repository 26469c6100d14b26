// Package sequencer plays an ordered list of build steps against a bound
// slide, honoring per-step trigger semantics: load-time, click-gated,
// chained, and grouped parallel steps.
package sequencer

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/showdeck/buildseq/internal/effects"
	"github.com/showdeck/buildseq/internal/logging"
	"github.com/showdeck/buildseq/internal/models"
	"github.com/showdeck/buildseq/internal/scene"
	"github.com/showdeck/buildseq/internal/timeline"
)

// Sequencer errors.
var (
	ErrNotBound        = errors.New("sequencer is not bound to a slide")
	ErrNoSequence      = errors.New("no sequence loaded")
	ErrInvalidStep     = errors.New("invalid step")
	ErrMissingEngine   = errors.New("timeline engine is required")
	ErrMissingRegistry = errors.New("effect registry is required")
)

// State is the sequencer's lifecycle state.
type State string

const (
	// StateIdle means a sequence is loaded and playback has not started.
	StateIdle State = "idle"

	// StatePlaying means the dispatch loop is consuming steps.
	StatePlaying State = "playing"

	// StateAwaitingAdvance means playback is suspended at a click gate.
	StateAwaitingAdvance State = "awaiting-advance"

	// StateStopped means the session ended: cursor exhausted, an advance
	// signal fired, or Cleanup was called.
	StateStopped State = "stopped"
)

// Snapshot is a point-in-time view of the sequencer's session state.
type Snapshot struct {
	State           State
	Cursor          int
	TotalSteps      int
	Playing         bool
	AwaitingAdvance bool
	Running         int
}

// Sequencer owns the step list, the play cursor and the session state
// machine. It is driven by exactly one external Play call and zero or more
// Resume calls; those calls must not overlap in time. Skip and Cleanup may
// arrive from other goroutines at any point.
type Sequencer struct {
	engine   timeline.Engine
	registry *effects.Registry
	logger   zerolog.Logger

	mu              sync.Mutex
	slide           *scene.Slide
	steps           []models.Step
	cursor          int
	playing         bool
	awaitingAdvance bool
	stopped         bool
	running         map[timeline.Timeline]struct{}
	sessionCtx      context.Context
	sessionCancel   context.CancelFunc

	eventCh   chan PlaybackEvent
	advanceCh chan AdvanceSignal
}

// New creates a Sequencer using the given timeline engine and effect
// registry. The registry is constructed by the caller and injected here;
// there is no ambient global registry.
func New(engine timeline.Engine, registry *effects.Registry) (*Sequencer, error) {
	if engine == nil {
		return nil, ErrMissingEngine
	}
	if registry == nil {
		return nil, ErrMissingRegistry
	}

	return &Sequencer{
		engine:    engine,
		registry:  registry,
		logger:    logging.Component("sequencer"),
		running:   make(map[timeline.Timeline]struct{}),
		eventCh:   make(chan PlaybackEvent, 100),
		advanceCh: make(chan AdvanceSignal, 1),
	}, nil
}

// Bind associates the sequencer with a slide for element id resolution. It
// holds only the reference; element ownership stays with the host.
func (s *Sequencer) Bind(slide *scene.Slide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slide = slide
}

// Load replaces the current sequence and resets the session: cursor to 0,
// playing and awaitingAdvance cleared, any running timelines cancelled.
func (s *Sequencer) Load(steps []models.Step) error {
	normalized := make([]models.Step, len(steps))
	for i, step := range steps {
		if err := step.Validate(); err != nil {
			return errors.Join(ErrInvalidStep, err)
		}
		if step.ID == "" {
			step.ID = uuid.New().String()
		}
		normalized[i] = step
	}

	s.mu.Lock()
	s.cancelRunningLocked()
	if s.sessionCancel != nil {
		s.sessionCancel()
	}
	s.sessionCtx, s.sessionCancel = context.WithCancel(context.Background())
	s.steps = normalized
	s.cursor = 0
	s.playing = false
	s.awaitingAdvance = false
	s.stopped = false
	s.mu.Unlock()

	s.logger.Info().Int("steps", len(normalized)).Msg("sequence loaded")
	s.emit(PlaybackEvent{Type: models.EventTypeSessionLoaded})
	return nil
}

// PrepareEntranceState hides every element targeted by an entrance-category
// step, so the first entrance animation is the one that makes it appear. The
// host calls this once before Play on a fresh session; the sequencer never
// calls it itself.
func (s *Sequencer) PrepareEntranceState() error {
	s.mu.Lock()
	slide := s.slide
	steps := s.steps
	s.mu.Unlock()

	if slide == nil {
		return ErrNotBound
	}

	for _, step := range steps {
		if step.IsAdvance() || step.Category != models.CategoryEntrance {
			continue
		}
		if el, ok := slide.Element(step.TargetElementID); ok {
			el.Apply(func(e *scene.Element) {
				e.Visible = false
			})
		}
	}
	return nil
}

// State returns a snapshot of the current session state.
func (s *Sequencer) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Cursor:          s.cursor,
		TotalSteps:      len(s.steps),
		Playing:         s.playing,
		AwaitingAdvance: s.awaitingAdvance,
		Running:         len(s.running),
	}

	switch {
	case s.awaitingAdvance:
		snap.State = StateAwaitingAdvance
	case s.playing:
		snap.State = StatePlaying
	case s.stopped:
		snap.State = StateStopped
	default:
		snap.State = StateIdle
	}
	return snap
}

// Play starts dispatch from the current cursor. Calling Play while already
// playing or while suspended at a click gate is a no-op. Play returns when
// the sequence suspends at a gate, stops, or ctx is cancelled.
func (s *Sequencer) Play(ctx context.Context) error {
	s.mu.Lock()
	if s.slide == nil {
		s.mu.Unlock()
		return ErrNotBound
	}
	if s.steps == nil {
		s.mu.Unlock()
		return ErrNoSequence
	}
	if s.playing || s.awaitingAdvance || s.stopped {
		// Double dispatch is ignored, not fatal.
		s.mu.Unlock()
		s.logger.Debug().Msg("play ignored: session already active or stopped")
		return nil
	}
	s.playing = true
	s.mu.Unlock()

	s.logger.Info().Int("steps", len(s.steps)).Msg("playback started")
	s.emit(PlaybackEvent{Type: models.EventTypeSessionStarted})

	return s.dispatch(ctx, false)
}

// Resume releases a click gate. When no gate is pending it is a no-op: no
// state change, no duplicate step execution. The gated step is treated as a
// group leader: its own effect and any trailing with-previous steps start
// together and are awaited before the loop continues.
func (s *Sequencer) Resume(ctx context.Context) error {
	s.mu.Lock()
	if !s.awaitingAdvance {
		s.mu.Unlock()
		s.logger.Debug().Msg("resume ignored: no pending click gate")
		return nil
	}
	s.awaitingAdvance = false
	s.mu.Unlock()

	s.logger.Info().Msg("click gate released")
	s.emit(PlaybackEvent{Type: models.EventTypeSessionResumed, Cursor: s.Cursor()})

	return s.dispatch(ctx, true)
}

// Skip forces every running timeline to its end state immediately. This is
// a hard cut, not a cancellation: each step's completion path still fires
// and its finalization policy still applies.
func (s *Sequencer) Skip() {
	s.mu.Lock()
	timelines := make([]timeline.Timeline, 0, len(s.running))
	for t := range s.running {
		timelines = append(timelines, t)
	}
	s.mu.Unlock()

	s.logger.Debug().Int("running", len(timelines)).Msg("skipping running timelines")
	for _, t := range timelines {
		t.Finish()
	}
}

// Cleanup hard-cancels everything and stops the session: all running
// timelines are cancelled without finalizing, the running set is cleared,
// and the session context is released so any outstanding awaits resolve
// immediately.
func (s *Sequencer) Cleanup() {
	s.mu.Lock()
	s.cancelRunningLocked()
	s.playing = false
	s.awaitingAdvance = false
	s.stopped = true
	if s.sessionCancel != nil {
		s.sessionCancel()
	}
	s.mu.Unlock()

	s.logger.Info().Msg("session cleaned up")
	s.emit(PlaybackEvent{Type: models.EventTypeSessionCleaned})
}

// Cursor returns the current play cursor.
func (s *Sequencer) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Sequencer) cancelRunningLocked() {
	for t := range s.running {
		t.Cancel()
	}
	s.running = make(map[timeline.Timeline]struct{})
}

func (s *Sequencer) trackTimeline(t timeline.Timeline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running[t] = struct{}{}
}

func (s *Sequencer) releaseTimeline(t timeline.Timeline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, t)
}

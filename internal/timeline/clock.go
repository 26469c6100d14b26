package timeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/showdeck/buildseq/internal/effects"
	"github.com/showdeck/buildseq/internal/logging"
	"github.com/showdeck/buildseq/internal/scene"
)

// ClockEngine drives timelines against the wall clock. Each timeline runs
// in its own goroutine and applies keyframe styles to the element as their
// offsets pass.
type ClockEngine struct {
	logger zerolog.Logger
}

// NewClockEngine creates a wall-clock engine.
func NewClockEngine() *ClockEngine {
	return &ClockEngine{logger: logging.Component("timeline")}
}

// Start begins playing the spec. The returned handle is live immediately.
func (e *ClockEngine) Start(ctx context.Context, spec Spec) (Timeline, error) {
	if spec.Element == nil {
		return nil, ErrNoElement
	}
	if len(spec.Keyframes) == 0 {
		return nil, ErrNoKeyframes
	}

	t := &clockTimeline{
		spec:     spec,
		done:     make(chan struct{}),
		finishCh: make(chan struct{}, 1),
		cancelCh: make(chan struct{}, 1),
	}

	go t.run(ctx, e.logger)
	return t, nil
}

type clockTimeline struct {
	spec Spec

	done     chan struct{}
	finishCh chan struct{}
	cancelCh chan struct{}

	mu      sync.Mutex
	outcome Outcome
	ended   bool
}

func (t *clockTimeline) Done() <-chan struct{} { return t.done }

func (t *clockTimeline) Outcome() Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outcome
}

func (t *clockTimeline) Finish() {
	select {
	case t.finishCh <- struct{}{}:
	default:
	}
}

func (t *clockTimeline) Cancel() {
	select {
	case t.cancelCh <- struct{}{}:
	default:
	}
}

func (t *clockTimeline) run(ctx context.Context, logger zerolog.Logger) {
	defer close(t.done)

	// Keyframes play in offset order; nil offsets are spaced evenly.
	frames := scheduled(t.spec.Keyframes, t.spec.Duration)

	timer := time.NewTimer(t.spec.Delay)
	defer timer.Stop()

	start := time.Now().Add(t.spec.Delay)
	next := 0

	for {
		select {
		case <-ctx.Done():
			t.end(OutcomeCancelled)
			return

		case <-t.cancelCh:
			t.end(OutcomeCancelled)
			return

		case <-t.finishCh:
			t.applyFinal()
			t.end(OutcomeCompleted)
			return

		case <-timer.C:
			for next < len(frames) && time.Since(start) >= frames[next].at {
				t.apply(frames[next].kf)
				next++
			}
			if next >= len(frames) {
				logger.Debug().
					Str("element_id", t.spec.Element.ID).
					Dur("duration", t.spec.Duration).
					Msg("timeline completed")
				t.end(OutcomeCompleted)
				return
			}
			timer.Reset(time.Until(start.Add(frames[next].at)))
		}
	}
}

type scheduledFrame struct {
	at time.Duration
	kf effects.Keyframe
}

func scheduled(frames []effects.Keyframe, duration time.Duration) []scheduledFrame {
	out := make([]scheduledFrame, len(frames))
	n := len(frames)
	for i, kf := range frames {
		var pos float64
		switch {
		case kf.Offset != nil:
			pos = *kf.Offset
		case n == 1:
			pos = 1
		default:
			pos = float64(i) / float64(n-1)
		}
		out[i] = scheduledFrame{at: time.Duration(pos * float64(duration)), kf: kf}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at < out[j].at })
	return out
}

func (t *clockTimeline) apply(kf effects.Keyframe) {
	t.spec.Element.Apply(func(e *scene.Element) {
		if kf.Opacity != nil {
			e.Opacity = *kf.Opacity
		}
		if kf.Transform != nil {
			e.Transform = kf.Transform.Clone()
		}
	})
}

func (t *clockTimeline) applyFinal() {
	if len(t.spec.Keyframes) == 0 {
		return
	}
	t.apply(t.spec.Keyframes[len(t.spec.Keyframes)-1])
}

func (t *clockTimeline) end(o Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ended {
		return
	}
	t.ended = true
	t.outcome = o
}

package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/showdeck/buildseq/internal/effects"
	"github.com/showdeck/buildseq/internal/scene"
)

func f(v float64) *float64 { return &v }

func fadeKeyframes() []effects.Keyframe {
	return []effects.Keyframe{
		{Offset: f(0), Opacity: f(0)},
		{Offset: f(1), Opacity: f(1)},
	}
}

func TestStartValidatesSpec(t *testing.T) {
	engine := NewClockEngine()

	_, err := engine.Start(context.Background(), Spec{Keyframes: fadeKeyframes()})
	if err != ErrNoElement {
		t.Fatalf("expected ErrNoElement, got %v", err)
	}

	_, err = engine.Start(context.Background(), Spec{Element: scene.NewElement("a")})
	if err != ErrNoKeyframes {
		t.Fatalf("expected ErrNoKeyframes, got %v", err)
	}
}

func TestTimelineRunsToCompletion(t *testing.T) {
	engine := NewClockEngine()
	el := scene.NewElement("a")
	el.Opacity = 0

	tl, err := engine.Start(context.Background(), Spec{
		Element:   el,
		Keyframes: fadeKeyframes(),
		Duration:  20 * time.Millisecond,
	})
	require.NoError(t, err)

	select {
	case <-tl.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timeline did not complete")
	}
	require.Equal(t, OutcomeCompleted, tl.Outcome())

	_, opacity, _ := el.Snapshot()
	require.Equal(t, 1.0, opacity, "last keyframe applied")
}

func TestFinishJumpsToEndState(t *testing.T) {
	engine := NewClockEngine()
	el := scene.NewElement("a")
	el.Opacity = 0

	tl, err := engine.Start(context.Background(), Spec{
		Element:   el,
		Keyframes: fadeKeyframes(),
		Duration:  10 * time.Second,
	})
	require.NoError(t, err)

	tl.Finish()

	select {
	case <-tl.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("finish did not settle the timeline")
	}
	require.Equal(t, OutcomeCompleted, tl.Outcome())

	_, opacity, _ := el.Snapshot()
	require.Equal(t, 1.0, opacity, "finish applies the final keyframe")
}

func TestCancelStopsWithoutFinalState(t *testing.T) {
	engine := NewClockEngine()
	el := scene.NewElement("a")
	el.Opacity = 0.25

	tl, err := engine.Start(context.Background(), Spec{
		Element: el,
		Keyframes: []effects.Keyframe{
			{Offset: f(1), Opacity: f(1)},
		},
		Duration: 10 * time.Second,
		Delay:    10 * time.Second,
	})
	require.NoError(t, err)

	tl.Cancel()

	select {
	case <-tl.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not settle the timeline")
	}
	require.Equal(t, OutcomeCancelled, tl.Outcome())

	_, opacity, _ := el.Snapshot()
	require.Equal(t, 0.25, opacity, "cancel leaves the element as-is")
}

func TestContextCancellation(t *testing.T) {
	engine := NewClockEngine()
	ctx, cancel := context.WithCancel(context.Background())

	tl, err := engine.Start(ctx, Spec{
		Element:   scene.NewElement("a"),
		Keyframes: fadeKeyframes(),
		Duration:  10 * time.Second,
	})
	require.NoError(t, err)

	cancel()

	select {
	case <-tl.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context cancellation did not settle the timeline")
	}
	require.Equal(t, OutcomeCancelled, tl.Outcome())
}

func TestFinishAfterCompletionIsInert(t *testing.T) {
	engine := NewClockEngine()
	el := scene.NewElement("a")

	tl, err := engine.Start(context.Background(), Spec{
		Element:   el,
		Keyframes: fadeKeyframes(),
		Duration:  time.Millisecond,
	})
	require.NoError(t, err)

	<-tl.Done()
	tl.Cancel()
	tl.Finish()
	require.Equal(t, OutcomeCompleted, tl.Outcome(), "outcome is settled once")
}

func TestScheduledSpacing(t *testing.T) {
	tests := []struct {
		name   string
		frames []effects.Keyframe
		want   []time.Duration
	}{
		{
			name: "explicit offsets",
			frames: []effects.Keyframe{
				{Offset: f(0)},
				{Offset: f(0.5)},
				{Offset: f(1)},
			},
			want: []time.Duration{0, 50 * time.Millisecond, 100 * time.Millisecond},
		},
		{
			name:   "nil offsets spaced evenly",
			frames: []effects.Keyframe{{}, {}, {}},
			want:   []time.Duration{0, 50 * time.Millisecond, 100 * time.Millisecond},
		},
		{
			name:   "single frame lands at the end",
			frames: []effects.Keyframe{{}},
			want:   []time.Duration{100 * time.Millisecond},
		},
		{
			name: "out of order offsets are sorted",
			frames: []effects.Keyframe{
				{Offset: f(1)},
				{Offset: f(0)},
			},
			want: []time.Duration{0, 100 * time.Millisecond},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scheduled(tt.frames, 100*time.Millisecond)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d frames, want %d", len(got), len(tt.want))
			}
			for i, w := range tt.want {
				if got[i].at != w {
					t.Fatalf("frame %d at %v, want %v", i, got[i].at, w)
				}
			}
		})
	}
}

func TestDelayPostponesFirstFrame(t *testing.T) {
	engine := NewClockEngine()
	el := scene.NewElement("a")
	el.Opacity = 0

	tl, err := engine.Start(context.Background(), Spec{
		Element: el,
		Keyframes: []effects.Keyframe{
			{Offset: f(0), Opacity: f(1)},
		},
		Duration: time.Millisecond,
		Delay:    60 * time.Millisecond,
	})
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, opacity, _ := el.Snapshot()
	require.Zero(t, opacity, "no frame applies during the delay")

	<-tl.Done()
	_, opacity, _ = el.Snapshot()
	require.Equal(t, 1.0, opacity)
}

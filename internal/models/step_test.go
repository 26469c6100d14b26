package models

import (
	"errors"
	"testing"
	"time"
)

func TestStepValidate(t *testing.T) {
	valid := Step{
		TargetElementID: "title",
		Effect:          "fade-in",
		Category:        CategoryEntrance,
		Trigger:         TriggerOnLoad,
	}

	tests := []struct {
		name    string
		mutate  func(*Step)
		wantErr error
	}{
		{name: "valid step", mutate: func(*Step) {}},
		{name: "missing target", mutate: func(s *Step) { s.TargetElementID = "  " }, wantErr: ErrMissingTarget},
		{name: "missing effect", mutate: func(s *Step) { s.Effect = "" }, wantErr: ErrMissingEffect},
		{name: "bad trigger", mutate: func(s *Step) { s.Trigger = "eventually" }, wantErr: ErrBadTrigger},
		{name: "empty trigger", mutate: func(s *Step) { s.Trigger = "" }, wantErr: ErrBadTrigger},
		{name: "bad category", mutate: func(s *Step) { s.Category = "highlight" }, wantErr: ErrBadCategory},
		{name: "negative delay", mutate: func(s *Step) { s.Delay = -time.Second }, wantErr: ErrNegativeDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdvanceStepValidation(t *testing.T) {
	// Advance steps carry no target, effect or category.
	s := Step{Kind: StepKindAdvance, Trigger: TriggerOnClick}
	if err := s.Validate(); err != nil {
		t.Fatalf("advance step should validate: %v", err)
	}
	if !s.IsAdvance() {
		t.Fatal("IsAdvance() = false")
	}

	s.Trigger = "never"
	if err := s.Validate(); !errors.Is(err, ErrBadTrigger) {
		t.Fatalf("got %v, want ErrBadTrigger", err)
	}
}

func TestStepNormalize(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		fallback time.Duration
		want     time.Duration
	}{
		{name: "explicit duration kept", duration: 2 * time.Second, fallback: time.Second, want: 2 * time.Second},
		{name: "zero uses fallback", duration: 0, fallback: 300 * time.Millisecond, want: 300 * time.Millisecond},
		{name: "negative uses fallback", duration: -time.Second, fallback: 300 * time.Millisecond, want: 300 * time.Millisecond},
		{name: "no fallback uses default", duration: 0, fallback: 0, want: DefaultDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Step{Duration: tt.duration}
			got := s.Normalize(tt.fallback)
			if got.Duration != tt.want {
				t.Fatalf("duration = %v, want %v", got.Duration, tt.want)
			}
			if s.Duration != tt.duration {
				t.Fatal("Normalize must not mutate the receiver")
			}
		})
	}

	negDelay := Step{Delay: -time.Second}.Normalize(0)
	if negDelay.Delay != 0 {
		t.Fatalf("negative delay should clamp to 0, got %v", negDelay.Delay)
	}
}

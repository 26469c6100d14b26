package effects

import (
	"testing"

	"github.com/showdeck/buildseq/internal/models"
)

func mustLookup(t *testing.T, r *Registry, name string) *Definition {
	t.Helper()
	def, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("effect %q not registered", name)
	}
	return def
}

func TestComposeAddsRotationForPureRotationEffect(t *testing.T) {
	spin := mustLookup(t, Builtin(), "spin")

	composed := Compose(spin, 30)
	if len(composed) != len(spin.Keyframes) {
		t.Fatalf("expected %d keyframes, got %d", len(spin.Keyframes), len(composed))
	}

	wantAngles := []float64{30, 390}
	for i, kf := range composed {
		if len(kf.Transform) != 1 {
			t.Fatalf("keyframe %d: expected single transform function, got %d", i, len(kf.Transform))
		}
		deg, ok := kf.Transform[0].RotationDegrees()
		if !ok {
			t.Fatalf("keyframe %d: expected rotate(), got %s", i, kf.Transform[0])
		}
		if deg != wantAngles[i] {
			t.Fatalf("keyframe %d: expected %v degrees, got %v", i, wantAngles[i], deg)
		}
	}
}

func TestComposeAppendsRotationForNonRotationEffect(t *testing.T) {
	slide := mustLookup(t, Builtin(), "slide-in-left")

	composed := Compose(slide, 15)
	for i, kf := range composed {
		if kf.Transform == nil {
			continue
		}
		last := kf.Transform[len(kf.Transform)-1]
		deg, ok := last.RotationDegrees()
		if !ok {
			t.Fatalf("keyframe %d: expected trailing rotate(), got %s", i, last)
		}
		if deg != 15 {
			t.Fatalf("keyframe %d: expected 15 degrees, got %v", i, deg)
		}
		if kf.Transform[0].Name != "translateX" {
			t.Fatalf("keyframe %d: effect's own transform must come first, got %s", i, kf.Transform[0].Name)
		}
	}
}

func TestComposeZeroRotationLeavesTemplateUntouched(t *testing.T) {
	slide := mustLookup(t, Builtin(), "slide-in-left")

	composed := Compose(slide, 0)
	for i, kf := range composed {
		if kf.Transform == nil {
			continue
		}
		for _, fn := range kf.Transform {
			if fn.Name == "rotate" {
				t.Fatalf("keyframe %d: unexpected rotate() with zero static rotation", i)
			}
		}
	}
}

func TestComposePassesThroughKeyframesWithoutTransform(t *testing.T) {
	fade := mustLookup(t, Builtin(), "fade-in")

	composed := Compose(fade, 45)
	for i, kf := range composed {
		if kf.Transform != nil {
			t.Fatalf("keyframe %d: fade-in has no transform, composition added one", i)
		}
	}
}

func TestComposeDoesNotAliasTemplate(t *testing.T) {
	def := &Definition{
		Name: "nudge",
		Keyframes: []Keyframe{
			{Transform: Transform{{Name: "translateX", Args: []string{"0%"}}}},
			{Transform: Transform{{Name: "translateX", Args: []string{"10%"}}}},
		},
		Categories: []models.Category{models.CategoryEmphasis},
	}

	composed := Compose(def, 10)
	composed[0].Transform[0].Args[0] = "mutated"

	if def.Keyframes[0].Transform[0].Args[0] != "0%" {
		t.Fatal("composition aliased the template keyframes")
	}
}

func TestRestingTransform(t *testing.T) {
	if got := RestingTransform(0); got != nil {
		t.Fatalf("expected nil transform for zero rotation, got %s", got)
	}
	if got := RestingTransform(12.5).String(); got != "rotate(12.5deg)" {
		t.Fatalf("expected rotate(12.5deg), got %q", got)
	}
}

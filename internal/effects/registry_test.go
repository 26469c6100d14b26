package effects

import (
	"errors"
	"testing"
	"time"

	"github.com/showdeck/buildseq/internal/models"
)

func TestBuiltinRegistry(t *testing.T) {
	r := Builtin()
	if r.Len() == 0 {
		t.Fatal("builtin registry is empty")
	}

	for _, name := range []string{"appear", "fade-in", "spin", "fade-out", "slide-in-left"} {
		if _, ok := r.Lookup(name); !ok {
			t.Fatalf("builtin effect %q missing", name)
		}
	}

	if _, ok := r.Lookup("no-such-effect"); ok {
		t.Fatal("lookup of unknown effect must fail")
	}

	spin := mustLookup(t, r, "spin")
	if !spin.IsPureRotation() {
		t.Fatal("spin must be a pure rotation effect")
	}
	fade := mustLookup(t, r, "fade-in")
	if fade.IsPureRotation() {
		t.Fatal("fade-in must not be a pure rotation effect")
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	def := func() *Definition {
		return &Definition{
			Name:       "dup",
			Keyframes:  []Keyframe{{Opacity: f(1)}},
			Categories: []models.Category{models.CategoryEmphasis},
		}
	}
	if _, err := NewRegistry(def(), def()); !errors.Is(err, ErrDuplicateEffect) {
		t.Fatalf("expected ErrDuplicateEffect, got %v", err)
	}
}

func TestNewRegistryValidates(t *testing.T) {
	cases := []struct {
		name string
		def  *Definition
	}{
		{"empty name", &Definition{Keyframes: []Keyframe{{}}, Categories: []models.Category{models.CategoryExit}}},
		{"no keyframes", &Definition{Name: "x", Categories: []models.Category{models.CategoryExit}}},
		{"no categories", &Definition{Name: "x", Keyframes: []Keyframe{{}}}},
		{"bad offset", &Definition{Name: "x", Keyframes: []Keyframe{{Offset: f(1.5)}}, Categories: []models.Category{models.CategoryExit}}},
	}
	for _, tc := range cases {
		if _, err := NewRegistry(tc.def); !errors.Is(err, ErrInvalidEffect) {
			t.Fatalf("%s: expected ErrInvalidEffect, got %v", tc.name, err)
		}
	}
}

func TestMergeOverridesAndExtends(t *testing.T) {
	custom := &Definition{
		Name:            "fade-in",
		Keyframes:       []Keyframe{{Opacity: f(0.5)}, {Opacity: f(1)}},
		DefaultDuration: 2 * time.Second,
		Categories:      []models.Category{models.CategoryEntrance},
	}
	extra := &Definition{
		Name:       "shimmer",
		Keyframes:  []Keyframe{{Opacity: f(1)}, {Opacity: f(0.7)}, {Opacity: f(1)}},
		Categories: []models.Category{models.CategoryEmphasis},
	}

	base := Builtin()
	merged, err := base.Merge(custom, extra)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	got := mustLookup(t, merged, "fade-in")
	if got.DefaultDuration != 2*time.Second {
		t.Fatalf("merge did not override fade-in, duration %v", got.DefaultDuration)
	}
	if _, ok := merged.Lookup("shimmer"); !ok {
		t.Fatal("merge dropped the new effect")
	}

	// Base registry untouched.
	orig := mustLookup(t, base, "fade-in")
	if orig.DefaultDuration == 2*time.Second {
		t.Fatal("merge mutated the base registry")
	}
}

func TestSupportsCategory(t *testing.T) {
	fade := mustLookup(t, Builtin(), "fade-in")
	if !fade.SupportsCategory(models.CategoryEntrance) {
		t.Fatal("fade-in supports entrance")
	}
	if fade.SupportsCategory(models.CategoryExit) {
		t.Fatal("fade-in does not support exit")
	}
}

package scene

import (
	"errors"
	"testing"

	"github.com/showdeck/buildseq/internal/effects"
)

func TestNewElementDefaults(t *testing.T) {
	e := NewElement("title")
	if !e.Visible {
		t.Fatal("new elements start visible")
	}
	if e.Opacity != 1 {
		t.Fatalf("opacity = %v, want 1", e.Opacity)
	}
	if e.Rotation != 0 {
		t.Fatalf("rotation = %v, want 0", e.Rotation)
	}

	tilted := NewElement("photo").WithRotation(12)
	if tilted.Rotation != 12 {
		t.Fatalf("rotation = %v, want 12", tilted.Rotation)
	}
}

func TestElementApplyAndSnapshot(t *testing.T) {
	e := NewElement("a")
	e.Apply(func(el *Element) {
		el.Visible = false
		el.Opacity = 0.5
		el.Transform = effects.Transform{effects.Rotate(45)}
	})

	visible, opacity, transform := e.Snapshot()
	if visible {
		t.Fatal("visible = true after apply")
	}
	if opacity != 0.5 {
		t.Fatalf("opacity = %v, want 0.5", opacity)
	}
	if transform.String() != "rotate(45deg)" {
		t.Fatalf("transform = %q", transform.String())
	}

	// Snapshot returns a copy: mutating it must not leak back.
	transform[0].Args[0] = "999deg"
	_, _, again := e.Snapshot()
	if again.String() != "rotate(45deg)" {
		t.Fatalf("snapshot aliased element state: %q", again.String())
	}
}

func TestSlideAddAndLookup(t *testing.T) {
	s := NewSlide()
	if err := s.Add(NewElement("a")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(NewElement("b")); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.Add(NewElement("a")); !errors.Is(err, ErrElementExists) {
		t.Fatalf("duplicate add: got %v, want ErrElementExists", err)
	}
	if err := s.Add(NewElement("  ")); !errors.Is(err, ErrMissingID) {
		t.Fatalf("blank id: got %v, want ErrMissingID", err)
	}

	if _, ok := s.Element("a"); !ok {
		t.Fatal("element a not found")
	}
	if _, ok := s.Element("ghost"); ok {
		t.Fatal("ghost should not resolve")
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
}

func TestSlideElementsKeepInsertionOrder(t *testing.T) {
	s := NewSlide()
	for _, id := range []string{"c", "a", "b"} {
		if err := s.Add(NewElement(id)); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	got := s.Elements()
	want := []string{"c", "a", "b"}
	for i, el := range got {
		if el.ID != want[i] {
			t.Fatalf("elements[%d] = %s, want %s", i, el.ID, want[i])
		}
	}
}

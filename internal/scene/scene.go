// Package scene models the slide container the sequencer is bound to:
// elements looked up by id, each carrying the visual state the sequencer
// reads and finalizes.
package scene

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/showdeck/buildseq/internal/effects"
)

// Scene errors.
var (
	ErrElementExists = errors.New("element already exists")
	ErrMissingID     = errors.New("element id is required")
)

// Element is one visual element on a slide. The sequencer mutates Visible,
// Opacity and Transform; Rotation is the element's static resting tilt and
// is owned by the host's layout.
type Element struct {
	mu sync.Mutex

	// ID uniquely identifies the element within its slide.
	ID string

	// Visible is the element's display state.
	Visible bool

	// Opacity in [0,1].
	Opacity float64

	// Rotation is the static rotation in degrees baked into the element's
	// resting transform, independent of any in-flight animation.
	Rotation float64

	// Transform is the element's current inline transform.
	Transform effects.Transform
}

// NewElement creates a visible, fully opaque element.
func NewElement(id string) *Element {
	return &Element{ID: id, Visible: true, Opacity: 1}
}

// WithRotation sets the static rotation and returns the element, for
// fluent scene construction.
func (e *Element) WithRotation(degrees float64) *Element {
	e.Rotation = degrees
	return e
}

// Apply runs fn while holding the element's lock. Skip and cleanup arrive
// from outside the dispatch goroutine, so element state changes go through
// here.
func (e *Element) Apply(fn func(*Element)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e)
}

// Snapshot returns a copy of the element's mutable visual state.
func (e *Element) Snapshot() (visible bool, opacity float64, transform effects.Transform) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Visible, e.Opacity, e.Transform.Clone()
}

// Slide is a container of elements indexed by id.
type Slide struct {
	mu       sync.RWMutex
	elements map[string]*Element
	order    []string
}

// NewSlide creates an empty slide.
func NewSlide() *Slide {
	return &Slide{elements: make(map[string]*Element)}
}

// Add registers an element on the slide.
func (s *Slide) Add(e *Element) error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.elements[e.ID]; exists {
		return fmt.Errorf("%w: %s", ErrElementExists, e.ID)
	}
	s.elements[e.ID] = e
	s.order = append(s.order, e.ID)
	return nil
}

// Element resolves an element by id. The second return is false when the id
// is not present; the sequencer treats that as a skippable condition, not an
// error.
func (s *Slide) Element(id string) (*Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.elements[id]
	return e, ok
}

// Elements returns the slide's elements in insertion order.
func (s *Slide) Elements() []*Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.elements[id])
	}
	return out
}

// Len returns the number of elements on the slide.
func (s *Slide) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}

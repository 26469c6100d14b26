// Package effects holds the effect registry, the keyframe model and the
// composition rules that preserve an element's static rotation while an
// effect's own transform animates.
package effects

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/showdeck/buildseq/internal/models"
)

// Registry errors.
var (
	ErrDuplicateEffect = errors.New("effect already registered")
	ErrInvalidEffect   = errors.New("invalid effect definition")
)

// Keyframe is one style snapshot in an effect template. Fields are pointers
// so a keyframe can leave a property untouched; the host primitive
// interpolates from the element's current computed style for properties that
// are constant across all supplied keyframes.
type Keyframe struct {
	// Offset is the normalized position in [0,1]. Nil lets the host
	// primitive space keyframes evenly.
	Offset *float64

	// Opacity in [0,1], nil when the keyframe does not touch opacity.
	Opacity *float64

	// Transform is the keyframe's transform list, nil when absent.
	Transform Transform
}

// Clone returns a deep copy of the keyframe.
func (k Keyframe) Clone() Keyframe {
	out := Keyframe{Transform: k.Transform.Clone()}
	if k.Offset != nil {
		v := *k.Offset
		out.Offset = &v
	}
	if k.Opacity != nil {
		v := *k.Opacity
		out.Opacity = &v
	}
	return out
}

// Definition describes one effect: its keyframe template, defaults, and the
// categories it is valid for.
type Definition struct {
	Name            string
	Keyframes       []Keyframe
	DefaultDuration time.Duration
	DefaultEasing   string
	Categories      []models.Category
}

// SupportsCategory reports whether the definition is valid for a category.
func (d *Definition) SupportsCategory(c models.Category) bool {
	for _, v := range d.Categories {
		if v == c {
			return true
		}
	}
	return false
}

// IsPureRotation reports whether every keyframe transform in the template
// consists solely of rotate() functions. Pure-rotation effects get additive
// rotation composition instead of an appended rotate.
func (d *Definition) IsPureRotation() bool {
	sawTransform := false
	for _, k := range d.Keyframes {
		if k.Transform == nil {
			continue
		}
		sawTransform = true
		if !k.Transform.IsPureRotation() {
			return false
		}
	}
	return sawTransform
}

func (d *Definition) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEffect)
	}
	if len(d.Keyframes) == 0 {
		return fmt.Errorf("%w: %s has no keyframes", ErrInvalidEffect, d.Name)
	}
	if len(d.Categories) == 0 {
		return fmt.Errorf("%w: %s has no categories", ErrInvalidEffect, d.Name)
	}
	for _, k := range d.Keyframes {
		if k.Offset != nil && (*k.Offset < 0 || *k.Offset > 1) {
			return fmt.Errorf("%w: %s keyframe offset %v out of [0,1]", ErrInvalidEffect, d.Name, *k.Offset)
		}
	}
	return nil
}

// Registry is an immutable effect lookup table. It is built once at
// construction and is safe for concurrent lookups from any number of step
// runners.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry builds a registry from the given definitions.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, exists := r.defs[d.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEffect, d.Name)
		}
		r.defs[d.Name] = d
	}
	return r, nil
}

// Merge returns a new registry with overlay definitions replacing or
// extending the receiver's. The receiver is left untouched.
func (r *Registry) Merge(overlay ...*Definition) (*Registry, error) {
	merged := make([]*Definition, 0, len(r.defs)+len(overlay))
	replaced := make(map[string]struct{}, len(overlay))
	for _, d := range overlay {
		replaced[d.Name] = struct{}{}
	}
	for name, d := range r.defs {
		if _, ok := replaced[name]; !ok {
			merged = append(merged, d)
		}
	}
	merged = append(merged, overlay...)
	return NewRegistry(merged...)
}

// Lookup returns the definition for an effect name. Missing effects are
// non-fatal for playback; callers skip the step.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns the registered effect names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered effects.
func (r *Registry) Len() int {
	return len(r.defs)
}

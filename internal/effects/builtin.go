package effects

import (
	"time"

	"github.com/showdeck/buildseq/internal/models"
)

func f(v float64) *float64 { return &v }

func frame(offset float64, opacity *float64, transform Transform) Keyframe {
	return Keyframe{Offset: f(offset), Opacity: opacity, Transform: transform}
}

func slideIn(name, axis, from string) *Definition {
	return &Definition{
		Name: name,
		Keyframes: []Keyframe{
			frame(0, f(0), Transform{{Name: axis, Args: []string{from}}}),
			frame(1, f(1), Transform{{Name: axis, Args: []string{"0%"}}}),
		},
		DefaultDuration: 500 * time.Millisecond,
		DefaultEasing:   "ease-out",
		Categories:      []models.Category{models.CategoryEntrance},
	}
}

func slideOut(name, axis, to string) *Definition {
	return &Definition{
		Name: name,
		Keyframes: []Keyframe{
			frame(0, f(1), Transform{{Name: axis, Args: []string{"0%"}}}),
			frame(1, f(0), Transform{{Name: axis, Args: []string{to}}}),
		},
		DefaultDuration: 500 * time.Millisecond,
		DefaultEasing:   "ease-in",
		Categories:      []models.Category{models.CategoryExit},
	}
}

// Builtin returns the registry of stock effects. The returned registry is
// freshly built so callers can merge custom definitions over it.
func Builtin() *Registry {
	defs := []*Definition{
		{
			Name: "appear",
			Keyframes: []Keyframe{
				frame(0, f(1), nil),
				frame(1, f(1), nil),
			},
			DefaultDuration: 1 * time.Millisecond,
			DefaultEasing:   "linear",
			Categories:      []models.Category{models.CategoryEntrance},
		},
		{
			Name: "fade-in",
			Keyframes: []Keyframe{
				frame(0, f(0), nil),
				frame(1, f(1), nil),
			},
			DefaultDuration: 500 * time.Millisecond,
			DefaultEasing:   "ease-in",
			Categories:      []models.Category{models.CategoryEntrance},
		},
		slideIn("slide-in-left", "translateX", "-120%"),
		slideIn("slide-in-right", "translateX", "120%"),
		slideIn("slide-in-up", "translateY", "120%"),
		slideIn("slide-in-down", "translateY", "-120%"),
		{
			Name: "scale-up",
			Keyframes: []Keyframe{
				frame(0, f(0), Transform{{Name: "scale", Args: []string{"0.2"}}}),
				frame(1, f(1), Transform{{Name: "scale", Args: []string{"1"}}}),
			},
			DefaultDuration: 400 * time.Millisecond,
			DefaultEasing:   "ease-out",
			Categories:      []models.Category{models.CategoryEntrance},
		},
		{
			Name: "drop-in",
			Keyframes: []Keyframe{
				frame(0, f(0), Transform{{Name: "translateY", Args: []string{"-150%"}}, {Name: "scale", Args: []string{"1.1"}}}),
				frame(0.8, f(1), Transform{{Name: "translateY", Args: []string{"2%"}}, {Name: "scale", Args: []string{"1"}}}),
				frame(1, f(1), Transform{{Name: "translateY", Args: []string{"0%"}}, {Name: "scale", Args: []string{"1"}}}),
			},
			DefaultDuration: 600 * time.Millisecond,
			DefaultEasing:   "ease-in",
			Categories:      []models.Category{models.CategoryEntrance},
		},

		{
			Name: "pulse",
			Keyframes: []Keyframe{
				frame(0, nil, Transform{{Name: "scale", Args: []string{"1"}}}),
				frame(0.5, nil, Transform{{Name: "scale", Args: []string{"1.15"}}}),
				frame(1, nil, Transform{{Name: "scale", Args: []string{"1"}}}),
			},
			DefaultDuration: 600 * time.Millisecond,
			DefaultEasing:   "ease-in-out",
			Categories:      []models.Category{models.CategoryEmphasis},
		},
		{
			// The pure-rotation effect: rotation composes additively with
			// the element's static rotation.
			Name: "spin",
			Keyframes: []Keyframe{
				frame(0, nil, Transform{Rotate(0)}),
				frame(1, nil, Transform{Rotate(360)}),
			},
			DefaultDuration: 800 * time.Millisecond,
			DefaultEasing:   "ease-in-out",
			Categories:      []models.Category{models.CategoryEmphasis},
		},
		{
			Name: "wobble",
			Keyframes: []Keyframe{
				frame(0, nil, Transform{{Name: "translateX", Args: []string{"0%"}}}),
				frame(0.25, nil, Transform{{Name: "translateX", Args: []string{"-4%"}}}),
				frame(0.75, nil, Transform{{Name: "translateX", Args: []string{"4%"}}}),
				frame(1, nil, Transform{{Name: "translateX", Args: []string{"0%"}}}),
			},
			DefaultDuration: 700 * time.Millisecond,
			DefaultEasing:   "ease-in-out",
			Categories:      []models.Category{models.CategoryEmphasis},
		},
		{
			Name: "flash",
			Keyframes: []Keyframe{
				frame(0, f(1), nil),
				frame(0.25, f(0), nil),
				frame(0.5, f(1), nil),
				frame(0.75, f(0), nil),
				frame(1, f(1), nil),
			},
			DefaultDuration: 800 * time.Millisecond,
			DefaultEasing:   "linear",
			Categories:      []models.Category{models.CategoryEmphasis},
		},

		{
			Name: "fade-out",
			Keyframes: []Keyframe{
				frame(0, f(1), nil),
				frame(1, f(0), nil),
			},
			DefaultDuration: 500 * time.Millisecond,
			DefaultEasing:   "ease-out",
			Categories:      []models.Category{models.CategoryExit},
		},
		slideOut("slide-out-left", "translateX", "-120%"),
		slideOut("slide-out-right", "translateX", "120%"),
		slideOut("slide-out-up", "translateY", "-120%"),
		slideOut("slide-out-down", "translateY", "120%"),
		{
			Name: "scale-down",
			Keyframes: []Keyframe{
				frame(0, f(1), Transform{{Name: "scale", Args: []string{"1"}}}),
				frame(1, f(0), Transform{{Name: "scale", Args: []string{"0.2"}}}),
			},
			DefaultDuration: 400 * time.Millisecond,
			DefaultEasing:   "ease-in",
			Categories:      []models.Category{models.CategoryExit},
		},
		{
			Name: "disappear",
			Keyframes: []Keyframe{
				frame(0, f(0), nil),
				frame(1, f(0), nil),
			},
			DefaultDuration: 1 * time.Millisecond,
			DefaultEasing:   "linear",
			Categories:      []models.Category{models.CategoryExit},
		},
	}

	r, err := NewRegistry(defs...)
	if err != nil {
		// Builtin definitions are compiled in; a failure here is a
		// programming error.
		panic(err)
	}
	return r
}

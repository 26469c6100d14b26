package effects

// Compose materializes an effect template against a target element's static
// rotation (degrees, baked into the element's resting transform).
//
// Pure-rotation effects get the static rotation added numerically to each
// keyframe's angle; composing two rotate() functions would not match the
// single expected sweep. Every other effect that touches the transform gets
// rotate(staticRotation) appended after its own functions, so the element
// keeps its resting tilt while sliding or scaling. Keyframes without a
// transform pass through unchanged.
func Compose(def *Definition, staticRotation float64) []Keyframe {
	out := make([]Keyframe, len(def.Keyframes))

	if staticRotation == 0 {
		for i, k := range def.Keyframes {
			out[i] = k.Clone()
		}
		return out
	}

	pureRotation := def.IsPureRotation()

	for i, k := range def.Keyframes {
		c := k.Clone()
		if c.Transform == nil {
			out[i] = c
			continue
		}

		if pureRotation {
			for j, fn := range c.Transform {
				if deg, ok := fn.RotationDegrees(); ok {
					c.Transform[j] = Rotate(deg + staticRotation)
				}
			}
		} else {
			c.Transform = append(c.Transform, Rotate(staticRotation))
		}
		out[i] = c
	}

	return out
}

// RestingTransform is the transform an element should hold when no effect is
// animating it: only its static rotation, or nothing at all.
func RestingTransform(staticRotation float64) Transform {
	if staticRotation == 0 {
		return nil
	}
	return Transform{Rotate(staticRotation)}
}

package effects

import (
	"fmt"
	"strconv"
	"strings"
)

// TransformFunc is a single transform function, e.g. rotate(45deg) or
// translateX(-120%). Args are kept as raw strings; only rotation angles are
// interpreted numerically.
type TransformFunc struct {
	Name string
	Args []string
}

// Transform is an ordered list of transform functions. A nil Transform means
// the keyframe does not touch the transform property at all.
type Transform []TransformFunc

// Rotate builds a rotate() function from an angle in degrees.
func Rotate(degrees float64) TransformFunc {
	return TransformFunc{Name: "rotate", Args: []string{formatDegrees(degrees)}}
}

// RotationDegrees parses the function's angle when it is a rotate(). The
// second return is false for non-rotate functions or unparsable angles.
func (f TransformFunc) RotationDegrees() (float64, bool) {
	if f.Name != "rotate" || len(f.Args) != 1 {
		return 0, false
	}
	raw := strings.TrimSuffix(strings.TrimSpace(f.Args[0]), "deg")
	deg, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return deg, true
}

func (f TransformFunc) String() string {
	return f.Name + "(" + strings.Join(f.Args, ", ") + ")"
}

// String serializes the transform list in application order.
func (t Transform) String() string {
	if len(t) == 0 {
		return ""
	}
	parts := make([]string, len(t))
	for i, f := range t {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// Clone returns a deep copy so composed keyframes never alias template state.
func (t Transform) Clone() Transform {
	if t == nil {
		return nil
	}
	out := make(Transform, len(t))
	for i, f := range t {
		args := make([]string, len(f.Args))
		copy(args, f.Args)
		out[i] = TransformFunc{Name: f.Name, Args: args}
	}
	return out
}

// IsPureRotation reports whether every function in the transform is rotate().
// An empty transform is not a pure rotation.
func (t Transform) IsPureRotation() bool {
	if len(t) == 0 {
		return false
	}
	for _, f := range t {
		if _, ok := f.RotationDegrees(); !ok {
			return false
		}
	}
	return true
}

// ParseTransform parses a transform string like
// "translateX(-120%) rotate(15deg)" into its function list.
func ParseTransform(s string) (Transform, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil, nil
	}

	var out Transform
	rest := s
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open <= 0 {
			return nil, fmt.Errorf("malformed transform %q", s)
		}
		closing := strings.IndexByte(rest[open:], ')')
		if closing < 0 {
			return nil, fmt.Errorf("unterminated transform function in %q", s)
		}
		closing += open

		name := strings.TrimSpace(rest[:open])
		if name == "" {
			return nil, fmt.Errorf("malformed transform %q", s)
		}

		var args []string
		if inner := strings.TrimSpace(rest[open+1 : closing]); inner != "" {
			for _, a := range strings.Split(inner, ",") {
				args = append(args, strings.TrimSpace(a))
			}
		}
		out = append(out, TransformFunc{Name: name, Args: args})

		rest = strings.TrimSpace(rest[closing+1:])
	}
	return out, nil
}

func formatDegrees(deg float64) string {
	return strconv.FormatFloat(deg, 'f', -1, 64) + "deg"
}

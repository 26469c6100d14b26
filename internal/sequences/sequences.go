// Package sequences provides loading and validation of build sequence files.
package sequences

// Sequence is one slide's build description: the elements on the slide and
// the ordered step list to play against them.
type Sequence struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Elements    []ElementDecl `yaml:"elements"`
	Steps       []StepDecl    `yaml:"steps"`
	Source      string        // file path or "builtin"
}

// ElementDecl declares a slide element.
type ElementDecl struct {
	ID       string  `yaml:"id"`
	Rotation float64 `yaml:"rotation,omitempty"`
}

// StepDecl is the YAML form of one build step.
type StepDecl struct {
	Kind     string `yaml:"kind,omitempty"`
	Target   string `yaml:"target,omitempty"`
	Effect   string `yaml:"effect,omitempty"`
	Category string `yaml:"category,omitempty"`
	Trigger  string `yaml:"trigger"`
	Duration string `yaml:"duration,omitempty"`
	Delay    string `yaml:"delay,omitempty"`
	Easing   string `yaml:"easing,omitempty"`
}

package sequences

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/showdeck/buildseq/internal/models"
	"github.com/showdeck/buildseq/internal/scene"
)

// Load reads a single sequence from disk.
func Load(path string) (*Sequence, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sequence path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence %s: %w", path, err)
	}

	seq, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse sequence %s: %w", path, err)
	}
	seq.Source = path
	return seq, nil
}

// LoadDir loads all sequences from a directory, sorted by name.
func LoadDir(dir string) ([]*Sequence, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Sequence{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Sequence{}, nil
		}
		return nil, fmt.Errorf("read sequences dir %s: %w", dir, err)
	}

	sequences := make([]*Sequence, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		seq, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, seq)
	}

	sort.Slice(sequences, func(i, j int) bool {
		return sequences[i].Name < sequences[j].Name
	})

	return sequences, nil
}

func parse(data []byte) (*Sequence, error) {
	var seq Sequence
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, err
	}
	if strings.TrimSpace(seq.Name) == "" {
		return nil, fmt.Errorf("sequence name is required")
	}
	if len(seq.Steps) == 0 {
		return nil, fmt.Errorf("sequence %s has no steps", seq.Name)
	}
	return &seq, nil
}

// Slide builds the scene the sequence plays against.
func (s *Sequence) Slide() (*scene.Slide, error) {
	slide := scene.NewSlide()
	for _, decl := range s.Elements {
		el := scene.NewElement(decl.ID).WithRotation(decl.Rotation)
		if err := slide.Add(el); err != nil {
			return nil, fmt.Errorf("sequence %s: %w", s.Name, err)
		}
	}
	return slide, nil
}

// ModelSteps converts the declared steps into validated model steps with
// assigned ids.
func (s *Sequence) ModelSteps() ([]models.Step, error) {
	steps := make([]models.Step, 0, len(s.Steps))
	for i, decl := range s.Steps {
		step, err := decl.toModel()
		if err != nil {
			return nil, fmt.Errorf("sequence %s step %d: %w", s.Name, i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (d StepDecl) toModel() (models.Step, error) {
	step := models.Step{
		ID:              uuid.New().String(),
		Kind:            models.StepKind(d.Kind),
		TargetElementID: strings.TrimSpace(d.Target),
		Effect:          strings.TrimSpace(d.Effect),
		Category:        models.Category(d.Category),
		Trigger:         models.Trigger(d.Trigger),
		Easing:          strings.TrimSpace(d.Easing),
	}
	switch step.Kind {
	case "":
		step.Kind = models.StepKindEffect
	case models.StepKindEffect, models.StepKindAdvance:
	default:
		return models.Step{}, fmt.Errorf("unknown step kind %q", d.Kind)
	}

	if d.Duration != "" {
		dur, err := time.ParseDuration(d.Duration)
		if err != nil {
			return models.Step{}, fmt.Errorf("bad duration %q: %w", d.Duration, err)
		}
		step.Duration = dur
	}
	if d.Delay != "" {
		delay, err := time.ParseDuration(d.Delay)
		if err != nil {
			return models.Step{}, fmt.Errorf("bad delay %q: %w", d.Delay, err)
		}
		step.Delay = delay
	}

	if err := step.Validate(); err != nil {
		return models.Step{}, err
	}
	return step, nil
}

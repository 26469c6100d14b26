package effects

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/showdeck/buildseq/internal/models"
)

type definitionFile struct {
	Effects []definitionYAML `yaml:"effects"`
}

type definitionYAML struct {
	Name       string         `yaml:"name"`
	Duration   string         `yaml:"duration,omitempty"`
	Easing     string         `yaml:"easing,omitempty"`
	Categories []string       `yaml:"categories"`
	Keyframes  []keyframeYAML `yaml:"keyframes"`
}

type keyframeYAML struct {
	Offset    *float64 `yaml:"offset,omitempty"`
	Opacity   *float64 `yaml:"opacity,omitempty"`
	Transform string   `yaml:"transform,omitempty"`
}

// LoadDefinitions reads custom effect definitions from a YAML file.
func LoadDefinitions(path string) ([]*Definition, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("effects path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read effects %s: %w", path, err)
	}

	defs, err := parseDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("parse effects %s: %w", path, err)
	}
	return defs, nil
}

func parseDefinitions(data []byte) ([]*Definition, error) {
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	defs := make([]*Definition, 0, len(file.Effects))
	for _, raw := range file.Effects {
		def, err := raw.toDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (d definitionYAML) toDefinition() (*Definition, error) {
	def := &Definition{
		Name:          strings.TrimSpace(d.Name),
		DefaultEasing: strings.TrimSpace(d.Easing),
	}

	if d.Duration != "" {
		dur, err := time.ParseDuration(d.Duration)
		if err != nil {
			return nil, fmt.Errorf("effect %s: bad duration %q: %w", d.Name, d.Duration, err)
		}
		def.DefaultDuration = dur
	}

	for _, c := range d.Categories {
		switch cat := models.Category(strings.TrimSpace(c)); cat {
		case models.CategoryEntrance, models.CategoryEmphasis, models.CategoryExit:
			def.Categories = append(def.Categories, cat)
		default:
			return nil, fmt.Errorf("effect %s: unknown category %q", d.Name, c)
		}
	}

	for i, raw := range d.Keyframes {
		kf := Keyframe{Offset: raw.Offset, Opacity: raw.Opacity}
		if raw.Transform != "" {
			tf, err := ParseTransform(raw.Transform)
			if err != nil {
				return nil, fmt.Errorf("effect %s keyframe %d: %w", d.Name, i, err)
			}
			kf.Transform = tf
		}
		def.Keyframes = append(def.Keyframes, kf)
	}

	if err := def.validate(); err != nil {
		return nil, err
	}
	return def, nil
}

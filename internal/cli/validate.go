package cli

import (
	"github.com/spf13/cobra"

	"github.com/showdeck/buildseq/internal/effects"
	"github.com/showdeck/buildseq/internal/models"
	"github.com/showdeck/buildseq/internal/sequences"
)

var validateCmd = &cobra.Command{
	Use:   "validate <sequence-file>",
	Short: "Validate a sequence file without playing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	seq, err := sequences.Load(args[0])
	if err != nil {
		return err
	}

	slide, err := seq.Slide()
	if err != nil {
		return err
	}
	steps, err := seq.ModelSteps()
	if err != nil {
		return err
	}

	registry := effects.Builtin()
	if cfg.EffectsPath != "" {
		defs, err := effects.LoadDefinitions(cfg.EffectsPath)
		if err != nil {
			return err
		}
		if registry, err = registry.Merge(defs...); err != nil {
			return err
		}
	}

	// Unknown targets and effects are skippable at playback; surface them as
	// warnings here instead of failing.
	warnings := 0
	for _, step := range steps {
		if step.IsAdvance() {
			continue
		}
		if _, ok := slide.Element(step.TargetElementID); !ok {
			cmd.Printf("warning: step %s targets unknown element %q\n", step.ID, step.TargetElementID)
			warnings++
		}
		def, ok := registry.Lookup(step.Effect)
		if !ok {
			cmd.Printf("warning: step %s uses unknown effect %q\n", step.ID, step.Effect)
			warnings++
			continue
		}
		if !def.SupportsCategory(step.Category) {
			cmd.Printf("warning: effect %q is not meant for category %q\n", step.Effect, step.Category)
			warnings++
		}
	}

	gates := 0
	for _, step := range steps {
		if step.Trigger == models.TriggerOnClick {
			gates++
		}
	}

	cmd.Printf("%s: %d elements, %d steps, %d click gates, %d warnings\n",
		seq.Name, slide.Len(), len(steps), gates, warnings)
	return nil
}

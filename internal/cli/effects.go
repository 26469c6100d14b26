package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/showdeck/buildseq/internal/effects"
)

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List registered effects",
	RunE:  runEffects,
}

func init() {
	rootCmd.AddCommand(effectsCmd)
}

func runEffects(cmd *cobra.Command, args []string) error {
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

	cmd.Printf("%-16s %-28s %-10s %s\n", "EFFECT", "CATEGORIES", "DURATION", "EASING")
	for _, name := range registry.Names() {
		def, _ := registry.Lookup(name)
		cats := make([]string, len(def.Categories))
		for i, c := range def.Categories {
			cats[i] = string(c)
		}
		cmd.Printf("%-16s %-28s %-10s %s\n",
			def.Name, strings.Join(cats, ","), def.DefaultDuration, def.DefaultEasing)
	}
	return nil
}

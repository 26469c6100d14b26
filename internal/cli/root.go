// Package cli provides the buildseq command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/showdeck/buildseq/internal/config"
	"github.com/showdeck/buildseq/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "buildseq",
	Short: "Play slide build sequences headlessly",
	Long: `buildseq plays ordered build-step sequences against a slide's elements,
honoring per-step triggers (on-load, on-click, after-previous, with-previous),
group barriers and click gates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if logFormat != "" {
			cfg.LogFormat = logFormat
		}
		logging.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./buildseq.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

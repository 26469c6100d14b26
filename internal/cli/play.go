package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/showdeck/buildseq/internal/db"
	"github.com/showdeck/buildseq/internal/effects"
	"github.com/showdeck/buildseq/internal/events"
	"github.com/showdeck/buildseq/internal/logging"
	"github.com/showdeck/buildseq/internal/scene"
	"github.com/showdeck/buildseq/internal/sequencer"
	"github.com/showdeck/buildseq/internal/sequences"
	"github.com/showdeck/buildseq/internal/timeline"
)

var (
	playBuiltin    string
	playAutoResume time.Duration
	playSkipAfter  time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play [sequence-file]",
	Short: "Play a build sequence headlessly",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playBuiltin, "builtin", "", "play a builtin demo sequence by name")
	playCmd.Flags().DurationVar(&playAutoResume, "auto-resume", 0, "auto-release click gates after this delay (overrides config)")
	playCmd.Flags().DurationVar(&playSkipAfter, "skip-after", 0, "hard-finish all running timelines this long after playback starts")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := logging.Component("play")

	seqFile, err := resolveSequence(args)
	if err != nil {
		return err
	}

	slide, err := seqFile.Slide()
	if err != nil {
		return err
	}
	steps, err := seqFile.ModelSteps()
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

	seq, err := sequencer.New(timeline.NewClockEngine(), registry)
	if err != nil {
		return err
	}
	seq.Bind(slide)
	if err := seq.Load(steps); err != nil {
		return err
	}
	if err := seq.PrepareEntranceState(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer seq.Cleanup()

	var repo events.Repository
	if cfg.DatabasePath != "" {
		database, err := db.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer database.Close()
		repo = db.NewEventRepository(database)
	}

	sessionID := uuid.New().String()
	var pump sync.WaitGroup
	pump.Add(1)
	go func() {
		defer pump.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-seq.Events():
				logger.Info().
					Str("event", string(ev.Type)).
					Str("step_id", ev.StepID).
					Str("outcome", string(ev.Outcome)).
					Int("cursor", ev.Cursor).
					Msg("playback event")
				if repo != nil {
					if err := events.Record(ctx, repo, sessionID, ev); err != nil {
						logger.Warn().Err(err).Msg("failed to record event")
					}
				}
			case sig := <-seq.AdvanceSignals():
				logger.Info().Str("step_id", sig.StepID).Msg("host advance signal")
			}
		}
	}()

	if playSkipAfter > 0 {
		timer := time.AfterFunc(playSkipAfter, seq.Skip)
		defer timer.Stop()
	}

	autoResume := cfg.GateAutoResume
	if playAutoResume > 0 {
		autoResume = playAutoResume
	}

	if err := seq.Play(ctx); err != nil {
		return err
	}
	for seq.State().AwaitingAdvance {
		if autoResume <= 0 {
			logger.Info().Msg("awaiting advance; interrupt to stop")
			<-ctx.Done()
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(autoResume):
		}
		if err := seq.Resume(ctx); err != nil {
			return err
		}
	}

	stop()
	pump.Wait()

	printSlide(cmd, slide)
	return nil
}

func resolveSequence(args []string) (*sequences.Sequence, error) {
	if playBuiltin != "" {
		builtin, err := sequences.LoadBuiltin()
		if err != nil {
			return nil, err
		}
		for _, seq := range builtin {
			if seq.Name == playBuiltin {
				return seq, nil
			}
		}
		return nil, fmt.Errorf("unknown builtin sequence %q", playBuiltin)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a sequence file or --builtin name is required")
	}
	return sequences.Load(args[0])
}

func printSlide(cmd *cobra.Command, slide *scene.Slide) {
	cmd.Println("final slide state:")
	for _, el := range slide.Elements() {
		visible, opacity, transform := el.Snapshot()
		tf := transform.String()
		if tf == "" {
			tf = "none"
		}
		cmd.Printf("  %-12s visible=%-5v opacity=%.2f transform=%s\n", el.ID, visible, opacity, tf)
	}
}

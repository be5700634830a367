package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starcast-app/starcast/internal/backend"
	"github.com/starcast-app/starcast/internal/workflow"
)

// requireSign validates a sign argument before anything hits the network.
func requireSign(arg string) error {
	if !workflow.IsSign(arg) {
		return backend.Validation("unknown sign %q", arg)
	}
	return nil
}

// emitReport prints a batch report, or a cancellation notice when the
// confirmation gate declined it.
func emitReport(report *workflow.Report, err error) error {
	if errors.Is(err, workflow.ErrNotConfirmed) {
		printWarning("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

// --- generate (full pipeline) ---

var generateCmd = &cobra.Command{
	Use:   "generate <sign|all>",
	Short: "Run the full pipeline: text, narration, video",
	Long: `Run the complete generation pipeline for one sign, or for the whole
zodiac with 'all'. Each sign takes several minutes; the batch asks for
confirmation before starting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, _ := cmd.Flags().GetBool("yes")

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		coord := e.coordinator(assumeYes)
		model := e.models.Active()

		if args[0] == "all" {
			report, err := coord.RunAll(cmd.Context(), model)
			return emitReport(report, err)
		}

		res, err := coord.RunSign(cmd.Context(), args[0], model)
		if err != nil {
			return err
		}
		printSuccess("Pipeline complete for %s", res.Sign)
		printStatus("Title", "%s", res.Title)
		printStatus("Audio", "%s", res.AudioPath)
		printStatus("Video", "%s", res.VideoPath)
		return nil
	},
}

// --- horoscope (text only) ---

var horoscopeCmd = &cobra.Command{
	Use:   "horoscope <sign|all>",
	Short: "Generate the daily horoscope text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, _ := cmd.Flags().GetBool("yes")

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		model := e.models.Active()

		if args[0] == "all" {
			report, err := e.coordinator(assumeYes).GenerateTexts(cmd.Context(), model)
			return emitReport(report, err)
		}

		if err := requireSign(args[0]); err != nil {
			return err
		}
		h, err := e.client.GenerateHoroscope(cmd.Context(), args[0], model)
		if err != nil {
			return err
		}
		fmt.Println(h.Text)
		return nil
	},
}

// --- astral ---

var astralCmd = &cobra.Command{
	Use:   "astral <sign>",
	Short: "Show the day's astral context for a sign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSign(args[0]); err != nil {
			return err
		}

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ac, err := e.client.Astral(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printStatus("Sign", "%s", ac.Sign)
		printStatus("Moon", "%s", ac.Moon)
		for _, p := range ac.Planets {
			printStatus("Planet", "%s", p)
		}
		fmt.Println(ac.Summary)
		return nil
	},
}

// --- chart ---

var chartCmd = &cobra.Command{
	Use:   "chart <sign>",
	Short: "Render the chart image for a sign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSign(args[0]); err != nil {
			return err
		}

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ch, err := e.client.GenerateChart(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printSuccess("Chart rendered: %s", ch.ImagePath)
		return nil
	},
}

// --- video ---

var videoCmd = &cobra.Command{
	Use:   "video <sign|all>",
	Short: "Render the narrated video from the latest horoscope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, _ := cmd.Flags().GetBool("yes")

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		if args[0] == "all" {
			report, err := e.coordinator(assumeYes).RenderVideos(cmd.Context())
			return emitReport(report, err)
		}

		if err := requireSign(args[0]); err != nil {
			return err
		}
		v, err := e.client.GenerateVideo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printSuccess("Video rendered: %s", v.VideoPath)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, horoscopeCmd, videoCmd} {
		cmd.Flags().Bool("yes", false, "skip batch confirmation prompts")
	}
}

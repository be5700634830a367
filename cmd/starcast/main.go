package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/starcast-app/starcast/internal/backend"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:     "starcast",
	Short:   "Generate and publish daily horoscope videos",
	Long: `starcast drives the horoscope generation backend: daily texts,
narrated videos, full per-sign pipelines and uploads to social platforms.

The backend server must be running; see 'starcast status'.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(horoscopeCmd)
	rootCmd.AddCommand(astralCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(uploadCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Backend failures are already rendered by the request envelope;
		// re-printing them here would duplicate the message.
		var be *backend.Error
		if !errors.As(err, &be) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

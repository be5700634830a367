package main

import (
	"github.com/spf13/cobra"

	"github.com/starcast-app/starcast/internal/backend"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <sign|all>",
	Short: "Upload rendered videos to a social platform",
	Long: `Upload the rendered video for one sign, or every rendered video with
'all'. The batch asks for confirmation before starting.

Examples:
  starcast upload aries --platform youtube
  starcast upload all --platform tiktok --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, _ := cmd.Flags().GetString("platform")
		assumeYes, _ := cmd.Flags().GetBool("yes")

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		coord := e.coordinator(assumeYes)

		if args[0] == "all" {
			report, err := coord.UploadAll(cmd.Context(), platform)
			return emitReport(report, err)
		}

		url, err := coord.UploadSign(cmd.Context(), args[0], platform)
		if err != nil {
			return err
		}
		printSuccess("Uploaded %s to %s: %s", args[0], platform, url)
		return nil
	},
}

func init() {
	uploadCmd.Flags().String("platform", backend.PlatformYouTube, "target platform (youtube or tiktok)")
	uploadCmd.Flags().Bool("yes", false, "skip batch confirmation prompts")
}

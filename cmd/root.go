package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "beatmark",
	Short: "Beat detection and FCPXML marker export",
	Long:  `Detects beats in audio files and exports them as frame-accurate FCPXML chapter markers.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"beatmark/audio"
	"beatmark/click"
	"beatmark/pipeline"
)

var clickOut string

func init() {
	clickCmd.Flags().StringVarP(&clickOut, "out", "o", "", "output .mid path (default <input>_click.mid)")
	rootCmd.AddCommand(clickCmd)
}

var clickCmd = &cobra.Command{
	Use:   "click <audio-file>",
	Short: "Exports detected beats as a MIDI click track",
	Long:  `Exports detected beats as a MIDI click track`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		w, err := audio.Decode(cmd.Context(), path)
		if err != nil {
			return err
		}

		res, err := pipeline.Run(cmd.Context(), w, pipeline.Options{
			SourceName: filepath.Base(path),
			SourcePath: path,
		})
		if err != nil {
			return err
		}

		out := clickOut
		if out == "" {
			out = stemPath(path, "_click.mid")
		}
		if err := click.WriteSMF(res.Beats, res.Tempo, out); err != nil {
			return err
		}
		fmt.Printf("%.1f BPM, wrote %v\n", res.Tempo.BPM, out)
		return nil
	},
}

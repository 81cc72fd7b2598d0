package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"beatmark/audio"
	"beatmark/click"
	"beatmark/fcpxml"
	"beatmark/pipeline"
)

var (
	analyzeFps   int
	analyzeOut   string
	analyzeMidi  string
	analyzeQuiet bool
)

func init() {
	analyzeCmd.Flags().IntVar(&analyzeFps, "fps", 0, "timeline frame rate (default 30)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "output .fcpxml path (default <input>_beatmap.fcpxml)")
	analyzeCmd.Flags().StringVar(&analyzeMidi, "midi", "", "also write a click track to this .mid path")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "suppress progress and summary output")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <audio-file>",
	Short: "Detects beats and writes an FCPXML marker timeline",
	Long:  `Detects beats and writes an FCPXML marker timeline`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd.Context(), args[0], analyzeFps, analyzeOut, analyzeMidi, analyzeQuiet)
	},
}

// stemPath swaps an audio path's extension for a suffix, e.g.
// song.wav -> song_beatmap.fcpxml.
func stemPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

func runAnalyze(ctx context.Context, path string, fps int, out, midiOut string, quiet bool) error {
	w, err := audio.Decode(ctx, path)
	if err != nil {
		return err
	}

	if out == "" {
		out = stemPath(path, "_beatmap.fcpxml")
	}

	opts := pipeline.Options{
		FrameRate:  fps,
		SourceName: filepath.Base(path),
		SourcePath: path,
	}

	var p *mpb.Progress
	if !quiet {
		p = mpb.New(mpb.WithWidth(64))
		bar := p.AddBar(4,
			mpb.PrependDecorators(
				decor.Name("Analyzing: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
		opts.Progress = func(stage string, fraction float64) {
			bar.Increment()
		}
	}

	res, err := pipeline.Run(ctx, w, opts)
	if p != nil {
		p.Wait()
	}
	if err != nil {
		return err
	}

	if err := fcpxml.Write(res.Document, out); err != nil {
		return err
	}
	if midiOut != "" {
		if err := click.WriteSMF(res.Beats, res.Tempo, midiOut); err != nil {
			return err
		}
	}

	if !quiet {
		fmt.Printf("%v: %.1f BPM, %v beats over %.1fs\n",
			res.Summary.File, res.Summary.TempoBPM, res.Summary.BeatCount, res.Summary.DurationSeconds)
		if res.Summary.LowConfidence {
			fmt.Println("WARNING: no clear periodicity found, markers follow a fallback 120 BPM grid")
		}
		fmt.Printf("wrote %v\n", out)
		if midiOut != "" {
			fmt.Printf("wrote %v\n", midiOut)
		}
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
)

var watchFps int

func init() {
	watchCmd.Flags().IntVar(&watchFps, "fps", 0, "timeline frame rate (default 30)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watches a directory and analyzes new audio files",
	Long:  `Watches a directory and analyzes new audio files`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watch(cmd.Context(), args[0], watchFps)
	},
}

var audioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".aif":  true,
	".aiff": true,
	".flac": true,
	".m4a":  true,
	".ogg":  true,
}

func isAudioPath(path string) bool {
	return audioExts[strings.ToLower(filepath.Ext(path))]
}

func scanAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isAudioPath(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// watch polls dir for audio files that appear after startup and runs the
// analyzer on them. Arrivals are debounced so a batch copy triggers one
// pass, after the files have settled.
func watch(ctx context.Context, dir string, fps int) error {
	initial, err := scanAudioFiles(dir)
	if err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, p := range initial {
		seen[p] = true
	}

	var mu sync.Mutex
	var pending []string
	debounced := debounce.New(2 * time.Second)

	flush := func() {
		mu.Lock()
		batch := pending
		pending = nil
		mu.Unlock()

		for _, path := range batch {
			fmt.Printf("analyzing %v\n", path)
			if err := runAnalyze(ctx, path, fps, "", "", false); err != nil {
				fmt.Printf("ERROR: %v: %v\n", path, err)
			}
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	fmt.Printf("watching %v\n", dir)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			paths, err := scanAudioFiles(dir)
			if err != nil {
				fmt.Printf("ERROR: scan: %v\n", err)
				continue
			}
			for _, p := range paths {
				if seen[p] {
					continue
				}
				seen[p] = true
				mu.Lock()
				pending = append(pending, p)
				mu.Unlock()
				debounced(flush)
			}
		case <-interrupt:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

package audio

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ProbeInfo holds the stream facts needed to decode at the native rate.
type ProbeInfo struct {
	SampleRate int
	Channels   int
	Duration   float64
}

// Probe reads the first audio stream's parameters with ffprobe.
func Probe(ctx context.Context, path string) (ProbeInfo, error) {
	var info ProbeInfo
	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=sample_rate,channels:format=duration",
		"-of", "default=noprint_wrappers=1",
		path,
	).Output()
	if err != nil {
		return info, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbeOutput(string(out))
}

func parseProbeOutput(out string) (ProbeInfo, error) {
	var info ProbeInfo
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		key, val, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "sample_rate":
			info.SampleRate, _ = strconv.Atoi(val)
		case "channels":
			info.Channels, _ = strconv.Atoi(val)
		case "duration":
			info.Duration, _ = strconv.ParseFloat(val, 64)
		}
	}
	if info.SampleRate <= 0 {
		return info, fmt.Errorf("no audio stream found")
	}
	return info, nil
}

// Decode runs ffmpeg to decode an audio file into mono float64 samples at
// the stream's native sample rate. Multi-channel sources are down-mixed.
func Decode(ctx context.Context, path string) (Waveform, error) {
	if _, err := os.Stat(path); err != nil {
		return Waveform{}, err
	}

	info, err := Probe(ctx, path)
	if err != nil {
		return Waveform{}, err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(info.SampleRate),
		"-ac", "1",
		"-loglevel", "error",
		"pipe:1",
	)
	out, err := cmd.Output()
	if err != nil {
		return Waveform{}, fmt.Errorf("ffmpeg decode %s: %w", path, err)
	}

	// ensure even byte count for int16 alignment
	if len(out)%2 != 0 {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return Waveform{}, fmt.Errorf("zero-length audio: %s", path)
	}

	samples := make([]float64, len(out)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(out[i*2:i*2+2]))) / 32768.0
	}

	return Waveform{Samples: samples, SampleRate: info.SampleRate}, nil
}

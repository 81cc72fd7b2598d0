package constants

import (
	"os"
	"strconv"
)

// STFT geometry. A ~46ms window with 75% overlap at common audio sample
// rates balances time resolution against frequency resolution.
const (
	WindowSize = 2048
	HopSize    = 512
)

// HPSS tuning. The margin matches the separation strictness the detector
// was calibrated against.
const (
	MedianKernel = 17
	HPSSMargin   = 3.0
	HPSSPower    = 2.0
)

// Tempo search range and the octave-bias window, all in BPM. When the
// strongest periodicity peak maps outside the bias window, its half/double
// period is preferred if it lands inside.
const (
	MinTempo      = 50.0
	MaxTempo      = 220.0
	BiasLowTempo  = 80.0
	BiasHighTempo = 160.0
	FallbackTempo = 120.0
)

const DefaultFrameRate = 30

func GetServePort() int {
	if v := os.Getenv("BEATMARK_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 8080
}

func GetMetadataEndpoint() string {
	return os.Getenv("METADATA_DB_ENDPOINT")
}

func GetMetadataTable() string {
	if v := os.Getenv("METADATA_DB_TABLE"); v != "" {
		return v
	}
	return "beatmark-metadata"
}

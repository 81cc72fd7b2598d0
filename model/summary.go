package model

// Summary is the read-only projection of a pipeline run that callers (CLI
// output, HTTP responses) consume. It carries no logic of its own.
type Summary struct {
	File            string  `json:"file"`
	DurationSeconds float64 `json:"duration_seconds"`
	TempoBPM        float64 `json:"tempo_bpm"`
	LowConfidence   bool    `json:"low_confidence"`
	SampleRate      int     `json:"sample_rate"`
	BeatCount       int     `json:"beat_count"`
}

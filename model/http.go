package model

type AnalyzeRequestBody struct {
	// Path is a server-local audio file path.
	Path string `json:"path"`
	// FrameRate defaults to 30 when omitted.
	FrameRate int `json:"frame_rate"`
}

type MarkerResult struct {
	Frame int    `json:"frame"`
	Label string `json:"label"`
}

type AnalyzeResponse struct {
	Summary  Summary        `json:"summary"`
	Markers  []MarkerResult `json:"markers"`
	Metadata *TrackMetadata `json:"metadata,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

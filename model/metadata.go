package model

type TrackMetadata struct {
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Release string `json:"release"`
	Year    uint   `json:"year"`
}

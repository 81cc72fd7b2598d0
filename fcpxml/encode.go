package fcpxml

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"path/filepath"
)

// ids kept stable so regenerated documents diff cleanly in an editor
// project
const (
	formatID = "BMXRefTimelineFormat"
	assetID  = "ASSET_BMXRefBetmarkedClip"
)

type xmlFcpxml struct {
	XMLName   xml.Name     `xml:"fcpxml"`
	Version   string       `xml:"version,attr"`
	Resources xmlResources `xml:"resources"`
	Library   xmlLibrary   `xml:"library"`
}

type xmlResources struct {
	Format xmlFormat `xml:"format"`
	Asset  xmlAsset  `xml:"asset"`
}

type xmlFormat struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr"`
	FrameDuration string `xml:"frameDuration,attr"`
	Width         string `xml:"width,attr"`
	Height        string `xml:"height,attr"`
}

type xmlAsset struct {
	ID            string      `xml:"id,attr"`
	Name          string      `xml:"name,attr"`
	Start         string      `xml:"start,attr"`
	Duration      string      `xml:"duration,attr"`
	HasAudio      string      `xml:"hasAudio,attr"`
	AudioSources  string      `xml:"audioSources,attr"`
	AudioChannels string      `xml:"audioChannels,attr"`
	AudioRate     string      `xml:"audioRate,attr"`
	MediaRep      xmlMediaRep `xml:"media-rep"`
}

type xmlMediaRep struct {
	Kind string `xml:"kind,attr"`
	Src  string `xml:"src,attr"`
}

type xmlLibrary struct {
	Event xmlEvent `xml:"event"`
}

type xmlEvent struct {
	Name      string       `xml:"name,attr"`
	AssetClip xmlAssetClip `xml:"asset-clip"`
}

type xmlAssetClip struct {
	Name      string      `xml:"name,attr"`
	Ref       string      `xml:"ref,attr"`
	Offset    string      `xml:"offset,attr"`
	Duration  string      `xml:"duration,attr"`
	Format    string      `xml:"format,attr"`
	AudioRole string      `xml:"audioRole,attr"`
	TCFormat  string      `xml:"tcFormat,attr"`
	Markers   []xmlMarker `xml:"marker"`
}

type xmlMarker struct {
	Start     string `xml:"start,attr"`
	Duration  string `xml:"duration,attr"`
	Value     string `xml:"value,attr"`
	Completed string `xml:"completed,attr"`
	Note      string `xml:"note,attr"`
}

// FrameTime renders a whole number of frames as an exact rational FCPXML
// time value at the given frame rate.
func FrameTime(frames, fps int) string {
	return fmt.Sprintf("%d/%ds", frames, fps)
}

func beatLabel(i int) string {
	return fmt.Sprintf("Beat %d", i+1)
}

func fileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// Encode serializes the document as FCPXML 1.10. It is a pure transform:
// all timing decisions were made when the document was built, and every
// emitted time value is an exact multiple of one frame.
func Encode(d Document) ([]byte, error) {
	stem := d.SourceName
	if ext := filepath.Ext(stem); ext != "" {
		stem = stem[:len(stem)-len(ext)]
	}
	durationSamples := RoundHalfAway(d.DurationSeconds * float64(d.SampleRate))

	doc := xmlFcpxml{
		Version: "1.10",
		Resources: xmlResources{
			Format: xmlFormat{
				ID:            formatID,
				Name:          fmt.Sprintf("FFVideoFormat%dp", d.FrameRate),
				FrameDuration: FrameTime(1, d.FrameRate),
				Width:         "1920",
				Height:        "1080",
			},
			Asset: xmlAsset{
				ID:            assetID,
				Name:          stem,
				Start:         "0/1s",
				Duration:      fmt.Sprintf("%d/%ds", durationSamples, d.SampleRate),
				HasAudio:      "1",
				AudioSources:  "1",
				AudioChannels: "1",
				AudioRate:     fmt.Sprintf("%d", d.SampleRate),
				MediaRep: xmlMediaRep{
					Kind: "original-media",
					Src:  fileURI(d.SourcePath),
				},
			},
		},
		Library: xmlLibrary{
			Event: xmlEvent{
				Name: "BeatMarked Clips",
				AssetClip: xmlAssetClip{
					Name:      d.SourceName,
					Ref:       assetID,
					Offset:    "0/1s",
					Duration:  FrameTime(d.DurationFrames, d.FrameRate),
					Format:    formatID,
					AudioRole: "music",
					TCFormat:  "NDF",
				},
			},
		},
	}

	for _, m := range d.Markers {
		doc.Library.Event.AssetClip.Markers = append(doc.Library.Event.AssetClip.Markers, xmlMarker{
			Start:     FrameTime(m.Frame, d.FrameRate),
			Duration:  FrameTime(1, d.FrameRate),
			Value:     m.Label,
			Completed: "0",
			Note:      fmt.Sprintf("Beat detected at %.3fs (HPSS)", m.Seconds),
		})
	}

	body, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("marshal fcpxml: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

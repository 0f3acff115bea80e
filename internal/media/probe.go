package media

import (
	"fmt"
	"os"
	"time"

	"github.com/abema/go-mp4"
)

// ProbeInfo holds the subset of container metadata shown in file details.
type ProbeInfo struct {
	Duration time.Duration
	Width    int
	Height   int
}

// ProbeMP4 reads container metadata from an MP4/MOV file. It is best-effort:
// callers display the result when available and proceed without it otherwise.
// Non-ISO-BMFF containers (avi, mkv, webm, flv) always return an error.
func ProbeMP4(path string) (*ProbeInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("probe: open: %w", err)
	}
	defer f.Close()

	info, err := mp4.Probe(f)
	if err != nil {
		return nil, fmt.Errorf("probe: parse mp4: %w", err)
	}

	p := &ProbeInfo{}
	if info.Timescale > 0 {
		p.Duration = time.Duration(float64(info.Duration) / float64(info.Timescale) * float64(time.Second))
	}
	for _, track := range info.Tracks {
		if track.AVC != nil {
			p.Width = int(track.AVC.Width)
			p.Height = int(track.AVC.Height)
			break
		}
	}
	return p, nil
}

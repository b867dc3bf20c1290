package midi

import (
	"gitlab.com/gomidi/midi/v2/smf"
)

// Summary is a lightweight readback of an exported file, used by the
// admin sidecar to confirm an export without re-deriving it from the
// document.
type Summary struct {
	Path          string
	TrackCount    int
	TicksPerBeat  uint16
}

// Summarize reads back path and reports its track count and tick
// resolution.
func Summarize(path string) (Summary, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Path: path, TrackCount: len(s.Tracks)}
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		summary.TicksPerBeat = uint16(mt)
	}
	return summary, nil
}

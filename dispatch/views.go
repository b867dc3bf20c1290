package dispatch

import "github.com/jsphweid/scoretool/model"

func toSectionViews(sections []model.Section) []sectionView {
	out := make([]sectionView, len(sections))
	for i, s := range sections {
		out[i] = sectionView{
			Name:          s.Name,
			StartMeasure:  s.StartMeasure,
			EndMeasure:    s.EndMeasure,
			Tempo:         s.Tempo,
			TimeSignature: s.TimeSignature,
			Key:           s.Key,
			Description:   s.Description,
		}
	}
	return out
}

func toTrackViews(tracks []model.Track) []trackView {
	out := make([]trackView, len(tracks))
	for i, t := range tracks {
		out[i] = trackView{Name: t.Name, Instrument: t.Instrument}
	}
	return out
}

type noteView struct {
	Track    string `json:"track"`
	Pitch    int    `json:"pitch"`
	Start    any    `json:"start"`
	Duration any    `json:"duration"`
	Flagged  bool   `json:"flagged,omitempty"`
}

func toNoteViews(notes []model.Note) []noteView {
	out := make([]noteView, len(notes))
	for i, n := range notes {
		out[i] = noteView{Track: n.Track, Pitch: n.Pitch, Start: n.Start, Duration: n.Duration, Flagged: n.Flagged}
	}
	return out
}

type chordView struct {
	Beat       float64  `json:"beat"`
	Chord      string   `json:"chord"`
	Duration   float64  `json:"duration"`
	ChordTones []string `json:"chord_tones"`
}

func toChordViews(chords []model.Chord) []chordView {
	out := make([]chordView, len(chords))
	for i, c := range chords {
		out[i] = chordView{Beat: c.Beat, Chord: c.Symbol, Duration: c.Duration, ChordTones: c.ChordTones}
	}
	return out
}

package dispatch

import (
	"encoding/json"

	"github.com/jsphweid/scoretool/piece"
)

type chordInputParams struct {
	Beat     float64 `json:"beat"`
	Chord    string  `json:"chord"`
	Duration float64 `json:"duration"`
}

type addChordsParams struct {
	Chords []chordInputParams `json:"chords"`
}

type addChordsResult struct {
	ChordsAdded []chordView `json:"chords_added"`
}

func handleAddChords(d *piece.Document, raw json.RawMessage) (any, error) {
	var p addChordsParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	batch := make([]piece.ChordInput, len(p.Chords))
	for i, c := range p.Chords {
		batch[i] = piece.ChordInput{Beat: c.Beat, Symbol: c.Chord, Duration: c.Duration}
	}
	added, err := d.AddChords(batch)
	if err != nil {
		return nil, err
	}
	return addChordsResult{ChordsAdded: toChordViews(added)}, nil
}

type chordRangeParams struct {
	StartBeat float64 `json:"start_beat"`
	EndBeat   float64 `json:"end_beat"`
}

func handleGetChordsInRange(d *piece.Document, raw json.RawMessage) (any, error) {
	var p chordRangeParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	return toChordViews(d.GetChordsInRange(p.StartBeat, p.EndBeat)), nil
}

func handleRemoveChordsInRange(d *piece.Document, raw json.RawMessage) (any, error) {
	var p chordRangeParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	d.RemoveChordsInRange(p.StartBeat, p.EndBeat)
	return okResult{OK: true}, nil
}

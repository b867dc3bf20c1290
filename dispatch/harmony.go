package dispatch

import (
	"encoding/json"

	"github.com/jsphweid/scoretool/piece"
)

type flagNotesParams struct {
	Tracks    []string `json:"tracks"`
	StartBeat float64  `json:"start_beat"`
	EndBeat   float64  `json:"end_beat"`
}

type flagNotesResult struct {
	FlaggedCount int `json:"flagged_count"`
}

func handleFlagNotes(d *piece.Document, raw json.RawMessage) (any, error) {
	var p flagNotesParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	flagged, err := d.FlagNotes(p.Tracks, p.StartBeat, p.EndBeat)
	if err != nil {
		return nil, err
	}
	return flagNotesResult{FlaggedCount: flagged}, nil
}

type removeFlaggedNotesResult struct {
	Removed []noteView `json:"removed"`
	Count   int        `json:"count"`
}

func handleRemoveFlaggedNotes(d *piece.Document, raw json.RawMessage) (any, error) {
	removed := d.RemoveFlaggedNotes()
	return removeFlaggedNotesResult{Removed: toNoteViews(removed), Count: len(removed)}, nil
}

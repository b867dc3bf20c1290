package dispatch

import (
	"encoding/json"

	"github.com/jsphweid/scoretool/piece"
)

type noteInputParams struct {
	Track    string `json:"track"`
	Pitch    int    `json:"pitch"`
	Start    any    `json:"start"`
	Duration any    `json:"duration"`
}

type addNotesParams struct {
	Notes []noteInputParams `json:"notes"`
}

type addNotesResult struct {
	AddedCount int `json:"added_count"`
}

func handleAddNotes(d *piece.Document, raw json.RawMessage) (any, error) {
	var p addNotesParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	batch := make([]piece.NoteInput, len(p.Notes))
	for i, n := range p.Notes {
		batch[i] = piece.NoteInput{Track: n.Track, Pitch: n.Pitch, Start: n.Start, Duration: n.Duration}
	}
	added, err := d.AddNotes(batch)
	if err != nil {
		return nil, err
	}
	return addNotesResult{AddedCount: added}, nil
}

type removeNotesInRangeParams struct {
	Track     string `json:"track"`
	StartTime any    `json:"start_time"`
	EndTime   any    `json:"end_time"`
}

type removeCountResult struct {
	RemovedCount int `json:"removed_count"`
}

func handleRemoveNotesInRange(d *piece.Document, raw json.RawMessage) (any, error) {
	var p removeNotesInRangeParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	removed, err := d.RemoveNotesInRange(p.Track, p.StartTime, p.EndTime)
	if err != nil {
		return nil, err
	}
	return removeCountResult{RemovedCount: removed}, nil
}

type getNotesParams struct {
	Track     *string `json:"track,omitempty"`
	StartTime any     `json:"start_time,omitempty"`
	EndTime   any     `json:"end_time,omitempty"`
}

func handleGetNotes(d *piece.Document, raw json.RawMessage) (any, error) {
	var p getNotesParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	notes, err := d.GetNotes(piece.NoteQuery{Track: p.Track, Start: p.StartTime, End: p.EndTime})
	if err != nil {
		return nil, err
	}
	return toNoteViews(notes), nil
}

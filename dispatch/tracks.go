package dispatch

import (
	"encoding/json"

	"github.com/jsphweid/scoretool/piece"
)

type addTrackParams struct {
	Name       string `json:"name"`
	Instrument string `json:"instrument"`
}

func handleAddTrack(d *piece.Document, raw json.RawMessage) (any, error) {
	var p addTrackParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, schemaViolation("add_track requires a non-empty name")
	}
	if err := d.AddTrack(p.Name, p.Instrument); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

type removeTrackParams struct {
	Name string `json:"name"`
}

type removeTrackResult struct {
	RemovedNotesCount int `json:"removed_notes_count"`
}

func handleRemoveTrack(d *piece.Document, raw json.RawMessage) (any, error) {
	var p removeTrackParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	removed, err := d.RemoveTrack(p.Name)
	if err != nil {
		return nil, err
	}
	return removeTrackResult{RemovedNotesCount: removed}, nil
}

func handleGetTracks(d *piece.Document, raw json.RawMessage) (any, error) {
	return toTrackViews(d.Tracks()), nil
}

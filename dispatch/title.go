package dispatch

import (
	"encoding/json"

	"github.com/jsphweid/scoretool/piece"
)

type setTitleParams struct {
	Title string `json:"title"`
}

func handleSetTitle(d *piece.Document, raw json.RawMessage) (any, error) {
	var p setTitleParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if err := d.SetTitle(p.Title); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

type sectionView struct {
	Name          string `json:"name"`
	StartMeasure  int    `json:"start_measure"`
	EndMeasure    int    `json:"end_measure"`
	Tempo         int    `json:"tempo"`
	TimeSignature string `json:"time_signature"`
	Key           string `json:"key"`
	Description   string `json:"description"`
}

type trackView struct {
	Name       string `json:"name"`
	Instrument string `json:"instrument"`
}

type pieceInfoResult struct {
	Title     string        `json:"title"`
	Sections  []sectionView `json:"sections"`
	Tracks    []trackView   `json:"tracks"`
	NoteCount int           `json:"note_count"`
}

func handleGetPieceInfo(d *piece.Document, raw json.RawMessage) (any, error) {
	info := d.Info()
	return pieceInfoResult{
		Title:     info.Title,
		Sections:  toSectionViews(info.Sections),
		Tracks:    toTrackViews(info.Tracks),
		NoteCount: info.NoteCount,
	}, nil
}

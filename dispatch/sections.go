package dispatch

import (
	"encoding/json"

	"github.com/jsphweid/scoretool/piece"
)

type addSectionParams struct {
	Name          string `json:"name"`
	StartMeasure  int    `json:"start_measure"`
	EndMeasure    int    `json:"end_measure"`
	Tempo         int    `json:"tempo"`
	TimeSignature string `json:"time_signature"`
	Key           string `json:"key"`
	Description   string `json:"description,omitempty"`
}

func handleAddSection(d *piece.Document, raw json.RawMessage) (any, error) {
	var p addSectionParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, schemaViolation("add_section requires a non-empty name")
	}
	if err := d.AddSection(p.Name, p.StartMeasure, p.EndMeasure, p.Tempo, p.TimeSignature, p.Key, p.Description); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

type editSectionParams struct {
	Name          string  `json:"name"`
	StartMeasure  *int    `json:"start_measure,omitempty"`
	EndMeasure    *int    `json:"end_measure,omitempty"`
	Tempo         *int    `json:"tempo,omitempty"`
	TimeSignature *string `json:"time_signature,omitempty"`
	Key           *string `json:"key,omitempty"`
	Description   *string `json:"description,omitempty"`
}

func handleEditSection(d *piece.Document, raw json.RawMessage) (any, error) {
	var p editSectionParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, schemaViolation("edit_section requires a non-empty name")
	}
	patch := piece.SectionPatch{
		StartMeasure:  p.StartMeasure,
		EndMeasure:    p.EndMeasure,
		Tempo:         p.Tempo,
		TimeSignature: p.TimeSignature,
		Key:           p.Key,
		Description:   p.Description,
	}
	if err := d.EditSection(p.Name, patch); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

func handleGetSections(d *piece.Document, raw json.RawMessage) (any, error) {
	return toSectionViews(d.Sections()), nil
}

package dispatch

import (
	"encoding/json"

	"github.com/jsphweid/scoretool/midi"
	"github.com/jsphweid/scoretool/piece"
)

type exportMidiParams struct {
	Filepath string `json:"filepath"`
}

type exportMidiResult struct {
	Filepath string `json:"filepath"`
}

func handleExportMidi(d *piece.Document, raw json.RawMessage) (any, error) {
	var p exportMidiParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Filepath == "" {
		return nil, schemaViolation("export_midi requires a non-empty filepath")
	}
	out, err := midi.Export(d.Snapshot(), p.Filepath)
	if err != nil {
		return nil, err
	}
	return exportMidiResult{Filepath: out}, nil
}

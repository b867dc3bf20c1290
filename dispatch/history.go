package dispatch

import (
	"encoding/json"

	"github.com/jsphweid/scoretool/piece"
)

func handleUndo(d *piece.Document, raw json.RawMessage) (any, error) {
	if err := d.Undo(); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

func handleRedo(d *piece.Document, raw json.RawMessage) (any, error) {
	if err := d.Redo(); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

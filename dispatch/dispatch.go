// Package dispatch maps the closed catalog of named tool calls onto the
// document model in package piece. Every handler decodes its arguments
// into a typed parameter struct before forwarding to piece -- a decode
// failure (malformed JSON or a wrong JSON type) yields SchemaViolation,
// as does an empty name in add_section, edit_section and add_track or an
// empty filepath in export_midi, and an unrecognized tool name yields
// UnknownTool. These are the only two error kinds this package raises
// directly. Other absent fields are not checked here: they decode to
// their zero value (or nil) and are passed to piece as such, and
// everything piece, chord, or expr then returns bubbles up unchanged.
package dispatch

import (
	"encoding/json"

	"github.com/jsphweid/scoretool/model"
	"github.com/jsphweid/scoretool/piece"
)

// Dispatcher holds the single document this server mediates.
type Dispatcher struct {
	doc *piece.Document
}

// New returns a Dispatcher over doc.
func New(doc *piece.Document) *Dispatcher {
	return &Dispatcher{doc: doc}
}

// handlerFunc decodes raw JSON params, calls into the document, and
// returns a JSON-serializable result or a typed error.
type handlerFunc func(d *piece.Document, params json.RawMessage) (any, error)

var catalog map[string]handlerFunc

func init() {
	catalog = map[string]handlerFunc{
		"set_title":               handleSetTitle,
		"get_piece_info":          handleGetPieceInfo,
		"add_section":             handleAddSection,
		"edit_section":            handleEditSection,
		"get_sections":            handleGetSections,
		"add_track":               handleAddTrack,
		"remove_track":            handleRemoveTrack,
		"get_tracks":              handleGetTracks,
		"add_notes":               handleAddNotes,
		"remove_notes_in_range":   handleRemoveNotesInRange,
		"get_notes":               handleGetNotes,
		"add_chords":              handleAddChords,
		"get_chords_in_range":     handleGetChordsInRange,
		"remove_chords_in_range":  handleRemoveChordsInRange,
		"flag_notes":              handleFlagNotes,
		"remove_flagged_notes":    handleRemoveFlaggedNotes,
		"undo":                    handleUndo,
		"redo":                    handleRedo,
		"export_midi":             handleExportMidi,
	}
}

// Dispatch invokes the named tool with raw JSON parameters and returns
// its result or a typed error. Unknown tool names yield UnknownTool.
func (disp *Dispatcher) Dispatch(tool string, params json.RawMessage) (any, error) {
	h, ok := catalog[tool]
	if !ok {
		return nil, model.NewErrorf(model.CodeUnknownTool, "unknown tool %q", tool).
			WithData(map[string]any{"tool": tool})
	}
	disp.doc.Lock()
	defer disp.doc.Unlock()
	return h(disp.doc, params)
}

// decodeParams unmarshals raw into dst, reporting SchemaViolation on any
// decode failure.
func decodeParams(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return model.NewErrorf(model.CodeSchemaViolation, "malformed parameters: %v", err)
	}
	return nil
}

func schemaViolation(format string, args ...any) error {
	return model.NewErrorf(model.CodeSchemaViolation, format, args...)
}

type okResult struct {
	OK bool `json:"ok"`
}

package dispatch

import (
	"encoding/json"
	"testing"

	"github.com/jsphweid/scoretool/model"
	"github.com/jsphweid/scoretool/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, disp *Dispatcher, tool string, params string) (any, error) {
	t.Helper()
	return disp.Dispatch(tool, json.RawMessage(params))
}

func TestUnknownToolYieldsUnknownTool(t *testing.T) {
	disp := New(piece.New())
	_, err := call(t, disp, "not_a_real_tool", `{}`)
	require.Error(t, err)
	e, ok := model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.CodeUnknownTool, e.Code)
}

func TestMalformedParamsYieldSchemaViolation(t *testing.T) {
	disp := New(piece.New())
	_, err := call(t, disp, "set_title", `{"title": 42`)
	require.Error(t, err)
	e, ok := model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.CodeSchemaViolation, e.Code)
}

func TestSetTitleAndGetPieceInfo(t *testing.T) {
	disp := New(piece.New())
	_, err := call(t, disp, "set_title", `{"title": "Nocturne"}`)
	require.NoError(t, err)

	result, err := call(t, disp, "get_piece_info", `{}`)
	require.NoError(t, err)
	info := result.(pieceInfoResult)
	assert.Equal(t, "Nocturne", info.Title)
	assert.Equal(t, 0, info.NoteCount)
}

func TestAddTrackAddNotesKeepsExpressionStart(t *testing.T) {
	// S3's track and note inputs, sent through the dispatch layer: get_notes
	// echoes the start expression exactly as it was given.
	disp := New(piece.New())
	_, err := call(t, disp, "add_track", `{"name":"p","instrument":"piano"}`)
	require.NoError(t, err)

	_, err = call(t, disp, "add_notes", `{"notes":[{"track":"p","pitch":60,"start":"9 + 1/3","duration":"1/3"}]}`)
	require.NoError(t, err)

	notesResult, err := call(t, disp, "get_notes", `{}`)
	require.NoError(t, err)
	notes := notesResult.([]noteView)
	require.Len(t, notes, 1)
	assert.Equal(t, "9 + 1/3", notes[0].Start)
}

func TestAddSectionAndEditSectionOverlapAdjustment(t *testing.T) {
	disp := New(piece.New())
	_, err := call(t, disp, "add_section", `{"name":"A","start_measure":1,"end_measure":8,"tempo":120,"time_signature":"4/4","key":"C"}`)
	require.NoError(t, err)
	_, err = call(t, disp, "add_section", `{"name":"B","start_measure":9,"end_measure":16,"tempo":120,"time_signature":"4/4","key":"C"}`)
	require.NoError(t, err)

	_, err = call(t, disp, "edit_section", `{"name":"A","end_measure":10}`)
	require.NoError(t, err)

	result, err := call(t, disp, "get_sections", `{}`)
	require.NoError(t, err)
	sections := result.([]sectionView)
	require.Len(t, sections, 2)
	assert.Equal(t, 10, sections[0].EndMeasure)
	assert.Equal(t, 11, sections[1].StartMeasure)
}

func TestUndoRedoRoundTripThroughDispatch(t *testing.T) {
	disp := New(piece.New())
	_, err := call(t, disp, "set_title", `{"title":"first"}`)
	require.NoError(t, err)
	_, err = call(t, disp, "set_title", `{"title":"second"}`)
	require.NoError(t, err)

	_, err = call(t, disp, "undo", `{}`)
	require.NoError(t, err)
	info, _ := call(t, disp, "get_piece_info", `{}`)
	assert.Equal(t, "first", info.(pieceInfoResult).Title)

	_, err = call(t, disp, "redo", `{}`)
	require.NoError(t, err)
	info, _ = call(t, disp, "get_piece_info", `{}`)
	assert.Equal(t, "second", info.(pieceInfoResult).Title)
}

func TestUndoExhaustionYieldsNothingToUndo(t *testing.T) {
	disp := New(piece.New())
	_, err := call(t, disp, "undo", `{}`)
	require.Error(t, err)
	e, ok := model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.CodeNothingToUndo, e.Code)
}

func TestAddChordsSplitOnInsertThroughDispatch(t *testing.T) {
	disp := New(piece.New())
	_, err := call(t, disp, "add_chords", `{"chords":[{"beat":0,"chord":"C","duration":8}]}`)
	require.NoError(t, err)
	_, err = call(t, disp, "add_chords", `{"chords":[{"beat":4,"chord":"F","duration":4}]}`)
	require.NoError(t, err)

	result, err := call(t, disp, "get_chords_in_range", `{"start_beat":0,"end_beat":8}`)
	require.NoError(t, err)
	chords := result.([]chordView)
	require.Len(t, chords, 2)
	assert.Equal(t, "C", chords[0].Chord)
	assert.Equal(t, 4.0, chords[0].Duration)
	assert.Equal(t, "F", chords[1].Chord)
}

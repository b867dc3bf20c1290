package piece

import (
	"testing"

	"github.com/jsphweid/scoretool/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionOverlapAdjustmentShrinksNeighbor(t *testing.T) {
	// S1: editing A's end into B's range shrinks B rather than deleting it.
	d := New()
	require.NoError(t, d.AddSection("A", 1, 8, 120, "4/4", "C", ""))
	require.NoError(t, d.AddSection("B", 9, 16, 120, "4/4", "C", ""))

	newEnd := 10
	err := d.EditSection("A", SectionPatch{EndMeasure: &newEnd})
	require.NoError(t, err)

	sections := d.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "A", sections[0].Name)
	assert.Equal(t, 1, sections[0].StartMeasure)
	assert.Equal(t, 10, sections[0].EndMeasure)
	assert.Equal(t, "B", sections[1].Name)
	assert.Equal(t, 11, sections[1].StartMeasure)
	assert.Equal(t, 16, sections[1].EndMeasure)
}

func TestSectionEditRefusesToSwallowNeighbor(t *testing.T) {
	// S2: a full swallow is refused and leaves both sections untouched.
	d := New()
	require.NoError(t, d.AddSection("A", 1, 4, 120, "4/4", "C", ""))
	require.NoError(t, d.AddSection("B", 5, 8, 120, "4/4", "C", ""))

	newEnd := 10
	err := d.EditSection("A", SectionPatch{EndMeasure: &newEnd})
	require.Error(t, err)
	e, ok := model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.CodeSectionWouldSwallow, e.Code)

	sections := d.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, 1, sections[0].StartMeasure)
	assert.Equal(t, 4, sections[0].EndMeasure)
	assert.Equal(t, 5, sections[1].StartMeasure)
	assert.Equal(t, 8, sections[1].EndMeasure)
}

func TestAddSectionRejectsOverlapAndDuplicateName(t *testing.T) {
	d := New()
	require.NoError(t, d.AddSection("A", 1, 8, 120, "4/4", "C", ""))

	err := d.AddSection("A", 9, 12, 120, "4/4", "C", "")
	e, ok := model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.CodeDuplicateName, e.Code)

	err = d.AddSection("B", 4, 12, 120, "4/4", "C", "")
	e, ok = model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.CodeSectionOverlap, e.Code)
}

func TestTrackRemovalCascadesToNotesAndCountsCorrectly(t *testing.T) {
	d := New()
	require.NoError(t, d.AddTrack("p", "piano"))
	require.NoError(t, d.AddTrack("b", "acoustic_bass"))
	_, err := d.AddNotes([]NoteInput{
		{Track: "p", Pitch: 60, Start: 0, Duration: 1},
		{Track: "p", Pitch: 62, Start: 1, Duration: 1},
		{Track: "b", Pitch: 40, Start: 0, Duration: 1},
	})
	require.NoError(t, err)

	removed, err := d.RemoveTrack("p")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	notes, err := d.GetNotes(NoteQuery{})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "b", notes[0].Track)
}

func TestAddNotesIsAtomicAcrossBatch(t *testing.T) {
	d := New()
	require.NoError(t, d.AddTrack("p", "piano"))

	_, err := d.AddNotes([]NoteInput{
		{Track: "p", Pitch: 60, Start: 0, Duration: 1},
		{Track: "missing", Pitch: 60, Start: 1, Duration: 1},
	})
	require.Error(t, err)
	e, ok := model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.CodeTrackMissing, e.Code)
	assert.Equal(t, 1, e.Data["index"])

	notes, err := d.GetNotes(NoteQuery{})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestAddNotesThenRemoveRangeRoundTrips(t *testing.T) {
	d := New()
	require.NoError(t, d.AddTrack("p", "piano"))
	_, err := d.AddNotes([]NoteInput{{Track: "p", Pitch: 60, Start: "9 + 1/3", Duration: "1/3"}})
	require.NoError(t, err)

	removed, err := d.RemoveNotesInRange("p", "9 + 1/3", "10")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	notes, err := d.GetNotes(NoteQuery{})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestHarmonyFlagsNotesOutsideChordTones(t *testing.T) {
	// S4: C,D,E,F against a C major chord flags D and F.
	d := New()
	require.NoError(t, d.AddTrack("m", "piano"))
	_, err := d.AddNotes([]NoteInput{
		{Track: "m", Pitch: 60, Start: 0, Duration: 1},
		{Track: "m", Pitch: 62, Start: 1, Duration: 1},
		{Track: "m", Pitch: 64, Start: 2, Duration: 1},
		{Track: "m", Pitch: 65, Start: 3, Duration: 1},
	})
	require.NoError(t, err)
	_, err = d.AddChords([]ChordInput{{Beat: 0, Symbol: "C", Duration: 4}})
	require.NoError(t, err)

	flagged, err := d.FlagNotes([]string{"m"}, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, flagged)

	removed := d.RemoveFlaggedNotes()
	assert.Len(t, removed, 2)

	flagged, err = d.FlagNotes([]string{"m"}, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, flagged)
}

func TestFlagNotesFailsOnlyWhenCandidatesExistWithoutProgression(t *testing.T) {
	d := New()
	require.NoError(t, d.AddTrack("m", "piano"))

	_, err := d.FlagNotes([]string{"m"}, 0, 4)
	require.NoError(t, err)

	_, err = d.AddNotes([]NoteInput{{Track: "m", Pitch: 60, Start: 0, Duration: 1}})
	require.NoError(t, err)

	_, err = d.FlagNotes([]string{"m"}, 0, 4)
	require.Error(t, err)
	e, ok := model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.CodeNoProgression, e.Code)
}

func TestChordOverlapSplitsExistingChord(t *testing.T) {
	// S5: inserting F at [4,8) splits the existing C at [0,8).
	d := New()
	_, err := d.AddChords([]ChordInput{{Beat: 0, Symbol: "C", Duration: 8}})
	require.NoError(t, err)
	_, err = d.AddChords([]ChordInput{{Beat: 4, Symbol: "F", Duration: 4}})
	require.NoError(t, err)

	progression := d.ChordProgression()
	require.Len(t, progression, 2)
	assert.Equal(t, "C", progression[0].Symbol)
	assert.Equal(t, 0.0, progression[0].Beat)
	assert.Equal(t, 4.0, progression[0].Duration)
	assert.Equal(t, "F", progression[1].Symbol)
	assert.Equal(t, 4.0, progression[1].Beat)
	assert.Equal(t, 4.0, progression[1].Duration)
}

func TestChordFullyCoveredByInsertIsRemoved(t *testing.T) {
	d := New()
	_, err := d.AddChords([]ChordInput{{Beat: 2, Symbol: "Dm", Duration: 1}})
	require.NoError(t, err)
	_, err = d.AddChords([]ChordInput{{Beat: 0, Symbol: "C", Duration: 8}})
	require.NoError(t, err)

	progression := d.ChordProgression()
	require.Len(t, progression, 1)
	assert.Equal(t, "C", progression[0].Symbol)
}

func TestUndoHistoryIsBoundedToTen(t *testing.T) {
	// S6: 15 set_title calls leave exactly 10 undoable steps.
	d := New()
	for i := 0; i < 15; i++ {
		require.NoError(t, d.SetTitle("title"))
	}
	assert.Equal(t, maxHistory, d.UndoDepth())

	for i := 0; i < maxHistory; i++ {
		require.NoError(t, d.Undo())
	}
	err := d.Undo()
	require.Error(t, err)
	e, ok := model.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.CodeNothingToUndo, e.Code)
}

func TestUndoRedoRestoresExactState(t *testing.T) {
	d := New()
	require.NoError(t, d.SetTitle("first"))
	require.NoError(t, d.SetTitle("second"))

	require.NoError(t, d.Undo())
	assert.Equal(t, "first", d.Snapshot().Title)

	require.NoError(t, d.Redo())
	assert.Equal(t, "second", d.Snapshot().Title)
}

func TestErrorPathDoesNotConsumeUndoSlot(t *testing.T) {
	d := New()
	require.NoError(t, d.AddTrack("p", "piano"))
	depthBefore := d.UndoDepth()

	err := d.AddTrack("p", "piano")
	require.Error(t, err)
	assert.Equal(t, depthBefore, d.UndoDepth())
}

func TestCloneProducesIndependentSnapshots(t *testing.T) {
	d := New()
	require.NoError(t, d.AddTrack("p", "piano"))
	require.NoError(t, d.SetTitle("mutated after checkpoint"))

	require.NoError(t, d.Undo())
	restored := d.Snapshot()
	restored.Title = "touched locally"

	require.NoError(t, d.Redo())
	assert.Equal(t, "mutated after checkpoint", d.Snapshot().Title)
}

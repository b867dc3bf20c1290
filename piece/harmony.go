package piece

import (
	"github.com/jsphweid/scoretool/chord"
	"github.com/jsphweid/scoretool/expr"
	"github.com/jsphweid/scoretool/model"
)

// FlagNotes clears every note's flagged field, then flags notes in
// tracks whose start falls in [start, end) and whose pitch class is
// absent from the chord active at that beat. It fails with
// NoProgression only when the chord progression is empty and at least
// one candidate note exists in range; the candidate check runs before
// any write so a failure leaves the document untouched.
func (d *Document) FlagNotes(tracks []string, start, end float64) (int, error) {
	p := d.current
	trackSet := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		trackSet[t] = true
	}

	candidates := 0
	for _, n := range p.Notes {
		if !trackSet[n.Track] {
			continue
		}
		if inWindow(n.Start, start, end) {
			candidates++
		}
	}
	if len(p.ChordProgression) == 0 && candidates > 0 {
		return 0, model.NewError(model.CodeNoProgression, "chord progression is empty")
	}

	d.checkpoint()
	for i := range p.Notes {
		p.Notes[i].Flagged = false
	}

	flagged := 0
	for i := range p.Notes {
		n := &p.Notes[i]
		if !trackSet[n.Track] {
			continue
		}
		ns, err := expr.Eval(n.Start)
		if err != nil {
			continue
		}
		nsF := expr.ToFloat64(ns)
		if !(start <= nsF && nsF < end) {
			continue
		}
		active := chordActiveAt(p.ChordProgression, nsF)
		if active == nil {
			continue
		}
		tones := chord.ToneSet(active.ChordTones)
		if !tones[chord.PitchClass(n.Pitch)] {
			n.Flagged = true
			flagged++
		}
	}
	return flagged, nil
}

// RemoveFlaggedNotes deletes every flagged note and returns the deleted
// notes for auditability.
func (d *Document) RemoveFlaggedNotes() []model.Note {
	p := d.current
	var removed []model.Note
	kept := make([]model.Note, 0, len(p.Notes))
	for _, n := range p.Notes {
		if n.Flagged {
			removed = append(removed, n)
		} else {
			kept = append(kept, n)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	d.checkpoint()
	p.Notes = kept
	return removed
}

func chordActiveAt(progression []model.Chord, beat float64) *model.Chord {
	for i := range progression {
		c := &progression[i]
		if c.Beat <= beat && beat < c.End() {
			return c
		}
	}
	return nil
}

func inWindow(start any, lo, hi float64) bool {
	r, err := expr.Eval(start)
	if err != nil {
		return false
	}
	v := expr.ToFloat64(r)
	return lo <= v && v < hi
}

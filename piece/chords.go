package piece

import (
	"sort"

	"github.com/jsphweid/scoretool/chord"
	"github.com/jsphweid/scoretool/model"
)

// ChordInput is one entry of an add_chords batch.
type ChordInput struct {
	Beat     float64
	Symbol   string
	Duration float64
}

// AddChords parses and validates every entry before inserting any of
// them, all-or-nothing. On success, each chord is inserted
// with split-on-insert overlap resolution: any existing chord overlapping
// the new one is trimmed to the portion outside it, or removed outright
// if the new chord fully covers it.
func (d *Document) AddChords(batch []ChordInput) ([]model.Chord, error) {
	parsed := make([]*chord.Parsed, len(batch))
	for i, in := range batch {
		if in.Beat < 0 {
			return nil, indexed(i, model.NewErrorf(model.CodeInvalidRange, "chord %d has negative beat %v", i, in.Beat))
		}
		if in.Duration <= 0 {
			return nil, indexed(i, model.NewErrorf(model.CodeDurationNonPositive, "chord %d duration must be positive", i))
		}
		p, err := chord.Parse(in.Symbol)
		if err != nil {
			return nil, indexed(i, err)
		}
		parsed[i] = p
	}

	d.checkpoint()
	added := make([]model.Chord, 0, len(batch))
	for i, in := range batch {
		nc := model.Chord{
			Beat:       in.Beat,
			Symbol:     in.Symbol,
			Duration:   in.Duration,
			ChordTones: append([]string(nil), parsed[i].ChordTones...),
		}
		d.current.ChordProgression = splitInsertChord(d.current.ChordProgression, nc)
		added = append(added, nc)
	}
	sortChords(d.current.ChordProgression)
	return added, nil
}

// splitInsertChord inserts n into progression, trimming or removing any
// existing chord that overlaps n's interval [n.Beat, n.Beat+n.Duration).
func splitInsertChord(progression []model.Chord, n model.Chord) []model.Chord {
	nStart, nEnd := n.Beat, n.End()
	out := make([]model.Chord, 0, len(progression)+1)
	for _, e := range progression {
		eStart, eEnd := e.Beat, e.End()
		if eEnd <= nStart || eStart >= nEnd {
			out = append(out, e)
			continue
		}
		if eStart < nStart {
			left := e
			left.Duration = nStart - eStart
			out = append(out, left)
		}
		if eEnd > nEnd {
			right := e
			right.Beat = nEnd
			right.Duration = eEnd - nEnd
			out = append(out, right)
		}
	}
	out = append(out, n)
	return out
}

// GetChordsInRange returns chords whose interval overlaps [start, end).
func (d *Document) GetChordsInRange(start, end float64) []model.Chord {
	out := make([]model.Chord, 0)
	for _, c := range d.current.ChordProgression {
		if chordOverlapsRange(c, start, end) {
			out = append(out, c)
		}
	}
	return out
}

// RemoveChordsInRange deletes chords overlapping [start, end) and clears
// the flagged field on every note, since the harmony context they were
// flagged against is now stale.
func (d *Document) RemoveChordsInRange(start, end float64) {
	p := d.current
	kept := make([]model.Chord, 0, len(p.ChordProgression))
	for _, c := range p.ChordProgression {
		if chordOverlapsRange(c, start, end) {
			continue
		}
		kept = append(kept, c)
	}

	d.checkpoint()
	p.ChordProgression = kept
	for i := range p.Notes {
		p.Notes[i].Flagged = false
	}
}

// ChordProgression returns the chord progression sorted by beat.
func (d *Document) ChordProgression() []model.Chord {
	out := make([]model.Chord, len(d.current.ChordProgression))
	copy(out, d.current.ChordProgression)
	return out
}

func sortChords(chords []model.Chord) {
	sort.Slice(chords, func(i, j int) bool { return chords[i].Beat < chords[j].Beat })
}

func chordOverlapsRange(c model.Chord, start, end float64) bool {
	return c.Beat < end && c.End() > start
}

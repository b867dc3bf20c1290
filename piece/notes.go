package piece

import (
	"math/big"

	"github.com/jsphweid/scoretool/expr"
	"github.com/jsphweid/scoretool/model"
	"github.com/jsphweid/scoretool/util"
)

// trackAllSentinel lets remove_notes_in_range target every track at once.
const trackAllSentinel = "all"

// NoteInput is one entry of an add_notes batch, carrying start/duration
// exactly as received (number or expression string).
type NoteInput struct {
	Track    string
	Pitch    int
	Start    any
	Duration any
}

// AddNotes validates every entry in batch before writing any of them: if
// any entry fails, nothing is added, and the error identifies the failing
// index and reason.
func (d *Document) AddNotes(batch []NoteInput) (int, error) {
	p := d.current
	for i, n := range batch {
		if p.TrackIndex(n.Track) < 0 {
			return 0, indexed(i, model.NewErrorf(model.CodeTrackMissing, "note %d references unknown track %q", i, n.Track))
		}
		if util.Clamp(n.Pitch, 0, 127) != n.Pitch {
			return 0, indexed(i, model.NewErrorf(model.CodePitchOutOfRange, "note %d pitch %d out of range [0,127]", i, n.Pitch))
		}
		if _, err := expr.Eval(n.Start); err != nil {
			return 0, indexed(i, err)
		}
		dur, err := expr.Eval(n.Duration)
		if err != nil {
			return 0, indexed(i, err)
		}
		if dur.Sign() <= 0 {
			return 0, indexed(i, model.NewErrorf(model.CodeDurationNonPositive, "note %d duration %s must be positive", i, expr.String(dur)))
		}
	}

	d.checkpoint()
	for _, n := range batch {
		p.Notes = append(p.Notes, model.Note{Track: n.Track, Pitch: n.Pitch, Start: n.Start, Duration: n.Duration})
	}
	return len(batch), nil
}

// RemoveNotesInRange deletes notes on track (or every track, if track is
// the sentinel "all") whose start falls in the half-open interval
// [start, end).
func (d *Document) RemoveNotesInRange(track string, start, end any) (int, error) {
	startR, err := expr.Eval(start)
	if err != nil {
		return 0, err
	}
	endR, err := expr.Eval(end)
	if err != nil {
		return 0, err
	}

	p := d.current
	kept := make([]model.Note, 0, len(p.Notes))
	removed := 0
	for _, n := range p.Notes {
		if track != trackAllSentinel && n.Track != track {
			kept = append(kept, n)
			continue
		}
		ns, err := expr.Eval(n.Start)
		if err != nil {
			kept = append(kept, n)
			continue
		}
		if inHalfOpenRange(ns, startR, endR) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	if removed == 0 {
		return 0, nil
	}
	d.checkpoint()
	p.Notes = kept
	return removed, nil
}

// NoteQuery filters get_notes; nil fields are omitted filters, and the
// filters that are set combine independently.
type NoteQuery struct {
	Track *string
	Start any
	End   any
}

// GetNotes returns notes matching q, preserving insertion order.
func (d *Document) GetNotes(q NoteQuery) ([]model.Note, error) {
	var startR, endR *big.Rat
	var err error
	if q.Start != nil {
		startR, err = expr.Eval(q.Start)
		if err != nil {
			return nil, err
		}
	}
	if q.End != nil {
		endR, err = expr.Eval(q.End)
		if err != nil {
			return nil, err
		}
	}

	out := make([]model.Note, 0)
	for _, n := range d.current.Notes {
		if q.Track != nil && n.Track != *q.Track {
			continue
		}
		if startR != nil || endR != nil {
			ns, err := expr.Eval(n.Start)
			if err != nil {
				continue
			}
			if startR != nil && ns.Cmp(startR) < 0 {
				continue
			}
			if endR != nil && ns.Cmp(endR) >= 0 {
				continue
			}
		}
		out = append(out, n)
	}
	return out, nil
}

func inHalfOpenRange(v, lo, hi *big.Rat) bool {
	return v.Cmp(lo) >= 0 && v.Cmp(hi) < 0
}

// indexed attaches index to err's Data map if err is a *model.Error.
func indexed(index int, err error) error {
	e, ok := model.AsError(err)
	if !ok {
		return err
	}
	data := e.Data
	if data == nil {
		data = make(map[string]any, 1)
	}
	data["index"] = index
	e.Data = data
	return e
}

package piece

import "github.com/jsphweid/scoretool/model"

// AddTrack declares a new track. Fails with DuplicateName if name is
// already taken.
func (d *Document) AddTrack(name, instrument string) error {
	if d.current.TrackIndex(name) >= 0 {
		return model.NewErrorf(model.CodeDuplicateName, "track %q already exists", name)
	}
	d.checkpoint()
	d.current.Tracks = append(d.current.Tracks, model.Track{Name: name, Instrument: instrument})
	return nil
}

// RemoveTrack deletes a track and cascades to every note referencing it,
// returning the number of notes removed. The count is taken before the
// notes are filtered out, not after.
func (d *Document) RemoveTrack(name string) (int, error) {
	idx := d.current.TrackIndex(name)
	if idx < 0 {
		return 0, model.NewErrorf(model.CodeNotFound, "track %q does not exist", name)
	}

	removed := 0
	for _, n := range d.current.Notes {
		if n.Track == name {
			removed++
		}
	}

	d.checkpoint()
	d.current.Tracks = append(d.current.Tracks[:idx], d.current.Tracks[idx+1:]...)

	if removed > 0 {
		kept := d.current.Notes[:0:0]
		for _, n := range d.current.Notes {
			if n.Track != name {
				kept = append(kept, n)
			}
		}
		d.current.Notes = kept
	}

	return removed, nil
}

// Tracks returns the declared tracks in declaration order.
func (d *Document) Tracks() []model.Track {
	out := make([]model.Track, len(d.current.Tracks))
	copy(out, d.current.Tracks)
	return out
}

package piece

import "github.com/jsphweid/scoretool/model"

// SetTitle replaces the piece's title.
func (d *Document) SetTitle(title string) error {
	d.checkpoint()
	d.current.Title = title
	return nil
}

// PieceInfo is the response shape for get_piece_info.
type PieceInfo struct {
	Title     string
	Sections  []model.Section
	Tracks    []model.Track
	NoteCount int
}

// Info returns a summary of the document: title, sections, tracks, and
// the total note count.
func (d *Document) Info() PieceInfo {
	p := d.current
	sections := make([]model.Section, len(p.Sections))
	copy(sections, p.Sections)
	tracks := make([]model.Track, len(p.Tracks))
	copy(tracks, p.Tracks)
	return PieceInfo{
		Title:     p.Title,
		Sections:  sections,
		Tracks:    tracks,
		NoteCount: len(p.Notes),
	}
}

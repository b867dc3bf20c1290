package piece

import (
	"sort"

	"github.com/jsphweid/scoretool/model"
	"github.com/jsphweid/scoretool/util"
)

// AddSection inserts a new section. Fails with DuplicateName if name is
// taken, InvalidRange if the range is malformed, and SectionOverlap if
// the range intersects an existing section.
func (d *Document) AddSection(name string, start, end, tempo int, timeSignature, key, description string) error {
	p := d.current
	for _, s := range p.Sections {
		if s.Name == name {
			return model.NewErrorf(model.CodeDuplicateName, "section %q already exists", name)
		}
	}
	if start < 1 || end < start {
		return model.NewErrorf(model.CodeInvalidRange, "invalid section range [%d,%d]", start, end)
	}
	for _, s := range p.Sections {
		if rangesIntersectInclusive(start, end, s.StartMeasure, s.EndMeasure) {
			return model.NewErrorf(model.CodeSectionOverlap, "section [%d,%d] overlaps existing section %q [%d,%d]", start, end, s.Name, s.StartMeasure, s.EndMeasure)
		}
	}

	d.checkpoint()
	p.Sections = append(p.Sections, model.Section{
		Name:          name,
		StartMeasure:  start,
		EndMeasure:    end,
		Tempo:         tempo,
		TimeSignature: timeSignature,
		Key:           key,
		Description:   description,
	})
	sortSections(p.Sections)
	return nil
}

// SectionPatch carries the fields edit_section may change; nil means
// "leave unchanged".
type SectionPatch struct {
	StartMeasure  *int
	EndMeasure    *int
	Tempo         *int
	TimeSignature *string
	Key           *string
	Description   *string
}

// EditSection applies patch to the named section and performs neighbor
// adjustment so sections stay disjoint afterward: neighbors that
// overlap only one end of the new range are shrunk, never deleted; a
// neighbor that would be fully swallowed causes the whole edit to fail
// with SectionWouldSwallow, leaving the document untouched.
func (d *Document) EditSection(name string, patch SectionPatch) error {
	p := d.current
	idx := -1
	for i, s := range p.Sections {
		if s.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.NewErrorf(model.CodeNotFound, "section %q does not exist", name)
	}

	updated := p.Sections[idx]
	if patch.StartMeasure != nil {
		updated.StartMeasure = *patch.StartMeasure
	}
	if patch.EndMeasure != nil {
		updated.EndMeasure = *patch.EndMeasure
	}
	if patch.Tempo != nil {
		updated.Tempo = *patch.Tempo
	}
	if patch.TimeSignature != nil {
		updated.TimeSignature = *patch.TimeSignature
	}
	if patch.Key != nil {
		updated.Key = *patch.Key
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}

	if updated.StartMeasure < 1 || updated.EndMeasure < updated.StartMeasure {
		return model.NewErrorf(model.CodeInvalidRange, "invalid section range [%d,%d]", updated.StartMeasure, updated.EndMeasure)
	}

	planned := make([]model.Section, len(p.Sections))
	copy(planned, p.Sections)
	planned[idx] = updated

	s2, e2 := updated.StartMeasure, updated.EndMeasure
	for i := range planned {
		if i == idx {
			continue
		}
		n := planned[i]
		if n.StartMeasure >= s2 && n.EndMeasure <= e2 {
			return model.NewErrorf(model.CodeSectionWouldSwallow, "editing %q to [%d,%d] would fully swallow section %q [%d,%d]", name, s2, e2, n.Name, n.StartMeasure, n.EndMeasure)
		}
	}
	for i := range planned {
		if i == idx {
			continue
		}
		n := &planned[i]
		if n.EndMeasure >= s2 && s2 >= n.StartMeasure {
			n.EndMeasure = util.Min(n.EndMeasure, s2-1)
			if n.EndMeasure < n.StartMeasure {
				return model.NewErrorf(model.CodeSectionWouldSwallow, "shrinking %q around %q would leave it empty", n.Name, name)
			}
		}
		if n.StartMeasure <= e2 && e2 <= n.EndMeasure {
			n.StartMeasure = util.Max(n.StartMeasure, e2+1)
			if n.StartMeasure > n.EndMeasure {
				return model.NewErrorf(model.CodeSectionWouldSwallow, "shrinking %q around %q would leave it empty", n.Name, name)
			}
		}
	}

	sortSections(planned)
	for i := 1; i < len(planned); i++ {
		if planned[i].StartMeasure <= planned[i-1].EndMeasure {
			return model.NewErrorf(model.CodeSectionOverlap, "edit of %q leaves overlapping sections", name)
		}
	}

	d.checkpoint()
	p.Sections = planned
	return nil
}

// Sections returns the sections sorted by start_measure.
func (d *Document) Sections() []model.Section {
	out := make([]model.Section, len(d.current.Sections))
	copy(out, d.current.Sections)
	return out
}

func sortSections(sections []model.Section) {
	sort.Slice(sections, func(i, j int) bool { return sections[i].StartMeasure < sections[j].StartMeasure })
}

func rangesIntersectInclusive(aStart, aEnd, bStart, bEnd int) bool {
	return util.Max(aStart, bStart) <= util.Min(aEnd, bEnd)
}

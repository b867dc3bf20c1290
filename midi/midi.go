// Package midi renders a document into a Standard MIDI File: a tempo/
// meter track built from sections, one instrument track per declared
// document track, and note_on/note_off events placed by exact
// beat-to-tick conversion. Export is a pure function of the document: the
// same piece written to two different paths produces byte-identical files.
//
// Construction uses gitlab.com/gomidi/midi/v2 and its smf subpackage.
package midi

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/scoretool/expr"
	"github.com/jsphweid/scoretool/model"
	"github.com/jsphweid/scoretool/util"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TicksPerBeat is the fixed resolution used throughout this module.
const TicksPerBeat = 480

// Velocity is the fixed note velocity; performance expression is out of
// scope.
const Velocity = 64

// PercussionChannel is the MIDI channel reserved for tracks named "drums"
// or "percussion" (regardless of declared instrument) and for tracks whose
// declared instrument is "drums" or "percussion".
const PercussionChannel = 9

const defaultTempo = 120
const defaultNumerator = 4
const defaultDenominator = 4

// nonPercussionChannels is the pool of channels assigned round-robin to
// non-percussion tracks, skipping the reserved percussion channel.
var nonPercussionChannels = []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12, 13, 14, 15}

// Export writes p as a Standard MIDI File at path, appending ".mid" if
// the path does not already end in it, and overwriting any existing
// file there.
func Export(p *model.Piece, path string) (string, error) {
	out := normalizePath(path)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerBeat)

	s.Add(buildTempoTrack(p.Sections))

	channelIdx := 0
	for _, t := range p.Tracks {
		tr, err := buildInstrumentTrack(t, p.Notes, &channelIdx)
		if err != nil {
			return "", model.NewErrorf(model.CodeIOError, "building track %q: %v", t.Name, err)
		}
		s.Add(tr)
	}

	if err := s.WriteFile(out); err != nil {
		return "", model.NewErrorf(model.CodeIOError, "writing %q: %v", out, err)
	}
	return out, nil
}

func normalizePath(path string) string {
	if strings.HasSuffix(path, ".mid") {
		return path
	}
	return path + ".mid"
}

// buildTempoTrack emits one tempo and one time-signature event per
// section, placed at the tick offset of its start_measure. Measures
// before the first section (or the entirety of the piece, if there are
// no sections) use the documented default of 120 BPM, 4/4.
func buildTempoTrack(sections []model.Section) smf.Track {
	var tr smf.Track

	if len(sections) == 0 {
		tr.Add(0, smf.MetaTempo(float64(defaultTempo)))
		tr.Add(0, smf.MetaTimeSig(defaultNumerator, defaultDenominator, 24, 8))
		tr.Close(0)
		return tr
	}

	ordered := make([]model.Section, len(sections))
	copy(ordered, sections)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].StartMeasure < ordered[j].StartMeasure })

	var lastTick uint32
	beatOffset := 0.0
	prevEndMeasure := 0
	prevNum, prevDenom := defaultNumerator, defaultDenominator

	for _, sec := range ordered {
		gapMeasures := util.Max(0, sec.StartMeasure-prevEndMeasure-1)
		beatOffset += float64(gapMeasures) * beatsPerMeasure(prevNum, prevDenom)

		tick := uint32(math.Round(beatOffset * TicksPerBeat))
		num, denom := parseTimeSignature(sec.TimeSignature)

		delta := tick - lastTick
		tr.Add(delta, smf.MetaTempo(float64(sec.Tempo)))
		tr.Add(0, smf.MetaTimeSig(uint8(num), uint8(denom), 24, 8))
		lastTick = tick

		sectionMeasures := sec.EndMeasure - sec.StartMeasure + 1
		beatOffset += float64(sectionMeasures) * beatsPerMeasure(num, denom)
		prevEndMeasure = sec.EndMeasure
		prevNum, prevDenom = num, denom
	}

	tr.Close(0)
	return tr
}

func beatsPerMeasure(numerator, denominator int) float64 {
	return float64(numerator) * 4.0 / float64(denominator)
}

func parseTimeSignature(ts string) (numerator, denominator int) {
	parts := strings.SplitN(ts, "/", 2)
	if len(parts) != 2 {
		return defaultNumerator, defaultDenominator
	}
	n, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	d, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
		return defaultNumerator, defaultDenominator
	}
	return n, d
}

type noteEvent struct {
	tick      uint32
	isNoteOff bool
	pitch     uint8
}

// buildInstrumentTrack emits a Program Change followed by note_on/note_off
// pairs for every note on track t, sorted by tick with note_off preceding
// note_on at ties.
func buildInstrumentTrack(t model.Track, notes []model.Note, channelIdx *int) (smf.Track, error) {
	var tr smf.Track

	var channel uint8
	if IsPercussionTrackName(t.Instrument) {
		channel = PercussionChannel
	} else {
		channel = assignChannel(t.Name, channelIdx)
	}
	program := ProgramForInstrument(t.Instrument)
	tr.Add(0, midi.ProgramChange(channel, uint8(program)))

	var events []noteEvent
	for _, n := range notes {
		if n.Track != t.Name {
			continue
		}
		startBeats, err := expr.Eval(n.Start)
		if err != nil {
			return tr, fmt.Errorf("note start: %w", err)
		}
		durationBeats, err := expr.Eval(n.Duration)
		if err != nil {
			return tr, fmt.Errorf("note duration: %w", err)
		}
		startTick := uint32(math.Round(expr.ToFloat64(startBeats) * TicksPerBeat))
		endTick := uint32(math.Round(expr.ToFloat64(durationBeats)*TicksPerBeat)) + startTick
		events = append(events, noteEvent{tick: startTick, pitch: uint8(n.Pitch), isNoteOff: false})
		events = append(events, noteEvent{tick: endTick, pitch: uint8(n.Pitch), isNoteOff: true})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	var lastTick uint32
	for _, ev := range events {
		delta := ev.tick - lastTick
		if ev.isNoteOff {
			tr.Add(delta, midi.NoteOff(channel, ev.pitch))
		} else {
			tr.Add(delta, midi.NoteOn(channel, ev.pitch, Velocity))
		}
		lastTick = ev.tick
	}
	tr.Close(0)
	return tr, nil
}

func assignChannel(trackName string, channelIdx *int) uint8 {
	normalized := strings.ToLower(strings.TrimSpace(trackName))
	if normalized == "drums" || normalized == "percussion" {
		return PercussionChannel
	}
	ch := nonPercussionChannels[*channelIdx%len(nonPercussionChannels)]
	*channelIdx++
	return ch
}

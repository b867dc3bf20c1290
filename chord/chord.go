// Package chord parses chord symbols into a root pitch class, a quality
// tag, and the set of pitch classes the chord implies.
package chord

import (
	"strings"

	"github.com/jsphweid/scoretool/model"
)

// Parsed is the result of parsing one chord symbol.
type Parsed struct {
	Symbol     string
	Root       string
	RootPC     int
	Quality    string
	ChordTones []string // pitch-class names, in root-relative interval order
}

// pitchClassIndex maps a natural letter to its pitch class.
var pitchClassIndex = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// sharpNames and flatNames render a pitch-class integer back to a spelled
// name; which table is used follows the root's own accidental flavor.
var sharpNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// qualities enumerates every supported quality, its accepted suffixes,
// and its semitone intervals from the root. A suffix must match the whole
// remainder of the symbol after the root (so "Cmaj7" can only resolve to
// "maj7", never "maj"); where two qualities accept the same suffix, the
// one declared first wins.
type qualityDef struct {
	suffixes  []string
	intervals []int
}

var qualities = []struct {
	name string
	def  qualityDef
}{
	{"major-9", qualityDef{[]string{"maj9", "M9"}, []int{0, 4, 7, 11, 14}}},
	{"major-7", qualityDef{[]string{"maj7", "M7", "Δ7", "Δ"}, []int{0, 4, 7, 11}}},
	{"major-6", qualityDef{[]string{"6"}, []int{0, 4, 7, 9}}},
	{"minor-9", qualityDef{[]string{"m9", "min9", "-9"}, []int{0, 3, 7, 10, 14}}},
	{"minor-7", qualityDef{[]string{"m7", "min7", "-7"}, []int{0, 3, 7, 10}}},
	{"minor-6", qualityDef{[]string{"m6", "min6", "-6"}, []int{0, 3, 7, 9}}},
	{"half-diminished", qualityDef{[]string{"m7b5", "min7b5", "ø7", "ø"}, []int{0, 3, 6, 10}}},
	{"diminished-7", qualityDef{[]string{"dim7", "°7"}, []int{0, 3, 6, 9}}},
	{"diminished", qualityDef{[]string{"dim", "°", "-"}, []int{0, 3, 6}}},
	{"augmented", qualityDef{[]string{"aug", "+"}, []int{0, 4, 8}}},
	{"suspended-2", qualityDef{[]string{"sus2"}, []int{0, 2, 7}}},
	{"suspended-4", qualityDef{[]string{"sus4", "sus"}, []int{0, 5, 7}}},
	{"dominant-13", qualityDef{[]string{"13"}, []int{0, 4, 7, 10, 14, 21}}},
	{"dominant-11", qualityDef{[]string{"11"}, []int{0, 4, 7, 10, 14, 17}}},
	{"dominant-9", qualityDef{[]string{"9"}, []int{0, 4, 7, 10, 14}}},
	{"dominant-7", qualityDef{[]string{"7"}, []int{0, 4, 7, 10}}},
	{"add9", qualityDef{[]string{"add9"}, []int{0, 4, 7, 14}}},
	{"minor", qualityDef{[]string{"m", "min", "-"}, []int{0, 3, 7}}},
	{"major", qualityDef{[]string{"maj", "M", ""}, []int{0, 4, 7}}},
}

// SupportedQualities lists every quality name this parser recognizes, for
// inclusion in UnknownChordSymbol error data.
func SupportedQualities() []string {
	names := make([]string, len(qualities))
	for i, q := range qualities {
		names[i] = q.name
	}
	return names
}

// Parse parses a chord symbol such as "Cm7" or "G#maj9" into its root,
// quality, and chord tones. On unrecognized input it returns
// UnknownChordSymbol carrying the offending symbol and the supported
// quality list.
func Parse(symbol string) (*Parsed, error) {
	trimmed := strings.TrimSpace(symbol)
	if trimmed == "" {
		return nil, unknownSymbol(symbol)
	}

	root, rootPC, rest, err := parseRoot(trimmed)
	if err != nil {
		return nil, unknownSymbol(symbol)
	}

	quality, intervals, ok := matchQuality(rest)
	if !ok {
		return nil, unknownSymbol(symbol)
	}

	useFlats := strings.Contains(root, "b")
	names := sharpNames
	if useFlats {
		names = flatNames
	}

	tones := make([]string, len(intervals))
	for i, interval := range intervals {
		pc := (rootPC + interval) % 12
		tones[i] = names[pc]
	}

	return &Parsed{
		Symbol:     symbol,
		Root:       root,
		RootPC:     rootPC,
		Quality:    quality,
		ChordTones: tones,
	}, nil
}

func parseRoot(s string) (root string, pc int, rest string, err error) {
	letter := s[0]
	letter = byte(strings.ToUpper(string(letter))[0])
	base, ok := pitchClassIndex[letter]
	if !ok {
		return "", 0, "", model.NewErrorf(model.CodeUnknownChordSymbol, "unrecognized root %q", s)
	}

	root = string(letter)
	pc = base
	i := 1
	for i < len(s) && (s[i] == '#' || s[i] == 'b') {
		if s[i] == '#' {
			pc++
		} else {
			pc--
		}
		root += string(s[i])
		i++
	}
	pc = ((pc % 12) + 12) % 12
	return root, pc, s[i:], nil
}

// matchQuality finds the quality with a suffix exactly equal to rest. If
// several qualities accept that suffix, the earliest in the declaration
// order of qualities above wins.
func matchQuality(rest string) (string, []int, bool) {
	var best string
	var bestIntervals []int
	bestLen := -1
	for _, q := range qualities {
		for _, suffix := range q.def.suffixes {
			if suffix == rest || (suffix == "" && rest == "") {
				if len(suffix) > bestLen {
					best = q.name
					bestIntervals = q.def.intervals
					bestLen = len(suffix)
				}
			}
		}
	}
	if bestLen < 0 {
		return "", nil, false
	}
	return best, bestIntervals, true
}

func unknownSymbol(symbol string) *model.Error {
	return model.NewErrorf(model.CodeUnknownChordSymbol, "unrecognized chord symbol %q", symbol).
		WithData(map[string]any{
			"symbol":              symbol,
			"supported_qualities": SupportedQualities(),
		})
}

// PitchClass returns the 0-11 pitch class of a MIDI note number.
func PitchClass(pitch int) int {
	return ((pitch % 12) + 12) % 12
}

// NameToPitchClass converts a pitch-class name (with either accidental
// spelling) to its 0-11 integer, so the harmony validator can compare a
// parsed chord's tones against a note's pitch class modulo enharmonic
// spelling.
func NameToPitchClass(name string) (int, bool) {
	for i, n := range sharpNames {
		if strings.EqualFold(n, name) {
			return i, true
		}
	}
	for i, n := range flatNames {
		if strings.EqualFold(n, name) {
			return i, true
		}
	}
	return 0, false
}

// ToneSet reduces a chord's chord-tone names to a set of pitch-class
// integers, used by the harmony validator so that
// enharmonic spellings compare equal.
func ToneSet(tones []string) map[int]bool {
	set := make(map[int]bool, len(tones))
	for _, t := range tones {
		if pc, ok := NameToPitchClass(t); ok {
			set[pc] = true
		}
	}
	return set
}

package chord

import (
	"testing"

	"github.com/jsphweid/scoretool/model"
	"github.com/stretchr/testify/assert"
)

func TestParseTriadQualities(t *testing.T) {
	cases := map[string][]string{
		"C":     {"C", "E", "G"},
		"Cm":    {"C", "D#", "G"},
		"Cdim":  {"C", "D#", "F#"},
		"Caug":  {"C", "E", "G#"},
		"Csus2": {"C", "D", "G"},
		"Csus4": {"C", "F", "G"},
	}
	for symbol, want := range cases {
		p, err := Parse(symbol)
		assert.NoError(t, err, symbol)
		assert.Equal(t, want, p.ChordTones, symbol)
	}
}

func TestParseSeventhAndSixthQualities(t *testing.T) {
	cases := map[string]string{
		"C6":      "major-6",
		"Cm6":     "minor-6",
		"C7":      "dominant-7",
		"Cmaj7":   "major-7",
		"Cm7":     "minor-7",
		"Cdim7":   "diminished-7",
		"Cm7b5":   "half-diminished",
	}
	for symbol, wantQuality := range cases {
		p, err := Parse(symbol)
		assert.NoError(t, err, symbol)
		assert.Equal(t, wantQuality, p.Quality, symbol)
	}
}

func TestParseExtendedQualities(t *testing.T) {
	cases := map[string]int{
		"Cadd9": 4,
		"C9":    5,
		"Cm9":   5,
		"Cmaj9": 5,
		"C11":   6,
		"C13":   6,
	}
	for symbol, wantLen := range cases {
		p, err := Parse(symbol)
		assert.NoError(t, err, symbol)
		assert.Len(t, p.ChordTones, wantLen, symbol)
	}
}

func TestParseAccidentalRoots(t *testing.T) {
	p, err := Parse("G#maj9")
	assert.NoError(t, err)
	assert.Equal(t, "G#", p.Root)
	assert.Equal(t, 8, p.RootPC)

	p, err = Parse("Dbm7")
	assert.NoError(t, err)
	assert.Equal(t, "Db", p.Root)
	assert.Equal(t, "Db", p.ChordTones[0])
}

func TestParseUnknownSymbolCarriesSupportedQualities(t *testing.T) {
	_, err := Parse("Xyz123")
	assert.Error(t, err)
	e, ok := model.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, model.CodeUnknownChordSymbol, e.Code)
	qualities, ok := e.Data["supported_qualities"].([]string)
	assert.True(t, ok)
	assert.NotEmpty(t, qualities)
}

func TestParseEmptySymbol(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
	e, ok := model.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, model.CodeUnknownChordSymbol, e.Code)
}

func TestNameToPitchClassIsEnharmonicAware(t *testing.T) {
	sharp, ok := NameToPitchClass("D#")
	assert.True(t, ok)
	flat, ok := NameToPitchClass("Eb")
	assert.True(t, ok)
	assert.Equal(t, sharp, flat)
}

func TestToneSetComparesAcrossSpellings(t *testing.T) {
	sharpChord, err := Parse("C#")
	assert.NoError(t, err)
	flatChord, err := Parse("Db")
	assert.NoError(t, err)

	assert.Equal(t, ToneSet(sharpChord.ChordTones), ToneSet(flatChord.ChordTones))
}

func TestPitchClassWrapsNegativeAndLargeValues(t *testing.T) {
	assert.Equal(t, 0, PitchClass(60))
	assert.Equal(t, 0, PitchClass(-12))
	assert.Equal(t, 1, PitchClass(-11))
}

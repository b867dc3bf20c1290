package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramForInstrumentKnownAndUnknown(t *testing.T) {
	assert.Equal(t, 0, ProgramForInstrument("piano"))
	assert.Equal(t, 0, ProgramForInstrument("Acoustic_Grand_Piano"))
	assert.Equal(t, 40, ProgramForInstrument("violin"))
	assert.Equal(t, 42, ProgramForInstrument("cello"))
	assert.Equal(t, 56, ProgramForInstrument("trumpet"))
	assert.Equal(t, 73, ProgramForInstrument("flute"))
	assert.Equal(t, 32, ProgramForInstrument("acoustic_bass"))
	assert.Equal(t, 0, ProgramForInstrument("nonexistent_instrument"))
}

func TestIsPercussionTrackName(t *testing.T) {
	assert.True(t, IsPercussionTrackName("Drums"))
	assert.True(t, IsPercussionTrackName(" percussion "))
	assert.False(t, IsPercussionTrackName("piano"))
}

func TestParseTimeSignatureFallsBackOnMalformedInput(t *testing.T) {
	num, denom := parseTimeSignature("3/4")
	assert.Equal(t, 3, num)
	assert.Equal(t, 4, denom)

	num, denom = parseTimeSignature("garbage")
	assert.Equal(t, defaultNumerator, num)
	assert.Equal(t, defaultDenominator, denom)
}

func TestBeatsPerMeasure(t *testing.T) {
	assert.Equal(t, 4.0, beatsPerMeasure(4, 4))
	assert.Equal(t, 3.0, beatsPerMeasure(3, 4))
	assert.Equal(t, 3.0, beatsPerMeasure(6, 8))
}

func TestNormalizePathAppendsExtensionOnce(t *testing.T) {
	assert.Equal(t, "out.mid", normalizePath("out"))
	assert.Equal(t, "out.mid", normalizePath("out.mid"))
}

func TestAssignChannelRoutesPercussionToChannelNine(t *testing.T) {
	idx := 0
	assert.Equal(t, uint8(PercussionChannel), assignChannel("drums", &idx))
	assert.Equal(t, 0, idx)

	assert.Equal(t, nonPercussionChannels[0], assignChannel("piano", &idx))
	assert.Equal(t, 1, idx)
	assert.Equal(t, nonPercussionChannels[1], assignChannel("bass", &idx))
}

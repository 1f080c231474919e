package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote_MultiLine(t *testing.T) {
	text := "Date: 3/5/24\r\n" +
		"Start time (x) PM 10:30\r\n" +
		"End time (x) AM 6:15\r\n" +
		"Hours: 7\r\n" +
		"Minutes: 45\r\n" +
		"INTERRUPTIONS TOTAL #: 2\r\n"

	note := ParseNote(text)
	require.NotNil(t, note)

	assert.Equal(t, "3/5/24", note.DateExpr)

	start, ok := ResolveClockMinutes(note.StartLine)
	require.True(t, ok)
	assert.Equal(t, 22*60+30, start)

	end, ok := ResolveClockMinutes(note.EndLine)
	require.True(t, ok)
	assert.Equal(t, 6*60+15, end)

	require.NotNil(t, note.Hours)
	assert.Equal(t, 7, *note.Hours)
	require.NotNil(t, note.Minutes)
	assert.Equal(t, 45, *note.Minutes)

	require.NotNil(t, note.InterruptionTotal)
	assert.Equal(t, 2, *note.InterruptionTotal)
}

func TestParseNote_SingleLine(t *testing.T) {
	// Notes often collapse everything onto one physical line; the start
	// and end slices must still resolve two distinct clock times.
	note := ParseNote("Date: 3/5 Start time (x) PM 10:00 End time (x) AM 6:00 INTERRUPTIONS TOTAL #: 2")
	require.NotNil(t, note)

	start, ok := ResolveClockMinutes(note.StartLine)
	require.True(t, ok)
	assert.Equal(t, 22*60, start)

	end, ok := ResolveClockMinutes(note.EndLine)
	require.True(t, ok)
	assert.Equal(t, 6*60, end)

	require.NotNil(t, note.InterruptionTotal)
	assert.Equal(t, 2, *note.InterruptionTotal)
}

func TestParseNote_MisspelledInterruptionsHeader(t *testing.T) {
	note := ParseNote("Date: 4/1\nInteruptions total # 3")
	require.NotNil(t, note)
	require.NotNil(t, note.InterruptionTotal)
	assert.Equal(t, 3, *note.InterruptionTotal)
}

func TestParseNote_PartialFields(t *testing.T) {
	note := ParseNote("Slept poorly.\nStart time 11:00 PM")
	require.NotNil(t, note)

	assert.Empty(t, note.DateExpr)
	assert.NotEmpty(t, note.StartLine)
	assert.Empty(t, note.EndLine)
	assert.Nil(t, note.Hours)
	assert.Nil(t, note.Minutes)
	assert.Nil(t, note.InterruptionTotal)
}

func TestParseNote_Blank(t *testing.T) {
	assert.Nil(t, ParseNote(""))
	assert.Nil(t, ParseNote("   \r\n \t \r\n"))
}

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfloor/internal/shift"
)

func TestParseStage_RoundTrip(t *testing.T) {
	for _, st := range stages {
		got, err := ParseStage(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseStage("PHASE_SETUP")
	assert.Error(t, err)
}

func TestStageTables(t *testing.T) {
	assert.Equal(t, 5, StageSetup.Progress())
	assert.Equal(t, 15, StageStationA.Progress())
	assert.Equal(t, 30, StageStationB1.Progress())
	assert.Equal(t, 65, StageStationB2.Progress())
	assert.Equal(t, 90, StageReport.Progress())
	assert.Equal(t, 95, StageTeardown.Progress())
	assert.Equal(t, 100, StageDone.Progress())
	assert.Equal(t, 0, StageCall.Progress())

	assert.Equal(t, 245, StageSetup.RemainingMinutes())
	assert.Equal(t, 85, StageStationB2.RemainingMinutes())
	assert.Equal(t, 0, StageDone.RemainingMinutes())
	assert.Equal(t, 30, StageIncidentStart.RemainingMinutes())

	assert.True(t, StageCall.IsMaintenance())
	assert.True(t, StageIncidentEnd.IsMaintenance())
	assert.False(t, StageTeardown.IsMaintenance())
}

func TestParseRow(t *testing.T) {
	ev, err := ParseRow([]string{"2026-10-20", "09:05:00", "P1", "S-SE-MSN-10", "MSN-10", "adjustment-call", "[MAT:12] arm"})
	require.NoError(t, err)

	assert.True(t, time.Date(2026, 10, 20, 9, 5, 0, 0, shift.Location).Equal(ev.Timestamp))
	assert.Equal(t, "P1", ev.StationID)
	assert.Equal(t, "S-SE-MSN-10", ev.UnitSerial)
	assert.Equal(t, "MSN-10", ev.UnitDisplay)
	assert.Equal(t, StageCall, ev.Stage)
	assert.Equal(t, "[MAT:12] arm", ev.Note)

	assert.Equal(t, []string{"2026-10-20", "09:05:00", "P1", "S-SE-MSN-10", "MSN-10", "adjustment-call", "[MAT:12] arm"}, ev.Row())
}

func TestParseRow_LegacyWithoutNote(t *testing.T) {
	ev, err := ParseRow([]string{"2026-10-20", "09:05:00", "P1", "S-1", "MSN-1", "setup"})
	require.NoError(t, err)
	assert.Empty(t, ev.Note)
}

func TestParseRow_Malformed(t *testing.T) {
	_, err := ParseRow([]string{"2026-10-20", "09:05:00", "P1"})
	assert.Error(t, err)

	_, err = ParseRow([]string{"20/10/2026", "09:05", "P1", "S-1", "MSN-1", "setup", ""})
	assert.Error(t, err)

	_, err = ParseRow([]string{"2026-10-20", "09:05:00", "P1", "S-1", "MSN-1", "lunch", ""})
	assert.Error(t, err)
}

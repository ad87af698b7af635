package assignment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfloor/internal/shift"
	"shopfloor/internal/storage"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 10, 20, hour, min, 0, 0, shift.Location)
}

func TestCheck_ConflictNamesHolder(t *testing.T) {
	events := []storage.Event{
		{Timestamp: at(8, 0), StationID: "P1", UnitSerial: "S-010", UnitDisplay: "S-010", Stage: storage.StageSetup},
		{Timestamp: at(8, 30), StationID: "P1", UnitSerial: "S-010", UnitDisplay: "S-010", Stage: storage.StageStationA},
	}

	err := Check(events, "P2", "S-010")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnitClaimed))

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "P1", conflict.Holder)
	assert.Contains(t, err.Error(), "P1")

	assert.NoError(t, Check(events, "P1", "S-010"))
}

func TestCheck_ReleasedOrUnknownUnit(t *testing.T) {
	events := []storage.Event{
		{Timestamp: at(8, 0), StationID: "P1", UnitDisplay: "MSN-1", Stage: storage.StageSetup},
		{Timestamp: at(9, 0), StationID: "P1", UnitDisplay: "MSN-1", Stage: storage.StageDone},
	}

	assert.NoError(t, Check(events, "P2", "MSN-1"))
	assert.NoError(t, Check(events, "P2", "MSN-2"))
	assert.NoError(t, Check(nil, "P2", "MSN-1"))
}

func TestCheck_ExactMatchOnly(t *testing.T) {
	events := []storage.Event{
		{Timestamp: at(8, 0), StationID: "P1", UnitDisplay: "MSN-123", Stage: storage.StageSetup},
	}

	assert.NoError(t, Check(events, "P2", "MSN-12"))
	assert.Error(t, Check(events, "P2", "MSN-123"))
}

package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfloor/internal/shift"
	"shopfloor/internal/storage"
)

func TestFormatPayload(t *testing.T) {
	ev := storage.Event{
		UID:         "abc",
		Timestamp:   time.Date(2026, 10, 20, 9, 15, 0, 0, shift.Location),
		StationID:   "P1",
		UnitDisplay: "MSN-12",
		Stage:       storage.StageStationB1,
	}

	payload, err := FormatPayload(ev)
	require.NoError(t, err)

	var parsed Payload
	require.NoError(t, json.Unmarshal(payload, &parsed))

	assert.Equal(t, "2026-10-20T08:15:00Z", parsed.Event.Timestamp)
	assert.Equal(t, "P1", parsed.Event.Station)
	assert.Equal(t, "MSN-12", parsed.Event.Unit)
	assert.Equal(t, "station-B1", parsed.Event.Stage)
	assert.Equal(t, 30, parsed.Event.Progress)
	assert.Equal(t, "abc", parsed.Event.UID)
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "shopfloor/events", Topics{}.Events())
	assert.Equal(t, "line2/events", Topics{Prefix: "line2"}.Events())
	assert.Equal(t, "line2/alerts/P3", Topics{Prefix: "line2"}.Alert("P3"))
}

func TestFakePublisher_AlertsOnlyForCalls(t *testing.T) {
	f := NewFakePublisher()
	ts := time.Date(2026, 10, 20, 9, 0, 0, 0, shift.Location)

	require.NoError(t, f.PublishEvent(storage.Event{Timestamp: ts, StationID: "P1", Stage: storage.StageSetup}))
	require.NoError(t, f.PublishEvent(storage.Event{Timestamp: ts, StationID: "P1", Stage: storage.StageCall, Note: "pipes"}))

	msgs := f.Snapshot()
	require.Len(t, msgs, 3)
	assert.Equal(t, "shopfloor/events", msgs[0].Topic)
	assert.Equal(t, "shopfloor/events", msgs[1].Topic)
	assert.Equal(t, "shopfloor/alerts/P1", msgs[2].Topic)
	assert.Equal(t, byte(1), msgs[2].QoS)
	assert.Len(t, f.Events, 2)
}

func TestFakePublisher_Error(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("broker down")

	err := f.PublishEvent(storage.Event{StationID: "P1", Stage: storage.StageCall})
	assert.EqualError(t, err, "broker down")
	assert.Empty(t, f.Snapshot())

	require.NoError(t, f.Close())
	assert.True(t, f.Closed)
}
